package model

// Process exit codes returned by a check run.
const (
	ExitClean    = 0
	ExitFindings = 1
	ExitFatal    = 2
)
