package model

import (
	"cmp"
	"slices"
)

// FileReport is the outcome of checking a single ScanTarget.
type FileReport struct {
	Target   ScanTarget
	Findings []Finding
	Tokens   int
	Skipped  bool
}

// Summary holds the counters of a run.
type Summary struct {
	FilesScanned  int `yaml:"files_scanned"`
	FilesSkipped  int `yaml:"files_skipped"`
	TokensChecked int `yaml:"tokens_checked"`
}

// ScanResult aggregates every finding of a run.
type ScanResult struct {
	Findings []Finding `yaml:"findings"`
	Summary  Summary   `yaml:"summary"`
	Warnings []string  `yaml:"warnings,omitempty"`
}

// Add folds a file report into the result. It is not safe for concurrent use;
// a run has a single collector.
func (r *ScanResult) Add(report FileReport) {
	if report.Skipped {
		r.Summary.FilesSkipped++
	} else {
		r.Summary.FilesScanned++
	}

	r.Summary.TokensChecked += report.Tokens
	r.Findings = append(r.Findings, report.Findings...)
}

// Sort orders findings by file, then position, so output never depends on
// worker completion order.
func (r *ScanResult) Sort() {
	slices.SortStableFunc(r.Findings, compareFindings)
}

func compareFindings(a, b Finding) int {
	return cmp.Or(
		cmp.Compare(a.Path, b.Path),
		cmp.Compare(a.Line, b.Line),
		cmp.Compare(a.Column, b.Column),
		cmp.Compare(a.Kind, b.Kind),
		cmp.Compare(a.Word, b.Word),
	)
}

// Count returns the number of findings of the given kind.
func (r ScanResult) Count(kind FindingKind) int {
	n := 0

	for _, f := range r.Findings {
		if f.Kind == kind {
			n++
		}
	}

	return n
}

// Failed reports whether any finding makes the run fail.
func (r ScanResult) Failed() bool {
	return slices.ContainsFunc(r.Findings, func(f Finding) bool {
		return f.Kind.Failing()
	})
}
