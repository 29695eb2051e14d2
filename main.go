// Package main is the entry point for the antiseptic CLI.
package main

import "antiseptic.dev/pkg/antiseptic/cmd"

func main() {
	cmd.Execute()
}
