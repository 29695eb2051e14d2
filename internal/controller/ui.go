// Package controller provides output adapters for displaying spell check results.
package controller

import (
	"context"
	"io"
	"os"

	"golang.org/x/term"

	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

// Streams is the pair of writers a UI prints to. *cobra.Command satisfies it.
type Streams interface {
	OutOrStdout() io.Writer
	ErrOrStderr() io.Writer
}

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	pager bool
	quiet bool
}

// WithPager lets the UI page output that does not fit on the screen.
func WithPager(enabled bool) StartOption {
	return func(c *StartConfig) {
		c.pager = enabled
	}
}

// WithQuiet suppresses the summary and warnings.
func WithQuiet(enabled bool) StartOption {
	return func(c *StartConfig) {
		c.quiet = enabled
	}
}

func newStartConfig(options []StartOption) StartConfig {
	var cfg StartConfig
	for _, option := range options {
		option(&cfg)
	}

	return cfg
}

// UI defines how results reach the user.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	DisplayWarnings(ctx context.Context, warnings []string)
	DisplayReport(ctx context.Context, report string) error
	DisplayDiff(ctx context.Context, diff string) error
	DisplaySummary(ctx context.Context, result m.ScanResult)
	DisplayWords(ctx context.Context, verdicts []m.WordVerdict) error
}

// NewUI returns the interactive TUI when stdout is a terminal and the
// SimpleUI otherwise.
func NewUI(streams Streams) UI {
	if IsTerminal(streams.OutOrStdout()) {
		return NewTUI(streams)
	}

	return NewSimpleUI(streams)
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalSize returns the size of w, or zeros when w is not a terminal.
func terminalSize(w io.Writer) (int, int) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, 0
	}

	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0
	}

	return width, height
}
