package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

// SimpleUI prints plain text: findings to stdout, summary and warnings to
// stderr.
type SimpleUI struct {
	streams Streams
	config  StartConfig
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(streams Streams) *SimpleUI {
	return &SimpleUI{streams: streams}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.config = newStartConfig(options)

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayWarnings prints dictionary and configuration warnings.
func (s *SimpleUI) DisplayWarnings(ctx context.Context, warnings []string) {
	if ctx.Err() != nil || s.config.quiet {
		return
	}

	for _, warning := range warnings {
		s.errorf("warning: %s\n", warning)
	}
}

// DisplayReport prints the rendered findings unchanged.
func (s *SimpleUI) DisplayReport(ctx context.Context, report string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := io.WriteString(s.streams.OutOrStdout(), report)

	return err
}

// DisplayDiff prints the correction preview.
func (s *SimpleUI) DisplayDiff(ctx context.Context, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := io.WriteString(s.streams.OutOrStdout(), diff)

	return err
}

// DisplaySummary prints the run counters as a table.
func (s *SimpleUI) DisplaySummary(ctx context.Context, result m.ScanResult) {
	if ctx.Err() != nil || s.config.quiet {
		return
	}

	s.errorf("\n%s", renderSummaryTable(result))
}

// DisplayWords prints one verdict per line.
func (s *SimpleUI) DisplayWords(ctx context.Context, verdicts []m.WordVerdict) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, verdict := range verdicts {
		s.printf("%s\n", formatVerdict(verdict))
	}

	return nil
}

func (s *SimpleUI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.streams.OutOrStdout(), format, args...)
}

func (s *SimpleUI) errorf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.streams.ErrOrStderr(), format, args...)
}

func formatVerdict(verdict m.WordVerdict) string {
	switch {
	case verdict.Known:
		return verdict.Word + ": known"
	case verdict.Suggestion != "":
		return fmt.Sprintf("%s: unknown (did you mean %q?)", verdict.Word, verdict.Suggestion)
	default:
		return verdict.Word + ": unknown"
	}
}

func renderSummaryTable(result m.ScanResult) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Files", "Skipped", "Tokens", "Unknown", "Unreadable", "Warnings"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAlignment(tablewriter.ALIGN_CENTER)

	table.Append([]string{
		strconv.Itoa(result.Summary.FilesScanned),
		strconv.Itoa(result.Summary.FilesSkipped),
		strconv.Itoa(result.Summary.TokensChecked),
		strconv.Itoa(result.Count(m.FindingUnknownWord)),
		strconv.Itoa(result.Count(m.FindingUnreadable)),
		strconv.Itoa(result.Count(m.FindingWarning) + len(result.Warnings)),
	})

	table.Render()

	return tableBuffer.String()
}
