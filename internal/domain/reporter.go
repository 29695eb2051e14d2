package domain

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

// ReportFormat selects how findings are rendered.
type ReportFormat string

// Supported report formats.
const (
	FormatText ReportFormat = "text"
	FormatYAML ReportFormat = "yaml"
)

// ParseReportFormat validates a format name. An empty name selects text.
func ParseReportFormat(name string) (ReportFormat, error) {
	switch ReportFormat(strings.ToLower(name)) {
	case "", FormatText:
		return FormatText, nil
	case FormatYAML:
		return FormatYAML, nil
	}

	return "", fmt.Errorf("unknown report format %q (want text or yaml)", name)
}

// Reporter renders a ScanResult and decides the exit code.
type Reporter interface {
	// Finalize returns the rendered findings and the exit code: ExitFindings
	// when any unknown-word or file-unreadable finding exists, else ExitClean.
	Finalize(result m.ScanResult) (string, int, error)
}

type reporter struct {
	format ReportFormat
}

// NewReporter creates a Reporter for format.
func NewReporter(format ReportFormat) Reporter {
	return &reporter{format: format}
}

func (r *reporter) Finalize(result m.ScanResult) (string, int, error) {
	sorted := result
	sorted.Findings = slices.Clone(result.Findings)
	sorted.Sort()

	code := ExitCode(sorted)

	switch r.format {
	case FormatYAML:
		data, err := yaml.Marshal(sorted)
		if err != nil {
			return "", m.ExitFatal, fmt.Errorf("encode report: %w", err)
		}

		return string(data), code, nil
	case FormatText, "":
		return renderText(sorted.Findings), code, nil
	}

	return "", m.ExitFatal, fmt.Errorf("unknown report format %q", r.format)
}

// ExitCode maps a result to the process exit code.
func ExitCode(result m.ScanResult) int {
	if result.Failed() {
		return m.ExitFindings
	}

	return m.ExitClean
}

func renderText(findings []m.Finding) string {
	var b strings.Builder

	for _, f := range findings {
		b.WriteString(f.String())
		b.WriteByte('\n')
	}

	return b.String()
}
