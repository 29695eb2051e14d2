package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"antiseptic.dev/pkg/antiseptic/internal/domain"
	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

func sampleResult() m.ScanResult {
	return m.ScanResult{
		Findings: []m.Finding{
			{Path: "b.txt", Line: 2, Column: 1, Offset: 10, Kind: m.FindingUnknownWord, Word: "teh", Suggestion: "the"},
			{Path: "a.txt", Line: 1, Column: 7, Offset: 6, Kind: m.FindingUnknownWord, Word: "wrold"},
			{Path: "c.bin", Kind: m.FindingUnreadable, Message: "line 3: invalid UTF-8"},
		},
		Summary: m.Summary{FilesScanned: 3, TokensChecked: 12},
	}
}

func TestReporter_Text(t *testing.T) {
	result := sampleResult()

	output, code, err := domain.NewReporter(domain.FormatText).Finalize(result)
	require.NoError(t, err)

	want := "a.txt:1:7: unknown word \"wrold\"\n" +
		"b.txt:2:1: unknown word \"teh\" (did you mean \"the\"?)\n" +
		"c.bin:0:0: file unreadable: line 3: invalid UTF-8\n"
	assert.Equal(t, want, output)
	assert.Equal(t, m.ExitFindings, code)

	assert.Equal(t, m.Path("b.txt"), result.Findings[0].Path, "the input is not reordered")
}

func TestReporter_YAML(t *testing.T) {
	output, code, err := domain.NewReporter(domain.FormatYAML).Finalize(sampleResult())
	require.NoError(t, err)
	assert.Equal(t, m.ExitFindings, code)

	var decoded m.ScanResult
	require.NoError(t, yaml.Unmarshal([]byte(output), &decoded))

	require.Len(t, decoded.Findings, 3)
	assert.Equal(t, m.Path("a.txt"), decoded.Findings[0].Path)
	assert.Equal(t, m.FindingUnreadable, decoded.Findings[2].Kind)
	assert.Equal(t, 12, decoded.Summary.TokensChecked)
	assert.Contains(t, output, "kind: unknown-word")
}

func TestReporter_ExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		findings []m.Finding
		want     int
	}{
		{"no findings", nil, m.ExitClean},
		{"warnings only", []m.Finding{{Path: "x", Kind: m.FindingWarning, Message: "denied"}}, m.ExitClean},
		{"unknown word", []m.Finding{{Path: "x", Kind: m.FindingUnknownWord, Word: "zz"}}, m.ExitFindings},
		{"unreadable file", []m.Finding{{Path: "x", Kind: m.FindingUnreadable}}, m.ExitFindings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := m.ScanResult{Findings: tt.findings}

			_, code, err := domain.NewReporter(domain.FormatText).Finalize(result)
			require.NoError(t, err)
			assert.Equal(t, tt.want, code)
			assert.Equal(t, tt.want, domain.ExitCode(result))
		})
	}
}

func TestReporter_EmptyResult(t *testing.T) {
	output, code, err := domain.NewReporter(domain.FormatText).Finalize(m.ScanResult{})
	require.NoError(t, err)
	assert.Empty(t, output)
	assert.Equal(t, m.ExitClean, code)
}

func TestReporter_UnknownFormat(t *testing.T) {
	_, code, err := domain.NewReporter(domain.ReportFormat("xml")).Finalize(sampleResult())
	require.Error(t, err)
	assert.Equal(t, m.ExitFatal, code)
}

func TestParseReportFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    domain.ReportFormat
		wantErr bool
	}{
		{"", domain.FormatText, false},
		{"text", domain.FormatText, false},
		{"YAML", domain.FormatYAML, false},
		{"json", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseReportFormat(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
