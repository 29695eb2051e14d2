package adapter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

func TestYAMLReportStore_SaveAndLoad(t *testing.T) {
	store := NewReportStore()
	path := m.Path(filepath.Join(t.TempDir(), "reports", "last.yaml"))

	result := m.ScanResult{
		Findings: []m.Finding{
			{Path: "docs/readme.md", Line: 3, Column: 7, Offset: 40, Kind: m.FindingUnknownWord, Word: "wrold", Suggestion: "world"},
			{Path: "docs/broken.txt", Kind: m.FindingUnreadable, Message: "invalid UTF-8 on line 2"},
		},
		Summary:  m.Summary{FilesScanned: 2, FilesSkipped: 1, TokensChecked: 12},
		Warnings: []string{"supplementary dictionary missing"},
	}

	require.NoError(t, store.SaveReport(path, result))

	loaded, err := store.LoadReport(path)
	require.NoError(t, err)
	require.Equal(t, result, loaded)
}

func TestYAMLReportStore_LoadErrors(t *testing.T) {
	store := NewReportStore()
	root := t.TempDir()

	_, err := store.LoadReport(m.Path(filepath.Join(root, "missing.yaml")))
	require.Error(t, err)

	bad := filepath.Join(root, "bad.yaml")
	writeTestFile(t, bad, "findings:\n  - kind: sideways\n")

	_, err = store.LoadReport(m.Path(bad))
	require.Error(t, err)
}
