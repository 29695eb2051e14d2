package domain_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"antiseptic.dev/pkg/antiseptic/internal/adapter"
	"antiseptic.dev/pkg/antiseptic/internal/domain"
	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

func newTestChecker(suggest bool) domain.Checker {
	dict := domain.NewDictionarySet(domain.WordList{Name: "base", Words: []string{"hello", "world", "second", "line"}})

	var suggester domain.Suggester
	if suggest {
		suggester = domain.NewSuggester(dict, 0)
	}

	return domain.NewChecker(adapter.NewLocalSourceFSAdapter(), domain.NewTokenizer(domain.TokenizerOptions{}), dict, suggester)
}

func TestChecker_UnknownWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	writeFile(t, path, []byte("hello wrold\nsecond line\n"))

	report := newTestChecker(true).Check(context.Background(), m.ScanTarget{Path: m.Path(path), Kind: m.KindText})

	assert.False(t, report.Skipped)
	assert.Equal(t, 4, report.Tokens)
	assert.Equal(t, []m.Finding{{
		Path:       m.Path(path),
		Line:       1,
		Column:     7,
		Offset:     6,
		Kind:       m.FindingUnknownWord,
		Word:       "wrold",
		Suggestion: "world",
	}}, report.Findings)
}

func TestChecker_WithoutSuggestions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	writeFile(t, path, []byte("hello wrold\n"))

	report := newTestChecker(false).Check(context.Background(), m.ScanTarget{Path: m.Path(path), Kind: m.KindText})

	require.Len(t, report.Findings, 1)
	assert.Equal(t, "wrold", report.Findings[0].Word)
	assert.Empty(t, report.Findings[0].Suggestion)
}

func TestChecker_CleanFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean.txt")
	writeFile(t, path, []byte("Hello World\n"))

	report := newTestChecker(true).Check(context.Background(), m.ScanTarget{Path: m.Path(path), Kind: m.KindText})

	assert.Empty(t, report.Findings)
	assert.Equal(t, 2, report.Tokens)
}

func TestChecker_SkippedTargets(t *testing.T) {
	missing := m.Path(filepath.Join(t.TempDir(), "never-opened"))

	tests := []struct {
		name         string
		target       m.ScanTarget
		wantFindings []m.Finding
	}{
		{
			name:   "binary",
			target: m.ScanTarget{Path: missing, Kind: m.KindBinary},
		},
		{
			name:   "special file",
			target: m.ScanTarget{Path: missing, Kind: m.KindSkip},
		},
		{
			name:   "walk error",
			target: m.ScanTarget{Path: missing, Kind: m.KindSkip, Err: errors.New("permission denied")},
			wantFindings: []m.Finding{{
				Path:    missing,
				Kind:    m.FindingWarning,
				Message: "permission denied",
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := newTestChecker(true).Check(context.Background(), tt.target)

			assert.True(t, report.Skipped)
			assert.Zero(t, report.Tokens)
			assert.Equal(t, tt.wantFindings, report.Findings)
		})
	}
}

func TestChecker_UnreadableFiles(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		path := m.Path(filepath.Join(t.TempDir(), "gone.txt"))

		report := newTestChecker(true).Check(context.Background(), m.ScanTarget{Path: path, Kind: m.KindText})

		assert.False(t, report.Skipped)
		require.Len(t, report.Findings, 1)
		assert.Equal(t, m.FindingUnreadable, report.Findings[0].Kind)
		assert.Equal(t, path, report.Findings[0].Path)
		assert.Zero(t, report.Findings[0].Line)
	})

	t.Run("invalid encoding after the sniff window", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "late.txt")
		writeFile(t, path, []byte("hello wrold\nbad \xff byte\n"))

		report := newTestChecker(false).Check(context.Background(), m.ScanTarget{Path: m.Path(path), Kind: m.KindText})

		assert.Equal(t, 2, report.Tokens)
		require.Len(t, report.Findings, 2)
		assert.Equal(t, m.FindingUnknownWord, report.Findings[0].Kind)
		assert.Equal(t, m.FindingUnreadable, report.Findings[1].Kind)
		assert.Contains(t, report.Findings[1].Message, "line 2")
	})
}

func TestChecker_OverlongLineIsUnreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.min.js")
	writeFile(t, path, []byte("hello wrold\n"+strings.Repeat("x", 200)+"\n"))

	dict := domain.NewDictionarySet(domain.WordList{Name: "base", Words: []string{"hello"}})
	checker := domain.NewChecker(adapter.NewLocalSourceFSAdapter(),
		domain.NewTokenizer(domain.TokenizerOptions{MaxLineLength: 64}), dict, nil)

	report := checker.Check(context.Background(), m.ScanTarget{Path: m.Path(path), Kind: m.KindText})

	require.Len(t, report.Findings, 2)
	assert.Equal(t, "wrold", report.Findings[0].Word)
	assert.Equal(t, m.FindingUnreadable, report.Findings[1].Kind)
	assert.Contains(t, report.Findings[1].Message, "line 2")
	assert.Contains(t, report.Findings[1].Message, domain.ErrLineTooLong.Error())
}

func TestChecker_StopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("wrold wrold wrold\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := newTestChecker(false).Check(ctx, m.ScanTarget{Path: m.Path(path), Kind: m.KindText})

	assert.Zero(t, report.Tokens)
	assert.Empty(t, report.Findings)
}
