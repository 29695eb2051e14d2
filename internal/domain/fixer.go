package domain

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"

	"antiseptic.dev/pkg/antiseptic/internal/adapter"
	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

const diffContextLines = 3

// Fixer previews suggested corrections as a unified diff. It never writes to
// the checked files.
type Fixer interface {
	Patch(ctx context.Context, findings []m.Finding) (string, error)
}

type fixer struct {
	adapter.SourceFSAdapter
}

// NewFixer creates a Fixer reading files through fsAdapter.
func NewFixer(fsAdapter adapter.SourceFSAdapter) Fixer {
	return &fixer{SourceFSAdapter: fsAdapter}
}

// Patch returns one unified diff per file holding an unknown word with a
// suggestion. Files that changed since the scan are skipped.
func (f *fixer) Patch(ctx context.Context, findings []m.Finding) (string, error) {
	byPath := map[m.Path][]m.Finding{}

	for _, finding := range findings {
		if finding.Kind == m.FindingUnknownWord && finding.Suggestion != "" {
			byPath[finding.Path] = append(byPath[finding.Path], finding)
		}
	}

	paths := make([]m.Path, 0, len(byPath))
	for path := range byPath {
		paths = append(paths, path)
	}

	slices.Sort(paths)

	var out strings.Builder

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		diff, err := f.patchFile(path, byPath[path])
		if err != nil {
			return "", err
		}

		out.WriteString(diff)
	}

	return out.String(), nil
}

func (f *fixer) patchFile(path m.Path, findings []m.Finding) (string, error) {
	data, err := f.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	original := string(data)
	fixed := applyReplacements(original, findings)

	if fixed == original {
		slog.Debug("No applicable corrections", "path", path)
		return "", nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(fixed),
		FromFile: "a/" + string(path),
		ToFile:   "b/" + string(path),
		Context:  diffContextLines,
	})
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", path, err)
	}

	return diff, nil
}

// applyReplacements substitutes suggestions from the end of the content so
// earlier offsets stay valid. A finding whose word is no longer at its offset
// is ignored.
func applyReplacements(content string, findings []m.Finding) string {
	ordered := slices.Clone(findings)
	slices.SortFunc(ordered, func(a, b m.Finding) int {
		return cmp.Compare(b.Offset, a.Offset)
	})

	limit := len(content)

	for _, finding := range ordered {
		end := finding.Offset + len(finding.Word)
		if finding.Offset < 0 || end > limit || content[finding.Offset:end] != finding.Word {
			continue
		}

		content = content[:finding.Offset] + MatchCase(finding.Word, finding.Suggestion) + content[end:]
		limit = finding.Offset
	}

	return content
}

// MatchCase shapes replacement like word: UPPER, Title or unchanged.
func MatchCase(word, replacement string) string {
	if replacement != strings.ToLower(replacement) {
		return replacement
	}

	first, _ := utf8.DecodeRuneInString(word)
	if !unicode.IsUpper(first) {
		return replacement
	}

	if utf8.RuneCountInString(word) > 1 && strings.ToUpper(word) == word {
		return strings.ToUpper(replacement)
	}

	r, n := utf8.DecodeRuneInString(replacement)

	return string(unicode.ToUpper(r)) + replacement[n:]
}
