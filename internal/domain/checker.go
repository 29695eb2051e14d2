package domain

import (
	"context"

	"antiseptic.dev/pkg/antiseptic/internal/adapter"
	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

// Checker checks a single ScanTarget against the dictionary.
type Checker interface {
	// Check never fails: read and decoding problems become findings so the
	// rest of the tree is still checked.
	Check(ctx context.Context, target m.ScanTarget) m.FileReport
}

type checker struct {
	adapter.SourceFSAdapter
	Tokenizer
	dict      *DictionarySet
	suggester Suggester
}

// NewChecker creates a Checker. suggester may be nil to disable suggestions.
func NewChecker(fsAdapter adapter.SourceFSAdapter, tokenizer Tokenizer, dict *DictionarySet, suggester Suggester) Checker {
	return &checker{
		SourceFSAdapter: fsAdapter,
		Tokenizer:       tokenizer,
		dict:            dict,
		suggester:       suggester,
	}
}

func (c *checker) Check(ctx context.Context, target m.ScanTarget) m.FileReport {
	report := m.FileReport{Target: target}

	switch target.Kind {
	case m.KindBinary:
		report.Skipped = true
		return report
	case m.KindSkip:
		report.Skipped = true
		if target.Err != nil {
			report.Findings = append(report.Findings, m.Finding{
				Path:    target.Path,
				Kind:    m.FindingWarning,
				Message: target.Err.Error(),
			})
		}

		return report
	}

	f, err := c.Open(target.Path)
	if err != nil {
		loggerFrom(ctx).Warn("Cannot open file", "path", target.Path, "error", err)
		report.Findings = append(report.Findings, unreadable(target.Path, err))

		return report
	}

	defer func() {
		_ = f.Close()
	}()

	for token, err := range c.Tokenize(f, target.Kind) {
		if err != nil {
			loggerFrom(ctx).Warn("Cannot read file", "path", target.Path, "error", err)
			report.Findings = append(report.Findings, unreadable(target.Path, err))

			break
		}

		if ctx.Err() != nil {
			break
		}

		report.Tokens++

		if c.dict.Contains(token.Text) {
			continue
		}

		finding := m.Finding{
			Path:   target.Path,
			Line:   token.Line,
			Column: token.Column,
			Offset: token.Start,
			Kind:   m.FindingUnknownWord,
			Word:   token.Text,
		}

		if c.suggester != nil {
			if suggestion, ok := c.suggester.Suggest(token.Text); ok {
				finding.Suggestion = suggestion
			}
		}

		report.Findings = append(report.Findings, finding)
	}

	return report
}

func unreadable(path m.Path, err error) m.Finding {
	return m.Finding{
		Path:    path,
		Kind:    m.FindingUnreadable,
		Message: err.Error(),
	}
}
