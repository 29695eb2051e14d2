package domain

import (
	"context"
	"fmt"
	"log/slog"

	"antiseptic.dev/pkg/antiseptic/internal/adapter"
	"antiseptic.dev/pkg/antiseptic/internal/controller"
	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

// CheckArgs configures a check run and how its result is shown.
type CheckArgs struct {
	RunArgs

	Format ReportFormat
	// Diff previews the suggested corrections after the findings.
	Diff bool
	// ReportPath saves the result as YAML when set.
	ReportPath m.Path
	Pager      bool
	Quiet      bool
}

// WordsArgs configures a lookup of individual words.
type WordsArgs struct {
	DictionaryArgs

	Words   []string
	Suggest bool
}

// ViewArgs configures the display of a saved report.
type ViewArgs struct {
	ReportPath m.Path
	Format     ReportFormat
	Pager      bool
	Quiet      bool
}

// Workflow runs the user-facing commands.
type Workflow interface {
	// Check returns the exit code of the run. Fatal problems return
	// ExitFatal together with the error.
	Check(ctx context.Context, args CheckArgs) (int, error)
	// Words returns ExitFindings when any word is unknown.
	Words(ctx context.Context, args WordsArgs) (int, error)
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.ReportStore
	controller.UI
	Orchestrator
	DictionaryStore
	Fixer
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	reportStore adapter.ReportStore,
	ui controller.UI,
	orchestrator Orchestrator,
	dictionaries DictionaryStore,
	fixer Fixer,
) Workflow {
	return &workflow{
		ReportStore:     reportStore,
		UI:              ui,
		Orchestrator:    orchestrator,
		DictionaryStore: dictionaries,
		Fixer:           fixer,
	}
}

func (w *workflow) Check(ctx context.Context, args CheckArgs) (int, error) {
	if err := w.Start(ctx, controller.WithPager(args.Pager), controller.WithQuiet(args.Quiet)); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return m.ExitFatal, err
	}
	defer w.Close(ctx)

	result, err := w.Run(ctx, args.RunArgs)
	if err != nil {
		return m.ExitFatal, err
	}

	if args.ReportPath != "" {
		if err := w.SaveReport(args.ReportPath, result); err != nil {
			slog.Error("Failed to save report", "path", args.ReportPath, "error", err)
			return m.ExitFatal, fmt.Errorf("save report: %w", err)
		}
	}

	code, err := w.display(ctx, result, args.Format)
	if err != nil {
		return m.ExitFatal, err
	}

	if args.Diff {
		diff, err := w.Patch(ctx, result.Findings)
		if err != nil {
			slog.Error("Failed to build correction preview", "error", err)
			return m.ExitFatal, fmt.Errorf("diff: %w", err)
		}

		if err := w.DisplayDiff(ctx, diff); err != nil {
			return m.ExitFatal, fmt.Errorf("display: %w", err)
		}
	}

	w.DisplaySummary(ctx, result)

	return code, nil
}

func (w *workflow) display(ctx context.Context, result m.ScanResult, format ReportFormat) (int, error) {
	w.DisplayWarnings(ctx, result.Warnings)

	output, code, err := NewReporter(format).Finalize(result)
	if err != nil {
		return m.ExitFatal, fmt.Errorf("report: %w", err)
	}

	if err := w.DisplayReport(ctx, output); err != nil {
		return m.ExitFatal, fmt.Errorf("display: %w", err)
	}

	return code, nil
}

func (w *workflow) Words(ctx context.Context, args WordsArgs) (int, error) {
	if err := w.Start(ctx); err != nil {
		return m.ExitFatal, err
	}
	defer w.Close(ctx)

	dict, warnings, err := w.Load(ctx, args.DictionaryArgs)
	if err != nil {
		return m.ExitFatal, err
	}

	messages := make([]string, 0, len(warnings))
	for _, warning := range warnings {
		messages = append(messages, warning.Error())
	}

	w.DisplayWarnings(ctx, messages)

	var suggester Suggester
	if args.Suggest {
		suggester = NewSuggester(dict, DefaultSuggestThreshold)
	}

	verdicts := make([]m.WordVerdict, 0, len(args.Words))
	code := m.ExitClean

	for _, word := range args.Words {
		verdict := m.WordVerdict{Word: word, Known: dict.Contains(word)}

		if !verdict.Known {
			code = m.ExitFindings

			if suggester != nil {
				verdict.Suggestion, _ = suggester.Suggest(word)
			}
		}

		verdicts = append(verdicts, verdict)
	}

	if err := w.DisplayWords(ctx, verdicts); err != nil {
		return m.ExitFatal, fmt.Errorf("display: %w", err)
	}

	return code, nil
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	if err := w.Start(ctx, controller.WithPager(args.Pager), controller.WithQuiet(args.Quiet)); err != nil {
		return err
	}
	defer w.Close(ctx)

	result, err := w.LoadReport(args.ReportPath)
	if err != nil {
		slog.Error("Failed to load report", "path", args.ReportPath, "error", err)
		return err
	}

	if _, err := w.display(ctx, result, args.Format); err != nil {
		return err
	}

	w.DisplaySummary(ctx, result)

	return nil
}
