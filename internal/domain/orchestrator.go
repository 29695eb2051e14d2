package domain

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"antiseptic.dev/pkg/antiseptic/internal/adapter"
	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

// RunArgs holds everything a check run needs.
type RunArgs struct {
	Paths        []m.Path
	ResourceDir  m.Path
	Language     string
	Dictionaries []m.Path
	AllowedWords []string

	Exclude      []string
	HiddenMarker string
	SniffSize    int

	MinLength     int
	CheckAcronyms bool
	Suggest       bool

	Threads int
}

// DictionaryArgs returns the dictionary selection of a run.
func (a RunArgs) DictionaryArgs() DictionaryArgs {
	return DictionaryArgs{
		ResourceDir:  a.ResourceDir,
		Language:     a.Language,
		Supplements:  a.Dictionaries,
		AllowedWords: a.AllowedWords,
	}
}

// Orchestrator drives the walker, a bounded pool of checkers and a single
// collector for one run.
type Orchestrator interface {
	// Run returns an *InvalidPathError or a *DictionaryLoadError for fatal
	// problems. Everything else is reported inside the ScanResult.
	Run(ctx context.Context, args RunArgs) (m.ScanResult, error)
}

type orchestrator struct {
	adapter.SourceFSAdapter
	DictionaryStore
}

// NewOrchestrator constructs an Orchestrator backed by the provided
// filesystem adapter and dictionary store.
func NewOrchestrator(fsAdapter adapter.SourceFSAdapter, store DictionaryStore) Orchestrator {
	return &orchestrator{
		SourceFSAdapter: fsAdapter,
		DictionaryStore: store,
	}
}

func (o *orchestrator) Run(ctx context.Context, args RunArgs) (m.ScanResult, error) {
	paths := args.Paths
	if len(paths) == 0 {
		paths = []m.Path{"."}
	}

	threads := args.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	dict, warnings, err := o.Load(ctx, args.DictionaryArgs())
	if err != nil {
		return m.ScanResult{}, err
	}

	walker, err := NewWalker(o.SourceFSAdapter, WalkerOptions{
		Exclude:      args.Exclude,
		HiddenMarker: args.HiddenMarker,
		SniffSize:    args.SniffSize,
	})
	if err != nil {
		return m.ScanResult{}, err
	}

	targets, err := walker.Walk(ctx, paths)
	if err != nil {
		loggerFrom(ctx).Error("Invalid root path", "error", err)
		return m.ScanResult{}, err
	}

	var suggester Suggester
	if args.Suggest {
		suggester = NewSuggester(dict, DefaultSuggestThreshold)
	}

	checker := NewChecker(o.SourceFSAdapter, NewTokenizer(TokenizerOptions{
		MinLength:     args.MinLength,
		CheckAcronyms: args.CheckAcronyms,
	}), dict, suggester)

	result := collectReports(checkTargets(ctx, checker, targets, threads))
	if err := ctx.Err(); err != nil {
		return m.ScanResult{}, err
	}

	for _, warning := range warnings {
		result.Warnings = append(result.Warnings, warning.Error())
	}

	result.Sort()

	loggerFrom(ctx).Info("Check finished",
		"files", result.Summary.FilesScanned,
		"skipped", result.Summary.FilesSkipped,
		"tokens", result.Summary.TokensChecked,
		"findings", len(result.Findings))

	return result, nil
}

// checkTargets fans targets out to at most threads concurrent checkers. The
// returned channel closes once every target has been checked.
func checkTargets(ctx context.Context, checker Checker, targets <-chan m.ScanTarget, threads int) <-chan m.FileReport {
	reports := make(chan m.FileReport, threads)

	go func() {
		defer close(reports)

		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(threads)

		for target := range targets {
			group.Go(func() error {
				report := checker.Check(groupCtx, target)

				select {
				case <-groupCtx.Done():
					return groupCtx.Err()
				case reports <- report:
					return nil
				}
			})
		}

		if err := group.Wait(); err != nil {
			loggerFrom(ctx).Debug("Checkers stopped", "error", err)
		}
	}()

	return reports
}

// collectReports is the only writer of the result.
func collectReports(reports <-chan m.FileReport) m.ScanResult {
	var result m.ScanResult

	for report := range reports {
		result.Add(report)
	}

	return result
}
