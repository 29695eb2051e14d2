// Package engine exposes the spell checker as a single call for embedding
// programs that bring their own argument parsing.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"antiseptic.dev/pkg/antiseptic/internal/adapter"
	"antiseptic.dev/pkg/antiseptic/internal/domain"
	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

// Exit codes returned by Run.
const (
	ExitClean    = m.ExitClean
	ExitFindings = m.ExitFindings
	ExitFatal    = m.ExitFatal
)

// Options tune RunContext. The zero value matches Run.
type Options struct {
	// Stdout receives the findings, one per line. Defaults to os.Stdout.
	Stdout io.Writer
	// Stderr receives warnings and fatal errors. Defaults to os.Stderr.
	Stderr io.Writer
	// Exclude replaces the default exclude patterns when non-nil.
	Exclude []string
	// Suggest adds a suggested correction to unknown words.
	Suggest bool
	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger
}

// Run checks paths against the dictionaries found in resourceDir and prints
// the findings to stdout. An empty paths checks the working directory. The
// nearest antiseptic configuration above the working directory supplies
// exclude patterns, allowed words and supplementary dictionaries. It returns
// ExitClean, ExitFindings or ExitFatal.
func Run(paths []string, resourceDir string) int {
	return RunContext(context.Background(), paths, resourceDir, Options{})
}

// RunContext is Run with cancellation and output options.
func RunContext(ctx context.Context, paths []string, resourceDir string, opts Options) int {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ctx = domain.WithLogger(ctx, logger)

	roots := make([]m.Path, 0, len(paths))
	for _, path := range paths {
		roots = append(roots, m.Path(path))
	}

	args := domain.RunArgs{
		Paths:        roots,
		ResourceDir:  m.Path(resourceDir),
		Exclude:      domain.DefaultExcludes,
		HiddenMarker: domain.DefaultHiddenMarker,
		Suggest:      opts.Suggest,
	}

	configs := &adapter.LocalProjectConfigAdapter{Logger: logger}
	if err := applyProjectConfig(configs, &args); err != nil {
		logger.Error("Invalid configuration", "error", err)
		_, _ = fmt.Fprintln(stderr, "error:", err)

		return ExitFatal
	}

	if opts.Exclude != nil {
		args.Exclude = opts.Exclude
	}

	fsAdapter := adapter.NewLocalSourceFSAdapter()
	orchestrator := domain.NewOrchestrator(fsAdapter, domain.NewDictionaryStore(fsAdapter))

	result, err := orchestrator.Run(ctx, args)
	if err != nil {
		logger.Error("Check failed", "error", err)
		_, _ = fmt.Fprintln(stderr, "error:", describe(err))

		return ExitFatal
	}

	for _, warning := range result.Warnings {
		_, _ = fmt.Fprintln(stderr, "warning:", warning)
	}

	output, code, err := domain.NewReporter(domain.FormatText).Finalize(result)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return ExitFatal
	}

	if _, err := io.WriteString(stdout, output); err != nil {
		return ExitFatal
	}

	return code
}

// applyProjectConfig merges the configuration found from the working
// directory into args. Relative dictionary paths resolve against the
// directory holding the configuration file.
func applyProjectConfig(configs adapter.ProjectConfigAdapter, args *domain.RunArgs) error {
	cfg, err := configs.Find(".")
	if errors.Is(err, adapter.ErrConfigNotFound) {
		return nil
	}

	if err != nil {
		return err
	}

	exclude, ok, err := stringList(cfg, "exclude")
	if err != nil {
		return err
	}

	if ok {
		args.Exclude = exclude
	}

	words, _, err := stringList(cfg, "allowed-words")
	if err != nil {
		return err
	}

	args.AllowedWords = words

	dictionaries, _, err := stringList(cfg, "dictionaries")
	if err != nil {
		return err
	}

	for _, dictionary := range dictionaries {
		if !filepath.IsAbs(dictionary) {
			dictionary = filepath.Join(string(cfg.Dir), dictionary)
		}

		args.Dictionaries = append(args.Dictionaries, m.Path(dictionary))
	}

	if language, ok := cfg.Settings["language"].(string); ok {
		args.Language = language
	}

	return nil
}

// stringList reads key as a list of strings. ok is false when the key is absent.
func stringList(cfg adapter.ProjectConfig, key string) ([]string, bool, error) {
	value, ok := cfg.Settings[key]
	if !ok {
		return nil, false, nil
	}

	items, isList := value.([]any)
	if !isList {
		return nil, false, &adapter.ConfigError{Path: cfg.Path, Err: fmt.Errorf("%s must be a list of strings", key)}
	}

	list := make([]string, 0, len(items))

	for _, item := range items {
		s, isString := item.(string)
		if !isString {
			return nil, false, &adapter.ConfigError{Path: cfg.Path, Err: fmt.Errorf("%s must be a list of strings", key)}
		}

		list = append(list, s)
	}

	return list, true, nil
}

func describe(err error) string {
	var pathErr *domain.InvalidPathError
	if errors.As(err, &pathErr) {
		return fmt.Sprintf("%s does not exist or cannot be accessed", pathErr.Path)
	}

	var loadErr *domain.DictionaryLoadError
	if errors.As(err, &loadErr) {
		return fmt.Sprintf("cannot load base dictionary %s: %v", loadErr.Path, loadErr.Err)
	}

	return err.Error()
}
