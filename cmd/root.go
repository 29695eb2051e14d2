// Package cmd provides the root command and CLI setup for antiseptic.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"antiseptic.dev/pkg/antiseptic/internal/adapter"
	"antiseptic.dev/pkg/antiseptic/internal/controller"
	"antiseptic.dev/pkg/antiseptic/internal/domain"
	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var configAdapter adapter.ProjectConfigAdapter
var dictionaries domain.DictionaryStore
var orchestrator domain.Orchestrator
var fixer domain.Fixer
var workflow domain.Workflow
var ui controller.UI

// Flag targets. Commands read the effective values through viper so config
// files and environment variables apply as well.
var (
	resourcesFlag     string
	languageFlag      string
	dictionariesFlag  []string
	allowedWordsFlag  []string
	excludeFlag       []string
	hiddenMarkerFlag  string
	sniffSizeFlag     int
	minLengthFlag     int
	checkAcronymsFlag bool
	noSuggestFlag     bool
	parallelFlag      int
	formatFlag        string
	diffFlag          bool
	saveReportFlag    string
	quietFlag         bool
	noPagerFlag       bool
	verboseFlag       bool
	logFileFlag       string
)

func init() {
	configureRootFlags(rootCmd)
	configureCheckFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd)
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore()
	configAdapter = adapter.NewLocalProjectConfigAdapter()
	dictionaries = domain.NewDictionaryStore(fsAdapter)
	orchestrator = domain.NewOrchestrator(fsAdapter, dictionaries)
	fixer = domain.NewFixer(fsAdapter)
	workflow = domain.NewWorkflow(
		reportStore,
		ui,
		orchestrator,
		dictionaries,
		fixer,
	)
}

const rootLongDescription = `Antiseptic checks the spelling of every text file in a repository.

Files are split into words (camelCase, snake_case and kebab-case identifiers
are split into their parts; URLs, e-mail addresses, hashes and numeric
literals are ignored) and every word is looked up in the base dictionary of
the resource directory plus any supplementary dictionaries.

Exit codes:
  0  no spelling problems
  1  unknown words or unreadable files were found
  2  fatal error (bad path, missing dictionary, invalid configuration)`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "antiseptic [paths...]",
		Short:             "Spell checker for source repositories",
		Long:              rootLongDescription,
		Args:              cobra.ArbitraryArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), parsePaths(args))
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)
	configureCheckFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVarP(&resourcesFlag, resourcesFlagName, "r", viper.GetString(resourcesFlagName),
		"directory holding assets/dictionaries (default: $"+resourcesEnv+" or the executable's directory)")
	bindFlagToConfig(flags.Lookup(resourcesFlagName), resourcesFlagName)

	flags.StringVar(&languageFlag, languageFlagName, viper.GetString(languageFlagName), "base dictionary language")
	bindFlagToConfig(flags.Lookup(languageFlagName), languageFlagName)

	flags.StringArrayVar(&dictionariesFlag, dictionariesFlagName, viper.GetStringSlice(dictionariesFlagName),
		"supplementary dictionary file (can be repeated)")
	bindFlagToConfig(flags.Lookup(dictionariesFlagName), dictionariesFlagName)

	flags.StringArrayVar(&allowedWordsFlag, allowedWordsFlagName, viper.GetStringSlice(allowedWordsFlagName),
		"word to accept in addition to the dictionaries (can be repeated)")
	bindFlagToConfig(flags.Lookup(allowedWordsFlagName), allowedWordsFlagName)

	flags.BoolVar(&noSuggestFlag, noSuggestFlagName, viper.GetBool(noSuggestFlagName), "do not suggest corrections")
	bindFlagToConfig(flags.Lookup(noSuggestFlagName), noSuggestFlagName)

	flags.StringVarP(&formatFlag, formatFlagName, "f", viper.GetString(formatFlagName), "report format: text or yaml")
	bindFlagToConfig(flags.Lookup(formatFlagName), formatFlagName)

	flags.BoolVarP(&quietFlag, quietFlagName, "q", viper.GetBool(quietFlagName), "do not print warnings and the summary")
	bindFlagToConfig(flags.Lookup(quietFlagName), quietFlagName)

	flags.BoolVar(&noPagerFlag, noPagerFlagName, viper.GetBool(noPagerFlagName), "never page long output")
	bindFlagToConfig(flags.Lookup(noPagerFlagName), noPagerFlagName)

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level")
	flags.StringVar(&logFileFlag, logFileFlagName, "", "log file (default "+defaultLogFilename+")")
}

func configureCheckFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.StringArrayVarP(&excludeFlag, excludeFlagName, "x", viper.GetStringSlice(excludeFlagName),
		"exclude paths matching a glob (can be repeated)")
	bindFlagToConfig(flags.Lookup(excludeFlagName), excludeFlagName)

	flags.StringVar(&hiddenMarkerFlag, hiddenMarkerFlagName, viper.GetString(hiddenMarkerFlagName),
		"name prefix of skipped hidden entries (empty disables)")
	bindFlagToConfig(flags.Lookup(hiddenMarkerFlagName), hiddenMarkerFlagName)

	flags.IntVar(&sniffSizeFlag, sniffSizeFlagName, viper.GetInt(sniffSizeFlagName), "bytes inspected to detect binary files")
	bindFlagToConfig(flags.Lookup(sniffSizeFlagName), sniffSizeFlagName)

	flags.IntVar(&minLengthFlag, minLengthFlagName, viper.GetInt(minLengthFlagName), "shortest word that is checked")
	bindFlagToConfig(flags.Lookup(minLengthFlagName), minLengthFlagName)

	flags.BoolVar(&checkAcronymsFlag, checkAcronymsFlagName, viper.GetBool(checkAcronymsFlagName), "check all-uppercase words")
	bindFlagToConfig(flags.Lookup(checkAcronymsFlagName), checkAcronymsFlagName)

	flags.IntVarP(&parallelFlag, parallelFlagName, "p", viper.GetInt(parallelFlagName), "number of parallel checkers (0: one per CPU)")
	bindFlagToConfig(flags.Lookup(parallelFlagName), parallelFlagName)

	flags.BoolVar(&diffFlag, diffFlagName, false, "preview suggested corrections as a unified diff")
	flags.StringVar(&saveReportFlag, saveReportFlagName, "", "save the result as a YAML report")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// setup loads the project configuration and the logger before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	if _, err := loadProjectConfig(configFolderPath); err != nil {
		return &ExitError{Code: m.ExitFatal, Err: err}
	}

	configureLogger(logFileFlag, verboseFlag)

	return nil
}

func runCheck(ctx context.Context, paths []m.Path) error {
	dictArgs, err := dictionaryArgs()
	if err != nil {
		return &ExitError{Code: m.ExitFatal, Err: err}
	}

	format, err := reportFormat()
	if err != nil {
		return &ExitError{Code: m.ExitFatal, Err: err}
	}

	code, err := workflow.Check(ctx, domain.CheckArgs{
		RunArgs: domain.RunArgs{
			Paths:         paths,
			ResourceDir:   dictArgs.ResourceDir,
			Language:      dictArgs.Language,
			Dictionaries:  dictArgs.Supplements,
			AllowedWords:  dictArgs.AllowedWords,
			Exclude:       viper.GetStringSlice(excludeFlagName),
			HiddenMarker:  viper.GetString(hiddenMarkerFlagName),
			SniffSize:     viper.GetInt(sniffSizeFlagName),
			MinLength:     viper.GetInt(minLengthFlagName),
			CheckAcronyms: viper.GetBool(checkAcronymsFlagName),
			Suggest:       !viper.GetBool(noSuggestFlagName),
			Threads:       viper.GetInt(parallelFlagName),
		},
		Format:     format,
		Diff:       diffFlag,
		ReportPath: m.Path(saveReportFlag),
		Pager:      !viper.GetBool(noPagerFlagName),
		Quiet:      viper.GetBool(quietFlagName),
	})

	return exitWith(code, err)
}

// exitWith turns a workflow outcome into the error returned from RunE.
func exitWith(code int, err error) error {
	if err != nil {
		return &ExitError{Code: m.ExitFatal, Err: err}
	}

	if code != m.ExitClean {
		return &ExitError{Code: code}
	}

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, rootCmd, os.Stderr)

	stop()
	os.Exit(code)
}

// execute runs cmd and maps its error to a process exit code.
func execute(ctx context.Context, cmd *cobra.Command, stderr io.Writer) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return m.ExitClean
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			_, _ = fmt.Fprintln(stderr, "Error:", exitErr.Err)
		}

		return exitErr.Code
	}

	_, _ = fmt.Fprintln(stderr, "Error:", err)

	return m.ExitFatal
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
