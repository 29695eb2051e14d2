package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"antiseptic.dev/pkg/antiseptic/internal/adapter"
	"antiseptic.dev/pkg/antiseptic/internal/domain"
	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configFileName   = adapter.HiddenConfigFileName
	configFolderPath = "."

	resourcesFlagName     = "resources"
	languageFlagName      = "language"
	dictionariesFlagName  = "dictionaries"
	allowedWordsFlagName  = "allowed-words"
	excludeFlagName       = "exclude"
	hiddenMarkerFlagName  = "hidden-marker"
	sniffSizeFlagName     = "sniff-size"
	minLengthFlagName     = "min-length"
	checkAcronymsFlagName = "check-acronyms"
	noSuggestFlagName     = "no-suggest"
	parallelFlagName      = "parallel"
	formatFlagName        = "format"
	diffFlagName          = "diff"
	saveReportFlagName    = "save-report"
	quietFlagName         = "quiet"
	noPagerFlagName       = "no-pager"
	verboseFlagName       = "verbose"
	logFileFlagName       = "log-file"

	// resourcesEnv overrides the resource directory when neither a flag nor
	// the configuration sets one.
	resourcesEnv = "ANTISEPTIC_RESOURCES"

	defaultParallel = 0
	defaultFormat   = string(domain.FormatText)

	envPrefix = "ANTISEPTIC"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".antiseptic.log"
	defaultLogLevel      = "info"
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

// pathKeys hold paths that resolve against the directory of the
// configuration file that sets them.
var pathKeys = []string{dictionariesFlagName, resourcesFlagName}

var globalLogger *slog.Logger

func init() {
	initConfig()
}

func initConfig() {
	viper.SetConfigType("toml")
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	setConfigDefaults()
}

func setConfigDefaults() {
	viper.SetDefault(configVersionKey, currentConfigVersion)

	viper.SetDefault(resourcesFlagName, "")
	viper.SetDefault(languageFlagName, domain.DefaultLanguage)
	viper.SetDefault(dictionariesFlagName, []string{})
	viper.SetDefault(allowedWordsFlagName, []string{})
	viper.SetDefault(excludeFlagName, domain.DefaultExcludes)
	viper.SetDefault(hiddenMarkerFlagName, domain.DefaultHiddenMarker)
	viper.SetDefault(sniffSizeFlagName, domain.DefaultSniffSize)
	viper.SetDefault(minLengthFlagName, domain.DefaultMinTokenLength)
	viper.SetDefault(checkAcronymsFlagName, false)
	viper.SetDefault(noSuggestFlagName, false)
	viper.SetDefault(parallelFlagName, defaultParallel)
	viper.SetDefault(formatFlagName, defaultFormat)
	viper.SetDefault(quietFlagName, false)
	viper.SetDefault(noPagerFlagName, false)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)
}

// loadProjectConfig merges the nearest project configuration above start
// into viper. A missing configuration is not an error.
func loadProjectConfig(start m.Path) (m.Path, error) {
	cfg, err := configAdapter.Find(start)
	if errors.Is(err, adapter.ErrConfigNotFound) {
		return "", nil
	}

	if err != nil {
		return "", err
	}

	settings := resolveConfigPaths(cfg.Settings, string(cfg.Dir))
	if err := viper.MergeConfigMap(settings); err != nil {
		return "", &adapter.ConfigError{Path: cfg.Path, Err: err}
	}

	return cfg.Path, nil
}

// resolveConfigPaths returns a copy of settings where relative entries of
// pathKeys are joined to dir.
func resolveConfigPaths(settings map[string]any, dir string) map[string]any {
	resolved := make(map[string]any, len(settings))

	for key, value := range settings {
		resolved[key] = value
	}

	for _, key := range pathKeys {
		switch value := resolved[key].(type) {
		case string:
			resolved[key] = resolvePath(dir, value)
		case []any:
			paths := make([]any, 0, len(value))
			for _, item := range value {
				if s, ok := item.(string); ok {
					paths = append(paths, resolvePath(dir, s))
				} else {
					paths = append(paths, item)
				}
			}

			resolved[key] = paths
		}
	}

	return resolved
}

func resolvePath(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(dir, path)
}

// resourceDir returns the configured resource directory, then
// $ANTISEPTIC_RESOURCES, then the directory of the running executable.
func resourceDir() (m.Path, error) {
	if dir := strings.TrimSpace(viper.GetString(resourcesFlagName)); dir != "" {
		return m.Path(dir), nil
	}

	if dir := strings.TrimSpace(os.Getenv(resourcesEnv)); dir != "" {
		return m.Path(dir), nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate resource directory: %w", err)
	}

	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return m.Path(filepath.Dir(exe)), nil
}

// dictionaryArgs collects the dictionary selection shared by every command.
func dictionaryArgs() (domain.DictionaryArgs, error) {
	resources, err := resourceDir()
	if err != nil {
		return domain.DictionaryArgs{}, err
	}

	return domain.DictionaryArgs{
		ResourceDir:  resources,
		Language:     viper.GetString(languageFlagName),
		Supplements:  parsePaths(viper.GetStringSlice(dictionariesFlagName)),
		AllowedWords: viper.GetStringSlice(allowedWordsFlagName),
	}, nil
}

func reportFormat() (domain.ReportFormat, error) {
	return domain.ParseReportFormat(viper.GetString(formatFlagName))
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at the configured level; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose || viper.GetBool(logVerboseKey) {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
