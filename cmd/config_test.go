package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"antiseptic.dev/pkg/antiseptic/internal/adapter"
	adaptermocks "antiseptic.dev/pkg/antiseptic/internal/adapter/mocks"
	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, ".antiseptic.toml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "exclude", excludeFlagName)
	assert.Equal(t, "parallel", parallelFlagName)
	assert.Equal(t, "allowed-words", allowedWordsFlagName)
	assert.Equal(t, "ANTISEPTIC", envPrefix)
	assert.Equal(t, ".antiseptic.log", defaultLogFilename)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"chatty", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelInfo))
		})
	}
}

func TestLoadProjectConfig(t *testing.T) {
	dir := isolate(t)

	config := `exclude = ["dist"]
allowed-words = ["kubectl"]
dictionaries = ["words/project.txt", "/abs/extra.txt"]
min-length = 3

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, adapter.HiddenConfigFileName), []byte(config), 0o644))

	nested := filepath.Join(dir, "src", "pkg")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, err := loadProjectConfig(m.Path(nested))
	require.NoError(t, err)
	assert.Equal(t, m.Path(filepath.Join(dir, adapter.HiddenConfigFileName)), path)

	assert.Equal(t, []string{"dist"}, viper.GetStringSlice(excludeFlagName))
	assert.Equal(t, []string{"kubectl"}, viper.GetStringSlice(allowedWordsFlagName))
	assert.Equal(t, []string{filepath.Join(dir, "words", "project.txt"), "/abs/extra.txt"}, viper.GetStringSlice(dictionariesFlagName))
	assert.Equal(t, 3, viper.GetInt(minLengthFlagName))
	assert.Equal(t, "debug", viper.GetString(logLevelKey))
	assert.Equal(t, ".", viper.GetString(hiddenMarkerFlagName), "unset keys keep their defaults")
}

func TestLoadProjectConfig_Pyproject(t *testing.T) {
	dir := isolate(t)

	pyproject := `[project]
name = "demo"

[tool.antiseptic]
language = "de"
resources = "share"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, adapter.PyprojectFileName), []byte(pyproject), 0o644))

	_, err := loadProjectConfig(m.Path(dir))
	require.NoError(t, err)

	assert.Equal(t, "de", viper.GetString(languageFlagName))

	resources, err := resourceDir()
	require.NoError(t, err)
	assert.Equal(t, m.Path(filepath.Join(dir, "share")), resources)
}

func TestLoadProjectConfig_Missing(t *testing.T) {
	dir := isolate(t)

	path, err := loadProjectConfig(m.Path(dir))
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, "en", viper.GetString(languageFlagName))
}

func TestLoadProjectConfig_Malformed(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, adapter.ConfigFileName), []byte("exclude = [\n"), 0o644))

	_, err := loadProjectConfig(m.Path(dir))

	var cfgErr *adapter.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func useConfigAdapter(t *testing.T) *adaptermocks.MockProjectConfigAdapter {
	t.Helper()

	mockConfig := adaptermocks.NewMockProjectConfigAdapter(t)
	originalConfig := configAdapter
	configAdapter = mockConfig

	t.Cleanup(func() { configAdapter = originalConfig })

	return mockConfig
}

func TestLoadProjectConfig_ResolvesPaths(t *testing.T) {
	isolate(t)
	mockConfig := useConfigAdapter(t)

	mockConfig.On("Find", m.Path("repo")).Return(adapter.ProjectConfig{
		Path: "/srv/repo/antiseptic.toml",
		Dir:  "/srv/repo",
		Settings: map[string]any{
			dictionariesFlagName: []any{"words.txt", "/etc/words.txt"},
			resourcesFlagName:    "share",
			languageFlagName:     "de",
		},
	}, nil).Once()

	path, err := loadProjectConfig("repo")
	require.NoError(t, err)

	assert.Equal(t, m.Path("/srv/repo/antiseptic.toml"), path)
	assert.Equal(t, []string{"/srv/repo/words.txt", "/etc/words.txt"}, viper.GetStringSlice(dictionariesFlagName))
	assert.Equal(t, "/srv/repo/share", viper.GetString(resourcesFlagName))
	assert.Equal(t, "de", viper.GetString(languageFlagName))
}

func TestLoadProjectConfig_AdapterError(t *testing.T) {
	isolate(t)
	mockConfig := useConfigAdapter(t)

	findErr := &adapter.ConfigError{Path: "pyproject.toml", Err: os.ErrPermission}
	mockConfig.On("Find", m.Path("repo")).Return(adapter.ProjectConfig{}, findErr).Once()

	_, err := loadProjectConfig("repo")
	require.ErrorIs(t, err, os.ErrPermission)
}

func TestRootCmd_MalformedConfigIsFatal(t *testing.T) {
	dir := isolate(t)
	useWorkflow(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, adapter.ConfigFileName), []byte("= broken"), 0o644))

	cmd, _ := newTestCmd("-r", dir)

	assert.Equal(t, m.ExitFatal, execute(t.Context(), cmd, &bytesSink{}))
}

func TestResourceDir(t *testing.T) {
	isolate(t)

	t.Run("environment", func(t *testing.T) {
		t.Setenv(resourcesEnv, "/srv/antiseptic")

		dir, err := resourceDir()
		require.NoError(t, err)
		assert.Equal(t, m.Path("/srv/antiseptic"), dir)
	})

	t.Run("executable directory", func(t *testing.T) {
		t.Setenv(resourcesEnv, "")

		exe, err := os.Executable()
		require.NoError(t, err)

		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}

		dir, err := resourceDir()
		require.NoError(t, err)
		assert.Equal(t, m.Path(filepath.Dir(exe)), dir)
	})
}

func TestConfigureLogger(t *testing.T) {
	dir := isolate(t)
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	logPath := filepath.Join(dir, "run.log")
	configureLogger(logPath, true)

	require.NotNil(t, globalLogger)
	assert.True(t, globalLogger.Enabled(t.Context(), slog.LevelDebug))

	slog.Info("hello from the test")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the test")
}

type bytesSink struct{}

func (bytesSink) Write(p []byte) (int, error) { return len(p), nil }
