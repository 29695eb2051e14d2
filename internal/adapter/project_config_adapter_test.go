package adapter

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

func TestLocalProjectConfigAdapter_Find(t *testing.T) {
	t.Run("finds config in an ancestor directory", func(t *testing.T) {
		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, ConfigFileName), "exclude = [\"*.lock\"]\nallowed-words = [\"kubectl\"]\nmin-length = 3\n")

		nested := filepath.Join(root, "a", "b")
		require.NoError(t, os.MkdirAll(nested, 0o755))

		cfg, err := NewLocalProjectConfigAdapter().Find(m.Path(nested))
		require.NoError(t, err)

		assert.Equal(t, m.Path(filepath.Join(root, ConfigFileName)), cfg.Path)
		assert.Equal(t, m.Path(root), cfg.Dir)
		assert.Equal(t, []any{"*.lock"}, cfg.Settings["exclude"])
		assert.Equal(t, []any{"kubectl"}, cfg.Settings["allowed-words"])
		assert.EqualValues(t, 3, cfg.Settings["min-length"])
	})

	t.Run("hidden config wins over visible config and pyproject", func(t *testing.T) {
		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, HiddenConfigFileName), "language = \"hidden\"\n")
		writeTestFile(t, filepath.Join(root, ConfigFileName), "language = \"visible\"\n")
		writeTestFile(t, filepath.Join(root, PyprojectFileName), "[tool.antiseptic]\nlanguage = \"pyproject\"\n")

		cfg, err := NewLocalProjectConfigAdapter().Find(m.Path(root))
		require.NoError(t, err)
		assert.Equal(t, "hidden", cfg.Settings["language"])
	})

	t.Run("closest directory wins", func(t *testing.T) {
		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, HiddenConfigFileName), "language = \"outer\"\n")

		inner := filepath.Join(root, "inner")
		mustMkdir(t, inner)
		writeTestFile(t, filepath.Join(inner, PyprojectFileName), "[tool.antiseptic]\nlanguage = \"inner\"\n")

		cfg, err := NewLocalProjectConfigAdapter().Find(m.Path(inner))
		require.NoError(t, err)
		assert.Equal(t, "inner", cfg.Settings["language"])
	})

	t.Run("pyproject without tool table is skipped", func(t *testing.T) {
		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, ConfigFileName), "language = \"outer\"\n")

		inner := filepath.Join(root, "inner")
		mustMkdir(t, inner)
		writeTestFile(t, filepath.Join(inner, PyprojectFileName), "[tool.black]\nline-length = 100\n")

		cfg, err := NewLocalProjectConfigAdapter().Find(m.Path(inner))
		require.NoError(t, err)
		assert.Equal(t, "outer", cfg.Settings["language"])
	})

	t.Run("malformed config is a ConfigError", func(t *testing.T) {
		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, HiddenConfigFileName), "exclude = [\n")

		_, err := NewLocalProjectConfigAdapter().Find(m.Path(root))
		require.Error(t, err)

		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, m.Path(filepath.Join(root, HiddenConfigFileName)), cfgErr.Path)
	})
}

func TestLocalProjectConfigAdapter_LogsToLogger(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, PyprojectFileName), "[tool.antiseptic\n")

	var logs bytes.Buffer

	configs := &LocalProjectConfigAdapter{Logger: slog.New(slog.NewTextHandler(&logs, nil))}

	// The search continues above root, so only the diagnostic is asserted.
	_, _ = configs.Find(m.Path(root))

	assert.Contains(t, logs.String(), "unparseable pyproject.toml")
}
