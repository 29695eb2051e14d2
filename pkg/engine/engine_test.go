package engine_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"antiseptic.dev/pkg/antiseptic/pkg/engine"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newResources(t *testing.T) string {
	t.Helper()

	resources := t.TempDir()
	writeFile(t, filepath.Join(resources, "assets", "dictionaries", "en.txt"), "hello\nworld\n")

	return resources
}

func run(t *testing.T, paths []string, resources string) (int, string, string) {
	t.Helper()

	t.Chdir(t.TempDir())

	var stdout, stderr bytes.Buffer

	code := engine.RunContext(context.Background(), paths, resources, engine.Options{Stdout: &stdout, Stderr: &stderr})

	return code, stdout.String(), stderr.String()
}

func TestRun_ReportsMisspelling(t *testing.T) {
	resources := newResources(t)
	notes := filepath.Join(t.TempDir(), "notes.txt")
	writeFile(t, notes, "hello wrold\n")

	code, stdout, _ := run(t, []string{notes}, resources)

	assert.Equal(t, engine.ExitFindings, code)
	assert.Equal(t, notes+":1:7: unknown word \"wrold\"\n", stdout)
}

func TestRun_CleanTree(t *testing.T) {
	resources := newResources(t)
	project := t.TempDir()
	writeFile(t, filepath.Join(project, "a.txt"), "Hello World\n")
	writeFile(t, filepath.Join(project, "blob.bin"), "\x00\x01wrold")

	code, stdout, _ := run(t, []string{project}, resources)

	assert.Equal(t, engine.ExitClean, code)
	assert.Empty(t, stdout)
}

func TestRun_DefaultsToWorkingDirectory(t *testing.T) {
	resources := newResources(t)
	project := t.TempDir()
	writeFile(t, filepath.Join(project, "a.txt"), "hello world\n")
	t.Chdir(project)

	assert.Equal(t, engine.ExitClean, engine.Run(nil, resources))
}

func TestRun_FatalErrors(t *testing.T) {
	t.Run("missing path", func(t *testing.T) {
		code, stdout, stderr := run(t, []string{"/does/not/exist"}, newResources(t))

		assert.Equal(t, engine.ExitFatal, code)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "/does/not/exist")
	})

	t.Run("missing dictionary", func(t *testing.T) {
		code, _, stderr := run(t, []string{t.TempDir()}, t.TempDir())

		assert.Equal(t, engine.ExitFatal, code)
		assert.Contains(t, stderr, "base dictionary")
	})
}

func TestRun_SymlinkedRoot(t *testing.T) {
	resources := newResources(t)
	project := t.TempDir()
	writeFile(t, filepath.Join(project, "a.txt"), "hello wrold\n")

	link := filepath.Join(t.TempDir(), "project")
	if err := os.Symlink(project, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	code, stdout, _ := run(t, []string{link}, resources)

	assert.Equal(t, engine.ExitFindings, code)
	assert.Equal(t, filepath.Join(link, "a.txt")+":1:7: unknown word \"wrold\"\n", stdout)
}

func TestRun_ProjectConfiguration(t *testing.T) {
	resources := newResources(t)
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ".antiseptic.toml"),
		"exclude = [\"skipme\"]\nallowed-words = [\"wrold\"]\ndictionaries = [\"words.txt\"]\n")
	writeFile(t, filepath.Join(project, "words.txt"), "antiseptic\n")
	writeFile(t, filepath.Join(project, "a.txt"), "hello wrold antiseptic\n")
	writeFile(t, filepath.Join(project, "skipme", "b.txt"), "zzzqx\n")
	t.Chdir(project)

	var stdout, stderr bytes.Buffer

	code := engine.RunContext(context.Background(), nil, resources, engine.Options{Stdout: &stdout, Stderr: &stderr})

	assert.Equal(t, engine.ExitClean, code)
	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRun_PyprojectConfiguration(t *testing.T) {
	resources := newResources(t)
	project := t.TempDir()
	writeFile(t, filepath.Join(project, "pyproject.toml"), "[tool.antiseptic]\nallowed-words = [\"wrold\"]\n")
	writeFile(t, filepath.Join(project, "src", "a.txt"), "hello wrold\n")
	t.Chdir(filepath.Join(project, "src"))

	var stdout bytes.Buffer

	code := engine.RunContext(context.Background(), nil, resources, engine.Options{Stdout: &stdout, Stderr: &bytes.Buffer{}})

	assert.Equal(t, engine.ExitClean, code)
	assert.Empty(t, stdout.String())
}

func TestRun_ExcludeOptionOverridesConfiguration(t *testing.T) {
	resources := newResources(t)
	project := t.TempDir()
	writeFile(t, filepath.Join(project, "antiseptic.toml"), "exclude = [\"skipme\"]\n")
	writeFile(t, filepath.Join(project, "skipme", "b.txt"), "zzzqx\n")
	t.Chdir(project)

	var stdout bytes.Buffer

	code := engine.RunContext(context.Background(), nil, resources, engine.Options{
		Stdout:  &stdout,
		Stderr:  &bytes.Buffer{},
		Exclude: []string{},
	})

	assert.Equal(t, engine.ExitFindings, code)
	assert.Contains(t, stdout.String(), "unknown word \"zzzqx\"")
}

func TestRun_MalformedConfigurationIsFatal(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{"syntax", "exclude = [\n"},
		{"wrong type", "allowed-words = \"wrold\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resources := newResources(t)
			project := t.TempDir()
			writeFile(t, filepath.Join(project, ".antiseptic.toml"), tt.config)
			writeFile(t, filepath.Join(project, "a.txt"), "hello\n")
			t.Chdir(project)

			var stdout, stderr bytes.Buffer

			code := engine.RunContext(context.Background(), nil, resources, engine.Options{Stdout: &stdout, Stderr: &stderr})

			assert.Equal(t, engine.ExitFatal, code)
			assert.Empty(t, stdout.String())
			assert.Contains(t, stderr.String(), ".antiseptic.toml")
		})
	}
}

func TestRun_Logging(t *testing.T) {
	resources := newResources(t)
	notes := filepath.Join(t.TempDir(), "notes.txt")
	writeFile(t, notes, "hello world\n")

	var fallback bytes.Buffer

	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&fallback, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	t.Run("discarded by default", func(t *testing.T) {
		code, _, stderr := run(t, []string{notes}, resources)

		assert.Equal(t, engine.ExitClean, code)
		assert.Empty(t, stderr)
		assert.Empty(t, fallback.String())
	})

	t.Run("sent to the given logger", func(t *testing.T) {
		var logs bytes.Buffer

		code := engine.RunContext(context.Background(), []string{notes}, resources, engine.Options{
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Logger: slog.New(slog.NewTextHandler(&logs, nil)),
		})

		assert.Equal(t, engine.ExitClean, code)
		assert.Contains(t, logs.String(), "Check finished")
		assert.Empty(t, fallback.String())
	})
}
