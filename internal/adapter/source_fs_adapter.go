// Package adapter contains infrastructure adapters for the antiseptic CLI.
package adapter

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning user repositories. It hides direct `os` access so the
// walker and checker can be tested against fixtures.
//
//nolint:interfacebloat // A richer interface keeps domain logic decoupled from os/fs.
type SourceFSAdapter interface {
	// Walk traverses the tree rooted at root in lexical order, calling fn for
	// every entry including root itself.
	Walk(root m.Path, fn FilepathWalkFunc) error

	// Open returns a reader over the file contents.
	Open(path m.Path) (io.ReadCloser, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// ReadHead returns at most n leading bytes of the file.
	ReadHead(path m.Path, n int) ([]byte, error)

	// FileInfo returns metadata for a path so the domain can check existence or
	// distinguish between files and directories.
	FileInfo(path m.Path) (os.FileInfo, error)

	// Abs returns a cleaned absolute form of path.
	Abs(path m.Path) (m.Path, error)

	// Resolve returns path with every symbolic link evaluated.
	Resolve(path m.Path) (m.Path, error)

	// RelPath returns the relative path from base to target.
	RelPath(base, target m.Path) (m.Path, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// FilepathWalkFunc mirrors the callback shape used by filepath.WalkDir. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path string, entry fs.DirEntry, err error) error

// LocalSourceFSAdapter is the concrete SourceFSAdapter backed by the local disk.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Walk iterates over the tree rooted at root.
func (a *LocalSourceFSAdapter) Walk(root m.Path, fn FilepathWalkFunc) error {
	return filepath.WalkDir(string(root), func(path string, entry fs.DirEntry, err error) error {
		return fn(path, entry, err)
	})
}

// Open opens the file for streaming reads.
func (a *LocalSourceFSAdapter) Open(path m.Path) (io.ReadCloser, error) {
	// #nosec G304 - scanning user-selected files is the purpose of the tool
	return os.Open(string(path))
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// ReadHead reads up to n bytes from the start of the file.
func (a *LocalSourceFSAdapter) ReadHead(path m.Path, n int) ([]byte, error) {
	f, err := a.Open(path)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, n)

	read, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return buf[:read], nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// Abs returns the absolute, cleaned path.
func (a *LocalSourceFSAdapter) Abs(path m.Path) (m.Path, error) {
	abs, err := filepath.Abs(string(path))
	if err != nil {
		return "", err
	}

	return m.Path(abs), nil
}

// Resolve evaluates symbolic links in path.
func (a *LocalSourceFSAdapter) Resolve(path m.Path) (m.Path, error) {
	resolved, err := filepath.EvalSymlinks(string(path))
	if err != nil {
		return "", err
	}

	return m.Path(resolved), nil
}

// RelPath returns the relative path from base to target.
func (a *LocalSourceFSAdapter) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
