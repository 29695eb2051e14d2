package domain

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gobwas/glob"
	"github.com/h2non/filetype"

	"antiseptic.dev/pkg/antiseptic/internal/adapter"
	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

const (
	// DefaultHiddenMarker is the name prefix of hidden entries.
	DefaultHiddenMarker = "."
	// DefaultSniffSize is how many leading bytes the binary heuristic inspects.
	DefaultSniffSize = 8000
)

// DefaultExcludes are the exclude patterns used when none are configured.
var DefaultExcludes = []string{"vendor", "node_modules"}

// WalkerOptions configure which entries the walker selects.
type WalkerOptions struct {
	// Exclude holds glob patterns matched against the walked path, the path
	// relative to its root and the base name. Matching directories are pruned.
	Exclude []string
	// HiddenMarker is the name prefix of skipped entries. Empty disables it.
	HiddenMarker string
	// SniffSize is the binary sample size. Zero selects DefaultSniffSize.
	SniffSize int
}

// Walker expands root paths into the files to check.
type Walker interface {
	// Walk validates every root before producing anything and returns an
	// *InvalidPathError for the first root that does not exist. Targets are
	// produced depth-first in lexical order; the channel closes when all roots
	// are walked or ctx is done.
	Walk(ctx context.Context, roots []m.Path) (<-chan m.ScanTarget, error)
}

type walker struct {
	adapter.SourceFSAdapter
	exclude   []glob.Glob
	hidden    string
	sniffSize int
}

// NewWalker compiles the exclude patterns and returns a Walker.
func NewWalker(fsAdapter adapter.SourceFSAdapter, opts WalkerOptions) (Walker, error) {
	w := &walker{
		SourceFSAdapter: fsAdapter,
		hidden:          opts.HiddenMarker,
		sniffSize:       opts.SniffSize,
	}

	if w.sniffSize <= 0 {
		w.sniffSize = DefaultSniffSize
	}

	for _, pattern := range opts.Exclude {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		w.exclude = append(w.exclude, g)
	}

	return w, nil
}

// walkRoot is a validated root. path is the name reported to the user and
// real is the same location with symbolic links evaluated.
type walkRoot struct {
	path m.Path
	real m.Path
	dir  bool
}

func (w *walker) Walk(ctx context.Context, roots []m.Path) (<-chan m.ScanTarget, error) {
	resolved := make([]walkRoot, 0, len(roots))

	for _, root := range roots {
		info, err := w.FileInfo(root)
		if err != nil {
			return nil, &InvalidPathError{Path: root, Err: err}
		}

		realRoot, err := w.Resolve(root)
		if err != nil {
			return nil, &InvalidPathError{Path: root, Err: err}
		}

		resolved = append(resolved, walkRoot{path: root, real: realRoot, dir: info.IsDir()})
	}

	targets := make(chan m.ScanTarget, len(resolved)+1)

	go func() {
		defer close(targets)

		seen := map[m.Path]struct{}{}
		// Duplicates are detected on resolved paths so a root and a link to it
		// yield each file once.
		emit := func(target m.ScanTarget, key m.Path) bool {
			if abs, err := w.Abs(key); err == nil {
				if _, dup := seen[abs]; dup {
					return true
				}

				seen[abs] = struct{}{}
			}

			select {
			case <-ctx.Done():
				return false
			case targets <- target:
				return true
			}
		}

		for _, root := range resolved {
			if ctx.Err() != nil {
				return
			}

			if !root.dir {
				if !w.excluded(root.path, root.path) {
					emit(w.classifyRoot(root.path), root.real)
				}

				continue
			}

			if err := w.walkDir(ctx, root, emit); err != nil {
				loggerFrom(ctx).Debug("Walk stopped", "root", root.path, "error", err)
				return
			}
		}
	}()

	return targets, nil
}

// walkDir walks the resolved root so a symlinked root is descended, and
// reports every entry under the name the user gave.
func (w *walker) walkDir(ctx context.Context, root walkRoot, emit func(m.ScanTarget, m.Path) bool) error {
	return w.SourceFSAdapter.Walk(root.real, func(realPath string, entry fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel := m.Path(".")
		if r, relErr := w.RelPath(root.real, m.Path(realPath)); relErr == nil {
			rel = r
		}

		path := w.JoinPath(string(root.path), string(rel))

		if err != nil {
			loggerFrom(ctx).Warn("Cannot walk path", "path", path, "error", err)

			if !emit(m.ScanTarget{Path: path, Kind: m.KindSkip, Err: err}, m.Path(realPath)) {
				return ctx.Err()
			}

			return nil
		}

		isRoot := realPath == string(root.real)

		if (!isRoot && w.isHidden(entry.Name())) || w.excluded(path, rel) {
			if entry.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if entry.IsDir() {
			return nil
		}

		target, ok := w.classifyEntry(path, entry)
		if !ok {
			return nil
		}

		if !emit(target, m.Path(realPath)) {
			return ctx.Err()
		}

		return nil
	})
}

func (w *walker) isHidden(name string) bool {
	return w.hidden != "" && strings.HasPrefix(name, w.hidden)
}

func (w *walker) excluded(path, rel m.Path) bool {
	if len(w.exclude) == 0 {
		return false
	}

	candidates := []string{
		filepath.ToSlash(string(path)),
		filepath.ToSlash(string(rel)),
		filepath.Base(string(path)),
	}

	for _, g := range w.exclude {
		for _, candidate := range candidates {
			if g.Match(candidate) {
				return true
			}
		}
	}

	return false
}

func (w *walker) classifyRoot(path m.Path) m.ScanTarget {
	info, err := w.FileInfo(path)
	if err != nil || !info.Mode().IsRegular() {
		return m.ScanTarget{Path: path, Kind: m.KindSkip}
	}

	return m.ScanTarget{Path: path, Kind: w.sniff(path)}
}

// classifyEntry returns false for entries that are dropped without being
// counted, which are symlinks to directories.
func (w *walker) classifyEntry(path m.Path, entry fs.DirEntry) (m.ScanTarget, bool) {
	mode := entry.Type()

	if mode&fs.ModeSymlink != 0 {
		info, err := w.FileInfo(path)
		if err != nil {
			return m.ScanTarget{Path: path, Kind: m.KindSkip}, true
		}

		if info.IsDir() {
			return m.ScanTarget{}, false
		}

		mode = info.Mode().Type()
	}

	if !mode.IsRegular() {
		return m.ScanTarget{Path: path, Kind: m.KindSkip}, true
	}

	return m.ScanTarget{Path: path, Kind: w.sniff(path)}, true
}

// sniff classifies a file from its leading bytes. Read failures fall back to
// text so the checker reports the file as unreadable.
func (w *walker) sniff(path m.Path) m.ContentKind {
	head, err := w.ReadHead(path, w.sniffSize)
	if err != nil {
		return m.KindText
	}

	if IsBinary(head, len(head) == w.sniffSize) {
		return m.KindBinary
	}

	return m.KindText
}

// IsBinary reports whether a content sample looks binary: it holds a NUL byte,
// starts with a known binary signature or is not valid UTF-8. When truncated
// is set, an incomplete rune at the end of the sample is ignored.
func IsBinary(head []byte, truncated bool) bool {
	if bytes.IndexByte(head, 0) >= 0 {
		return true
	}

	if kind, err := filetype.Match(head); err == nil && kind != filetype.Unknown {
		return true
	}

	if truncated {
		for i := 0; i < utf8.UTFMax-1 && len(head) > 0 && !utf8.Valid(head); i++ {
			head = head[:len(head)-1]
		}
	}

	return !utf8.Valid(head)
}
