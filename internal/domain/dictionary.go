package domain

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"antiseptic.dev/pkg/antiseptic/internal/adapter"
	"antiseptic.dev/pkg/antiseptic/internal/assets"
	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

// DefaultLanguage is the base dictionary used when none is configured.
const DefaultLanguage = "en"

// caseSensitiveDirective marks a word list whose entries must match exactly.
const caseSensitiveDirective = "antiseptic: case-sensitive"

// WordList is one parsed dictionary file.
type WordList struct {
	Name          string
	CaseSensitive bool
	Words         []string
}

// ParseWordList reads a newline-delimited list of words. Blank lines and lines
// starting with # are ignored; a "# antiseptic: case-sensitive" comment before
// the first word marks the list case-sensitive.
func ParseWordList(name string, r io.Reader) (WordList, error) {
	list := WordList{Name: name}
	reader := bufio.NewReader(r)

	for lineNo := 1; ; lineNo++ {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			if !utf8.ValidString(line) {
				return WordList{}, fmt.Errorf("line %d: %w", lineNo, ErrInvalidEncoding)
			}

			list.addLine(line, lineNo == 1)
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return list, nil
			}

			return WordList{}, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
}

func (l *WordList) addLine(line string, first bool) {
	if first {
		line = strings.TrimPrefix(line, "\ufeff")
	}

	word := strings.TrimSpace(line)
	if word == "" {
		return
	}

	if comment, ok := strings.CutPrefix(word, "#"); ok {
		if len(l.Words) == 0 && strings.EqualFold(strings.TrimSpace(comment), caseSensitiveDirective) {
			l.CaseSensitive = true
		}

		return
	}

	l.Words = append(l.Words, norm.NFC.String(word))
}

// DictionarySet is the union of every loaded word list. It is read-only once
// built and safe for concurrent lookups.
type DictionarySet struct {
	folded map[string]struct{}
	exact  map[string]struct{}
	byLen  map[int][]string
	lists  []string
}

// NewDictionarySet indexes the given lists. Later lists only add words.
func NewDictionarySet(lists ...WordList) *DictionarySet {
	d := &DictionarySet{
		folded: map[string]struct{}{},
		exact:  map[string]struct{}{},
		byLen:  map[int][]string{},
	}

	seen := map[string]struct{}{}

	for _, list := range lists {
		d.lists = append(d.lists, list.Name)

		for _, word := range list.Words {
			entry := word
			if list.CaseSensitive {
				d.exact[entry] = struct{}{}
			} else {
				entry = strings.ToLower(word)
				d.folded[entry] = struct{}{}
			}

			if _, dup := seen[entry]; dup {
				continue
			}

			seen[entry] = struct{}{}
			n := utf8.RuneCountInString(entry)
			d.byLen[n] = append(d.byLen[n], entry)
		}
	}

	for _, words := range d.byLen {
		slices.Sort(words)
	}

	return d
}

// Contains reports whether word is spelled correctly according to any loaded
// list. Case-insensitive lists match any casing; case-sensitive lists match
// exactly. A trailing possessive 's, with either apostrophe, is ignored.
func (d *DictionarySet) Contains(word string) bool {
	word = norm.NFC.String(word)
	if d.contains(word) {
		return true
	}

	for _, suffix := range possessiveSuffixes {
		if len(word) > len(suffix) && strings.EqualFold(word[len(word)-len(suffix):], suffix) {
			return d.contains(word[:len(word)-len(suffix)])
		}
	}

	return false
}

// possessiveSuffixes are stripped before a second lookup. The typographic
// apostrophe is kept between letters by the tokenizer like the ASCII one.
var possessiveSuffixes = []string{"'s", "\u2019s"}

func (d *DictionarySet) contains(word string) bool {
	if _, ok := d.exact[word]; ok {
		return true
	}

	_, ok := d.folded[strings.ToLower(word)]

	return ok
}

// Len returns the number of distinct entries.
func (d *DictionarySet) Len() int {
	n := 0
	for _, words := range d.byLen {
		n += len(words)
	}

	return n
}

// Lists returns the names of the loaded lists in load order.
func (d *DictionarySet) Lists() []string {
	return slices.Clone(d.lists)
}

// wordsOfLength returns the sorted entries with exactly n runes.
func (d *DictionarySet) wordsOfLength(n int) []string {
	return d.byLen[n]
}

// DictionaryArgs selects the word lists to load.
type DictionaryArgs struct {
	// ResourceDir holds assets/dictionaries/<language>.txt.
	ResourceDir m.Path
	Language    string
	// Supplements are additional list files. Failing ones only produce warnings.
	Supplements []m.Path
	// AllowedWords are inline additions from the project configuration.
	AllowedWords []string
	// SkipBuiltin leaves out the embedded code vocabulary.
	SkipBuiltin bool
}

// DictionaryStore loads the DictionarySet for a run.
type DictionaryStore interface {
	// Load returns the set, the warnings for supplementary lists that could not
	// be loaded, and a *DictionaryLoadError when the base dictionary is unusable.
	Load(ctx context.Context, args DictionaryArgs) (*DictionarySet, []error, error)
}

type dictionaryStore struct {
	adapter.SourceFSAdapter
}

// NewDictionaryStore creates a DictionaryStore reading lists through fsAdapter.
func NewDictionaryStore(fsAdapter adapter.SourceFSAdapter) DictionaryStore {
	return &dictionaryStore{SourceFSAdapter: fsAdapter}
}

// BaseDictionaryPath returns where the base dictionary for language lives.
func BaseDictionaryPath(fsAdapter adapter.SourceFSAdapter, resourceDir m.Path, language string) m.Path {
	if language == "" {
		language = DefaultLanguage
	}

	return fsAdapter.JoinPath(string(resourceDir), "assets", "dictionaries", language+".txt")
}

func (s *dictionaryStore) Load(ctx context.Context, args DictionaryArgs) (*DictionarySet, []error, error) {
	basePath := BaseDictionaryPath(s.SourceFSAdapter, args.ResourceDir, args.Language)

	base, err := s.loadFile(basePath)
	if err != nil {
		loggerFrom(ctx).Error("Failed to load base dictionary", "path", basePath, "error", err)
		return nil, nil, &DictionaryLoadError{Path: basePath, Err: err}
	}

	lists := []WordList{base}

	var warnings []error

	if !args.SkipBuiltin {
		builtin, err := loadBuiltin()
		if err != nil {
			warnings = append(warnings, err)
		} else {
			lists = append(lists, builtin)
		}
	}

	for _, path := range args.Supplements {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		list, err := s.loadFile(path)
		if err != nil {
			loggerFrom(ctx).Warn("Skipping supplementary dictionary", "path", path, "error", err)
			warnings = append(warnings, fmt.Errorf("supplementary dictionary %s: %w", path, err))

			continue
		}

		lists = append(lists, list)
	}

	if len(args.AllowedWords) > 0 {
		lists = append(lists, allowedWordsList(args.AllowedWords))
	}

	dict := NewDictionarySet(lists...)
	loggerFrom(ctx).Debug("Loaded dictionaries", "lists", dict.Lists(), "entries", dict.Len())

	return dict, warnings, nil
}

func (s *dictionaryStore) loadFile(path m.Path) (WordList, error) {
	f, err := s.Open(path)
	if err != nil {
		return WordList{}, err
	}

	defer func() {
		_ = f.Close()
	}()

	return ParseWordList(string(path), f)
}

func loadBuiltin() (WordList, error) {
	f, err := assets.Dictionaries.Open(assets.CodeVocabularyPath)
	if err != nil {
		return WordList{}, fmt.Errorf("builtin dictionary: %w", err)
	}

	defer func() {
		_ = f.Close()
	}()

	return ParseWordList("builtin:"+assets.CodeVocabularyPath, f)
}

func allowedWordsList(words []string) WordList {
	list := WordList{Name: "config:allowed-words"}

	for _, word := range words {
		word = strings.TrimSpace(word)
		if word != "" {
			list.Words = append(list.Words, norm.NFC.String(word))
		}
	}

	return list
}
