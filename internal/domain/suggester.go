package domain

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

const (
	// DefaultSuggestThreshold is the minimum Levenshtein similarity of a suggestion.
	DefaultSuggestThreshold = 0.6
	// suggestLengthDelta bounds how far candidate lengths may differ from the word.
	suggestLengthDelta = 2
	// suggestMinLength is the shortest word suggestions are computed for.
	suggestMinLength = 3

	similarityEpsilon = 1e-9
)

// Suggester proposes the closest dictionary word for a misspelling.
type Suggester interface {
	Suggest(word string) (string, bool)
}

type suggestion struct {
	word string
	ok   bool
}

type suggester struct {
	dict        *DictionarySet
	threshold   float64
	levenshtein *metrics.Levenshtein
	jaro        *metrics.JaroWinkler

	mu    sync.Mutex
	cache map[string]suggestion
}

// NewSuggester creates a Suggester over dict. A threshold of 0 selects
// DefaultSuggestThreshold.
func NewSuggester(dict *DictionarySet, threshold float64) Suggester {
	if threshold <= 0 {
		threshold = DefaultSuggestThreshold
	}

	lev := metrics.NewLevenshtein()
	lev.CaseSensitive = false

	jaro := metrics.NewJaroWinkler()
	jaro.CaseSensitive = false

	return &suggester{
		dict:        dict,
		threshold:   threshold,
		levenshtein: lev,
		jaro:        jaro,
		cache:       map[string]suggestion{},
	}
}

// Suggest returns the most similar dictionary entry. Candidates are ranked by
// Levenshtein similarity, then Jaro-Winkler similarity, then lexically, so the
// answer only depends on the word and the dictionary.
func (s *suggester) Suggest(word string) (string, bool) {
	key := strings.ToLower(word)

	s.mu.Lock()
	cached, hit := s.cache[key]
	s.mu.Unlock()

	if hit {
		return cached.word, cached.ok
	}

	best, ok := s.compute(key)

	s.mu.Lock()
	s.cache[key] = suggestion{word: best, ok: ok}
	s.mu.Unlock()

	return best, ok
}

func (s *suggester) compute(word string) (string, bool) {
	n := utf8.RuneCountInString(word)
	if n < suggestMinLength {
		return "", false
	}

	var (
		best              string
		bestLev, bestJaro float64
	)

	for length := max(1, n-suggestLengthDelta); length <= n+suggestLengthDelta; length++ {
		for _, candidate := range s.dict.wordsOfLength(length) {
			lev := strutil.Similarity(word, candidate, s.levenshtein)
			if lev+similarityEpsilon < s.threshold || lev < bestLev {
				continue
			}

			jaro := strutil.Similarity(word, candidate, s.jaro)

			if lev > bestLev || jaro > bestJaro || (jaro == bestJaro && candidate < best) {
				best, bestLev, bestJaro = candidate, lev, jaro
			}
		}
	}

	return best, best != ""
}
