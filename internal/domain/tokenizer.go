package domain

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"mvdan.cc/xurls/v2"

	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

const (
	// DefaultMinTokenLength is the shortest token that is checked.
	DefaultMinTokenLength = 2
	// DefaultMaxLineLength bounds the bytes held for a single line.
	DefaultMaxLineLength = 1 << 20
)

var (
	urlPattern    = xurls.Strict()
	emailPattern  = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9\-]+(?:\.[A-Za-z0-9\-]+)*\.[A-Za-z]{2,}`)
	hexLitPattern = regexp.MustCompile(`\b0[xX][0-9A-Fa-f_]+\b`)
	escapePattern = regexp.MustCompile(`\\(?:x[0-9A-Fa-f]{1,2}|u\{[0-9A-Fa-f]{1,6}\}|u[0-9A-Fa-f]{4}|U[0-9A-Fa-f]{8}|[0-7]{1,3}|[abefnrtv\\'"])`)
	hashPattern   = regexp.MustCompile(`\b[0-9A-Fa-f]{8,}\b`)
)

// TokenizerOptions configure which pieces of text are reported as tokens.
type TokenizerOptions struct {
	// MinLength drops tokens with fewer runes. Zero selects DefaultMinTokenLength.
	MinLength int
	// CheckAcronyms keeps all-uppercase tokens such as HTTP.
	CheckAcronyms bool
	// MaxLineLength is the longest line in bytes that is tokenized. Zero
	// selects DefaultMaxLineLength.
	MaxLineLength int
}

// Tokenizer turns file content into candidate words.
type Tokenizer interface {
	Tokenize(r io.Reader, kind m.ContentKind) iter.Seq2[m.Token, error]
}

type tokenizer struct {
	opts TokenizerOptions
}

// NewTokenizer creates a Tokenizer with the given options.
func NewTokenizer(opts TokenizerOptions) Tokenizer {
	if opts.MinLength <= 0 {
		opts.MinLength = DefaultMinTokenLength
	}

	if opts.MaxLineLength <= 0 {
		opts.MaxLineLength = DefaultMaxLineLength
	}

	return &tokenizer{opts: opts}
}

// Tokenize reads r line by line and yields tokens as they are found, so a
// caller can stop early without buffering the whole file. Only text content is
// tokenized. A line that is not valid UTF-8 yields an error wrapping
// ErrInvalidEncoding and ends the sequence; a line longer than MaxLineLength
// does the same with ErrLineTooLong.
func (t *tokenizer) Tokenize(r io.Reader, kind m.ContentKind) iter.Seq2[m.Token, error] {
	return func(yield func(m.Token, error) bool) {
		if kind != m.KindText {
			return
		}

		reader := bufio.NewReader(r)
		offset := 0

		for lineNo := 1; ; lineNo++ {
			line, err := readLine(reader, t.opts.MaxLineLength)
			if errors.Is(err, ErrLineTooLong) {
				yield(m.Token{}, fmt.Errorf("line %d: %w", lineNo, err))
				return
			}

			if len(line) > 0 {
				if !utf8.ValidString(line) {
					yield(m.Token{}, fmt.Errorf("line %d: %w", lineNo, ErrInvalidEncoding))
					return
				}

				for tok := range t.lineTokens(line) {
					tok.Line = lineNo
					tok.Column = tok.Start + 1
					tok.Start += offset
					tok.End += offset

					if !yield(tok, nil) {
						return
					}
				}

				offset += len(line)
			}

			if err != nil {
				if !errors.Is(err, io.EOF) {
					yield(m.Token{}, fmt.Errorf("line %d: %w", lineNo, err))
				}

				return
			}
		}
	}
}

// readLine reads through the next newline like ReadString, without holding
// more than limit bytes.
func readLine(reader *bufio.Reader, limit int) (string, error) {
	var line []byte

	for {
		chunk, err := reader.ReadSlice('\n')
		if len(line)+len(chunk) > limit {
			return "", ErrLineTooLong
		}

		line = append(line, chunk...)

		if !errors.Is(err, bufio.ErrBufferFull) {
			return string(line), err
		}
	}
}

// lineTokens yields tokens with offsets relative to the start of line.
func (t *tokenizer) lineTokens(line string) iter.Seq[m.Token] {
	return func(yield func(m.Token) bool) {
		masked := maskNonProse(line)

		for start, end := range chunks(masked) {
			chunk := masked[start:end]

			first, _ := utf8.DecodeRuneInString(chunk)
			if unicode.IsDigit(first) {
				continue
			}

			for ps, pe := range splitIdentifier(chunk) {
				text := chunk[ps:pe]
				if !t.keep(text) {
					continue
				}

				if !yield(m.Token{Text: text, Start: start + ps, End: start + pe}) {
					return
				}
			}
		}
	}
}

func (t *tokenizer) keep(text string) bool {
	if utf8.RuneCountInString(text) < t.opts.MinLength {
		return false
	}

	upper, lower := 0, 0

	for _, r := range text {
		switch {
		case unicode.IsUpper(r):
			upper++
		case unicode.IsLower(r):
			lower++
		}
	}

	// Scripts without case (CJK, Thai, ...) have no word boundaries to split on.
	if upper+lower == 0 {
		return false
	}

	if lower == 0 && !t.opts.CheckAcronyms {
		return false
	}

	return true
}

// maskNonProse blanks out spans that are not words so they cannot produce
// tokens. Byte offsets are preserved.
func maskNonProse(line string) string {
	buf := []byte(line)
	blank := func(loc []int) {
		for i := loc[0]; i < loc[1]; i++ {
			buf[i] = ' '
		}
	}

	for _, pattern := range []*regexp.Regexp{urlPattern, emailPattern, hexLitPattern, escapePattern} {
		for _, loc := range pattern.FindAllStringIndex(line, -1) {
			blank(loc)
		}
	}

	for _, loc := range hashPattern.FindAllStringIndex(line, -1) {
		if looksLikeHash(line[loc[0]:loc[1]]) {
			blank(loc)
		}
	}

	return string(buf)
}

func looksLikeHash(s string) bool {
	return strings.ContainsAny(s, "0123456789") && strings.ContainsAny(s, "abcdefABCDEF")
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’'
}

// chunks yields the byte ranges of runs of letters and digits. Apostrophes are
// part of a run only between two letters.
func chunks(s string) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		start := -1
		prev := rune(0)

		for i, r := range s {
			inWord := unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
			if !inWord && isApostrophe(r) && unicode.IsLetter(prev) {
				next, _ := utf8.DecodeRuneInString(s[i+utf8.RuneLen(r):])
				inWord = unicode.IsLetter(next)
			}

			switch {
			case inWord && start < 0:
				start = i
			case !inWord && start >= 0:
				if !yield(start, i) {
					return
				}

				start = -1
			}

			prev = r
		}

		if start >= 0 {
			yield(start, len(s))
		}
	}
}

// splitIdentifier yields the byte ranges of the words inside an identifier
// chunk. Digits separate words and case transitions start new ones:
// fooBar -> foo|Bar, HTTPServer -> HTTP|Server, utf8Decode -> utf|Decode.
func splitIdentifier(chunk string) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		runes := []rune(chunk)
		offsets := make([]int, len(runes)+1)

		pos := 0
		for i, r := range runes {
			offsets[i] = pos
			pos += utf8.RuneLen(r)
		}

		offsets[len(runes)] = pos

		start := -1

		for i, r := range runes {
			if unicode.IsDigit(r) {
				if start >= 0 {
					if !yield(offsets[start], offsets[i]) {
						return
					}

					start = -1
				}

				continue
			}

			if start >= 0 && caseBoundary(runes, i) {
				if !yield(offsets[start], offsets[i]) {
					return
				}

				start = i
			}

			if start < 0 {
				start = i
			}
		}

		if start >= 0 {
			yield(offsets[start], offsets[len(runes)])
		}
	}
}

func caseBoundary(runes []rune, i int) bool {
	prev, cur := runes[i-1], runes[i]
	if !unicode.IsUpper(cur) {
		return false
	}

	if unicode.IsLower(prev) {
		return true
	}

	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
