// Package assets embeds the word lists shipped inside the binary.
package assets

import "embed"

// CodeVocabularyPath is the embedded list of programming terms that general
// language dictionaries tend to miss.
const CodeVocabularyPath = "dictionaries/code.txt"

// Dictionaries holds the embedded word lists.
//
//go:embed dictionaries/*.txt
var Dictionaries embed.FS
