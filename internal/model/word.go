package model

// WordVerdict is the outcome of looking up a single word.
type WordVerdict struct {
	Word       string
	Known      bool
	Suggestion string
}
