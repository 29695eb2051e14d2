package model

import "fmt"

// FindingKind categorizes a reported issue.
type FindingKind int

const (
	// FindingUnknownWord reports a token missing from every loaded dictionary.
	FindingUnknownWord FindingKind = iota
	// FindingUnreadable reports a file that could not be opened, read or decoded.
	FindingUnreadable
	// FindingWarning reports a recoverable walk problem. It never fails a run.
	FindingWarning
)

var findingKindNames = map[FindingKind]string{
	FindingUnknownWord: "unknown-word",
	FindingUnreadable:  "file-unreadable",
	FindingWarning:     "warning",
}

func (k FindingKind) String() string {
	if name, ok := findingKindNames[k]; ok {
		return name
	}

	return "unknown"
}

// MarshalText implements encoding.TextMarshaler so reports stay readable.
func (k FindingKind) MarshalText() ([]byte, error) {
	name, ok := findingKindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown finding kind %d", int(k))
	}

	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *FindingKind) UnmarshalText(text []byte) error {
	for kind, name := range findingKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}

	return fmt.Errorf("unknown finding kind %q", string(text))
}

// Failing reports whether findings of this kind make a run fail.
func (k FindingKind) Failing() bool {
	return k == FindingUnknownWord || k == FindingUnreadable
}

// Finding is a single reported issue tied to a location.
// File-level findings use line and column 0.
type Finding struct {
	Path       Path        `yaml:"path"`
	Line       int         `yaml:"line"`
	Column     int         `yaml:"column"`
	Offset     int         `yaml:"offset"`
	Kind       FindingKind `yaml:"kind"`
	Word       string      `yaml:"word,omitempty"`
	Suggestion string      `yaml:"suggestion,omitempty"`
	Message    string      `yaml:"message,omitempty"`
}

// Text renders the human-readable message part of a finding.
func (f Finding) Text() string {
	switch f.Kind {
	case FindingUnknownWord:
		if f.Suggestion != "" {
			return fmt.Sprintf("unknown word %q (did you mean %q?)", f.Word, f.Suggestion)
		}

		return fmt.Sprintf("unknown word %q", f.Word)
	case FindingUnreadable:
		return "file unreadable: " + f.Message
	case FindingWarning:
		return "warning: " + f.Message
	}

	return f.Message
}

// String renders the finding as path:line:column: message.
func (f Finding) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", f.Path, f.Line, f.Column, f.Text())
}
