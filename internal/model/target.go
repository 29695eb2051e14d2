package model

// ContentKind classifies a file selected by the walker.
type ContentKind int

const (
	// KindText marks a file whose content is tokenized and checked.
	KindText ContentKind = iota
	// KindBinary marks a file recognized as binary and skipped silently.
	KindBinary
	// KindSkip marks an entry that is not checked (non-regular file, walk failure).
	KindSkip
)

func (k ContentKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBinary:
		return "binary"
	case KindSkip:
		return "skip"
	}

	return "unknown"
}

// ScanTarget is a resolved path together with its detected content kind.
// Err is only set on KindSkip targets that were produced for a walk failure.
type ScanTarget struct {
	Path Path
	Kind ContentKind
	Err  error
}
