package model

// Token is a candidate word extracted from a file.
type Token struct {
	Text   string
	Start  int // byte offset of the first byte in the file
	End    int // byte offset one past the last byte
	Line   int // 1-based
	Column int // 1-based, in bytes
}
