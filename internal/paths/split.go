package paths

import (
	"bytes"
	"iter"
)

// Component is a single slash-delimited token of a path.
type Component struct {
	Name string
	// Remaining is the number of bytes following the token,
	// not counting leading or trailing separators.
	// Zero means Name is the final component.
	Remaining int
}

type Token int

const (
	// TokenSkip is an empty token or ".".
	TokenSkip Token = iota
	// TokenParent is "..".
	TokenParent
	// TokenName is any other token.
	TokenName
)

func Classify(name string) Token {
	switch name {
	case "", ".":
		return TokenSkip
	case "..":
		return TokenParent
	}
	return TokenName
}

// SplitSeq lazily splits the NUL-terminated path held in b by '/'.
//
// Consecutive, leading and trailing separators yield empty components.
// b is scanned in place; the iterator must not outlive modifications to b.
func SplitSeq(b []byte) iter.Seq[Component] {
	return func(yield func(Component) bool) {
		if i := bytes.IndexByte(b, 0); i >= 0 {
			b = b[:i]
		}
		off := 0
		for {
			end := len(b)
			if i := bytes.IndexByte(b[off:], '/'); i >= 0 {
				end = off + i
			}
			c := Component{
				Name:      string(b[off:end]),
				Remaining: len(bytes.Trim(b[end:], "/")),
			}
			if !yield(c) {
				return
			}
			if end >= len(b) {
				return
			}
			off = end + 1
		}
	}
}
