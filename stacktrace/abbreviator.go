package stacktrace

import (
	"strings"
	"unicode/utf8"
)

// Abbreviator shortens a fully qualified class name.
type Abbreviator interface {
	Abbreviate(name string) string
}

// AbbreviatorFunc adapts a function to the Abbreviator interface.
type AbbreviatorFunc func(name string) string

func (f AbbreviatorFunc) Abbreviate(name string) string {
	return f(name)
}

// TargetLengthAbbreviator abbreviates class names toward its value, see
// Abbreviate.
type TargetLengthAbbreviator int

func (a TargetLengthAbbreviator) Abbreviate(name string) string {
	return Abbreviate(name, int(a))
}

// Abbreviate shortens name toward targetLength by reducing its leading package
// segments to their first character, left to right, until the name fits. The
// last segment is never shortened, so the result may still be longer than
// targetLength. Both '.' and '/' separate segments, and separators are kept:
//
//	Abbreviate("github.com/acme/billing/invoice.(*Service)", 30)
//	// g.c/a/b/invoice.(*Service)
//
// Unlimited returns name unchanged, a targetLength of zero or less reduces every
// package segment.
func Abbreviate(name string, targetLength int) string {
	if targetLength == Unlimited || len(name) <= targetLength {
		return name
	}
	pointer := strings.HasPrefix(name, "*")
	body := strings.TrimPrefix(name, "*")
	separators := separatorIndexes(body)
	if len(separators) == 0 {
		return name
	}
	excess := len(name) - targetLength
	var builder strings.Builder
	builder.Grow(len(name))
	if pointer {
		builder.WriteByte('*')
	}
	start := 0
	for _, separator := range separators {
		segment := body[start:separator]
		if _, size := utf8.DecodeRuneInString(segment); excess > 0 && size < len(segment) {
			builder.WriteString(segment[:size])
			excess -= len(segment) - size
		} else {
			builder.WriteString(segment)
		}
		builder.WriteByte(body[separator])
		start = separator + 1
	}
	builder.WriteString(body[start:])
	return builder.String()
}

// separatorIndexes returns the positions of the segment separators, ignoring
// those inside parentheses or brackets such as "(*T)" or "[...]".
func separatorIndexes(name string) []int {
	var indexes []int
	depth := 0
	for index := 0; index < len(name); index++ {
		switch name[index] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case '.', '/':
			if depth == 0 {
				indexes = append(indexes, index)
			}
		}
	}
	return indexes
}
