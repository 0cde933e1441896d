package stacktrace

import "regexp"

// Filter decides whether a frame takes part in a stack hash.
type Filter interface {
	Accept(frame *Frame) bool
}

// FilterFunc adapts a function to the Filter interface.
type FilterFunc func(frame *Frame) bool

func (f FilterFunc) Accept(frame *Frame) bool {
	return f(frame)
}

// Any returns a Filter that accepts every frame.
func Any() Filter {
	return FilterFunc(func(*Frame) bool { return true })
}

// WithSourceInfo returns a Filter that accepts frames with a file name and a
// non-negative line number.
func WithSourceInfo() Filter {
	return FilterFunc(func(frame *Frame) bool {
		return frame.File != "" && frame.Line >= 0
	})
}

// ByPattern returns a Filter that rejects frames whose "class.method" contains
// a match of any of the patterns.
func ByPattern(excludes ...*regexp.Regexp) Filter {
	return NewFilterBuilder().ByPattern(excludes...).Build()
}

// matchesAny reports whether the class and method of the frame contain a match
// of any of the patterns.
func matchesAny(patterns []*regexp.Regexp, frame *Frame) bool {
	if len(patterns) == 0 {
		return false
	}
	text := frame.ClassAndMethod()
	for _, pattern := range patterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}
