package stacktrace

import "strings"

// Packaging identifies the artifact a frame's code was shipped in. For Go code
// this is the module path and the module version.
type Packaging struct {
	Artifact string
	Version  string
}

func (p *Packaging) String() string {
	return p.Artifact + ":" + p.Version
}

func samePackaging(a, b *Packaging) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Frame is a single stack frame. File is empty and Line is not positive when
// the information is unavailable.
type Frame struct {
	Class     string
	Method    string
	File      string
	Line      int
	Packaging *Packaging
}

// ClassAndMethod returns the text that exclusion and truncation patterns are
// matched against.
func (f *Frame) ClassAndMethod() string {
	if f.Class == "" {
		return f.Method
	}
	return f.Class + "." + f.Method
}

// equal ignores packaging, which is derived from the class.
func (f *Frame) equal(other *Frame) bool {
	return f.Class == other.Class &&
		f.Method == other.Method &&
		f.File == other.File &&
		f.Line == other.Line
}

// SplitFunction splits a fully qualified Go function name, as reported by
// runtime.Frame, into the declaring "class" and the method:
//
//	github.com/a/b.(*T).M   -> github.com/a/b.(*T), M
//	github.com/a/b.F.func1  -> github.com/a/b.F, func1
//	github.com/a/b.F        -> github.com/a/b, F
//
// Dots inside type parameter brackets are ignored.
func SplitFunction(function string) (class string, method string) {
	start := strings.LastIndexByte(function, '/') + 1
	depth := 0
	for index := len(function) - 1; index >= start; index-- {
		switch function[index] {
		case ']':
			depth++
		case '[':
			depth--
		case '.':
			if depth == 0 {
				return function[:index], function[index+1:]
			}
		}
	}
	return "", function
}
