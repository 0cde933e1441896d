package log

import (
	"fmt"
	"path"
	"reflect"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/thanhminhmr/go-errtrace/stacktrace"
)

// Func renders the function v the way a stack trace frame is rendered, such as
// "example.com/app/http.(*httpServer).log(server.go:112)".
func Func(v any) fmt.Stringer {
	return funcName{value: v}
}

// Funcs renders every function of v as Func does.
func Funcs[S ~[]E, E any](v S) zerolog.LogArrayMarshaler {
	return funcNames[S, E]{values: v}
}

type funcName struct {
	value any
}

func (f funcName) frame() (stacktrace.Frame, bool) {
	if f.value == nil {
		return stacktrace.Frame{}, false
	}
	value := reflect.ValueOf(f.value)
	if value.Kind() != reflect.Func {
		return stacktrace.Frame{}, false
	}
	function := runtime.FuncForPC(value.Pointer())
	if function == nil {
		return stacktrace.Frame{}, false
	}
	file, line := function.FileLine(function.Entry())
	class, method := stacktrace.SplitFunction(function.Name())
	return stacktrace.Frame{Class: class, Method: method, File: path.Base(file), Line: line}, true
}

func (f funcName) String() string {
	if f.value == nil {
		return "<nil>"
	}
	frame, ok := f.frame()
	if !ok {
		return "<unknown>"
	}
	return fmt.Sprintf("%s(%s:%d)", frame.ClassAndMethod(), frame.File, frame.Line)
}

type funcNames[S ~[]E, E any] struct {
	values S
}

func (f funcNames[S, E]) MarshalZerologArray(array *zerolog.Array) {
	for _, value := range f.values {
		array.Str(funcName{value: value}.String())
	}
}
