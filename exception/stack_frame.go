package exception

import "runtime"

// StackFrame is a single call site, as resolved by runtime.CallersFrames.
type StackFrame struct {
	Function string
	File     string
	Line     int
}

// StackFrames is a call stack, innermost frame first.
type StackFrames []StackFrame

const maxStackDepth = 64

// StackTrace captures the call stack of the caller. A skip of 0 makes the caller
// of StackTrace the first frame.
func StackTrace(skip int) StackFrames {
	var programCounters [maxStackDepth]uintptr
	programCountersLength := runtime.Callers(2+skip, programCounters[:])
	if programCountersLength == 0 {
		return nil
	}
	frames := runtime.CallersFrames(programCounters[:programCountersLength])
	stack := make(StackFrames, 0, programCountersLength)
	for {
		frame, more := frames.Next()
		stack = append(stack, StackFrame{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		})
		if !more {
			break
		}
	}
	return stack
}
