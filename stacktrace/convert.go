package stacktrace

import (
	"fmt"
	"path"
	"reflect"

	"github.com/thanhminhmr/go-errtrace/exception"
)

// maxRecords bounds the size of the tree built by FromError, so that an error
// graph with a cycle still converts.
const maxRecords = 256

// FromError builds the Record tree of err. It returns nil when err is nil.
//
// An exception.Exception contributes its type, message, stack trace, causes and
// suppressed errors. Any other error contributes its Go type and Error() text,
// and its wrapped errors as causes. When an error has several causes, the
// first one is rendered as the cause and the others are appended to the
// suppressed errors.
func FromError(err error) *Record {
	budget := maxRecords
	return fromError(err, &budget)
}

func fromError(err error, budget *int) *Record {
	if err == nil || *budget <= 0 {
		return nil
	}
	*budget--
	var causes []error
	var suppressed []error
	record := &Record{}
	if value, ok := err.(exception.Exception); ok {
		record.Type = value.GetType()
		record.Message = value.GetMessage()
		record.Frames = framesOf(value.GetStackTrace())
		causes = value.GetCause()
		suppressed = value.GetSuppressed()
	} else {
		record.Type = typeName(err)
		record.Message = err.Error()
		switch wrapper := err.(type) {
		case interface{ Unwrap() error }:
			if inner := wrapper.Unwrap(); inner != nil {
				causes = []error{inner}
			}
		case interface{ Unwrap() []error }:
			causes = wrapper.Unwrap()
		}
	}
	if len(causes) > 0 {
		record.Cause = fromError(causes[0], budget)
		suppressed = append(suppressed[:len(suppressed):len(suppressed)], causes[1:]...)
	}
	for _, inner := range suppressed {
		if child := fromError(inner, budget); child != nil {
			record.Suppressed = append(record.Suppressed, child)
		}
	}
	return record
}

func framesOf(trace exception.StackFrames) []Frame {
	if len(trace) == 0 {
		return nil
	}
	frames := make([]Frame, len(trace))
	for index, frame := range trace {
		class, method := SplitFunction(frame.Function)
		frames[index] = Frame{
			Class:  class,
			Method: method,
			Line:   frame.Line,
		}
		if frame.File != "" {
			frames[index].File = path.Base(frame.File)
		}
	}
	return frames
}

// typeName returns the package qualified name of the dynamic type of err, such
// as "*io/fs.PathError".
func typeName(err error) string {
	t := reflect.TypeOf(err)
	pointer := ""
	for t.Kind() == reflect.Pointer {
		pointer += "*"
		t = t.Elem()
	}
	if t.PkgPath() == "" || t.Name() == "" {
		return fmt.Sprintf("%T", err)
	}
	return pointer + t.PkgPath() + "." + t.Name()
}
