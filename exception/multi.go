package exception

import "strings"

// MultipleErrors is the type reported by the Exception returned from Join.
const MultipleErrors = String("multiple errors")

// Join combines multiple errors into a single Exception.
//
// Nil values are ignored. If no errors remain, Join returns nil. If there is
// exactly one non-nil error, and it already implements Exception, it is returned
// directly.
//
// Otherwise, Join creates a new Exception whose causes are the given errors. When
// rendered, the first error is the cause and the others follow it as suppressed
// errors.
func Join(errors ...error) Exception {
	var multiple []error
	if !combine(&multiple, errors...) {
		return nil
	}
	if len(multiple) == 1 {
		if inner, ok := multiple[0].(Exception); ok {
			return inner
		}
	}
	return multipleErrors(multiple)
}

type multipleErrors []error

func (e multipleErrors) Error() string {
	var builder strings.Builder
	builder.WriteString(string(MultipleErrors))
	for index, err := range e {
		if index == 0 {
			builder.WriteString(": ")
		} else {
			builder.WriteString("; ")
		}
		builder.WriteString(err.Error())
	}
	return builder.String()
}

func (e multipleErrors) GetType() string {
	return string(MultipleErrors)
}

func (e multipleErrors) GetMessage() string {
	return ""
}

func (e multipleErrors) SetMessage(message string, parameters ...any) Exception {
	return MultipleErrors.SetMessage(message, parameters...).AddCause(e...)
}

func (e multipleErrors) GetCause() []error {
	return e
}

func (e multipleErrors) AddCause(errors ...error) Exception {
	concat((*[]error)(&e), errors...)
	return e
}

func (e multipleErrors) GetSuppressed() []error {
	return nil
}

func (e multipleErrors) AddSuppressed(errors ...error) Exception {
	var suppressed []error
	if combine(&suppressed, errors...) {
		return exception{
			Type:       string(MultipleErrors),
			Cause:      e,
			Suppressed: suppressed,
		}
	}
	return e
}

func (e multipleErrors) GetRecovered() any {
	return nil
}

func (e multipleErrors) SetRecovered(recovered any) Exception {
	if recovered == nil {
		return e
	}
	return exception{
		Type:      string(MultipleErrors),
		Cause:     e,
		Recovered: recovered,
	}
}

func (e multipleErrors) GetStackTrace() StackFrames {
	return nil
}

func (e multipleErrors) FillStackTrace(skip int) Exception {
	return exception{
		Type:       string(MultipleErrors),
		Cause:      e,
		StackTrace: StackTrace(skip + 1),
	}
}

func (e multipleErrors) __() {}

func (e multipleErrors) Unwrap() []error {
	return e
}
