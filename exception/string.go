package exception

import "fmt"

// type check
var _ Exception = String("")

// String is a string-based Exception. The string is the type of the exception;
// it has no message, causes, suppressed errors, recovered value, or stack trace.
//
// String is the starting point for building a full exception. When a message,
// causes, suppressed errors, or a stack trace are added, a new Exception of the
// same type is created:
//
//	err := ErrRead.SetMessage("file %s", name).AddCause(cause).FillStackTrace(0)
//
// where ErrRead is a constant:
//
//	const ErrRead = exception.String("read failed")
//
// errors.Is(err, ErrRead) holds for every Exception built this way.
type String string

func (e String) Error() string {
	return string(e)
}

func (e String) GetType() string {
	return string(e)
}

func (e String) GetMessage() string {
	return ""
}

func (e String) SetMessage(message string, parameters ...any) Exception {
	if message == "" {
		return e
	}
	if len(parameters) > 0 {
		return exception{
			Type:    string(e),
			Message: fmt.Sprintf(message, parameters...),
		}
	}
	return exception{
		Type:    string(e),
		Message: message,
	}
}

func (e String) GetCause() []error {
	return nil
}

func (e String) AddCause(errors ...error) Exception {
	var cause []error
	if combine(&cause, errors...) {
		return exception{
			Type:  string(e),
			Cause: cause,
		}
	}
	return e
}

func (e String) GetSuppressed() []error {
	return nil
}

func (e String) AddSuppressed(errors ...error) Exception {
	var suppressed []error
	if combine(&suppressed, errors...) {
		return exception{
			Type:       string(e),
			Suppressed: suppressed,
		}
	}
	return e
}

func (e String) GetRecovered() any {
	return nil
}

func (e String) SetRecovered(recovered any) Exception {
	if recovered == nil {
		return e
	}
	return exception{
		Type:      string(e),
		Recovered: recovered,
	}
}

func (e String) GetStackTrace() StackFrames {
	return nil
}

func (e String) FillStackTrace(skip int) Exception {
	return exception{
		Type:       string(e),
		StackTrace: StackTrace(skip + 1),
	}
}

func (e String) __() {}

func (e String) Is(target error) bool {
	return is(e, target)
}

func (e String) As(target any) bool {
	return as(e, target)
}
