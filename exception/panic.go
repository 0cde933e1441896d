package exception

// PanicException is the type of the Exception produced when a panic value is not
// an Exception itself.
const PanicException = String("panic")

// Panic panics with recovered turned into an Exception that has a stack trace
// starting at the caller of Panic.
func Panic(recovered any) {
	panic(fromRecovered(recovered, 1))
}

// Recover turns the value returned by the built-in recover into an Exception.
// It returns nil when nothing was recovered. Typical use:
//
//	defer func() {
//		if err := exception.Recover(recover()); err != nil {
//			...
//		}
//	}()
func Recover(recovered any) Exception {
	if recovered == nil {
		return nil
	}
	return fromRecovered(recovered, 1)
}

func fromRecovered(recovered any, skip int) Exception {
	switch value := recovered.(type) {
	case Exception:
		if len(value.GetStackTrace()) == 0 {
			return value.FillStackTrace(skip + 1)
		}
		return value
	case error:
		return PanicException.
			SetMessage("%s", value.Error()).
			AddCause(value).
			SetRecovered(recovered).
			FillStackTrace(skip + 1)
	default:
		return PanicException.
			SetMessage("%v", value).
			SetRecovered(recovered).
			FillStackTrace(skip + 1)
	}
}
