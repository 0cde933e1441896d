package exception

import "slices"

// is reports whether target is an Exception of the same type as source. The
// message is ignored so that errors.Is(err, ErrSomething) holds for every
// err built from ErrSomething.SetMessage(...).
func is(source Exception, target error) bool {
	if other, ok := target.(Exception); ok {
		return source.GetType() == other.GetType()
	}
	return false
}

func as(source Exception, target any) bool {
	if other, ok := target.(*Exception); ok {
		*other = source
		return true
	}
	return false
}

// ========================================

func combine(result *[]error, errors ...error) (changed bool) {
	// assert result != nil
	for _, err := range errors {
		combineAdd(result, &changed, err)
	}
	return
}

func combineAdd(result *[]error, changed *bool, err error) {
	if err == nil {
		return
	}
	if multiple, ok := err.(multipleErrors); ok {
		for _, inner := range multiple {
			combineAdd(result, changed, inner)
		}
	} else {
		*result = append(*result, err)
		*changed = true
	}
}

// concat appends to a clipped copy of *result so that exceptions sharing the
// same backing array never observe each other's additions.
func concat(result *[]error, errors ...error) {
	*result = slices.Clip(*result)
	var changed bool
	for _, err := range errors {
		combineAdd(result, &changed, err)
	}
}
