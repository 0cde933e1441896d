package internal

import (
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// SplitSemicolonsDecodeHookFunc decodes environment strings: a string decoded
// into a slice is split on semicolons, so that "a;b" becomes ["a", "b"].
var SplitSemicolonsDecodeHookFunc = mapstructure.ComposeDecodeHookFunc(
	splitValueBySemicolonsIfTargetIsSlice,
	mapstructure.TextUnmarshallerHookFunc(),
	mapstructure.StringToBasicTypeHookFunc(),
	mapstructure.StringToTimeDurationHookFunc(),
	unboxIfElementSliceHasSingleElement,
)

func unboxIfElementSliceHasSingleElement(from reflect.Value, to reflect.Value) (any, error) {
	// convert single value slice to value
	if from.Kind() == reflect.Slice && from.Len() == 1 {
		toType := to.Type()
		for toType.Kind() == reflect.Ptr {
			toType = toType.Elem()
		}
		if toType.Kind() != reflect.Slice {
			return from.Index(0).Interface(), nil
		}
	}
	return from.Interface(), nil
}

func splitValueBySemicolonsIfTargetIsSlice(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	if to.Kind() != reflect.Slice {
		return data, nil
	}
	raw := data.(string)
	if raw == "" {
		return []string{}, nil
	}
	return strings.Split(raw, ";"), nil
}
