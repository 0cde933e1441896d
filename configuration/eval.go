package configuration

import "strings"

// Eval evaluates an expression of the form "${KEY}" or "${KEY:default}". KEY is
// looked up as is, then in its environment form ("app.env" -> "APP_ENV"). A
// value that is not an expression is returned unchanged, and so is an
// expression without default whose key is not found.
func Eval(value string) string {
	raw, isExpression := strings.CutPrefix(value, "${")
	if !isExpression {
		return value
	}
	raw, isExpression = strings.CutSuffix(raw, "}")
	if !isExpression {
		return value
	}
	key, fallback, hasFallback := strings.Cut(raw, ":")
	if found, exists := Lookup(key); exists {
		return found
	}
	if found, exists := Lookup(environmentKey(key)); exists {
		return found
	}
	if hasFallback {
		return fallback
	}
	return value
}

func environmentKey(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
