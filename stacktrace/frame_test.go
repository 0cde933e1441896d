package stacktrace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thanhminhmr/go-errtrace/stacktrace"
)

func TestSplitFunction(t *testing.T) {
	tests := []struct {
		function string
		class    string
		method   string
	}{
		{"github.com/a/b.(*T).M", "github.com/a/b.(*T)", "M"},
		{"github.com/a/b.F.func1", "github.com/a/b.F", "func1"},
		{"github.com/a/b.F", "github.com/a/b", "F"},
		{"github.com/a/b.Map[...].Get", "github.com/a/b.Map[...]", "Get"},
		{"github.com/a/b.Sum[go.shape.int]", "github.com/a/b", "Sum[go.shape.int]"},
		{"gopkg.in/yaml.v3.Unmarshal", "gopkg.in/yaml.v3", "Unmarshal"},
		{"main.main", "main", "main"},
		{"runtime.goexit", "runtime", "goexit"},
		{"goexit", "", "goexit"},
	}
	for _, test := range tests {
		class, method := stacktrace.SplitFunction(test.function)
		assert.Equal(t, test.class, class, test.function)
		assert.Equal(t, test.method, method, test.function)
	}
}

func TestClassAndMethod(t *testing.T) {
	assert.Equal(t, "a.B.c", (&stacktrace.Frame{Class: "a.B", Method: "c"}).ClassAndMethod())
	assert.Equal(t, "main", (&stacktrace.Frame{Method: "main"}).ClassAndMethod())
}
