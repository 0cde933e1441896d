package stacktrace

import (
	"regexp"
	"slices"
	"strings"
)

// FilterBuilder accumulates frame filters and combines them into one Filter
// that accepts a frame only when every accumulated filter accepts it.
type FilterBuilder struct {
	filters []Filter
}

func NewFilterBuilder() *FilterBuilder {
	return &FilterBuilder{}
}

// Generated rejects classes generated by CGLIB proxies.
func (b *FilterBuilder) Generated() *FilterBuilder {
	return b.add(FilterFunc(acceptGenerated))
}

// ReflectiveInvocation rejects reflective "invoke" frames.
func (b *FilterBuilder) ReflectiveInvocation() *FilterBuilder {
	return b.add(FilterFunc(acceptReflectiveInvocation))
}

// RuntimeInternals rejects JDK internal classes.
func (b *FilterBuilder) RuntimeInternals() *FilterBuilder {
	return b.add(FilterFunc(acceptRuntimeInternals))
}

// FrameworkInternals rejects Spring Framework dynamic invocation and plumbing,
// and the servlet container frames below it.
func (b *FilterBuilder) FrameworkInternals() *FilterBuilder {
	return b.add(FilterFunc(acceptFrameworkInternals))
}

// GoRuntime rejects frames of the Go runtime, the testing package and
// reflective calls, which vary between Go versions.
func (b *FilterBuilder) GoRuntime() *FilterBuilder {
	return b.add(FilterFunc(acceptGoRuntime))
}

// ByPattern rejects frames whose "class.method" contains a match of any of the
// patterns. It adds nothing when no pattern is given.
func (b *FilterBuilder) ByPattern(excludes ...*regexp.Regexp) *FilterBuilder {
	if len(excludes) == 0 {
		return b
	}
	patterns := slices.Clone(excludes)
	return b.add(FilterFunc(func(frame *Frame) bool {
		return !matchesAny(patterns, frame)
	}))
}

// AllFilters adds Generated, ReflectiveInvocation, RuntimeInternals and
// FrameworkInternals.
func (b *FilterBuilder) AllFilters() *FilterBuilder {
	return b.Generated().ReflectiveInvocation().RuntimeInternals().FrameworkInternals()
}

// Build returns the combined Filter, or Any when nothing was added.
func (b *FilterBuilder) Build() Filter {
	switch len(b.filters) {
	case 0:
		return Any()
	case 1:
		return b.filters[0]
	default:
		return group(slices.Clone(b.filters))
	}
}

func (b *FilterBuilder) add(filter Filter) *FilterBuilder {
	b.filters = append(b.filters, filter)
	return b
}

// DefaultFilter is the filter used for stack hashes when none is configured:
// AllFilters followed by GoRuntime.
func DefaultFilter() Filter {
	return NewFilterBuilder().AllFilters().GoRuntime().Build()
}

// ========================================

type group []Filter

func (g group) Accept(frame *Frame) bool {
	for _, filter := range g {
		if !filter.Accept(frame) {
			return false
		}
	}
	return true
}

func acceptGenerated(frame *Frame) bool {
	return !strings.Contains(frame.Class, "$$FastClassByCGLIB$$") &&
		!strings.Contains(frame.Class, "$$EnhancerBySpringCGLIB$$")
}

func acceptReflectiveInvocation(frame *Frame) bool {
	if frame.Method != "invoke" {
		return true
	}
	return !strings.HasPrefix(frame.Class, "sun.reflect.") &&
		!strings.HasPrefix(frame.Class, "java.lang.reflect.") &&
		!strings.HasPrefix(frame.Class, "net.sf.cglib.proxy.MethodProxy")
}

func acceptRuntimeInternals(frame *Frame) bool {
	return !strings.HasPrefix(frame.Class, "com.sun.") &&
		!strings.HasPrefix(frame.Class, "sun.net.")
}

var springInternals = []string{
	"org.springframework.cglib.",
	"org.springframework.transaction.",
	"org.springframework.validation.",
	"org.springframework.app.",
	"org.springframework.aop.",
	"org.springframework.ws.",
	"org.springframework.web.",
	"org.springframework.transaction",
}

var containerInternals = []string{
	"org.apache.tomcat.",
	"org.apache.catalina.",
	"org.apache.coyote.",
}

func acceptFrameworkInternals(frame *Frame) bool {
	switch {
	case strings.HasPrefix(frame.Class, "org.springframework"):
		return !hasAnyPrefix(frame.Class, springInternals)
	case strings.HasPrefix(frame.Class, "org.apache"):
		return !hasAnyPrefix(frame.Class, containerInternals)
	default:
		return true
	}
}

func acceptGoRuntime(frame *Frame) bool {
	switch frame.Class {
	case "runtime", "testing":
		return false
	case "reflect.Value":
		return frame.Method != "call" && frame.Method != "Call"
	default:
		return !strings.HasPrefix(frame.Class, "runtime.") &&
			!strings.HasPrefix(frame.Class, "testing.")
	}
}

func hasAnyPrefix(value string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}
