package stacktrace_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thanhminhmr/go-errtrace/stacktrace"
)

func TestDefaultFilter(t *testing.T) {
	filter := stacktrace.DefaultFilter()
	rejected := []stacktrace.Frame{
		{Class: "com.acme.Service$$FastClassByCGLIB$$1a2b", Method: "invoke"},
		{Class: "com.acme.Service$$EnhancerBySpringCGLIB$$1a2b", Method: "charge"},
		{Class: "sun.reflect.NativeMethodAccessorImpl", Method: "invoke"},
		{Class: "java.lang.reflect.Method", Method: "invoke"},
		{Class: "net.sf.cglib.proxy.MethodProxy", Method: "invoke"},
		{Class: "com.sun.proxy.$Proxy12", Method: "charge"},
		{Class: "sun.net.www.protocol.http.HttpURLConnection", Method: "connect"},
		{Class: "org.springframework.aop.framework.ReflectiveMethodInvocation", Method: "proceed"},
		{Class: "org.springframework.web.servlet.DispatcherServlet", Method: "doDispatch"},
		{Class: "org.apache.catalina.core.ApplicationFilterChain", Method: "doFilter"},
		{Class: "runtime", Method: "goexit"},
		{Class: "runtime.(*Func)", Method: "Name"},
		{Class: "testing", Method: "tRunner"},
		{Class: "reflect.Value", Method: "call"},
	}
	for _, frame := range rejected {
		assert.False(t, filter.Accept(&frame), frame.ClassAndMethod())
	}
	accepted := []stacktrace.Frame{
		{Class: "com.acme.Service", Method: "invoke"},
		{Class: "java.lang.reflect.Method", Method: "getName"},
		{Class: "org.springframework.samples.petclinic.OwnerController", Method: "show"},
		{Class: "org.apache.commons.lang3.StringUtils", Method: "join"},
		{Class: "reflect.Value", Method: "Interface"},
		{Class: "github.com/acme/runtime", Method: "Start"},
		{Class: "main", Method: "main"},
	}
	for _, frame := range accepted {
		assert.True(t, filter.Accept(&frame), frame.ClassAndMethod())
	}
}

func TestFilterBuilder(t *testing.T) {
	proxy := stacktrace.Frame{Class: "com.sun.proxy.$Proxy12", Method: "charge"}
	assert.True(t, stacktrace.NewFilterBuilder().Build().Accept(&proxy))
	assert.False(t, stacktrace.NewFilterBuilder().RuntimeInternals().Build().Accept(&proxy))
	assert.True(t, stacktrace.NewFilterBuilder().Generated().ReflectiveInvocation().Build().Accept(&proxy))

	secret := stacktrace.Frame{Class: "com.acme.Vault", Method: "secret"}
	filter := stacktrace.NewFilterBuilder().AllFilters().ByPattern(regexp.MustCompile(`Vault\.`)).Build()
	assert.False(t, filter.Accept(&secret))
	assert.False(t, filter.Accept(&proxy))
}

func TestSimpleFilters(t *testing.T) {
	frame := stacktrace.Frame{Class: "a.B", Method: "c", File: "b.go", Line: 3}
	noFile := stacktrace.Frame{Class: "a.B", Method: "c", Line: 3}
	negativeLine := stacktrace.Frame{Class: "a.B", Method: "c", File: "b.go", Line: -1}

	assert.True(t, stacktrace.Any().Accept(&noFile))
	assert.True(t, stacktrace.WithSourceInfo().Accept(&frame))
	assert.False(t, stacktrace.WithSourceInfo().Accept(&noFile))
	assert.False(t, stacktrace.WithSourceInfo().Accept(&negativeLine))

	assert.True(t, stacktrace.ByPattern().Accept(&frame))
	assert.False(t, stacktrace.ByPattern(regexp.MustCompile(`^x`), regexp.MustCompile(`B\.c$`)).Accept(&frame))
	assert.True(t, stacktrace.FilterFunc(func(*stacktrace.Frame) bool { return true }).Accept(&frame))
}
