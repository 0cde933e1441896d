package log_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thanhminhmr/go-errtrace/log"
)

func TestKubernetesComponent(t *testing.T) {
	tests := []struct {
		hostname  string
		component string
		ok        bool
	}{
		{"billing-api-7d9f8b6c5-x2k4q", "billing-api", true},
		{"worker-5c7b9-abcde", "worker", true},
		{"worker", "", false},
		{"worker-abcde", "", false},
		{"-a-b", "", false},
		{"", "", false},
	}
	for _, test := range tests {
		component, ok := log.KubernetesComponent(test.hostname)
		assert.Equal(t, test.ok, ok, test.hostname)
		assert.Equal(t, test.component, component, test.hostname)
	}
}

func TestFunc(t *testing.T) {
	assert.Equal(t, "<nil>", log.Func(nil).String())
	assert.Equal(t, "<unknown>", log.Func(42).String())
	assert.Regexp(t, `^github\.com/thanhminhmr/go-errtrace/log_test\.TestKubernetesComponent\(component_test\.go:\d+\)$`,
		log.Func(TestKubernetesComponent).String())
}
