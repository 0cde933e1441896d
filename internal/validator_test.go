package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatorLimit(t *testing.T) {
	type limits struct {
		Depth int `validate:"limit"`
	}
	for _, value := range []int{-1, 1, 4096} {
		assert.NoError(t, Validator.Struct(limits{Depth: value}), value)
	}
	for _, value := range []int{0, -2} {
		assert.Error(t, Validator.Struct(limits{Depth: value}), value)
	}
}
