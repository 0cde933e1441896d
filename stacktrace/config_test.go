package stacktrace_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanhminhmr/go-errtrace/stacktrace"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := stacktrace.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, stacktrace.Unlimited, config.MaxDepthPerThrowable)
	assert.Equal(t, stacktrace.Unlimited, config.MaxLength)
	assert.True(t, config.OmitCommonFrames)
	assert.True(t, config.IncludeStackHash)

	policy, err := config.Policy(nil)
	require.NoError(t, err)
	assert.Equal(t, stacktrace.DefaultPolicy().MaxLength(), policy.MaxLength())
	assert.True(t, policy.OmitCommonFrames())
}

func TestConfigPolicy(t *testing.T) {
	config := stacktrace.Config{
		MaxDepthPerThrowable:     5,
		MaxLength:                2048,
		ShortenedClassNameLength: 0,
		RootCauseFirst:           true,
		InlineHash:               true,
		TruncateAfter:            []string{`\.ServeHTTP$`},
		Exclude:                  []string{`^runtime\.`},
		Options:                  []string{"short", "full", "short", "keepCommonFrames", "canceled"},
	}
	policy, err := config.Policy(map[string]stacktrace.Evaluator{"canceled": stacktrace.MatchError(context.Canceled)})
	require.NoError(t, err)

	assert.Equal(t, stacktrace.ShortMaxDepthPerThrowable, policy.MaxDepthPerThrowable())
	assert.Equal(t, stacktrace.ShortMaxLength, policy.MaxLength())
	assert.Equal(t, stacktrace.Unlimited, policy.ShortenedClassNameLength())
	assert.True(t, policy.RootCauseFirst())
	assert.True(t, policy.InlineHash())
	assert.False(t, policy.OmitCommonFrames())
	assert.Equal(t, stacktrace.DefaultLineSeparator, policy.LineSeparator())
	assert.Equal(t, []string{`\.ServeHTTP$`}, policy.TruncateAfter())
	assert.Equal(t, []string{`^runtime\.`}, policy.Excludes())
	assert.Len(t, policy.Evaluators(), 1)
}

func TestConfigPolicyInvalid(t *testing.T) {
	config := stacktrace.Config{
		MaxDepthPerThrowable: 0,
		MaxLength:            stacktrace.Unlimited,
		Exclude:              []string{"("},
	}
	_, err := config.Policy(nil)
	require.ErrorIs(t, err, stacktrace.ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), "max depth per throwable")
	assert.Contains(t, err.Error(), `invalid pattern "("`)
}
