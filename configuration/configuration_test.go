package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleConfig struct {
	Depth    int      `env:"DEPTH" validate:"limit"`
	Name     string   `env:"NAME" validate:"required"`
	Enabled  bool     `env:"ENABLED"`
	Patterns []string `env:"PATTERNS"`
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadLayers(t *testing.T) {
	SetDefault("SAMPLE_DEPTH", "3")
	SetDefault("SAMPLE_NAME", "default")
	SetDefault("SAMPLE_PATTERNS", "^a;^b")
	globalEnvironments["SAMPLE_ENABLED"] = "true"
	t.Cleanup(func() {
		delete(globalEnvironments, "SAMPLE_ENABLED")
		delete(globalFiles, "SAMPLE_NAME")
		delete(globalFiles, "SAMPLE_ENABLED")
	})

	var config sampleConfig
	require.NoError(t, Load(&config, "SAMPLE"))
	assert.Equal(t, sampleConfig{Depth: 3, Name: "default", Enabled: true, Patterns: []string{"^a", "^b"}}, config)

	require.NoError(t, LoadFile(writeFile(t, "SAMPLE_NAME: from-file\nSAMPLE_ENABLED: false\n")))
	loaded, err := Loader(&sampleConfig{}, "SAMPLE")()
	require.NoError(t, err)
	assert.Equal(t, "from-file", loaded.Name)
	assert.True(t, loaded.Enabled)

	value, exists := Lookup("SAMPLE_NAME")
	assert.True(t, exists)
	assert.Equal(t, "from-file", value)
}

func TestLoadValidates(t *testing.T) {
	SetDefault("INVALID_DEPTH", "0")
	SetDefault("INVALID_NAME", "x")
	var config sampleConfig
	err := Load(&config, "INVALID")
	require.ErrorIs(t, err, errorValidate)
	assert.Contains(t, err.Error(), "INVALID")

	SetDefault("MISSING_DEPTH", "-1")
	assert.ErrorIs(t, Load(&config, "MISSING"), errorValidate)

	SetDefault("BROKEN_DEPTH", "deep")
	SetDefault("BROKEN_NAME", "x")
	assert.ErrorIs(t, Load(&config, "BROKEN"), errorDecode)
}

func TestLoadResetsConfig(t *testing.T) {
	SetDefault("RESET_DEPTH", "4")
	config := sampleConfig{Name: "stale", Enabled: true, Patterns: []string{"^old"}}
	err := Load(&config, "RESET")
	require.ErrorIs(t, err, errorValidate)
	assert.Empty(t, config.Name)
	assert.False(t, config.Enabled)
	assert.Empty(t, config.Patterns)
	assert.Equal(t, 4, config.Depth)
}

func TestLoadFileErrors(t *testing.T) {
	assert.ErrorIs(t, LoadFile(filepath.Join(t.TempDir(), "missing.yaml")), errorReadFile)
	assert.ErrorIs(t, LoadFile(writeFile(t, "KEY: [1, 2]\n")), errorParseFile)
	assert.ErrorIs(t, LoadFile(writeFile(t, "KEY: [1, 2\n")), errorParseFile)
}

func TestEval(t *testing.T) {
	SetDefault("EVAL_APP_ENV", "staging")
	assert.Equal(t, "staging", Eval("${EVAL_APP_ENV}"))
	assert.Equal(t, "staging", Eval("${eval.app.env}"))
	assert.Equal(t, "staging", Eval("${eval.app.env:production}"))
	assert.Equal(t, "production", Eval("${eval.missing:production}"))
	assert.Equal(t, "", Eval("${eval.missing:}"))
	assert.Equal(t, "${eval.missing}", Eval("${eval.missing}"))
	assert.Equal(t, "plain", Eval("plain"))
	assert.Equal(t, "${unterminated", Eval("${unterminated"))
}
