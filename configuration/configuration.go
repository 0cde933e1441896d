package configuration

import (
	"os"
	"strings"

	"github.com/thanhminhmr/go-errtrace/internal"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// Configuration values are looked up, from the lowest to the highest priority,
// in the defaults, the files loaded with LoadFile, the .env file and the
// environment of the process.
var (
	globalDefaults     = make(map[string]string)
	globalFiles        = make(map[string]string)
	globalEnvironments = make(map[string]string)
)

func init() {
	// .env file have higher priority than defaults and files
	bytes, err := os.ReadFile(".env")
	if err == nil {
		saveEnvironments(strings.Split(string(bytes), "\n"))
	}

	// os.Environ() have the highest priority
	saveEnvironments(os.Environ())
}

func saveEnvironments(lines []string) {
	for _, line := range lines {
		split := strings.SplitN(line, "=", 2)
		if len(split) == 2 {
			globalEnvironments[strings.TrimSpace(split[0])] = strings.TrimSpace(split[1])
		}
	}
}

func SetDefault(key string, value string) {
	globalDefaults[key] = value
}

// LoadFile reads a YAML file of environment style keys, such as
//
//	STACKTRACE_MAX_LENGTH: 4096
//	STACKTRACE_EXCLUDE: "^runtime\\.;^testing\\."
//
// Its values override the defaults but not the environment.
func LoadFile(path string) error {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return errorReadFile.SetMessage("%s", path).AddCause(err)
	}
	var values map[string]yaml.Node
	if err := yaml.Unmarshal(bytes, &values); err != nil {
		return errorParseFile.SetMessage("%s", path).AddCause(err)
	}
	for key, node := range values {
		if node.Kind != yaml.ScalarNode {
			return errorParseFile.SetMessage("%s: %s is not a scalar", path, key)
		}
		globalFiles[key] = node.Value
	}
	return nil
}

// Lookup returns the value of the key in the same priority order as Load.
func Lookup(key string) (string, bool) {
	if value, exists := globalEnvironments[key]; exists {
		return value, true
	}
	if value, exists := globalFiles[key]; exists {
		return value, true
	}
	value, exists := globalDefaults[key]
	return value, exists
}

// Load decodes the settings whose keys start with the joined prefixes into
// config, then validates it. config is reset first, so a reused struct never
// keeps values of a previous load.
func Load[T any](config *T, prefixes ...string) error {
	var zero T
	*config = zero
	prefix := ""
	if len(prefixes) > 0 {
		prefix = strings.Join(prefixes, "_") + "_"
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "env",
		DecodeHook:       internal.SplitSemicolonsDecodeHookFunc,
		ZeroFields:       true,
		WeaklyTypedInput: true,
		Result:           config,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(getEnvironment(prefix)); err != nil {
		return errorDecode.SetMessage("%s", strings.TrimSuffix(prefix, "_")).AddCause(err)
	}
	if err := internal.Validator.Struct(config); err != nil {
		return errorValidate.SetMessage("%s", strings.TrimSuffix(prefix, "_")).AddCause(err)
	}
	return nil
}

func Loader[T any](config *T, prefixes ...string) func() (*T, error) {
	return func() (*T, error) {
		err := Load(config, prefixes...)
		return config, err
	}
}

func getEnvironment(prefix string) map[string]string {
	environments := make(map[string]string)
	for _, layer := range []map[string]string{globalDefaults, globalFiles, globalEnvironments} {
		for key, value := range layer {
			if fixedKey, hasPrefix := strings.CutPrefix(key, prefix); hasPrefix {
				environments[fixedKey] = value
			}
		}
	}
	return environments
}
