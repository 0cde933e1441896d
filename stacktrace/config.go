package stacktrace

import (
	"github.com/thanhminhmr/go-errtrace/configuration"
	"go.uber.org/multierr"
)

// ConfigPrefix is the prefix of the environment variables read into Config.
const ConfigPrefix = "STACKTRACE"

// Config is the environment representation of a Policy. Options, in the format
// of ParseOptions, are applied after the other fields.
type Config struct {
	MaxDepthPerThrowable     int      `env:"MAX_DEPTH_PER_THROWABLE" validate:"limit"`
	MaxLength                int      `env:"MAX_LENGTH" validate:"limit"`
	ShortenedClassNameLength int      `env:"SHORTENED_CLASS_NAME_LENGTH" validate:"min=-1"`
	RootCauseFirst           bool     `env:"ROOT_CAUSE_FIRST"`
	OmitCommonFrames         bool     `env:"OMIT_COMMON_FRAMES"`
	InlineHash               bool     `env:"INLINE_HASH"`
	PackagingData            bool     `env:"PACKAGING_DATA"`
	IncludeStackHash         bool     `env:"INCLUDE_STACK_HASH"`
	LineSeparator            string   `env:"LINE_SEPARATOR"`
	TruncateAfter            []string `env:"TRUNCATE_AFTER"`
	Exclude                  []string `env:"EXCLUDE"`
	Options                  []string `env:"OPTIONS"`
}

func init() {
	configuration.SetDefault("STACKTRACE_MAX_DEPTH_PER_THROWABLE", "-1")
	configuration.SetDefault("STACKTRACE_MAX_LENGTH", "-1")
	configuration.SetDefault("STACKTRACE_SHORTENED_CLASS_NAME_LENGTH", "-1")
	configuration.SetDefault("STACKTRACE_OMIT_COMMON_FRAMES", "true")
	configuration.SetDefault("STACKTRACE_INCLUDE_STACK_HASH", "true")
}

// LoadConfig reads the Config from the environment.
func LoadConfig() (*Config, error) {
	var config Config
	if err := configuration.Load(&config, ConfigPrefix); err != nil {
		return nil, err
	}
	return &config, nil
}

// Policy builds the Policy described by the config. Evaluators named in the
// options are looked up in evaluators.
func (c *Config) Policy(evaluators map[string]Evaluator) (*Policy, error) {
	builder := NewPolicyBuilder()
	err := multierr.Combine(
		builder.SetMaxDepthPerThrowable(c.MaxDepthPerThrowable),
		builder.SetMaxLength(c.MaxLength),
		builder.SetShortenedClassNameLength(c.ShortenedClassNameLength),
		builder.SetRootCauseFirst(c.RootCauseFirst),
		builder.SetOmitCommonFrames(c.OmitCommonFrames),
		builder.SetInlineHash(c.InlineHash),
		builder.SetPackagingData(c.PackagingData),
		builder.SetLineSeparator(c.LineSeparator),
	)
	for _, pattern := range c.TruncateAfter {
		err = multierr.Append(err, builder.AddTruncateAfter(pattern))
	}
	for _, pattern := range c.Exclude {
		err = multierr.Append(err, builder.AddExclude(pattern))
	}
	err = multierr.Append(err, ParseOptions(builder, c.Options, evaluators))
	if err != nil {
		return nil, err
	}
	return builder.Build(), nil
}
