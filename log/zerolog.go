package log

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/thanhminhmr/go-errtrace/configuration"
	"go.uber.org/fx"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixNano
}

// LoggerConfig holds the fields added to every JSON log record. Both fields
// accept "${KEY:default}" expressions.
type LoggerConfig struct {
	Component   string `env:"COMPONENT"`
	Environment string `env:"ENVIRONMENT"`
}

func ConsoleLogger(lifecycle fx.Lifecycle) (*zerolog.Logger, context.Context) {
	// create the logger
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "2006-01-02T15:04:05.000000000Z07:00",
	}).With().Timestamp().Caller().Logger()
	return bindLifecycle(lifecycle, &logger)
}

// JSONLogger writes one JSON object per line to stdout, with the component and
// the environment of the config.
func JSONLogger(lifecycle fx.Lifecycle, config *LoggerConfig) (*zerolog.Logger, context.Context) {
	logger := NewJSONLogger(os.Stdout, config)
	return bindLifecycle(lifecycle, logger)
}

// NewJSONLogger creates a JSON logger writing to output. A nil config takes the
// component from DefaultComponent and the environment from ENVIRONMENT.
func NewJSONLogger(output io.Writer, config *LoggerConfig) *zerolog.Logger {
	component, _ := DefaultComponent()
	environment, _ := configuration.Lookup("ENVIRONMENT")
	if config != nil {
		if config.Component != "" {
			component = configuration.Eval(config.Component)
		}
		if config.Environment != "" {
			environment = configuration.Eval(config.Environment)
		}
	}
	builder := zerolog.New(output).With().Timestamp()
	if component != "" {
		builder = builder.Str("component", component)
	}
	if environment != "" {
		builder = builder.Str("env", environment)
	}
	logger := builder.Logger()
	return &logger
}

// bindLifecycle creates the global context with lifecycle cancel binding and
// the logger.
func bindLifecycle(lifecycle fx.Lifecycle, logger *zerolog.Logger) (*zerolog.Logger, context.Context) {
	ctx, cancel := context.WithCancel(logger.WithContext(context.Background()))
	lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return zerolog.Ctx(ctx), ctx
}
