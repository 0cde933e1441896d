package log

import (
	"github.com/thanhminhmr/go-errtrace/configuration"
	"github.com/thanhminhmr/go-errtrace/stacktrace"
	"go.uber.org/fx"
)

// Module provides a JSON *zerolog.Logger, its context and a *Renderer
// configured from the environment. Evaluators referenced by name in
// STACKTRACE_OPTIONS are taken from a map[string]stacktrace.Evaluator supplied
// to the application, if any.
var Module = fx.Module("log",
	fx.Provide(
		configuration.Loader(&LoggerConfig{}),
		configuration.Loader(&stacktrace.Config{}, stacktrace.ConfigPrefix),
		JSONLogger,
		newRenderer,
	),
	fx.WithLogger(InitFxLogger),
)

type rendererParams struct {
	fx.In

	Config     *stacktrace.Config
	Evaluators map[string]stacktrace.Evaluator `optional:"true"`
}

func newRenderer(params rendererParams) (*Renderer, error) {
	return NewRenderer(params.Config, params.Evaluators)
}
