package log

import (
	"github.com/rs/zerolog"
	"go.uber.org/dig"
	"go.uber.org/fx/fxevent"
)

// fxLogger writes the events of the fx application to Zerolog. Failures are
// logged with the stack trace of their root cause.
type fxLogger struct {
	logger   *zerolog.Logger
	renderer *Renderer
}

// InitFxLogger returns the fx event logger backed by logger and renderer.
func InitFxLogger(logger *zerolog.Logger, renderer *Renderer) fxevent.Logger {
	return fxLogger{logger: logger, renderer: renderer}
}

type moduleName string

func (m moduleName) MarshalZerologObject(event *zerolog.Event) {
	if m != "" {
		event.Str("module", string(m))
	}
}

// event starts an event with message, at Error level with the root cause of
// err when err is not nil, or at level otherwise.
func (l fxLogger) event(level zerolog.Level, err error, message string) *zerolog.Event {
	if err == nil {
		return l.logger.WithLevel(level).Str(zerolog.MessageFieldName, message)
	}
	return l.renderer.Event(l.logger, zerolog.ErrorLevel, dig.RootCause(err), message)
}

func (l fxLogger) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuting:
		l.logger.Trace().Str("callee", e.FunctionName).Str("caller", e.CallerName).Msg("OnStart hook executing")
	case *fxevent.OnStartExecuted:
		l.event(zerolog.TraceLevel, e.Err, "OnStart hook executed").
			Str("callee", e.FunctionName).
			Str("caller", e.CallerName).
			Dur("runtime", e.Runtime).
			Send()
	case *fxevent.OnStopExecuting:
		l.logger.Trace().Str("callee", e.FunctionName).Str("caller", e.CallerName).Msg("OnStop hook executing")
	case *fxevent.OnStopExecuted:
		l.event(zerolog.TraceLevel, e.Err, "OnStop hook executed").
			Str("callee", e.FunctionName).
			Str("caller", e.CallerName).
			Dur("runtime", e.Runtime).
			Send()
	case *fxevent.Supplied:
		l.event(zerolog.DebugLevel, e.Err, "Supplied").
			Str("type", e.TypeName).
			EmbedObject(moduleName(e.ModuleName)).
			Send()
	case *fxevent.Provided:
		l.event(zerolog.DebugLevel, e.Err, "Provided").
			Str("constructor", e.ConstructorName).
			Strs("types", e.OutputTypeNames).
			EmbedObject(moduleName(e.ModuleName)).
			Bool("private", e.Private).
			Send()
	case *fxevent.Replaced:
		l.event(zerolog.DebugLevel, e.Err, "Replaced").
			Strs("types", e.OutputTypeNames).
			EmbedObject(moduleName(e.ModuleName)).
			Send()
	case *fxevent.Decorated:
		l.event(zerolog.DebugLevel, e.Err, "Decorated").
			Str("decorator", e.DecoratorName).
			Strs("types", e.OutputTypeNames).
			EmbedObject(moduleName(e.ModuleName)).
			Send()
	case *fxevent.Run:
		l.event(zerolog.TraceLevel, e.Err, "Run").
			Str("name", e.Name).
			Str("kind", e.Kind).
			EmbedObject(moduleName(e.ModuleName)).
			Dur("runtime", e.Runtime).
			Send()
	case *fxevent.Invoking:
		l.logger.Debug().Str("function", e.FunctionName).EmbedObject(moduleName(e.ModuleName)).Msg("Invoking")
	case *fxevent.Invoked:
		if e.Err != nil {
			l.event(zerolog.ErrorLevel, e.Err, "Invoke failed").
				Str("function", e.FunctionName).
				EmbedObject(moduleName(e.ModuleName)).
				Send()
		}
	case *fxevent.Stopping:
		l.logger.Info().Stringer("signal", e.Signal).Msg("Received signal")
	case *fxevent.Stopped:
		if e.Err != nil {
			l.event(zerolog.ErrorLevel, e.Err, "Stop failed").Send()
		}
	case *fxevent.RollingBack:
		l.event(zerolog.ErrorLevel, e.StartErr, "Start failed, rolling back").Send()
	case *fxevent.RolledBack:
		if e.Err != nil {
			l.event(zerolog.ErrorLevel, e.Err, "Rollback failed").Send()
		}
	case *fxevent.Started:
		l.event(zerolog.InfoLevel, e.Err, "Started").Send()
	case *fxevent.LoggerInitialized:
		l.event(zerolog.DebugLevel, e.Err, "Initialized logger").Str("function", e.ConstructorName).Send()
	}
}
