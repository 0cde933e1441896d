package log

import (
	"github.com/rs/zerolog"
	"github.com/thanhminhmr/go-errtrace/stacktrace"
)

// Renderer adds the stack trace of an error, and its stack hash, to log events.
type Renderer struct {
	formatter        *stacktrace.Formatter
	hasher           *stacktrace.Hasher
	includeStackHash bool
}

// NewRenderer creates the Renderer described by the config. Stack hashes use
// the hash filter of its policy.
func NewRenderer(config *stacktrace.Config, evaluators map[string]stacktrace.Evaluator) (*Renderer, error) {
	policy, err := config.Policy(evaluators)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		formatter:        stacktrace.NewFormatter(policy),
		hasher:           stacktrace.NewHasher(policy.HashFilter()),
		includeStackHash: config.IncludeStackHash,
	}, nil
}

// Exception returns the fields of the event's error: "stack_trace" and, when
// enabled, "stack_hash". Nothing is added when the rendered stack trace is
// empty.
func (r *Renderer) Exception(event stacktrace.Event) zerolog.LogObjectMarshaler {
	return exceptionFields{renderer: r, event: event}
}

// Event starts an event at level with message, the error text of err and its
// stack trace fields. Finish it with Send; evaluators see the message.
func (r *Renderer) Event(logger *zerolog.Logger, level zerolog.Level, err error, message string) *zerolog.Event {
	event := logger.WithLevel(level)
	if message != "" {
		event = event.Str(zerolog.MessageFieldName, message)
	}
	if err == nil {
		return event
	}
	return event.
		Str(zerolog.ErrorFieldName, err.Error()).
		EmbedObject(r.Exception(stacktrace.Event{Level: level, Message: message, Error: err}))
}

// Log writes one record for err at level.
func (r *Renderer) Log(logger *zerolog.Logger, level zerolog.Level, err error, message string) {
	r.Event(logger, level, err, message).Send()
}

type exceptionFields struct {
	renderer *Renderer
	event    stacktrace.Event
}

func (f exceptionFields) MarshalZerologObject(event *zerolog.Event) {
	if f.event.Error == nil || f.renderer.formatter.Excludes(&f.event) {
		return
	}
	record := f.renderer.formatter.Record(f.event.Error)
	text := f.renderer.formatter.FormatRecord(record)
	if text == "" {
		return
	}
	if f.renderer.includeStackHash {
		event.Str("stack_hash", f.renderer.hasher.Hash(record))
	}
	event.Str("stack_trace", text)
}
