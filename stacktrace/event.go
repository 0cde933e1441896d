package stacktrace

import (
	"errors"

	"github.com/rs/zerolog"
)

// Event is the log event an error is rendered for.
type Event struct {
	Level   zerolog.Level
	Message string
	Error   error
}

// Evaluator decides whether the stack trace of an event is left out.
type Evaluator interface {
	Evaluate(event *Event) bool
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(event *Event) bool

func (f EvaluatorFunc) Evaluate(event *Event) bool {
	return f(event)
}

// MatchError returns an Evaluator that matches events whose error is one of
// the targets, as reported by errors.Is.
func MatchError(targets ...error) Evaluator {
	return EvaluatorFunc(func(event *Event) bool {
		for _, target := range targets {
			if errors.Is(event.Error, target) {
				return true
			}
		}
		return false
	})
}

// BelowLevel returns an Evaluator that matches events logged below level.
func BelowLevel(level zerolog.Level) Evaluator {
	return EvaluatorFunc(func(event *Event) bool {
		return event.Level < level
	})
}
