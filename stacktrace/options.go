package stacktrace

import (
	"strconv"

	"go.uber.org/multierr"
)

// Option values understood by ParseOptions.
const (
	OptionFull             = "full"
	OptionShort            = "short"
	OptionRootFirst        = "rootFirst"
	OptionInlineHash       = "inlineHash"
	OptionInline           = "inline"
	OptionOmitCommonFrames = "omitCommonFrames"
	OptionKeepCommonFrames = "keepCommonFrames"
)

// ParseOptions applies a compact option list to the builder:
//
//	[maxDepthPerThrowable, shortenedClassNameLength, maxLength, flags or names...]
//
// The first three options are "full", "short" or a number; a value that is
// none of those leaves the default. The following options are the flags
// rootFirst, inlineHash, inline, omitCommonFrames and keepCommonFrames, the
// name of an evaluator in evaluators, or else an exclusion pattern. Every
// option is applied; the errors of those that could not be are combined.
func ParseOptions(builder *PolicyBuilder, options []string, evaluators map[string]Evaluator) error {
	var err error
	for index, option := range options {
		switch index {
		case 0:
			err = multierr.Append(err, builder.SetMaxDepthPerThrowable(
				parseLimit(option, ShortMaxDepthPerThrowable, DefaultMaxDepthPerThrowable)))
		case 1:
			err = multierr.Append(err, builder.SetShortenedClassNameLength(
				parseLimit(option, ShortShortenedClassNameLength, DefaultShortenedClassNameLength)))
		case 2:
			err = multierr.Append(err, builder.SetMaxLength(
				parseLimit(option, ShortMaxLength, DefaultMaxLength)))
		default:
			err = multierr.Append(err, parseFlag(builder, option, evaluators))
		}
	}
	return err
}

func parseLimit(option string, short int, fallback int) int {
	switch option {
	case OptionFull:
		return Unlimited
	case OptionShort:
		return short
	}
	value, err := strconv.Atoi(option)
	if err != nil {
		return fallback
	}
	return value
}

func parseFlag(builder *PolicyBuilder, option string, evaluators map[string]Evaluator) error {
	switch option {
	case OptionRootFirst:
		return builder.SetRootCauseFirst(true)
	case OptionInlineHash:
		return builder.SetInlineHash(true)
	case OptionInline:
		return builder.SetLineSeparator(InlineLineSeparator)
	case OptionOmitCommonFrames:
		return builder.SetOmitCommonFrames(true)
	case OptionKeepCommonFrames:
		return builder.SetOmitCommonFrames(false)
	}
	if evaluator, exists := evaluators[option]; exists {
		return builder.AddEvaluator(evaluator)
	}
	return builder.AddExclude(option)
}
