package stacktrace

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/thanhminhmr/go-errtrace/exception"
)

const (
	causedBy   = "Caused by: "
	wrappedBy  = "Wrapped by: "
	suppressed = "Suppressed: "
	ellipsis   = "..."
	indentUnit = "\t"

	// rootIndent is the indent of the frames of the top level error; its header
	// is written one level to the left.
	rootIndent = 1

	errInvariant = exception.String("stack trace invariant violated")
)

// Formatter renders errors to text according to a Policy. A Formatter is
// immutable and safe for concurrent use.
type Formatter struct {
	policy *Policy
	hasher *Hasher
}

// NewFormatter returns a Formatter for the policy. A nil policy is the
// DefaultPolicy. Inline hashes use the hash filter of the policy.
func NewFormatter(policy *Policy) *Formatter {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &Formatter{
		policy: policy,
		hasher: NewHasher(policy.hashFilter),
	}
}

func (f *Formatter) Policy() *Policy {
	return f.policy
}

// Excludes reports whether any evaluator of the policy matches the event.
func (f *Formatter) Excludes(event *Event) bool {
	for _, evaluator := range f.policy.evaluators {
		if evaluator.Evaluate(event) {
			return true
		}
	}
	return false
}

// Format renders the error of the event. It returns an empty string when the
// event has no error or when an evaluator matches the event.
func (f *Formatter) Format(event Event) string {
	if event.Error == nil || f.Excludes(&event) {
		return ""
	}
	return f.FormatRecord(f.Record(event.Error))
}

// Record converts err, adding packaging data when the policy asks for it.
func (f *Formatter) Record(err error) *Record {
	record := FromError(err)
	if f.policy.packagingData {
		record.WithPackaging()
	}
	return record
}

// FormatRecord renders the record tree. Evaluators are not consulted.
func (f *Formatter) FormatRecord(record *Record) string {
	if record == nil {
		return ""
	}
	w := writer{policy: f.policy, hasher: f.hasher}
	if f.policy.rootCauseFirst {
		w.rootCauseFirst(record)
	} else {
		w.rootCauseLast("", rootIndent, record, nil, true)
	}
	return w.finish()
}

// ========================================

// writer holds the scratch buffer of one rendering.
type writer struct {
	policy  *Policy
	hasher  *Hasher
	builder strings.Builder
}

func (w *writer) exceeded() bool {
	// a text is never longer in characters than in bytes
	return w.policy.limited(w.builder.Len()) &&
		w.policy.limited(utf8.RuneCountInString(w.builder.String()))
}

// rootCauseLast writes the record, its suppressed errors and then its causes.
func (w *writer) rootCauseLast(prefix string, indent int, record *Record, enclosing *Record, inline bool) {
	for ; record != nil; record, enclosing, prefix = record.Cause, record, causedBy {
		if w.exceeded() {
			return
		}
		w.record(prefix, indent, record, enclosing, inline)
	}
}

// rootCauseFirst writes the deepest cause first and then each error wrapping
// it. Suppressed errors keep the root cause last order.
func (w *writer) rootCauseFirst(root *Record) {
	chain := root.causeChain()
	for index := len(chain) - 1; index >= 0; index-- {
		if w.exceeded() {
			return
		}
		var enclosing *Record
		if index > 0 {
			enclosing = chain[index-1]
		}
		prefix := wrappedBy
		if index == len(chain)-1 {
			prefix = ""
		}
		w.record(prefix, rootIndent, chain[index], enclosing, true)
	}
}

// record writes the header and the frames of one error followed by its
// suppressed errors.
func (w *writer) record(prefix string, indent int, record *Record, enclosing *Record, inline bool) {
	w.header(prefix, indent, record, inline)
	w.frames(indent, record, enclosing)
	for _, child := range record.Suppressed {
		w.rootCauseLast(suppressed, indent+1, child, record, false)
	}
}

func (w *writer) header(prefix string, indent int, record *Record, inline bool) {
	w.indent(indent - 1)
	w.builder.WriteString(prefix)
	if inline && w.policy.inlineHash {
		w.builder.WriteString("<#")
		w.builder.WriteString(w.hasher.Hash(record))
		w.builder.WriteString("> ")
	}
	w.builder.WriteString(w.policy.abbreviate(record.Type))
	if record.Message != "" {
		w.builder.WriteString(": ")
		w.builder.WriteString(record.Message)
	}
	w.builder.WriteString(w.policy.lineSeparator)
}

// frames writes the frames of the record that are not shared with the
// enclosing record, then the trailer that accounts for the frames left out.
func (w *writer) frames(indent int, record *Record, enclosing *Record) {
	if w.exceeded() {
		return
	}
	frames := record.Frames
	common := 0
	if w.policy.omitCommonFrames && enclosing != nil {
		common = commonFrames(frames, enclosing.Frames)
	}
	limit := len(frames) - common
	maxDepth := w.policy.maxDepthPerThrowable
	reached := func(appended int) bool {
		return maxDepth != Unlimited && appended >= maxDepth
	}

	var previous *Frame
	appended, excluded := 0, 0
	truncated := false
	index := 0
	for ; index < limit; index++ {
		if reached(appended) {
			truncated = true
			break
		}
		frame := &frames[index]
		truncateAfter := matchesAny(w.policy.truncateAfter, frame)
		if !truncateAfter && matchesAny(w.policy.excludes, frame) {
			excluded++
			continue
		}
		switch {
		case excluded == 1:
			// a lone excluded frame takes as much room as its summary
			w.frame(indent, &frames[index-1], previous)
			previous = &frames[index-1]
			appended++
			if reached(appended) {
				excluded = 0
				truncated = true
			}
		case excluded > 1:
			w.trailer(indent, excluded, " frames excluded")
		}
		excluded = 0
		if truncated {
			break
		}
		w.frame(indent, frame, previous)
		previous = frame
		appended++
		if truncateAfter {
			index++
			truncated = index < limit
			break
		}
	}
	switch {
	case excluded == 1:
		w.frame(indent, &frames[index-1], previous)
	case excluded > 1:
		w.trailer(indent, excluded, " frames excluded")
	}

	remaining := len(frames) - index
	if remaining < 0 || remaining < common {
		exception.Panic(errInvariant.SetMessage("%d frames remaining with %d common frames", remaining, common))
	}
	switch {
	case truncated && common > 0:
		w.indent(indent)
		w.builder.WriteString(ellipsis + " ")
		w.builder.WriteString(strconv.Itoa(remaining))
		w.builder.WriteString(" frames truncated (including ")
		w.builder.WriteString(strconv.Itoa(common))
		w.builder.WriteString(" common frames)")
		w.builder.WriteString(w.policy.lineSeparator)
	case truncated:
		w.trailer(indent, remaining, " frames truncated")
	case common > 0:
		w.trailer(indent, common, " common frames omitted")
	}
}

// frame writes "at class.method(file:line)", followed by the packaging when it
// differs from the one of the previously written frame.
func (w *writer) frame(indent int, frame *Frame, previous *Frame) {
	w.indent(indent)
	w.builder.WriteString("at ")
	if frame.Class != "" {
		w.builder.WriteString(w.policy.abbreviate(frame.Class))
		w.builder.WriteByte('.')
	}
	w.builder.WriteString(frame.Method)
	w.builder.WriteByte('(')
	switch {
	case frame.File == "":
		w.builder.WriteString("Unknown Source")
	case frame.Line > 0:
		w.builder.WriteString(frame.File)
		w.builder.WriteByte(':')
		w.builder.WriteString(strconv.Itoa(frame.Line))
	default:
		w.builder.WriteString(frame.File)
	}
	w.builder.WriteByte(')')
	if frame.Packaging != nil && (previous == nil || !samePackaging(frame.Packaging, previous.Packaging)) {
		w.builder.WriteString(" [")
		w.builder.WriteString(frame.Packaging.String())
		w.builder.WriteByte(']')
	}
	w.builder.WriteString(w.policy.lineSeparator)
}

// trailer writes "... <count><text>".
func (w *writer) trailer(indent int, count int, text string) {
	w.indent(indent)
	w.builder.WriteString(ellipsis + " ")
	w.builder.WriteString(strconv.Itoa(count))
	w.builder.WriteString(text)
	w.builder.WriteString(w.policy.lineSeparator)
}

func (w *writer) indent(indent int) {
	for range indent {
		w.builder.WriteString(indentUnit)
	}
}

// finish applies the max length, counted in characters: a longer text is cut
// so that, followed by the ellipsis and the line separator, it is exactly max
// length characters long.
func (w *writer) finish() string {
	text := w.builder.String()
	if !w.policy.limited(utf8.RuneCountInString(text)) {
		return text
	}
	tail := ellipsis + w.policy.lineSeparator
	keep := w.policy.maxLength - utf8.RuneCountInString(tail)
	if keep < 0 {
		runes := []rune(tail)
		return string(runes[len(runes)-w.policy.maxLength:])
	}
	cut := 0
	for range keep {
		_, size := utf8.DecodeRuneInString(text[cut:])
		cut += size
	}
	return text[:cut] + tail
}
