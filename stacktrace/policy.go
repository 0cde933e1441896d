package stacktrace

import (
	"regexp"
	"slices"

	"github.com/thanhminhmr/go-errtrace/exception"
)

// Unlimited disables a numeric limit.
const Unlimited = -1

const (
	DefaultMaxDepthPerThrowable     = Unlimited
	DefaultMaxLength                = Unlimited
	DefaultShortenedClassNameLength = Unlimited

	ShortMaxDepthPerThrowable     = 3
	ShortMaxLength                = 1024
	ShortShortenedClassNameLength = 10

	DefaultLineSeparator = "\n"
	// InlineLineSeparator keeps the whole stack trace on one line.
	InlineLineSeparator = `\n`
)

const (
	ErrInvalidConfiguration = exception.String("invalid configuration")
	ErrPolicyBuilt          = exception.String("policy already built")
)

// Policy controls how a Formatter renders errors. It is immutable; use a
// PolicyBuilder to create one.
type Policy struct {
	maxDepthPerThrowable     int
	maxLength                int
	shortenedClassNameLength int
	rootCauseFirst           bool
	omitCommonFrames         bool
	inlineHash               bool
	packagingData            bool
	lineSeparator            string
	truncateAfter            []*regexp.Regexp
	excludes                 []*regexp.Regexp
	evaluators               []Evaluator
	abbreviator              Abbreviator
	hashFilter               Filter
}

// DefaultPolicy returns the policy of a PolicyBuilder left untouched.
func DefaultPolicy() *Policy {
	return NewPolicyBuilder().Build()
}

func (p *Policy) MaxDepthPerThrowable() int     { return p.maxDepthPerThrowable }
func (p *Policy) MaxLength() int                { return p.maxLength }
func (p *Policy) ShortenedClassNameLength() int { return p.shortenedClassNameLength }
func (p *Policy) RootCauseFirst() bool          { return p.rootCauseFirst }
func (p *Policy) OmitCommonFrames() bool        { return p.omitCommonFrames }
func (p *Policy) InlineHash() bool              { return p.inlineHash }
func (p *Policy) PackagingData() bool           { return p.packagingData }
func (p *Policy) LineSeparator() string         { return p.lineSeparator }

// TruncateAfter returns the truncate-after patterns in the order they were added.
func (p *Policy) TruncateAfter() []string {
	return patternStrings(p.truncateAfter)
}

// Excludes returns the exclusion patterns in the order they were added.
func (p *Policy) Excludes() []string {
	return patternStrings(p.excludes)
}

func (p *Policy) Evaluators() []Evaluator {
	return slices.Clone(p.evaluators)
}

// Abbreviator returns the class name abbreviator, or nil when class names are
// rendered in full.
func (p *Policy) Abbreviator() Abbreviator {
	return p.abbreviator
}

// HashFilter returns the filter of the frames that take part in stack hashes.
func (p *Policy) HashFilter() Filter {
	return p.hashFilter
}

func (p *Policy) abbreviate(name string) string {
	if p.abbreviator == nil {
		return name
	}
	return p.abbreviator.Abbreviate(name)
}

func (p *Policy) limited(length int) bool {
	return p.maxLength != Unlimited && length > p.maxLength
}

func patternStrings(patterns []*regexp.Regexp) []string {
	values := make([]string, len(patterns))
	for index, pattern := range patterns {
		values[index] = pattern.String()
	}
	return values
}

// ========================================

// PolicyBuilder collects the settings of a Policy. Every setter validates its
// argument immediately, and fails with ErrPolicyBuilt once Build was called.
type PolicyBuilder struct {
	policy      Policy
	abbreviator Abbreviator
	hashFilter  Filter
	built       bool
}

func NewPolicyBuilder() *PolicyBuilder {
	return &PolicyBuilder{
		policy: Policy{
			maxDepthPerThrowable:     DefaultMaxDepthPerThrowable,
			maxLength:                DefaultMaxLength,
			shortenedClassNameLength: DefaultShortenedClassNameLength,
			omitCommonFrames:         true,
			lineSeparator:            DefaultLineSeparator,
		},
	}
}

// SetMaxDepthPerThrowable limits the number of frames rendered for each error.
// The depth must be positive or Unlimited.
func (b *PolicyBuilder) SetMaxDepthPerThrowable(depth int) error {
	if err := b.check(); err != nil {
		return err
	}
	if depth <= 0 && depth != Unlimited {
		return ErrInvalidConfiguration.SetMessage("max depth per throwable must be positive or %d, got %d", Unlimited, depth)
	}
	b.policy.maxDepthPerThrowable = depth
	return nil
}

// SetMaxLength limits the length of the rendered text. The length must be
// positive or Unlimited.
func (b *PolicyBuilder) SetMaxLength(length int) error {
	if err := b.check(); err != nil {
		return err
	}
	if length <= 0 && length != Unlimited {
		return ErrInvalidConfiguration.SetMessage("max length must be positive or %d, got %d", Unlimited, length)
	}
	b.policy.maxLength = length
	return nil
}

// SetShortenedClassNameLength sets the target length of abbreviated class names.
// Zero and Unlimited render class names in full.
func (b *PolicyBuilder) SetShortenedClassNameLength(length int) error {
	if err := b.check(); err != nil {
		return err
	}
	if length < 0 && length != Unlimited {
		return ErrInvalidConfiguration.SetMessage("shortened class name length must not be negative or must be %d, got %d", Unlimited, length)
	}
	if length == 0 {
		length = Unlimited
	}
	b.policy.shortenedClassNameLength = length
	return nil
}

// SetAbbreviator replaces the abbreviator derived from the shortened class name
// length. A nil abbreviator restores it.
func (b *PolicyBuilder) SetAbbreviator(abbreviator Abbreviator) error {
	if err := b.check(); err != nil {
		return err
	}
	b.abbreviator = abbreviator
	return nil
}

func (b *PolicyBuilder) SetRootCauseFirst(rootCauseFirst bool) error {
	if err := b.check(); err != nil {
		return err
	}
	b.policy.rootCauseFirst = rootCauseFirst
	return nil
}

func (b *PolicyBuilder) SetOmitCommonFrames(omitCommonFrames bool) error {
	if err := b.check(); err != nil {
		return err
	}
	b.policy.omitCommonFrames = omitCommonFrames
	return nil
}

// SetInlineHash prefixes each error of the cause chain with its stack hash.
func (b *PolicyBuilder) SetInlineHash(inlineHash bool) error {
	if err := b.check(); err != nil {
		return err
	}
	b.policy.inlineHash = inlineHash
	return nil
}

// SetPackagingData appends the module and version to the rendered frames.
func (b *PolicyBuilder) SetPackagingData(packagingData bool) error {
	if err := b.check(); err != nil {
		return err
	}
	b.policy.packagingData = packagingData
	return nil
}

// SetLineSeparator sets the separator written after each line. An empty
// separator restores DefaultLineSeparator.
func (b *PolicyBuilder) SetLineSeparator(separator string) error {
	if err := b.check(); err != nil {
		return err
	}
	if separator == "" {
		separator = DefaultLineSeparator
	}
	b.policy.lineSeparator = separator
	return nil
}

// AddTruncateAfter stops rendering the frames of an error after the first frame
// whose "class.method" contains a match of the pattern.
func (b *PolicyBuilder) AddTruncateAfter(pattern string) error {
	compiled, err := b.compile(pattern)
	if err != nil {
		return err
	}
	b.policy.truncateAfter = append(b.policy.truncateAfter, compiled)
	return nil
}

// AddExclude hides frames whose "class.method" contains a match of the pattern,
// when at least two of them follow each other.
func (b *PolicyBuilder) AddExclude(pattern string) error {
	compiled, err := b.compile(pattern)
	if err != nil {
		return err
	}
	b.policy.excludes = append(b.policy.excludes, compiled)
	return nil
}

// SetHashFilter sets the filter of the frames that take part in inline stack
// hashes. A nil filter restores DefaultFilter.
func (b *PolicyBuilder) SetHashFilter(filter Filter) error {
	if err := b.check(); err != nil {
		return err
	}
	b.hashFilter = filter
	return nil
}

// AddEvaluator adds an evaluator; the stack trace of an event matched by any
// evaluator is rendered as an empty string.
func (b *PolicyBuilder) AddEvaluator(evaluator Evaluator) error {
	if err := b.check(); err != nil {
		return err
	}
	if evaluator == nil {
		return ErrInvalidConfiguration.SetMessage("evaluator must not be nil")
	}
	b.policy.evaluators = append(b.policy.evaluators, evaluator)
	return nil
}

// Build freezes the builder and returns the Policy.
func (b *PolicyBuilder) Build() *Policy {
	b.built = true
	policy := b.policy
	policy.truncateAfter = slices.Clone(b.policy.truncateAfter)
	policy.excludes = slices.Clone(b.policy.excludes)
	policy.evaluators = slices.Clone(b.policy.evaluators)
	switch {
	case b.abbreviator != nil:
		policy.abbreviator = b.abbreviator
	case policy.shortenedClassNameLength != Unlimited:
		policy.abbreviator = TargetLengthAbbreviator(policy.shortenedClassNameLength)
	}
	policy.hashFilter = b.hashFilter
	if policy.hashFilter == nil {
		policy.hashFilter = DefaultFilter()
	}
	return &policy
}

func (b *PolicyBuilder) check() error {
	if b.built {
		return ErrPolicyBuilt
	}
	return nil
}

func (b *PolicyBuilder) compile(pattern string) (*regexp.Regexp, error) {
	if err := b.check(); err != nil {
		return nil, err
	}
	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return nil, ErrInvalidConfiguration.SetMessage("invalid pattern %q", pattern).AddCause(err)
	}
	return compiled, nil
}
