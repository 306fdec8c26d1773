package filter

import (
	"regexp"
	"strings"
)

// Filter decides whether a raw message is worth classifying at all.
// It is pure and safe for concurrent use.
type Filter struct {
	maxLength int
	noiseRe   []*regexp.Regexp
	commandRe []*regexp.Regexp
	mentionRe *regexp.Regexp
}

// New creates a message filter. maxLength <= 0 falls back to DefaultMaxLength.
func New(maxLength int) *Filter {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	f := &Filter{
		maxLength: maxLength,
		mentionRe: regexp.MustCompile(`@\w+_bot\b`),
	}
	for _, p := range noisePatterns {
		f.noiseRe = append(f.noiseRe, regexp.MustCompile(`(?i)`+p))
	}
	for _, p := range commandPatterns {
		f.commandRe = append(f.commandRe, regexp.MustCompile(`(?i)`+p))
	}
	return f
}

// IsNoise reports whether the message is pure noise.
func (f *Filter) IsNoise(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < MinLength {
		return true
	}

	lowered := strings.ToLower(trimmed)
	for _, re := range f.noiseRe {
		if re.MatchString(lowered) {
			return true
		}
	}
	for _, re := range f.commandRe {
		if re.MatchString(lowered) {
			return true
		}
	}
	return false
}

// IsTooLong reports whether the message exceeds the processing limit.
func (f *Filter) IsTooLong(text string) bool {
	return len([]rune(text)) > f.maxLength
}

// ShouldProcess determines whether the message should enter the pipeline.
// The second return value is the rejection reason when the first is false.
func (f *Filter) ShouldProcess(text string) (bool, string) {
	if strings.TrimSpace(text) == "" {
		return false, ReasonEmpty
	}
	if f.IsNoise(text) {
		return false, ReasonNoise
	}
	if f.IsTooLong(text) {
		return false, ReasonTooLong
	}
	return true, ""
}

// Clean normalizes message text for extraction: strips bot mentions,
// collapses whitespace runs and trims the edges.
func (f *Filter) Clean(text string) string {
	cleaned := f.mentionRe.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(cleaned), " ")
}
