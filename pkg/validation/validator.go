package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/flowbaker/copysmith/pkg/domain"
)

const (
	paragraphOpen  = "<p>"
	paragraphClose = "</p>"
	lineBreak      = "<br>"
	bullet         = "•"

	emojiLineCount = 4
)

var (
	lineBreakPattern = regexp.MustCompile(`(?i)<br\s*/?>`)
	whitespace       = regexp.MustCompile(`\s+`)
	headingTag       = regexp.MustCompile(`(?i)<h2[\s>]`)
	paragraphTag     = regexp.MustCompile(`(?i)<p[\s>]`)
)

// Validator checks generated text against the structural contract of its variant.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// Check returns the text to store for a generated description. Only the emoji
// benefit list has a structural contract; every other variant only has to be non-empty.
func (v *Validator) Check(kind domain.ContentKind, style domain.ShortStyle, text string) (string, error) {
	text = strings.TrimSpace(text)

	if text == "" {
		return "", &domain.FormatValidationError{Kind: kind, Reason: "empty output"}
	}

	if kind == domain.ContentKindShort && style == domain.ShortStyleEmojiBenefits {
		return v.RepairEmojiList(text)
	}

	return text, nil
}

// RepairEmojiList validates a four-line emoji benefit list and re-serializes it as
// <p>line<br>line<br>line<br>line</p>. The language sentinel passes through untouched.
// Emoji presence is approximated by "contains a rune outside printable ASCII", so a
// leading accented word is accepted as well.
func (v *Validator) RepairEmojiList(text string) (string, error) {
	text = strings.TrimSpace(text)

	if IsLanguageSentinel(text) {
		return text, nil
	}

	if !strings.HasPrefix(text, paragraphOpen) || !strings.HasSuffix(text, paragraphClose) {
		return "", emojiError("missing enclosing paragraph tag")
	}

	inner := strings.TrimSuffix(strings.TrimPrefix(text, paragraphOpen), paragraphClose)

	segments := nonEmptySegments(lineBreakPattern.Split(inner, -1))
	if len(segments) != emojiLineCount {
		segments = nonEmptySegments(strings.Split(inner, bullet))
	}

	if len(segments) != emojiLineCount {
		return "", emojiError("expected exactly four lines")
	}

	for _, segment := range segments {
		if !leadingTokenHasNonASCII(segment) {
			return "", emojiError("line does not start with an emoji: " + segment)
		}
	}

	return paragraphOpen + strings.Join(segments, lineBreak) + paragraphClose, nil
}

// IsLanguageSentinel reports whether the model declined to write in the requested language.
func IsLanguageSentinel(text string) bool {
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(strings.TrimPrefix(text, paragraphOpen), paragraphClose)
	text = strings.Trim(strings.TrimSpace(text), `."'`)

	return strings.EqualFold(text, domain.LanguageNotSupported)
}

// Shape counts the structural tags of a long description.
type Shape struct {
	Headings   int
	Paragraphs int
}

func (s Shape) IsTwoSections() bool {
	return s.Headings == 2 && s.Paragraphs == 2
}

func LongShape(text string) Shape {
	return Shape{
		Headings:   len(headingTag.FindAllStringIndex(text, -1)),
		Paragraphs: len(paragraphTag.FindAllStringIndex(text, -1)),
	}
}

func nonEmptySegments(parts []string) []string {
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(whitespace.ReplaceAllString(part, " "))
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

func leadingTokenHasNonASCII(segment string) bool {
	token := segment
	if idx := strings.IndexFunc(segment, unicode.IsSpace); idx > 0 {
		token = segment[:idx]
	}

	for _, r := range token {
		if r < 0x20 || r > 0x7e {
			return true
		}
	}
	return false
}

func emojiError(reason string) error {
	return &domain.FormatValidationError{Kind: domain.ContentKindShort, Reason: reason}
}
