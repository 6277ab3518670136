package domain

// ContentKind is the description being requested for a product.
type ContentKind string

const (
	ContentKindShort ContentKind = "short"
	ContentKindLong  ContentKind = "long"
)

// Output budgets per content kind. They do not vary per row.
const (
	ShortMaxTokens = 300
	LongMaxTokens  = 1000
)

func (k ContentKind) MaxTokens() int {
	if k == ContentKindLong {
		return LongMaxTokens
	}
	return ShortMaxTokens
}

// LanguageNotSupported is what the model is told to answer when it cannot write in
// the requested language.
const LanguageNotSupported = "language not supported"

// GenerationRequest is a single call to the text generation service.
type GenerationRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}
