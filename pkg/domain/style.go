package domain

import (
	"fmt"
	"math"
)

// ShortStyle selects the template family used for the short description.
type ShortStyle string

const (
	ShortStyleSimple        ShortStyle = "simple"
	ShortStyleEmojiBenefits ShortStyle = "emoji-benefits"
)

// AutoDetectLanguage is the language selector that asks for detection from the product name.
const AutoDetectLanguage = "Auto-detect"

// Option lists offered to whoever renders the configuration form. The core accepts
// these values verbatim and interpolates them into prompts.
var (
	ToneOptions           = []string{"Very professional", "Professional", "Balanced", "Casual", "Very casual"}
	WritingStyleOptions   = []string{"Very persuasive", "Persuasive", "Balanced", "Informative", "Very informative"}
	LanguageLevelOptions  = []string{"Simple", "Standard", "Technical", "Expert"}
	TargetAgeOptions      = []string{"18-25", "25-35", "35-50", "50+", "All ages"}
	TargetGenderOptions   = []string{"Male", "Female", "All"}
	ExpertiseLevelOptions = []string{"Beginner", "Intermediate", "Advanced", "Expert", "All levels"}
	ParagraphStyleOptions = []string{"Very concise", "Concise", "Standard", "Detailed", "Very detailed"}
	HeadingStyleOptions   = []string{"Very short", "Short", "Standard", "Long", "Very long"}
	ShortStyleOptions     = []ShortStyle{ShortStyleSimple, ShortStyleEmojiBenefits}
)

const (
	MinKeywordsPerText = 1
	MaxKeywordsPerText = 5
)

// StyleConfiguration holds every writing-style and audience knob for one batch run.
// It is passed by value and never modified once a run has started.
type StyleConfiguration struct {
	TargetLanguage  string     `json:"target_language" yaml:"target_language" mapstructure:"target_language"`
	ShortStyle      ShortStyle `json:"short_style" yaml:"short_style" mapstructure:"short_style"`
	Tone            string     `json:"tone" yaml:"tone" mapstructure:"tone"`
	WritingStyle    string     `json:"writing_style" yaml:"writing_style" mapstructure:"writing_style"`
	LanguageLevel   string     `json:"language_level" yaml:"language_level" mapstructure:"language_level"`
	TargetAge       string     `json:"target_age" yaml:"target_age" mapstructure:"target_age"`
	TargetGender    string     `json:"target_gender" yaml:"target_gender" mapstructure:"target_gender"`
	ExpertiseLevel  string     `json:"expertise_level" yaml:"expertise_level" mapstructure:"expertise_level"`
	Temperature     float64    `json:"temperature" yaml:"temperature" mapstructure:"temperature"`
	KeywordsPerText int        `json:"keywords_per_text" yaml:"keywords_per_text" mapstructure:"keywords_per_text"`
	ParagraphStyle  string     `json:"paragraph_style" yaml:"paragraph_style" mapstructure:"paragraph_style"`
	HeadingStyle    string     `json:"heading_style" yaml:"heading_style" mapstructure:"heading_style"`
}

// DefaultStyle returns the configuration a fresh form starts from.
func DefaultStyle() StyleConfiguration {
	return StyleConfiguration{
		TargetLanguage:  AutoDetectLanguage,
		ShortStyle:      ShortStyleSimple,
		Tone:            "Balanced",
		WritingStyle:    "Balanced",
		LanguageLevel:   "Standard",
		TargetAge:       "All ages",
		TargetGender:    "All",
		ExpertiseLevel:  "All levels",
		Temperature:     0.7,
		KeywordsPerText: 3,
		ParagraphStyle:  "Standard",
		HeadingStyle:    "Standard",
	}
}

// WithDefaults fills every zero-valued field from DefaultStyle. Temperature is left
// alone since 0.0 is a legitimate choice.
func (s StyleConfiguration) WithDefaults() StyleConfiguration {
	d := DefaultStyle()

	if s.TargetLanguage == "" {
		s.TargetLanguage = d.TargetLanguage
	}
	if s.ShortStyle == "" {
		s.ShortStyle = d.ShortStyle
	}
	if s.Tone == "" {
		s.Tone = d.Tone
	}
	if s.WritingStyle == "" {
		s.WritingStyle = d.WritingStyle
	}
	if s.LanguageLevel == "" {
		s.LanguageLevel = d.LanguageLevel
	}
	if s.TargetAge == "" {
		s.TargetAge = d.TargetAge
	}
	if s.TargetGender == "" {
		s.TargetGender = d.TargetGender
	}
	if s.ExpertiseLevel == "" {
		s.ExpertiseLevel = d.ExpertiseLevel
	}
	if s.KeywordsPerText == 0 {
		s.KeywordsPerText = d.KeywordsPerText
	}
	if s.ParagraphStyle == "" {
		s.ParagraphStyle = d.ParagraphStyle
	}
	if s.HeadingStyle == "" {
		s.HeadingStyle = d.HeadingStyle
	}

	return s
}

// Validate checks the bounds enforced when the configuration is created.
func (s StyleConfiguration) Validate() error {
	if math.IsNaN(s.Temperature) || s.Temperature < 0 || s.Temperature > 1 {
		return fmt.Errorf("temperature must be between 0.0 and 1.0, got %v", s.Temperature)
	}

	if s.KeywordsPerText < MinKeywordsPerText || s.KeywordsPerText > MaxKeywordsPerText {
		return fmt.Errorf("keywords per text must be between %d and %d, got %d", MinKeywordsPerText, MaxKeywordsPerText, s.KeywordsPerText)
	}

	if !s.ShortStyle.IsValid() {
		return fmt.Errorf("unsupported short style: %q", s.ShortStyle)
	}

	return nil
}

func (s ShortStyle) IsValid() bool {
	for _, option := range ShortStyleOptions {
		if s == option {
			return true
		}
	}
	return false
}
