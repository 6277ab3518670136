package language

import (
	"strings"
	"unicode"

	"github.com/abadojack/whatlanggo"
	"github.com/flowbaker/copysmith/pkg/domain"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Selectors maps every configurable language selector to its code. The French labels
// are the ones exported by the first version of the product form and are still accepted.
var Selectors = map[string]domain.LanguageCode{
	"French":       domain.LanguageFrench,
	"English (US)": domain.LanguageAmericanEnglish,
	"English (UK)": domain.LanguageBritishEnglish,
	"Spanish":      domain.LanguageSpanish,
	"German":       domain.LanguageGerman,
	"Italian":      domain.LanguageItalian,
	"Portuguese":   domain.LanguagePortuguese,
	"Dutch":        domain.LanguageDutch,
	"Polish":       domain.LanguagePolish,
	"Greek":        domain.LanguageGreek,
	"Turkish":      domain.LanguageTurkish,
	"Romanian":     domain.LanguageRomanian,
	"Norwegian":    domain.LanguageNorwegian,
	"Swedish":      domain.LanguageSwedish,

	"Français":     domain.LanguageFrench,
	"Anglais (US)": domain.LanguageAmericanEnglish,
	"Anglais (UK)": domain.LanguageBritishEnglish,
	"Espagnol":     domain.LanguageSpanish,
	"Allemand":     domain.LanguageGerman,
	"Italien":      domain.LanguageItalian,
	"Portugais":    domain.LanguagePortuguese,
	"Néerlandais":  domain.LanguageDutch,
	"Polonais":     domain.LanguagePolish,
	"Grec":         domain.LanguageGreek,
	"Turc":         domain.LanguageTurkish,
	"Roumain":      domain.LanguageRomanian,
	"Norvégien":    domain.LanguageNorwegian,
	"Suédois":      domain.LanguageSwedish,
}

// SelectorNames lists the English selectors in presentation order, auto-detect last.
var SelectorNames = []string{
	"French",
	"English (US)",
	"English (UK)",
	"Spanish",
	"German",
	"Italian",
	"Portuguese",
	"Dutch",
	"Polish",
	"Greek",
	"Turkish",
	"Romanian",
	"Norwegian",
	"Swedish",
	domain.AutoDetectLanguage,
}

var autoDetectSelectors = map[string]bool{
	domain.AutoDetectLanguage: true,
	"Auto-détection":          true,
}

// detectable is both the detection whitelist and the mapping back to codes. British
// English cannot be told apart from American English, so English maps to the default.
var detectable = map[whatlanggo.Lang]domain.LanguageCode{
	whatlanggo.Fra: domain.LanguageFrench,
	whatlanggo.Eng: domain.LanguageAmericanEnglish,
	whatlanggo.Spa: domain.LanguageSpanish,
	whatlanggo.Deu: domain.LanguageGerman,
	whatlanggo.Ita: domain.LanguageItalian,
	whatlanggo.Por: domain.LanguagePortuguese,
	whatlanggo.Nld: domain.LanguageDutch,
	whatlanggo.Pol: domain.LanguagePolish,
	whatlanggo.Ell: domain.LanguageGreek,
	whatlanggo.Tur: domain.LanguageTurkish,
	whatlanggo.Ron: domain.LanguageRomanian,
	whatlanggo.Nob: domain.LanguageNorwegian,
	whatlanggo.Swe: domain.LanguageSwedish,
}

// Resolver turns a language selector and a product name into a language code.
// It never fails: anything it cannot place resolves to domain.DefaultLanguage.
type Resolver struct {
	// MinConfidence discards detections below this confidence. Zero keeps every
	// detection whatlanggo is willing to make.
	MinConfidence float64

	logger  zerolog.Logger
	options whatlanggo.Options
}

type ResolverOptions struct {
	MinConfidence float64
	Logger        *zerolog.Logger
}

func NewResolver(opts ResolverOptions) *Resolver {
	whitelist := make(map[whatlanggo.Lang]bool, len(detectable))
	for lang := range detectable {
		whitelist[lang] = true
	}

	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	return &Resolver{
		MinConfidence: opts.MinConfidence,
		logger:        logger,
		options:       whatlanggo.Options{Whitelist: whitelist},
	}
}

// IsAutoDetect reports whether selector asks for detection.
func IsAutoDetect(selector string) bool {
	return autoDetectSelectors[selector]
}

func (r *Resolver) Resolve(selector, productName string) domain.LanguageCode {
	if IsAutoDetect(selector) {
		return r.Detect(productName)
	}

	if code, ok := Selectors[selector]; ok {
		return code
	}

	r.logger.Debug().Str("selector", selector).Msg("Unknown language selector, using default language")

	return domain.DefaultLanguage
}

// Detect identifies the language of text among the supported languages.
func (r *Resolver) Detect(text string) domain.LanguageCode {
	text = strings.TrimSpace(text)

	if !hasLetter(text) {
		return domain.DefaultLanguage
	}

	info := whatlanggo.DetectWithOptions(text, r.options)

	code, ok := detectable[info.Lang]
	if !ok || info.Confidence <= 0 || info.Confidence < r.MinConfidence {
		r.logger.Debug().
			Str("text", text).
			Float64("confidence", info.Confidence).
			Msg("Language detection inconclusive, using default language")

		return domain.DefaultLanguage
	}

	return code
}

func hasLetter(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
