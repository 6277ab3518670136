package domain

// LanguageCode is one of the fixed codes the prompt templates know how to name.
type LanguageCode string

const (
	LanguageFrench          LanguageCode = "fr"
	LanguageAmericanEnglish LanguageCode = "en_us"
	LanguageBritishEnglish  LanguageCode = "en_uk"
	LanguageSpanish         LanguageCode = "es"
	LanguageGerman          LanguageCode = "de"
	LanguageItalian         LanguageCode = "it"
	LanguagePortuguese      LanguageCode = "pt"
	LanguageDutch           LanguageCode = "nl"
	LanguagePolish          LanguageCode = "pl"
	LanguageGreek           LanguageCode = "el"
	LanguageTurkish         LanguageCode = "tr"
	LanguageRomanian        LanguageCode = "ro"
	LanguageNorwegian       LanguageCode = "no"
	LanguageSwedish         LanguageCode = "sv"
	DefaultLanguage                      = LanguageAmericanEnglish
)

// SupportedLanguages is ordered the way selectors are presented.
var SupportedLanguages = []LanguageCode{
	LanguageFrench,
	LanguageAmericanEnglish,
	LanguageBritishEnglish,
	LanguageSpanish,
	LanguageGerman,
	LanguageItalian,
	LanguagePortuguese,
	LanguageDutch,
	LanguagePolish,
	LanguageGreek,
	LanguageTurkish,
	LanguageRomanian,
	LanguageNorwegian,
	LanguageSwedish,
}

var languageFullNames = map[LanguageCode]string{
	LanguageFrench:          "FRENCH",
	LanguageAmericanEnglish: "AMERICAN ENGLISH",
	LanguageBritishEnglish:  "BRITISH ENGLISH",
	LanguageSpanish:         "SPANISH",
	LanguageGerman:          "GERMAN",
	LanguageItalian:         "ITALIAN",
	LanguagePortuguese:      "PORTUGUESE",
	LanguageDutch:           "DUTCH",
	LanguagePolish:          "POLISH",
	LanguageGreek:           "GREEK",
	LanguageTurkish:         "TURKISH",
	LanguageRomanian:        "ROMANIAN",
	LanguageNorwegian:       "NORWEGIAN",
	LanguageSwedish:         "SWEDISH",
}

// FullName returns the English language name embedded in prompts. Codes outside the
// supported set resolve to the default language's name.
func (c LanguageCode) FullName() string {
	if name, ok := languageFullNames[c]; ok {
		return name
	}
	return languageFullNames[DefaultLanguage]
}

func (c LanguageCode) IsSupported() bool {
	_, ok := languageFullNames[c]
	return ok
}

func (c LanguageCode) String() string {
	return string(c)
}
