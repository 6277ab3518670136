package language

import (
	"testing"

	"github.com/flowbaker/copysmith/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolver_Resolve_ExplicitSelectors(t *testing.T) {
	resolver := NewResolver(ResolverOptions{})

	tests := []struct {
		name     string
		selector string
		want     domain.LanguageCode
	}{
		{name: "french", selector: "French", want: domain.LanguageFrench},
		{name: "french alias", selector: "Français", want: domain.LanguageFrench},
		{name: "british english", selector: "English (UK)", want: domain.LanguageBritishEnglish},
		{name: "american english alias", selector: "Anglais (US)", want: domain.LanguageAmericanEnglish},
		{name: "greek", selector: "Greek", want: domain.LanguageGreek},
		{name: "norwegian alias", selector: "Norvégien", want: domain.LanguageNorwegian},
		{name: "unknown selector", selector: "Klingon", want: domain.DefaultLanguage},
		{name: "empty selector", selector: "", want: domain.DefaultLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// the product name must not influence an explicit selector
			assert.Equal(t, tt.want, resolver.Resolve(tt.selector, "Λάμπα γραφείου από ξύλο"))
		})
	}
}

func TestResolver_Resolve_AutoDetect(t *testing.T) {
	resolver := NewResolver(ResolverOptions{})

	tests := []struct {
		name        string
		selector    string
		productName string
		want        domain.LanguageCode
	}{
		{
			name:        "greek script",
			selector:    domain.AutoDetectLanguage,
			productName: "Ξύλινη λάμπα γραφείου με ζεστό φως",
			want:        domain.LanguageGreek,
		},
		{
			name:        "french sentence with legacy selector",
			selector:    "Auto-détection",
			productName: "Lampe de chevet en bois massif avec abat-jour en lin naturel pour la chambre des enfants",
			want:        domain.LanguageFrench,
		},
		{
			name:        "empty name",
			selector:    domain.AutoDetectLanguage,
			productName: "",
			want:        domain.DefaultLanguage,
		},
		{
			name:        "symbols and digits only",
			selector:    domain.AutoDetectLanguage,
			productName: "12345 -- ### 42",
			want:        domain.DefaultLanguage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolver.Resolve(tt.selector, tt.productName))
		})
	}
}

func TestResolver_Detect_MinConfidence(t *testing.T) {
	resolver := NewResolver(ResolverOptions{MinConfidence: 1.1})

	assert.Equal(t, domain.DefaultLanguage, resolver.Detect("Ξύλινη λάμπα γραφείου με ζεστό φως"))
}

func TestResolver_NeverReturnsUnsupportedCode(t *testing.T) {
	resolver := NewResolver(ResolverOptions{})

	inputs := []string{
		"Деревянная настольная лампа",
		"木製のデスクランプ",
		"Tischlampe aus Holz mit warmem Licht für das Wohnzimmer",
		"x",
	}

	for _, input := range inputs {
		code := resolver.Resolve(domain.AutoDetectLanguage, input)
		assert.True(t, code.IsSupported(), "code %q for %q", code, input)
	}
}

func TestSelectorNames(t *testing.T) {
	assert.Equal(t, domain.AutoDetectLanguage, SelectorNames[len(SelectorNames)-1])

	for _, name := range SelectorNames[:len(SelectorNames)-1] {
		_, ok := Selectors[name]
		assert.True(t, ok, "selector %q has no language code", name)
	}
	assert.True(t, IsAutoDetect(domain.AutoDetectLanguage))
	assert.False(t, IsAutoDetect("French"))
}
