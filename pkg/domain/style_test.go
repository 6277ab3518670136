package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyleConfiguration_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(s *StyleConfiguration)
		wantErr bool
	}{
		{name: "defaults", modify: func(s *StyleConfiguration) {}},
		{name: "temperature zero", modify: func(s *StyleConfiguration) { s.Temperature = 0 }},
		{name: "temperature one", modify: func(s *StyleConfiguration) { s.Temperature = 1 }},
		{name: "temperature above one", modify: func(s *StyleConfiguration) { s.Temperature = 1.2 }, wantErr: true},
		{name: "negative temperature", modify: func(s *StyleConfiguration) { s.Temperature = -0.1 }, wantErr: true},
		{name: "temperature not a number", modify: func(s *StyleConfiguration) { s.Temperature = math.NaN() }, wantErr: true},
		{name: "one keyword", modify: func(s *StyleConfiguration) { s.KeywordsPerText = 1 }},
		{name: "five keywords", modify: func(s *StyleConfiguration) { s.KeywordsPerText = 5 }},
		{name: "six keywords", modify: func(s *StyleConfiguration) { s.KeywordsPerText = 6 }, wantErr: true},
		{name: "no keywords", modify: func(s *StyleConfiguration) { s.KeywordsPerText = 0 }, wantErr: true},
		{name: "emoji style", modify: func(s *StyleConfiguration) { s.ShortStyle = ShortStyleEmojiBenefits }},
		{name: "unknown short style", modify: func(s *StyleConfiguration) { s.ShortStyle = "haiku" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := DefaultStyle()
			tt.modify(&style)

			err := style.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStyleConfiguration_WithDefaults(t *testing.T) {
	style := StyleConfiguration{
		TargetLanguage: "French",
		Tone:           "Casual",
		Temperature:    0,
	}.WithDefaults()

	assert.Equal(t, "French", style.TargetLanguage)
	assert.Equal(t, "Casual", style.Tone)
	assert.Equal(t, ShortStyleSimple, style.ShortStyle)
	assert.Equal(t, 3, style.KeywordsPerText)
	assert.Equal(t, "Standard", style.HeadingStyle)
	assert.Equal(t, 0.0, style.Temperature)
	assert.NoError(t, style.Validate())
}

func TestLanguageCode_FullName(t *testing.T) {
	assert.Equal(t, "FRENCH", LanguageFrench.FullName())
	assert.Equal(t, "BRITISH ENGLISH", LanguageBritishEnglish.FullName())
	assert.Equal(t, "AMERICAN ENGLISH", LanguageCode("xx").FullName())
	assert.False(t, LanguageCode("xx").IsSupported())

	for _, code := range SupportedLanguages {
		assert.True(t, code.IsSupported(), code.String())
	}
}
