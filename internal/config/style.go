package config

import (
	"bytes"
	"fmt"

	"github.com/flowbaker/copysmith/pkg/domain"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// LoadStyleFile reads a style preset and lays it over base. Keys absent from the file
// keep the value from base; an explicit temperature of 0 is kept.
func LoadStyleFile(fs afero.Fs, path string, base domain.StyleConfiguration) (domain.StyleConfiguration, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return base, fmt.Errorf("failed to read style file %s: %w", path, err)
	}

	style := base

	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)

	if err := decoder.Decode(&style); err != nil {
		return base, fmt.Errorf("failed to parse style file %s: %w", path, err)
	}

	style = style.WithDefaults()

	if err := style.Validate(); err != nil {
		return base, fmt.Errorf("invalid style file %s: %w", path, err)
	}

	return style, nil
}

// StyleOverrides carries per-run overrides. Nil fields leave the style unchanged.
type StyleOverrides struct {
	TargetLanguage  *string
	ShortStyle      *string
	Tone            *string
	WritingStyle    *string
	LanguageLevel   *string
	TargetAge       *string
	TargetGender    *string
	ExpertiseLevel  *string
	Temperature     *float64
	KeywordsPerText *int
	ParagraphStyle  *string
	HeadingStyle    *string
}

// Apply returns style with every set override applied, validated.
func (o StyleOverrides) Apply(style domain.StyleConfiguration) (domain.StyleConfiguration, error) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	setString(&style.TargetLanguage, o.TargetLanguage)
	setString(&style.Tone, o.Tone)
	setString(&style.WritingStyle, o.WritingStyle)
	setString(&style.LanguageLevel, o.LanguageLevel)
	setString(&style.TargetAge, o.TargetAge)
	setString(&style.TargetGender, o.TargetGender)
	setString(&style.ExpertiseLevel, o.ExpertiseLevel)
	setString(&style.ParagraphStyle, o.ParagraphStyle)
	setString(&style.HeadingStyle, o.HeadingStyle)

	if o.ShortStyle != nil {
		style.ShortStyle = domain.ShortStyle(*o.ShortStyle)
	}
	if o.Temperature != nil {
		style.Temperature = *o.Temperature
	}
	if o.KeywordsPerText != nil {
		style.KeywordsPerText = *o.KeywordsPerText
	}

	if err := style.Validate(); err != nil {
		return style, err
	}

	return style, nil
}
