package prompt

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/flowbaker/copysmith/pkg/domain"
)

// Variant identifies one template: a content kind and, for short descriptions, the
// short style. Long descriptions share one template whatever the short style.
type Variant struct {
	Kind  domain.ContentKind
	Style domain.ShortStyle
}

// VariantFor normalizes (kind, style) to the key under which its template is stored.
func VariantFor(kind domain.ContentKind, style domain.ShortStyle) Variant {
	if kind == domain.ContentKindLong {
		return Variant{Kind: domain.ContentKindLong}
	}
	if style != domain.ShortStyleEmojiBenefits {
		style = domain.ShortStyleSimple
	}
	return Variant{Kind: domain.ContentKindShort, Style: style}
}

// Params is the data every template is rendered with.
type Params struct {
	ProductName  string
	Language     domain.LanguageCode
	LanguageName string
	Sentinel     string
	Style        domain.StyleConfiguration
}

// Builder renders prompts. It holds only parsed templates and is safe to share.
type Builder struct {
	templates map[Variant]*template.Template
}

var builtinTemplates = map[Variant]string{
	{Kind: domain.ContentKindShort, Style: domain.ShortStyleSimple}:        shortSimpleTemplate,
	{Kind: domain.ContentKindShort, Style: domain.ShortStyleEmojiBenefits}: shortEmojiTemplate,
	{Kind: domain.ContentKindLong}:                                         longTemplate,
}

func NewBuilder() *Builder {
	templates := make(map[Variant]*template.Template, len(builtinTemplates))

	for variant, body := range builtinTemplates {
		name := fmt.Sprintf("%s/%s", variant.Kind, variant.Style)
		templates[variant] = template.Must(template.New(name).Option("missingkey=error").Parse(body))
	}

	return &Builder{templates: templates}
}

// Build renders the prompt for one product and one content kind.
func (b *Builder) Build(productName string, lang domain.LanguageCode, style domain.StyleConfiguration, kind domain.ContentKind) (string, error) {
	variant := VariantFor(kind, style.ShortStyle)

	tpl, ok := b.templates[variant]
	if !ok {
		return "", fmt.Errorf("no prompt template for %s/%s", variant.Kind, variant.Style)
	}

	params := Params{
		ProductName:  productName,
		Language:     lang,
		LanguageName: lang.FullName(),
		Sentinel:     domain.LanguageNotSupported,
		Style:        style,
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, params); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", kind, err)
	}

	return buf.String(), nil
}
