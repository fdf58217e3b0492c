// Package i18n resolves the caller's language and renders user-facing
// messages in it. Supported languages are Brazilian Portuguese (default) and
// English.
package i18n

import (
	"context"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

type ctxKey struct{}

var (
	DefaultLanguage    = language.BrazilianPortuguese
	SupportedLanguages = []language.Tag{
		language.BrazilianPortuguese,
		language.English,
	}
	matcher = language.NewMatcher(SupportedLanguages)

	messages = newCatalog()
)

// SetDefault overrides the fallback language when code names a supported one.
func SetDefault(code string) {
	if tag, ok := match(code); ok {
		DefaultLanguage = tag
	}
}

func WithLanguage(ctx context.Context, lang language.Tag) context.Context {
	return context.WithValue(ctx, ctxKey{}, lang)
}

func FromContext(ctx context.Context) language.Tag {
	if ctx != nil {
		if lang, ok := ctx.Value(ctxKey{}).(language.Tag); ok {
			return lang
		}
	}
	return DefaultLanguage
}

// ParseAcceptLanguage picks the best supported language for an
// Accept-Language header value.
func ParseAcceptLanguage(header string) language.Tag {
	if strings.TrimSpace(header) == "" {
		return DefaultLanguage
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return DefaultLanguage
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLanguage
	}
	return SupportedLanguages[idx]
}

func match(code string) (language.Tag, bool) {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return language.Und, false
	}
	_, idx, confidence := matcher.Match(tag)
	if confidence == language.No {
		return language.Und, false
	}
	return SupportedLanguages[idx], true
}

// T renders key in the language stored in ctx.
func T(ctx context.Context, key string, args ...any) string {
	return Translate(FromContext(ctx), key, args...)
}

func Translate(lang language.Tag, key string, args ...any) string {
	p := message.NewPrinter(lang, message.Catalog(messages))
	return p.Sprintf(key, args...)
}

// Code returns the base language code, e.g. "pt" or "en".
func Code(lang language.Tag) string {
	base, _ := lang.Base()
	return base.String()
}

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.BrazilianPortuguese))
	for key, byLang := range errorMessages {
		for lang, msg := range byLang {
			_ = b.SetString(lang, key, msg)
		}
	}
	return b
}
