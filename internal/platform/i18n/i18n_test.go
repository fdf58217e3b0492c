package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestParseAcceptLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header string
		want   language.Tag
	}{
		{header: "", want: language.BrazilianPortuguese},
		{header: "en-US,en;q=0.9", want: language.English},
		{header: "pt-BR,pt;q=0.9,en;q=0.5", want: language.BrazilianPortuguese},
		{header: "not a header;;", want: language.BrazilianPortuguese},
	}

	for _, tc := range tests {
		t.Run(tc.header, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ParseAcceptLanguage(tc.header))
		})
	}
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Resource not found.", Translate(language.English, MsgNotFound))
	assert.Equal(t, "Recurso não encontrado.", Translate(language.BrazilianPortuguese, MsgNotFound))

	ctx := WithLanguage(context.Background(), language.English)
	assert.Equal(t, "Invalid input.", T(ctx, MsgInvalidArgument))
	assert.Equal(t, "en", Code(FromContext(ctx)))
}
