package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "São Jorge!!", want: "sao-jorge"},
		{in: "Seiya de Pégaso", want: "seiya-de-pegaso"},
		{in: "", want: ""},
		{in: "---", want: ""},
		{in: "  Ikki   de  Fênix  ", want: "ikki-de-fenix"},
		{in: "Shun_de_Andrômeda", want: "shun-de-andromeda"},
		{in: "Hyoga 2", want: "hyoga-2"},
		{in: "日本", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}

func TestSlugify_OutputAlphabet(t *testing.T) {
	t.Parallel()

	inputs := []string{"Àçëñtös & Co.", "a--b", "-lead", "trail-", "ÇÃO ção"}
	for _, in := range inputs {
		got := Slugify(in)
		assert.Regexp(t, `^([a-z0-9]+(-[a-z0-9]+)*)?$`, got, "input %q", in)
		assert.Equal(t, got, Slugify(got), "slugify must be idempotent for %q", in)
	}
}

func TestKnightURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc-seiya-de-pegaso", KnightURL("abcdef12", "Seiya de Pégaso"))
	assert.Equal(t, "ab-shiryu", KnightURL("ab", "Shiryu"))
	assert.Equal(t, "mem-june", MemberURL("member-1", "June"))
}

func TestParseKnightURL(t *testing.T) {
	t.Parallel()

	parts, ok := ParseKnightURL("abc-seiya-de-pegaso")
	require.True(t, ok)
	assert.Equal(t, Parts{IDPrefix: "abc", Slug: "seiya-de-pegaso"}, parts)

	for _, bad := range []string{"ab", "abc-", "abcd", ""} {
		_, ok := ParseKnightURL(bad)
		assert.False(t, ok, "expected %q to be rejected", bad)
	}
}

func TestKnightURL_RoundTrip(t *testing.T) {
	t.Parallel()

	names := []string{"Seiya de Pégaso", "Saga", "Kanon de Dragão Marinho"}
	for _, name := range names {
		parts, ok := ParseKnightURL(KnightURL("4f1c9a", name))
		require.True(t, ok, name)
		assert.Equal(t, "4f1", parts.IDPrefix)
		assert.Equal(t, Slugify(name), parts.Slug)
	}
}

func TestBattleURL(t *testing.T) {
	t.Parallel()

	names := map[string]string{
		"k1": "Seiya",
		"k2": "Shiryu de Dragão",
		"k3": "Ikki",
	}

	assert.Equal(t, "seiya-shiryu-de-dragao-x-ikki", BattleURL([]string{"k1", "k2"}, []string{"k3"}, names))
	assert.Equal(t, "seiya-x-unknown", BattleURL([]string{"k1"}, []string{"missing"}, names))
	assert.Equal(t, "-x-", BattleURL(nil, nil, names))
}
