// Package slug derives human readable URL segments for knights, battles and
// members. URLs carry a 3 character id prefix plus a slug of the name; two
// records sharing both are indistinguishable by the URL alone.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	prefixLen    = 3
	teamJoiner   = "-x-"
	unknownName  = "unknown"
	memberJoiner = "-"
)

var (
	nonAlnum   = regexp.MustCompile(`[^a-z0-9]+`)
	urlPattern = regexp.MustCompile(`^(.{3})-(.+)$`)
)

// Parts is a decoded knight or member URL.
type Parts struct {
	IDPrefix string
	Slug     string
}

// Slugify lower-cases text, strips diacritics and collapses every run of
// characters outside [a-z0-9] into one hyphen.
func Slugify(text string) string {
	if text == "" {
		return ""
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, strings.ToLower(text))
	if err != nil {
		stripped = strings.ToLower(text)
	}

	return strings.Trim(nonAlnum.ReplaceAllString(stripped, "-"), "-")
}

// KnightURL builds "<first 3 chars of id>-<slug of name>".
func KnightURL(id, name string) string {
	return idPrefix(id) + "-" + Slugify(name)
}

// MemberURL uses the knight scheme for member pages.
func MemberURL(userID, displayName string) string {
	return idPrefix(userID) + memberJoiner + Slugify(displayName)
}

// BattleURL names both teams by their knights' slugs joined with "-" and
// joins the teams with "-x-". Ids missing from names render as "unknown".
func BattleURL(winnerIDs, loserIDs []string, names map[string]string) string {
	return teamSlug(winnerIDs, names) + teamJoiner + teamSlug(loserIDs, names)
}

func teamSlug(ids []string, names map[string]string) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		name, ok := names[id]
		if !ok {
			parts = append(parts, unknownName)
			continue
		}
		parts = append(parts, Slugify(name))
	}
	return strings.Join(parts, "-")
}

// ParseKnightURL splits "XXX-rest" into its id prefix and slug.
func ParseKnightURL(param string) (Parts, bool) {
	m := urlPattern.FindStringSubmatch(param)
	if m == nil {
		return Parts{}, false
	}
	return Parts{IDPrefix: m[1], Slug: m[2]}, true
}

// ParseMemberURL is ParseKnightURL for member pages.
func ParseMemberURL(param string) (Parts, bool) {
	return ParseKnightURL(param)
}

func idPrefix(id string) string {
	r := []rune(id)
	if len(r) > prefixLen {
		r = r[:prefixLen]
	}
	return string(r)
}
