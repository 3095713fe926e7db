package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

var diacriticStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// StripDiacritics removes combining marks, e.g. "Citroën" -> "Citroen".
func StripDiacritics(s string) string {
	stripped, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return s
	}
	return stripped
}

// FoldKey produces the key used for case- and accent-insensitive lookups:
// lowercased, diacritics stripped, trimmed, inner whitespace collapsed
// to single spaces.
func FoldKey(s string) string {
	s = StripDiacritics(s)
	s = strings.ToLower(s)
	s = strings.Trim(s, " \n\t")
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return s
}

var slugReplacer = strings.NewReplacer(
	" ", "-",
	"/", "-",
	"+", "plus",
	"(", "",
	")", "",
	".", "",
)

// Slugify derives the canonical value for a display string: lowercase,
// diacritic-free, hyphen separated. "Série 3" -> "serie-3".
func Slugify(s string) string {
	s = FoldKey(s)
	s = slugReplacer.Replace(s)
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}

func ContainsFold(s, substr string) bool {
	return strings.Contains(FoldKey(s), FoldKey(substr))
}
