package names

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Patterns that mark a table cell as encounter metadata rather than a
// Pokémon name: level indicators, rate labels, and bare numeric ranges.
var (
	levelPattern = regexp.MustCompile(`(?i)\b(?:lv|lvl|level)\.?\s*\d`)
	ratePattern  = regexp.MustCompile(`(?i)\brate\b`)
	rangePattern = regexp.MustCompile(`^\d+\s*[-\x{2013}]\s*\d+$`)
	digitPattern = regexp.MustCompile(`^\d+$`)
)

// IsPotentialPokemonName is a cheap pre-filter applied to scraped table
// cells before the resolver runs. Real names are 3-20 characters and never
// look like percentages, levels, rates, or numeric ranges.
func IsPotentialPokemonName(text string) bool {
	t := strings.TrimSpace(text)
	n := utf8.RuneCountInString(t)
	if n < 3 || n > 20 {
		return false
	}
	if strings.Contains(t, "%") {
		return false
	}
	if digitPattern.MatchString(t) || rangePattern.MatchString(t) {
		return false
	}
	if levelPattern.MatchString(t) || ratePattern.MatchString(t) {
		return false
	}
	return true
}
