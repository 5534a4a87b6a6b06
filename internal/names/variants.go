// Package names maps arbitrary scraped text to canonical Pokémon IDs.
// It builds a fuzzy lookup index from many normalized textual variants of
// each canonical name; the same variant generator runs on both the index
// and the probe side, so a name always resolves against an index built
// from itself.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// punctReplacer drops the punctuation that wiki text renders
// inconsistently: periods and both apostrophe styles.
var punctReplacer = strings.NewReplacer(".", "", "'", "", "’", "")

// deaccent strips combining diacritical marks (Flabébé → Flabebe).
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Variants returns the deterministic set of normalized variants for a
// name, deduplicated in generation order: the raw trimmed/lowercased
// forms first, gender-symbol substitutions next, then punctuation,
// diacritic and whitespace stripped forms, and the fully clean
// letters-only form last. Empty input yields nil.
func Variants(name string) []string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil
	}

	var out []string
	seen := make(map[string]struct{})
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	addCased := func(v string) {
		add(v)
		add(strings.ToLower(v))
	}

	addCased(trimmed)

	// Gender symbols: the letter form used in display text and the
	// hyphenated form used in sprite filenames, plus plain removal.
	if strings.ContainsAny(trimmed, "♀♂") {
		addCased(replaceGender(trimmed, "F", "M"))
		addCased(replaceGender(trimmed, "-f", "-m"))
		addCased(replaceGender(trimmed, "", ""))
	}

	// Punctuation- and diacritic-stripped forms of everything so far.
	for _, v := range snapshot(out) {
		add(punctReplacer.Replace(v))
		add(Deaccent(v))
	}

	// Whitespace-collapsed and whitespace-free forms.
	for _, v := range snapshot(out) {
		add(strings.Join(strings.Fields(v), " "))
		add(strings.Join(strings.Fields(v), ""))
	}

	add(Clean(trimmed))
	return out
}

// Deaccent folds combining diacritical marks out of s (Flabébé → Flabebe).
func Deaccent(s string) string {
	folded, _, err := transform.String(deaccent, s)
	if err != nil {
		return s
	}
	return folded
}

// Clean reduces a name to lowercase letters only: diacritics folded,
// every non-letter rune dropped.
func Clean(name string) string {
	folded := Deaccent(name)
	var b strings.Builder
	for _, r := range folded {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// replaceGender substitutes the ♀ and ♂ symbols.
func replaceGender(s, female, male string) string {
	s = strings.ReplaceAll(s, "♀", female)
	return strings.ReplaceAll(s, "♂", male)
}

// snapshot copies the slice so ranging over it is safe while appending.
func snapshot(s []string) []string {
	c := make([]string, len(s))
	copy(c, s)
	return c
}
