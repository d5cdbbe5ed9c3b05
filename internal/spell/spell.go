// Package spell provides game.SpellChecker implementations: an in-memory
// word set, a SQLite-backed dictionary and an LRU cache that can front either.
//
// A word counts as real when every run of letters in it is a known word in
// the requested language. Language tags are compared on their base language,
// so "en", "EN" and "en-GB" share a dictionary.
package spell

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
)

// Base reduces a BCP 47 tag to its base language ("en-GB" → "en").
// Unparseable tags are lowercased and returned as-is.
func Base(tag string) string {
	t, err := language.Parse(tag)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(tag))
	}
	b, _ := t.Base()
	return b.String()
}

// tokens splits s into letter runs. The whole input is checked,
// so "silk worm" needs both "silk" and "worm" to be known.
func tokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
}

// allKnown reports whether word has at least one letter run and every run
// satisfies known.
func allKnown(word string, known func(string) bool) bool {
	ts := tokens(strings.ToLower(word))
	if len(ts) == 0 {
		return false
	}
	for _, t := range ts {
		if !known(t) {
			return false
		}
	}
	return true
}
