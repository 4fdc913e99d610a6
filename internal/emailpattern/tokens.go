// Package emailpattern detects an organization's email-construction
// template from observed (name, email) pairs and synthesizes candidate
// addresses for names with no observed email.
package emailpattern

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics strips combining marks so "José Núñez" tokenizes the
// same as "Jose Nunez" in observed local-parts.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NameTokens holds the first/last tokens of a person's name, already
// lower-cased and diacritic-folded.
type NameTokens struct {
	First string
	Last  string
}

// FoldName lower-cases a name, strips diacritics, and collapses
// whitespace. It is the canonical form used for name equality checks.
func FoldName(fullName string) string {
	folded, _, err := transform.String(foldDiacritics, fullName)
	if err != nil {
		folded = fullName
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// SplitName tokenizes a full name for template matching and synthesis.
// The detector and synthesizer share this single function so that an
// email synthesized for a name in the evidence set reproduces the
// observed address exactly. Single-token names return Last == "".
func SplitName(fullName string) NameTokens {
	fields := strings.Fields(FoldName(fullName))
	switch len(fields) {
	case 0:
		return NameTokens{}
	case 1:
		return NameTokens{First: fields[0]}
	default:
		return NameTokens{First: fields[0], Last: fields[len(fields)-1]}
	}
}
