// Package orgkey normalizes organization display names into join keys.
// Both the record matcher and the template cache key on the same
// normalization, so two records with equal keys are the same
// organization even when display names differ.
package orgkey

import "strings"

// legalSuffixes are entity-form suffixes stripped from the end of a
// normalized name, longest forms first so "incorporated" wins over "inc".
var legalSuffixes = []string{
	"incorporated",
	"corporation",
	"company",
	"limited",
	"corp",
	"gmbh",
	"inc",
	"llc",
	"llp",
	"ltd",
	"plc",
	"co",
}

// Normalize returns the join key for an organization display name:
// lower-cased, punctuation stripped, legal suffixes removed, whitespace
// collapsed. Returns "" for names that normalize to nothing, which the
// matcher treats as unmatchable rather than an error.
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '-', r == '/':
			b.WriteByte(' ')
		}
		// Everything else (periods, commas, ampersands, quotes) drops out.
	}

	words := strings.Fields(b.String())
	for len(words) > 1 {
		if !isLegalSuffix(words[len(words)-1]) {
			break
		}
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

func isLegalSuffix(w string) bool {
	for _, s := range legalSuffixes {
		if w == s {
			return true
		}
	}
	return false
}
