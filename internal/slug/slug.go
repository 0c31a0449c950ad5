// Package slug derives URL path segments from display names.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MaxLength bounds derived slugs. Longer results are cut at the last hyphen before the limit.
const MaxLength = 80

// Make converts a display name to a lowercase ASCII slug.
//
//	"The Matrix"        -> "the-matrix"
//	"Pokémon Red/Blue"  -> "pokemon-red-blue"
//	"Assassin's Creed"  -> "assassins-creed"
//	"  --Halo 3--  "    -> "halo-3"
func Make(s string) string {
	// Decompose so accents become separate marks that the ASCII filter drops.
	s = norm.NFKD.String(s)

	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false

	for _, r := range s {
		switch {
		case r > unicode.MaxASCII:
			continue
		case r == '\'':
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(unicode.ToLower(r))
		default:
			pendingHyphen = true
		}
	}

	out := b.String()
	if len(out) > MaxLength {
		out = out[:MaxLength]
		if i := strings.LastIndexByte(out, '-'); i > 0 {
			out = out[:i]
		}
	}
	return strings.Trim(out, "-")
}
