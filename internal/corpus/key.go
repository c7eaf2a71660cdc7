package corpus

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripper decomposes to NFD and removes all combining marks. No NFC
// recomposition afterward: the scoring consumer applies the same
// decompose-and-drop transform, and the keys must match byte for byte.
var stripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// StripAccents removes diacritical marks from s via Unicode canonical
// decomposition followed by removal of combining marks.
func StripAccents(s string) string {
	out, _, err := transform.String(stripper, s)
	if err != nil {
		// The transform only fails on invalid UTF-8; pass that through
		// untouched rather than inventing a key.
		return s
	}
	return out
}

// Key builds the stimulus key for a voice category and word: the voice and
// the accent-stripped word joined by an underscore.
func Key(voice, word string) string {
	return voice + "_" + StripAccents(word)
}
