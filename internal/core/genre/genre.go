// Package genre maps free-form gender/category labels onto a closed code set
// and back onto the historical spellings found in stored data.
package genre

import (
	"strings"

	"github.com/louisbranch/loreforge/internal/core/textnorm"
)

// Code is a canonical genre code.
type Code string

const (
	// Unknown marks a non-empty label that matched no class.
	Unknown Code = ""
	Male    Code = "M"
	Female  Code = "F"
	// NonBinary covers non-binary and neutral labels.
	NonBinary Code = "NB"
)

// Codes lists every canonical code in a stable order.
var Codes = []Code{Male, Female, NonBinary}

// variants holds the spellings stored by legacy data for each class. Lookup is
// done on normalized keys, so only one accent/case form of each word is needed
// for matching; the others are listed because Expand must return them verbatim.
var variants = map[Code][]string{
	Male: {
		"M", "m", "H", "h",
		"Masculin", "masculin", "Homme", "homme",
		"Male", "male", "Man", "man", "Masc", "masc",
	},
	Female: {
		"F", "f",
		"Féminin", "féminin", "Feminin", "feminin",
		"Femme", "femme", "Female", "female",
		"Woman", "woman", "Fem", "fem",
	},
	NonBinary: {
		"NB", "nb", "X", "x",
		"Non-binaire", "non-binaire", "Non binaire", "non binaire",
		"Nonbinary", "nonbinary", "Non-binary", "non-binary",
		"Neutre", "neutre", "Neutral", "neutral", "Enby", "enby",
	},
}

var lookup = buildLookup()

func buildLookup() map[string]Code {
	out := make(map[string]Code)
	for _, code := range Codes {
		for _, v := range variants[code] {
			out[textnorm.Normalize(v)] = code
		}
	}
	return out
}

// Canonicalize maps label to its canonical code. The boolean is false when the
// label is empty or not recognized; that case is "unknown", not an error.
func Canonicalize(label string) (Code, bool) {
	key := textnorm.Normalize(label)
	if key == "" {
		return Unknown, false
	}
	code, ok := lookup[key]
	if !ok {
		return Unknown, false
	}
	return code, true
}

// Expand returns every stored spelling for the class label belongs to.
// Unrecognized input yields a single-element slice holding label unchanged, so
// callers always have at least one lookup value.
func Expand(label string) []string {
	code, ok := Canonicalize(label)
	if !ok {
		return []string{label}
	}
	out := make([]string, len(variants[code]))
	copy(out, variants[code])
	return out
}

// Matches reports whether two labels belong to the same class. Unknown labels
// only match themselves after normalization.
func Matches(a, b string) bool {
	ca, okA := Canonicalize(a)
	cb, okB := Canonicalize(b)
	if okA && okB {
		return ca == cb
	}
	if okA || okB {
		return false
	}
	return textnorm.Normalize(a) == textnorm.Normalize(b)
}

// String renders the code, using "unknown" for the unknown bucket.
func (c Code) String() string {
	if c == Unknown {
		return "unknown"
	}
	return string(c)
}

// Label resolves the display code for a stored label: the canonical code when
// recognized, the trimmed label otherwise.
func Label(label string) string {
	if code, ok := Canonicalize(label); ok {
		return string(code)
	}
	return strings.TrimSpace(label)
}
