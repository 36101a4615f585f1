// Package eligibility decides which narrative fragments may be used for a
// given subject.
//
// Each scope dimension is an independent Predicate; IsEligible is their AND.
// Eligibility depends on the subject's composed name length, so it is
// evaluated per subject and never once for a whole request.
package eligibility

import (
	"strings"

	"github.com/louisbranch/loreforge/internal/core/genre"
	"github.com/louisbranch/loreforge/internal/core/lore"
	"github.com/louisbranch/loreforge/internal/core/textnorm"
)

// Subject is the scope a fragment is checked against.
type Subject struct {
	// NameLength is the composed full name length in runes.
	NameLength int
	// Scope holds the subject's resolved culture, categorie, genre and kind.
	Scope lore.Filters
}

// Predicate reports whether one scope dimension admits the fragment.
type Predicate func(f lore.Fragment, s Subject) bool

// All combines predicates with logical AND.
func All(predicates ...Predicate) Predicate {
	return func(f lore.Fragment, s Subject) bool {
		for _, p := range predicates {
			if !p(f, s) {
				return false
			}
		}
		return true
	}
}

// Default checks every scope dimension and the name length bounds.
var Default = All(AppliesTo, Culture, Categorie, Genre, NameLength)

// IsEligible reports whether f may be used for a subject whose composed name
// has nameLength runes under filters.
func IsEligible(f lore.Fragment, nameLength int, filters lore.Filters) bool {
	return Default(f, Subject{NameLength: nameLength, Scope: filters})
}

// Filter returns the fragments admitted by p for s, in input order.
func Filter(fragments []lore.Fragment, s Subject, p Predicate) []lore.Fragment {
	if p == nil {
		p = Default
	}
	out := make([]lore.Fragment, 0, len(fragments))
	for _, f := range fragments {
		if p(f, s) {
			out = append(out, f)
		}
	}
	return out
}

// AppliesTo admits fragments without a target kind, with the "*" wildcard,
// or targeting the subject's kind.
func AppliesTo(f lore.Fragment, s Subject) bool {
	target := strings.TrimSpace(f.AppliesTo)
	if target == "" || target == "*" {
		return true
	}
	return textnorm.Equal(target, string(s.Scope.Kind))
}

// Culture admits unscoped fragments or fragments of the subject's culture.
func Culture(f lore.Fragment, s Subject) bool {
	return matchID(f.CultureID, s.Scope.CultureID)
}

// Categorie admits unscoped fragments or fragments of the subject's categorie.
func Categorie(f lore.Fragment, s Subject) bool {
	return matchID(f.CategorieID, s.Scope.CategorieID)
}

// Genre admits unscoped fragments or fragments of the subject's genre class.
func Genre(f lore.Fragment, s Subject) bool {
	if strings.TrimSpace(f.Genre) == "" {
		return true
	}
	return genre.Matches(f.Genre, s.Scope.Genre)
}

// NameLength admits subjects whose name length lies within the fragment's
// inclusive bounds. A missing bound is unbounded on that side.
func NameLength(f lore.Fragment, s Subject) bool {
	if f.MinNameLength != nil && s.NameLength < *f.MinNameLength {
		return false
	}
	if f.MaxNameLength != nil && s.NameLength > *f.MaxNameLength {
		return false
	}
	return true
}

func matchID(fragmentID, subjectID string) bool {
	fragmentID = strings.TrimSpace(fragmentID)
	if fragmentID == "" {
		return true
	}
	return fragmentID == strings.TrimSpace(subjectID)
}
