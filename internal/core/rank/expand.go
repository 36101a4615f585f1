package rank

import "github.com/louisbranch/loreforge/internal/core/textnorm"

// Expansions maps a normalized query term to related terms injected before
// scoring. New domains are added as table entries.
type Expansions map[string][]string

// Expand returns terms followed by their related terms, normalized and
// de-duplicated in first-seen order.
func (e Expansions) Expand(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	add := func(t string) {
		n := textnorm.Normalize(t)
		if n == "" {
			return
		}
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	for _, t := range terms {
		add(t)
	}
	if len(e) == 0 {
		return out
	}
	for _, t := range terms {
		for _, related := range e[textnorm.Normalize(t)] {
			add(related)
		}
	}
	return out
}

// Merge returns a new table holding the entries of e and other. Related terms
// for a shared key are concatenated.
func (e Expansions) Merge(other Expansions) Expansions {
	out := make(Expansions, len(e)+len(other))
	for k, v := range e {
		out[k] = append([]string(nil), v...)
	}
	for k, v := range other {
		key := textnorm.Normalize(k)
		out[key] = append(out[key], v...)
	}
	return out
}

// ElementalExpansions relates the classic elements to their imagery.
var ElementalExpansions = Expansions{
	"feu":   {"flamme", "brasier", "braise", "incendie", "cendre", "fire"},
	"eau":   {"mer", "riviere", "lac", "ocean", "pluie", "water"},
	"terre": {"roc", "pierre", "montagne", "argile", "earth"},
	"air":   {"vent", "ciel", "nuage", "tempete", "wind"},
	"fire":  {"flame", "ember", "blaze", "ash", "feu"},
	"water": {"sea", "river", "lake", "tide", "eau"},
}

// NatureExpansions relates landscape terms for location queries.
var NatureExpansions = Expansions{
	"foret":    {"bois", "sylve", "arbre", "bosquet", "forest"},
	"montagne": {"pic", "sommet", "col", "falaise", "mountain"},
	"nuit":     {"ombre", "lune", "obscurite", "etoile", "night"},
	"forest":   {"wood", "grove", "glade", "foret"},
}

// DefaultExpansions is the table used when none is configured.
var DefaultExpansions = ElementalExpansions.Merge(NatureExpansions)
