// Package lore defines the read-only records the generation engine consumes
// and the items it produces.
package lore

// Kind names what is being generated.
type Kind string

const (
	KindCharacter Kind = "character"
	KindLocation  Kind = "location"
	KindTitle     Kind = "title"
	KindConcept   Kind = "concept"
)

// Kinds lists the supported kinds in a stable order.
var Kinds = []Kind{KindCharacter, KindLocation, KindTitle, KindConcept}

// Valid reports whether k is a supported kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Candidate is a name, title, location or concept eligible for sampling.
// Empty optional fields mean "not set".
type Candidate struct {
	ID          string `json:"id" yaml:"id"`
	DisplayText string `json:"displayText" yaml:"text"`
	Genre       string `json:"genre,omitempty" yaml:"genre,omitempty"`
	CultureID   string `json:"cultureId,omitempty" yaml:"culture,omitempty"`
	CategorieID string `json:"categorieId,omitempty" yaml:"categorie,omitempty"`
	// Label is a secondary type/category label used for ranking.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Fragment is a reusable narrative snippet. Text may embed a name placeholder.
type Fragment struct {
	ID            string `json:"id" yaml:"id"`
	Text          string `json:"text" yaml:"text"`
	AppliesTo     string `json:"appliesTo,omitempty" yaml:"applies_to,omitempty"`
	Genre         string `json:"genre,omitempty" yaml:"genre,omitempty"`
	CultureID     string `json:"cultureId,omitempty" yaml:"culture,omitempty"`
	CategorieID   string `json:"categorieId,omitempty" yaml:"categorie,omitempty"`
	MinNameLength *int   `json:"minNameLength,omitempty" yaml:"min_name_length,omitempty"`
	MaxNameLength *int   `json:"maxNameLength,omitempty" yaml:"max_name_length,omitempty"`
}

// Filters is the scope a request is generated for. Empty fields are unset.
type Filters struct {
	Kind        Kind   `json:"kind"`
	CultureID   string `json:"cultureId,omitempty"`
	CategorieID string `json:"categorieId,omitempty"`
	UniversID   string `json:"universId,omitempty"`
	Genre       string `json:"genre,omitempty"`
	Keywords    string `json:"keywords,omitempty"`
}

// Provenance records which inputs an item consumed.
type Provenance struct {
	CandidateIDs []string `json:"candidateIds"`
	FragmentIDs  []string `json:"fragmentIds"`
}

// Item is one generated result. Items are never persisted by the engine.
type Item struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Genre       string     `json:"genre,omitempty"`
	CultureID   string     `json:"cultureId,omitempty"`
	CategorieID string     `json:"categorieId,omitempty"`
	Text        string     `json:"text"`
	Provenance  Provenance `json:"provenance"`
}

// IntPtr returns a pointer to v, for optional fragment bounds.
func IntPtr(v int) *int {
	return &v
}
