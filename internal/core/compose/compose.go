// Package compose assembles narrative text from sampled fragments and
// vocabulary-drawn clauses.
package compose

import (
	"fmt"
	"strings"

	"github.com/louisbranch/loreforge/internal/core/lore"
	"github.com/louisbranch/loreforge/internal/core/sample"
	"github.com/louisbranch/loreforge/internal/core/textnorm"
)

// SegmentKind labels the origin of a narrative segment.
type SegmentKind string

const (
	SegmentFragment SegmentKind = "fragment"
	SegmentRole     SegmentKind = "role"
	SegmentTraits   SegmentKind = "traits"
	SegmentHook     SegmentKind = "hook"
	SegmentScene    SegmentKind = "scene"
)

// Segment is one discrete piece of composed text.
type Segment struct {
	Kind SegmentKind
	// FragmentID is set for fragment segments.
	FragmentID string
	Text       string
}

// Narrative is an ordered segment list, joined once by Text.
type Narrative struct {
	Segments []Segment
}

// Text joins every non-empty segment with a single space.
func (n Narrative) Text() string {
	parts := make([]string, 0, len(n.Segments))
	for _, s := range n.Segments {
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// FragmentIDs lists the fragments used, in draw order.
func (n Narrative) FragmentIDs() []string {
	fragments := n.Of(SegmentFragment)
	ids := make([]string, 0, len(fragments))
	for _, s := range fragments {
		ids = append(ids, s.FragmentID)
	}
	return ids
}

// Of returns the segments of the given kind.
func (n Narrative) Of(kind SegmentKind) []Segment {
	var out []Segment
	for _, s := range n.Segments {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

// Subject is what a narrative is written about.
type Subject struct {
	Kind lore.Kind
	// Name is the composed full name substituted for placeholders.
	Name string
}

// placeholders lists accepted name placeholder spellings. Longer forms come
// first so "{{name}}" is not half-replaced as "{name}".
var placeholders = []string{"{{name}}", "{{nom}}", "{name}", "{nom}"}

// Substitute replaces every name placeholder in text with name.
func Substitute(text, name string) string {
	pairs := make([]string, 0, 2*len(placeholders))
	for _, p := range placeholders {
		pairs = append(pairs, p, name)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// Composer builds narratives. The zero value uses DefaultVocabularies.
type Composer struct {
	Vocabularies map[lore.Kind]Vocabulary
}

func (c Composer) vocabulary(kind lore.Kind) Vocabulary {
	if v, ok := c.Vocabularies[kind]; ok {
		return v
	}
	if v, ok := DefaultVocabularies[kind]; ok {
		return v
	}
	return CharacterVocabulary
}

// FragmentCount decides how many fragments to draw: 2 when fewer than 3 are
// eligible, otherwise 2 or 3 on a fair coin.
func FragmentCount(src sample.Source, eligible int) int {
	if eligible < 3 {
		return 2
	}
	if src.Float() < 0.5 {
		return 2
	}
	return 3
}

// Compose writes the narrative for subject.
//
// Fragments are sampled without replacement from eligible and appear in draw
// order, followed by role, traits, hook and scene clauses. With no eligible
// fragments only the clauses are emitted, so the text is never empty.
func (c Composer) Compose(subject Subject, eligible []lore.Fragment, src sample.Source) Narrative {
	vocab := c.vocabulary(subject.Kind)
	var n Narrative

	if len(eligible) > 0 {
		picked := sample.WithoutReplacement(src, eligible, FragmentCount(src, len(eligible)))
		for _, f := range picked {
			n.Segments = append(n.Segments, Segment{
				Kind:       SegmentFragment,
				FragmentID: f.ID,
				Text:       strings.TrimSpace(Substitute(f.Text, subject.Name)),
			})
		}
	}

	n.Segments = append(n.Segments, clauses(vocab, subject.Name, src)...)
	return n
}

func clauses(vocab Vocabulary, name string, src sample.Source) []Segment {
	out := make([]Segment, 0, 4)
	if role, ok := sample.One(src, vocab.Roles); ok {
		out = append(out, Segment{Kind: SegmentRole, Text: fmt.Sprintf(vocab.RoleFormat, name, role)})
	}
	if traits := sample.WithoutReplacement(src, vocab.Traits, 2); len(traits) == 2 {
		out = append(out, Segment{Kind: SegmentTraits, Text: fmt.Sprintf(vocab.TraitFormat, name, traits[0], traits[1])})
	}
	if hook, ok := sample.One(src, vocab.Hooks); ok {
		out = append(out, Segment{Kind: SegmentHook, Text: Substitute(hook, name)})
	}
	if scene, ok := sample.One(src, vocab.Scenes); ok {
		out = append(out, Segment{Kind: SegmentScene, Text: fmt.Sprintf(vocab.SceneFormat, name, scene)})
	}
	return out
}

// FullName joins first and family names. When the normalized first name
// already contains the normalized family name, the first name is returned
// alone.
func FullName(first, family string) string {
	first = strings.TrimSpace(first)
	family = strings.TrimSpace(family)
	if family == "" {
		return first
	}
	if first == "" {
		return family
	}
	if textnorm.Contains(first, family) {
		return first
	}
	return first + " " + family
}
