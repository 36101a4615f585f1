package compose

import (
	"strings"
	"testing"

	"github.com/louisbranch/loreforge/internal/core/lore"
	"github.com/louisbranch/loreforge/internal/random"
)

// fixedSource replays a list of floats, repeating the last one.
type fixedSource struct {
	values []float64
	index  int
}

func (f *fixedSource) Float() float64 {
	if f.index >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.index]
	f.index++
	return v
}

func fragments(n int) []lore.Fragment {
	out := make([]lore.Fragment, n)
	for i := range out {
		out[i] = lore.Fragment{
			ID:   string(rune('a' + i)),
			Text: "Sentence " + string(rune('A'+i)) + " about {name}.",
		}
	}
	return out
}

func TestFullName(t *testing.T) {
	tests := []struct {
		first, family, want string
	}{
		{first: "Rowan", family: "Blackwood", want: "Rowan Blackwood"},
		{first: "Jean Dupont", family: "dupont", want: "Jean Dupont"},
		{first: "Élise Lefèvre", family: "Lefevre", want: "Élise Lefèvre"},
		{first: " Mei ", family: "", want: "Mei"},
		{first: "", family: "Chen", want: "Chen"},
	}
	for _, tc := range tests {
		if got := FullName(tc.first, tc.family); got != tc.want {
			t.Fatalf("FullName(%q, %q) = %q, want %q", tc.first, tc.family, got, tc.want)
		}
	}
}

func TestSubstituteEveryPlaceholder(t *testing.T) {
	got := Substitute("{name} met {{name}} and {nom}.", "Kaya")
	if got != "Kaya met Kaya and Kaya." {
		t.Fatalf("Substitute = %q", got)
	}
}

func TestFragmentCount(t *testing.T) {
	if got := FragmentCount(&fixedSource{values: []float64{0.9}}, 2); got != 2 {
		t.Fatalf("expected 2 for small pool, got %d", got)
	}
	if got := FragmentCount(&fixedSource{values: []float64{0.1}}, 5); got != 2 {
		t.Fatalf("expected 2 on low coin, got %d", got)
	}
	if got := FragmentCount(&fixedSource{values: []float64{0.7}}, 5); got != 3 {
		t.Fatalf("expected 3 on high coin, got %d", got)
	}
}

func TestComposeSegmentOrder(t *testing.T) {
	var c Composer
	n := c.Compose(Subject{Kind: lore.KindCharacter, Name: "Rowan Blackwood"}, fragments(5), random.New("alpha"))

	var kinds []SegmentKind
	for _, s := range n.Segments {
		kinds = append(kinds, s.Kind)
	}
	frags := len(n.Of(SegmentFragment))
	if frags != 2 && frags != 3 {
		t.Fatalf("expected 2 or 3 fragments, got %d", frags)
	}
	tail := kinds[frags:]
	want := []SegmentKind{SegmentRole, SegmentTraits, SegmentHook, SegmentScene}
	if len(tail) != len(want) {
		t.Fatalf("unexpected segments: %v", kinds)
	}
	for i := range want {
		if tail[i] != want[i] {
			t.Fatalf("segment %d: got %s, want %s", i, tail[i], want[i])
		}
	}
	if strings.Contains(n.Text(), "{name}") {
		t.Fatalf("placeholder left in text: %q", n.Text())
	}
	if !strings.Contains(n.Text(), "Rowan Blackwood") {
		t.Fatalf("expected subject name in text: %q", n.Text())
	}
}

func TestComposeDistinctFragments(t *testing.T) {
	var c Composer
	for _, seed := range []string{"a", "b", "c", "d", "e"} {
		n := c.Compose(Subject{Kind: lore.KindCharacter, Name: "Mei"}, fragments(4), random.New(seed))
		seen := map[string]bool{}
		for _, id := range n.FragmentIDs() {
			if seen[id] {
				t.Fatalf("seed %q: fragment %q used twice", seed, id)
			}
			seen[id] = true
		}
	}
}

func TestComposeSmallPoolUsesTwo(t *testing.T) {
	var c Composer
	n := c.Compose(Subject{Kind: lore.KindCharacter, Name: "Mei"}, fragments(2), random.New("x"))
	if got := len(n.FragmentIDs()); got != 2 {
		t.Fatalf("expected both fragments, got %d", got)
	}
	n = c.Compose(Subject{Kind: lore.KindCharacter, Name: "Mei"}, fragments(1), random.New("x"))
	if got := len(n.FragmentIDs()); got != 1 {
		t.Fatalf("expected the single fragment, got %d", got)
	}
}

func TestComposeWithoutFragments(t *testing.T) {
	var c Composer
	n := c.Compose(Subject{Kind: lore.KindLocation, Name: "Vale of Ash"}, nil, random.New("x"))
	if len(n.FragmentIDs()) != 0 {
		t.Fatal("expected no fragments")
	}
	if n.Text() == "" {
		t.Fatal("expected clause-only text")
	}
	if len(n.Segments) != 4 {
		t.Fatalf("expected 4 clause segments, got %d", len(n.Segments))
	}
}

func TestComposeTraitsDistinct(t *testing.T) {
	vocab := Vocabulary{
		Roles:       []string{"a scout"},
		Traits:      []string{"brave", "calm"},
		Hooks:       []string{"{name} waits."},
		Scenes:      []string{"by the sea"},
		RoleFormat:  "%s is %s.",
		TraitFormat: "%s is %s and %s.",
		SceneFormat: "%s stays %s.",
	}
	c := Composer{Vocabularies: map[lore.Kind]Vocabulary{lore.KindCharacter: vocab}}
	n := c.Compose(Subject{Kind: lore.KindCharacter, Name: "Ayo"}, nil, random.New("traits"))
	traits := n.Of(SegmentTraits)
	if len(traits) != 1 {
		t.Fatalf("expected one traits segment, got %d", len(traits))
	}
	if traits[0].Text != "Ayo is brave and calm." && traits[0].Text != "Ayo is calm and brave." {
		t.Fatalf("unexpected traits clause %q", traits[0].Text)
	}
	if got := n.Text(); got != "Ayo is a scout. "+traits[0].Text+" Ayo waits. Ayo stays by the sea." {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestComposeDeterministic(t *testing.T) {
	var c Composer
	a := c.Compose(Subject{Kind: lore.KindConcept, Name: "The Quiet Tithe"}, fragments(6), random.New("seed"))
	b := c.Compose(Subject{Kind: lore.KindConcept, Name: "The Quiet Tithe"}, fragments(6), random.New("seed"))
	if a.Text() != b.Text() {
		t.Fatalf("expected identical text, got %q and %q", a.Text(), b.Text())
	}
}

func TestFragmentIDsFollowSegmentOrder(t *testing.T) {
	n := Narrative{Segments: []Segment{
		{Kind: SegmentFragment, FragmentID: "f2", Text: "b"},
		{Kind: SegmentRole, Text: "r"},
		{Kind: SegmentFragment, FragmentID: "f1", Text: "a"},
	}}
	got := n.FragmentIDs()
	if len(got) != 2 || got[0] != "f2" || got[1] != "f1" {
		t.Fatalf("FragmentIDs = %v", got)
	}
	if ids := (Narrative{}).FragmentIDs(); ids == nil || len(ids) != 0 {
		t.Fatalf("expected empty non-nil ids, got %#v", ids)
	}
}
