// Package rank scores candidate text against keyword terms and orders
// candidates by relevance.
package rank

import (
	"slices"
	"strings"
	"unicode"

	"github.com/louisbranch/loreforge/internal/core/textnorm"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Tier weights, highest first.
const (
	WeightExact     = 100.0
	WeightWord      = 60.0
	WeightPrefix    = 30.0
	WeightSubstring = 10.0
)

// DefaultSecondaryWeight scales matches found in secondary fields.
const DefaultSecondaryWeight = 0.5

// Scorer ranks text against terms.
//
// The zero value scores without expansions, uses DefaultSecondaryWeight and
// breaks ties with French collation.
type Scorer struct {
	// Expansions injects related terms before scoring.
	Expansions Expansions
	// SecondaryWeight multiplies scores from secondary fields. Zero means
	// DefaultSecondaryWeight.
	SecondaryWeight float64
	// Locale drives the tie-break collation. The zero tag means French.
	Locale language.Tag
}

// Scored pairs an item with its relevance.
type Scored[T any] struct {
	Item  T
	Score float64
}

// Fields extracts the scorable text of an item.
type Fields[T any] struct {
	// Display is the primary text and the tie-break key.
	Display func(T) string
	// Secondary returns lower-weight labels (type, category). Optional.
	Secondary func(T) []string
}

// ParseTerms splits free-form keywords into normalized, de-duplicated terms.
func ParseTerms(keywords string) []string {
	parts := strings.FieldsFunc(keywords, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';' || r == '|'
	})
	seen := make(map[string]struct{}, len(parts))
	terms := make([]string, 0, len(parts))
	for _, p := range parts {
		n := textnorm.Normalize(p)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		terms = append(terms, n)
	}
	return terms
}

// Terms returns the expanded term list actually used for scoring.
func (s Scorer) Terms(terms []string) []string {
	return s.Expansions.Expand(terms)
}

// Score sums the best tier reached by each term against text.
// A text that matches no term scores 0.
func (s Scorer) Score(text string, terms []string) float64 {
	return scoreTerms(text, s.Terms(terms))
}

func scoreTerms(text string, terms []string) float64 {
	norm := textnorm.Normalize(text)
	if norm == "" {
		return 0
	}
	words := tokenize(norm)
	total := 0.0
	for _, term := range terms {
		total += termScore(norm, words, term)
	}
	return total
}

func termScore(norm string, words []string, term string) float64 {
	if term == "" {
		return 0
	}
	switch {
	case norm == term:
		return WeightExact
	case containsWords(words, tokenize(term)):
		return WeightWord
	case hasWordPrefix(words, term):
		return WeightPrefix
	case strings.Contains(norm, term):
		return WeightSubstring
	default:
		return 0
	}
}

// ScoreFields scores the display text at full weight and every secondary
// field at the secondary weight.
func (s Scorer) ScoreFields(display string, secondary []string, terms []string) float64 {
	return s.scoreExpanded(display, secondary, s.Terms(terms))
}

// scoreExpanded scores already expanded terms against display and secondary
// fields.
func (s Scorer) scoreExpanded(display string, secondary []string, expanded []string) float64 {
	score := scoreTerms(display, expanded)
	weight := s.SecondaryWeight
	if weight == 0 {
		weight = DefaultSecondaryWeight
	}
	for _, field := range secondary {
		score += weight * scoreTerms(field, expanded)
	}
	return score
}

// Rank scores every item and sorts by descending score. Ties keep a stable,
// locale-aware order of the display text.
func Rank[T any](s Scorer, items []T, fields Fields[T], terms []string) []Scored[T] {
	out := make([]Scored[T], len(items))
	expanded := s.Terms(terms)
	for i, item := range items {
		var secondary []string
		if fields.Secondary != nil {
			secondary = fields.Secondary(item)
		}
		out[i] = Scored[T]{Item: item, Score: s.scoreExpanded(fields.Display(item), secondary, expanded)}
	}

	col := collate.New(s.locale(), collate.IgnoreCase)
	slices.SortStableFunc(out, func(a, b Scored[T]) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return col.CompareString(fields.Display(a.Item), fields.Display(b.Item))
	})
	return out
}

// TopScore returns the highest score of a ranked list, or 0 when empty.
func TopScore[T any](ranked []Scored[T]) float64 {
	if len(ranked) == 0 {
		return 0
	}
	return ranked[0].Score
}

// Matching keeps the items with a positive score, in rank order.
func Matching[T any](ranked []Scored[T]) []T {
	out := make([]T, 0, len(ranked))
	for _, r := range ranked {
		if r.Score <= 0 {
			break
		}
		out = append(out, r.Item)
	}
	return out
}

func (s Scorer) locale() language.Tag {
	if s.Locale == language.Und {
		return language.French
	}
	return s.Locale
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// containsWords reports whether needle appears as a contiguous run of whole
// words inside haystack.
func containsWords(haystack, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if slices.Equal(haystack[i:i+len(needle)], needle) {
			return true
		}
	}
	return false
}

func hasWordPrefix(words []string, term string) bool {
	for _, w := range words {
		if strings.HasPrefix(w, term) {
			return true
		}
	}
	return false
}
