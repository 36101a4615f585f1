// Package forge is the deterministic generation engine.
//
// Generate is a pure, synchronous transformation from a seed, a filter set and
// caller-fetched pools to composed items. It performs no I/O and never fails:
// empty pools, unmatched keywords and unknown genres each have an explicit
// policy reported through Response.Warning and Response.Info.
//
// # Determinism
//
// Every random decision is drawn from one random.Source built from the seed,
// in a fixed order: subject selection, then for each subject its family name,
// fragment count, fragments and clauses. Identical seed, filters and pool
// snapshots therefore yield byte-identical responses.
package forge

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/louisbranch/loreforge/internal/core/compose"
	"github.com/louisbranch/loreforge/internal/core/eligibility"
	"github.com/louisbranch/loreforge/internal/core/genre"
	"github.com/louisbranch/loreforge/internal/core/lore"
	"github.com/louisbranch/loreforge/internal/core/rank"
	"github.com/louisbranch/loreforge/internal/core/sample"
	"github.com/louisbranch/loreforge/internal/core/textnorm"
	"github.com/louisbranch/loreforge/internal/random"
)

// MaxCount is the largest count callers are expected to request.
const MaxCount = 200

// itemNamespace scopes deterministic item ids.
var itemNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://loreforge.dev/items"))

// Request is a validated generation request.
type Request struct {
	Kind        lore.Kind
	Count       int
	CultureID   string
	CategorieID string
	UniversID   string
	Genre       string
	// Seed is nil when the caller did not provide one.
	Seed     *string
	Keywords string
}

// Pools holds the candidate records fetched by the caller.
type Pools struct {
	Candidates []lore.Candidate
	// FamilyNames are joined to character first names. Optional.
	FamilyNames []lore.Candidate
	Fragments   []lore.Fragment
}

// Response is the engine output.
type Response struct {
	Seed    string       `json:"seed"`
	Count   int          `json:"count"`
	Filters lore.Filters `json:"filters"`
	Items   []lore.Item  `json:"items"`
	Warning string       `json:"warning,omitempty"`
	Info    string       `json:"info,omitempty"`
}

// Engine generates items. The zero value is ready to use.
type Engine struct {
	Scorer   rank.Scorer
	Composer compose.Composer
	// Now supplies the default seed when a request has none.
	Now func() time.Time
}

// New returns an engine using the default keyword expansions.
func New() Engine {
	return Engine{Scorer: rank.Scorer{Expansions: rank.DefaultExpansions}}
}

var candidateFields = rank.Fields[lore.Candidate]{
	Display: func(c lore.Candidate) string { return c.DisplayText },
	Secondary: func(c lore.Candidate) []string {
		if c.Label == "" {
			return nil
		}
		return []string{c.Label}
	},
}

// Generate runs one request.
func (e Engine) Generate(req Request, pools Pools) Response {
	if req.Kind == "" {
		req.Kind = lore.KindCharacter
	}
	seed, defaulted := random.ResolveSeed(req.Seed, e.Now)
	src := random.New(seed)
	var diag diagnostics
	if defaulted {
		diag.info("seed %q was generated; pass it back to replay this result", seed)
	}

	resp := Response{
		Seed:    seed,
		Filters: echoFilters(req),
		Items:   []lore.Item{},
	}

	candidates := uniqueIDs(textnorm.Dedupe(pools.Candidates, func(c lore.Candidate) string { return c.DisplayText }))
	switch {
	case req.Count <= 0:
		diag.warn("requested count %d produces no items", req.Count)
	case len(candidates) == 0:
		diag.warn("no candidates available for the requested filters")
	}
	if len(candidates) == 0 || req.Count <= 0 {
		resp.Warning, resp.Info = diag.render()
		return resp
	}
	families := textnorm.Dedupe(pools.FamilyNames, func(c lore.Candidate) string { return c.DisplayText })
	fragments := dedupeFragments(pools.Fragments)

	subjects := e.selectSubjects(src, candidates, req, &diag)

	bare := 0
	for i, subject := range subjects {
		item, fragmentCount := e.buildItem(src, seed, i, subject, families, fragments, req)
		if fragmentCount == 0 {
			bare++
		}
		resp.Items = append(resp.Items, item)
	}
	if bare > 0 {
		diag.info("%d item(s) had no eligible fragment and use descriptive clauses only", bare)
	}

	resp.Count = len(resp.Items)
	resp.Warning, resp.Info = diag.render()
	return resp
}

// selectSubjects picks req.Count candidates.
//
// Without keywords the pool is sampled without replacement. With keywords,
// matching candidates come first in rank order and the rest of the pool is
// sampled to fill the count; when nothing matches the unranked pool is used.
// Candidates repeat only once the pool is exhausted.
func (e Engine) selectSubjects(src *random.Source, candidates []lore.Candidate, req Request, diag *diagnostics) []lore.Candidate {
	count := req.Count
	var subjects []lore.Candidate

	terms := rank.ParseTerms(req.Keywords)
	if len(terms) == 0 {
		subjects = sample.WithoutReplacement(src, candidates, count)
	} else {
		ranked := rank.Rank(e.Scorer, candidates, candidateFields, terms)
		if rank.TopScore(ranked) == 0 {
			diag.warn("no candidate matched keywords %q; using the unranked pool", strings.TrimSpace(req.Keywords))
			subjects = sample.WithoutReplacement(src, candidates, count)
		} else {
			matching := rank.Matching(ranked)
			if len(matching) > count {
				matching = matching[:count]
			}
			subjects = append(subjects, matching...)
			if rest := count - len(subjects); rest > 0 {
				others := make([]lore.Candidate, 0, len(ranked)-len(matching))
				for _, r := range ranked[len(matching):] {
					others = append(others, r.Item)
				}
				subjects = append(subjects, sample.WithoutReplacement(src, others, rest)...)
				diag.info("%d of %d item(s) matched keywords; the rest were drawn from the pool", len(matching), len(subjects))
			} else {
				diag.info("items ranked by keyword relevance")
			}
		}
	}

	if len(subjects) < count {
		used := make(map[string]struct{}, len(subjects))
		for _, s := range subjects {
			used[s.ID] = struct{}{}
		}
		for len(subjects) < count {
			pick, _ := sample.PickUniqueBounded(src, candidates, used, func(c lore.Candidate) string { return c.ID })
			used[pick.ID] = struct{}{}
			subjects = append(subjects, pick)
		}
		diag.warn("only %d candidate(s) for %d requested item(s); some candidates repeat", len(candidates), count)
	}
	return subjects
}

func (e Engine) buildItem(src *random.Source, seed string, index int, subject lore.Candidate, families []lore.Candidate, fragments []lore.Fragment, req Request) (lore.Item, int) {
	name := strings.TrimSpace(subject.DisplayText)
	candidateIDs := []string{subject.ID}
	culture := firstNonEmpty(subject.CultureID, req.CultureID)
	if req.Kind == lore.KindCharacter {
		if family, ok := sample.One(src, familiesFor(families, culture)); ok {
			name = compose.FullName(subject.DisplayText, family.DisplayText)
			candidateIDs = append(candidateIDs, family.ID)
		}
	}

	scope := lore.Filters{
		Kind:        req.Kind,
		CultureID:   culture,
		CategorieID: firstNonEmpty(subject.CategorieID, req.CategorieID),
		UniversID:   req.UniversID,
		Genre:       firstNonEmpty(subject.Genre, req.Genre),
	}
	eligible := eligibility.Filter(fragments, eligibility.Subject{
		NameLength: utf8.RuneCountInString(name),
		Scope:      scope,
	}, eligibility.Default)

	narrative := e.Composer.Compose(compose.Subject{Kind: req.Kind, Name: name}, eligible, src)

	return lore.Item{
		ID:          itemID(seed, req.Kind, index, subject.ID),
		Name:        name,
		Genre:       genre.Label(scope.Genre),
		CultureID:   scope.CultureID,
		CategorieID: scope.CategorieID,
		Text:        narrative.Text(),
		Provenance: lore.Provenance{
			CandidateIDs: candidateIDs,
			FragmentIDs:  narrative.FragmentIDs(),
		},
	}, len(eligible)
}

// familiesFor keeps the family names usable for a subject of culture:
// unscoped names always, scoped names only for their own culture. A subject
// without a culture may take any family name.
func familiesFor(families []lore.Candidate, culture string) []lore.Candidate {
	if culture == "" {
		return families
	}
	out := make([]lore.Candidate, 0, len(families))
	for _, f := range families {
		if c := strings.TrimSpace(f.CultureID); c == "" || c == culture {
			out = append(out, f)
		}
	}
	return out
}

// uniqueIDs keeps the first candidate per id so that uniqueness is decided on
// the same key used for provenance.
func uniqueIDs(candidates []lore.Candidate) []lore.Candidate {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]lore.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}

// dedupeFragments collapses fragments sharing normalized text and scope.
// Same text under different scopes stays distinct, since each may serve a
// different subject.
func dedupeFragments(fragments []lore.Fragment) []lore.Fragment {
	seen := make(map[string]struct{}, len(fragments))
	out := make([]lore.Fragment, 0, len(fragments))
	for _, f := range fragments {
		text := textnorm.Normalize(f.Text)
		if text == "" {
			continue
		}
		key := strings.Join([]string{
			text,
			textnorm.Normalize(f.AppliesTo),
			strings.TrimSpace(f.CultureID),
			strings.TrimSpace(f.CategorieID),
			genre.Label(f.Genre),
			boundKey(f.MinNameLength),
			boundKey(f.MaxNameLength),
		}, "\x00")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, f)
	}
	return out
}

func boundKey(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func itemID(seed string, kind lore.Kind, index int, candidateID string) string {
	name := strings.Join([]string{seed, string(kind), strconv.Itoa(index), candidateID}, "\x00")
	return uuid.NewSHA1(itemNamespace, []byte(name)).String()
}

func echoFilters(req Request) lore.Filters {
	return lore.Filters{
		Kind:        req.Kind,
		CultureID:   strings.TrimSpace(req.CultureID),
		CategorieID: strings.TrimSpace(req.CategorieID),
		UniversID:   strings.TrimSpace(req.UniversID),
		Genre:       genre.Label(req.Genre),
		Keywords:    strings.TrimSpace(req.Keywords),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// diagnostics collects warning and info lines in emission order.
type diagnostics struct {
	warnings []string
	infos    []string
}

func (d *diagnostics) warn(format string, args ...any) {
	d.warnings = append(d.warnings, fmt.Sprintf(format, args...))
}

func (d *diagnostics) info(format string, args ...any) {
	d.infos = append(d.infos, fmt.Sprintf(format, args...))
}

func (d *diagnostics) render() (string, string) {
	return strings.Join(d.warnings, "; "), strings.Join(d.infos, "; ")
}
