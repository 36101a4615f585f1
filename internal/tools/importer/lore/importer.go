package catalogimporter

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/louisbranch/loreforge/internal/core/genre"
	"github.com/louisbranch/loreforge/internal/core/lore"
	"github.com/louisbranch/loreforge/internal/core/textnorm"
	apperrors "github.com/louisbranch/loreforge/internal/platform/errors"
	"github.com/louisbranch/loreforge/internal/services/forge/storage"
)

// recordNamespace scopes ids derived for catalog entries without one.
var recordNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://loreforge.dev/catalog"))

// Summary counts the records an import wrote or validated.
type Summary struct {
	Univers    int
	Candidates int
	Fragments  int
}

// Catalog is the validated content of one or more documents.
type Catalog struct {
	Univers    []storage.Univers
	Candidates []storage.CandidateRecord
	Fragments  []storage.FragmentRecord
}

// Summary returns the record counts of c.
func (c Catalog) Summary() Summary {
	return Summary{Univers: len(c.Univers), Candidates: len(c.Candidates), Fragments: len(c.Fragments)}
}

// Build validates docs and flattens them into storage records. Ids must be
// unique across every document.
func Build(docs []Document) (Catalog, error) {
	var out Catalog
	universIDs := map[string]struct{}{}
	candidateIDs := map[string]struct{}{}
	fragmentIDs := map[string]struct{}{}

	for _, doc := range docs {
		for i, entry := range doc.Univers {
			id := strings.TrimSpace(entry.ID)
			if id == "" {
				return Catalog{}, invalid(fmt.Sprintf("univers[%d]", i), "id is required")
			}
			if _, dup := universIDs[id]; dup {
				return Catalog{}, invalid("univers "+id, "duplicate id")
			}
			universIDs[id] = struct{}{}
			name := strings.TrimSpace(entry.Name)
			if name == "" {
				name = id
			}
			out.Univers = append(out.Univers, storage.Univers{ID: id, Name: name})
		}

		for i, pool := range doc.Pools {
			label := fmt.Sprintf("pools[%d]", i)
			if err := validateKind(label, pool.Kind); err != nil {
				return Catalog{}, err
			}
			for _, name := range pool.Names {
				record := storage.CandidateRecord{
					Kind:      pool.Kind,
					UniversID: strings.TrimSpace(pool.Univers),
					Candidate: lore.Candidate{
						DisplayText: strings.TrimSpace(name),
						Genre:       genre.Label(pool.Genre),
						CultureID:   strings.TrimSpace(pool.Culture),
						CategorieID: strings.TrimSpace(pool.Categorie),
						Label:       strings.TrimSpace(pool.Label),
					},
				}
				if err := addCandidate(&out, candidateIDs, label, record); err != nil {
					return Catalog{}, err
				}
			}
		}

		for i, entry := range doc.Candidates {
			label := fmt.Sprintf("candidates[%d]", i)
			if err := validateKind(label, entry.Kind); err != nil {
				return Catalog{}, err
			}
			record := storage.CandidateRecord{
				Kind:      entry.Kind,
				UniversID: strings.TrimSpace(entry.Univers),
				Candidate: entry.Candidate,
			}
			record.DisplayText = strings.TrimSpace(record.DisplayText)
			record.Genre = genre.Label(record.Genre)
			if err := addCandidate(&out, candidateIDs, label, record); err != nil {
				return Catalog{}, err
			}
		}

		for i, entry := range doc.Fragments {
			label := fmt.Sprintf("fragments[%d]", i)
			f := entry.Fragment
			f.Text = strings.TrimSpace(f.Text)
			if f.Text == "" {
				return Catalog{}, invalid(label, "text is required")
			}
			if err := validateBounds(label, f); err != nil {
				return Catalog{}, err
			}
			f.Genre = genre.Label(f.Genre)
			univers := strings.TrimSpace(entry.Univers)
			if strings.TrimSpace(f.ID) == "" {
				f.ID = deriveID("fragment", univers, f.AppliesTo,
					strings.TrimSpace(f.CultureID), strings.TrimSpace(f.CategorieID), f.Genre,
					boundKey(f.MinNameLength), boundKey(f.MaxNameLength),
					textnorm.Normalize(f.Text))
			}
			f.ID = strings.TrimSpace(f.ID)
			if _, dup := fragmentIDs[f.ID]; dup {
				return Catalog{}, invalid("fragment "+f.ID, "duplicate id")
			}
			fragmentIDs[f.ID] = struct{}{}
			out.Fragments = append(out.Fragments, storage.FragmentRecord{UniversID: univers, Fragment: f})
		}
	}
	return out, nil
}

// Write upserts c through w, univers first.
func Write(ctx context.Context, w storage.CatalogWriter, c Catalog) error {
	for _, u := range c.Univers {
		if err := w.PutUnivers(ctx, u); err != nil {
			return fmt.Errorf("put univers %s: %w", u.ID, err)
		}
	}
	if len(c.Candidates) > 0 {
		if err := w.PutCandidates(ctx, c.Candidates); err != nil {
			return fmt.Errorf("put candidates: %w", err)
		}
	}
	if len(c.Fragments) > 0 {
		if err := w.PutFragments(ctx, c.Fragments); err != nil {
			return fmt.Errorf("put fragments: %w", err)
		}
	}
	return nil
}

func addCandidate(out *Catalog, seen map[string]struct{}, label string, record storage.CandidateRecord) error {
	if record.DisplayText == "" {
		return invalid(label, "text is required")
	}
	record.CultureID = strings.TrimSpace(record.CultureID)
	record.CategorieID = strings.TrimSpace(record.CategorieID)
	record.ID = strings.TrimSpace(record.ID)
	if record.ID == "" {
		record.ID = deriveID(string(record.Kind), record.UniversID, record.CultureID,
			record.CategorieID, record.Genre, textnorm.Normalize(record.DisplayText))
	}
	if _, dup := seen[record.ID]; dup {
		return invalid("candidate "+record.ID, "duplicate id")
	}
	seen[record.ID] = struct{}{}
	out.Candidates = append(out.Candidates, record)
	return nil
}

func validateKind(label string, kind lore.Kind) error {
	if kind.Valid() || kind == storage.KindFamily {
		return nil
	}
	return invalid(label, fmt.Sprintf("unknown kind %q", kind))
}

func validateBounds(label string, f lore.Fragment) error {
	if f.MinNameLength != nil && *f.MinNameLength < 0 {
		return invalid(label, "min_name_length must not be negative")
	}
	if f.MaxNameLength != nil && *f.MaxNameLength < 0 {
		return invalid(label, "max_name_length must not be negative")
	}
	if f.MinNameLength != nil && f.MaxNameLength != nil && *f.MinNameLength > *f.MaxNameLength {
		return invalid(label, "min_name_length exceeds max_name_length")
	}
	return nil
}

// boundKey renders an optional name length bound for id derivation.
func boundKey(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func deriveID(parts ...string) string {
	return uuid.NewSHA1(recordNamespace, []byte(strings.Join(parts, "\x00"))).String()
}

func invalid(entry, reason string) error {
	return apperrors.WithMetadata(apperrors.CodeCatalogInvalid, entry+": "+reason, map[string]string{
		"Entry":  entry,
		"Reason": reason,
	})
}
