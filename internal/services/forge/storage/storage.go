// Package storage defines persistence contracts for generation pools.
package storage

import (
	"context"
	"errors"

	"github.com/louisbranch/loreforge/internal/core/lore"
)

var (
	// ErrNotFound indicates a requested univers is missing.
	ErrNotFound = errors.New("record not found")
)

// KindFamily marks family-name candidates joined to character first names.
const KindFamily lore.Kind = "family"

// PoolQuery scopes a pool lookup. Empty fields are unset.
type PoolQuery struct {
	Kind        lore.Kind
	UniversID   string
	CultureID   string
	CategorieID string
	// Genres holds every stored spelling to accept (see genre.Expand).
	Genres []string
}

// Univers is a fictional universe grouping pools.
type Univers struct {
	ID   string
	Name string
}

// CandidateRecord is a candidate with its storage scope.
type CandidateRecord struct {
	Kind      lore.Kind
	UniversID string
	lore.Candidate
}

// FragmentRecord is a fragment with its storage scope.
type FragmentRecord struct {
	UniversID string
	lore.Fragment
}

// PoolReader lists generation pools. Results are ordered by id so identical
// stored data always yields an identical snapshot.
type PoolReader interface {
	GetUnivers(ctx context.Context, id string) (Univers, error)
	ListCandidates(ctx context.Context, q PoolQuery) ([]lore.Candidate, error)
	ListFragments(ctx context.Context, q PoolQuery) ([]lore.Fragment, error)
}

// CatalogWriter upserts catalog content.
type CatalogWriter interface {
	PutUnivers(ctx context.Context, u Univers) error
	PutCandidates(ctx context.Context, records []CandidateRecord) error
	PutFragments(ctx context.Context, records []FragmentRecord) error
}
