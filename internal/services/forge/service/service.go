// Package service validates generation requests, fetches their pools from
// storage and runs the generation engine.
package service

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/loreforge/internal/core/forge"
	"github.com/louisbranch/loreforge/internal/core/genre"
	"github.com/louisbranch/loreforge/internal/core/lore"
	apperrors "github.com/louisbranch/loreforge/internal/platform/errors"
	platformotel "github.com/louisbranch/loreforge/internal/platform/otel"
	"github.com/louisbranch/loreforge/internal/services/forge/storage"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// DefaultCount is used when a request leaves the count unset.
const DefaultCount = 1

// GenerateRequest is a caller request before validation.
type GenerateRequest struct {
	Kind        string
	Count       int
	CultureID   string
	CategorieID string
	UniversID   string
	Genre       string
	Seed        *string
	Keywords    string
}

// Service exposes generation over a pool store.
type Service struct {
	store  storage.PoolReader
	engine forge.Engine
	tracer trace.Tracer
	clock  func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithTracer overrides the tracer used for generation spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithClock overrides the clock that derives default seeds.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewService creates a generation service backed by pool storage.
func NewService(store storage.PoolReader, opts ...Option) *Service {
	s := &Service{
		store:  store,
		engine: forge.New(),
		tracer: platformotel.Tracer(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine.Now = s.clock
	return s
}

// Generate validates in, loads its pools and runs the engine.
func (s *Service) Generate(ctx context.Context, in GenerateRequest) (forge.Response, error) {
	if s == nil || s.store == nil {
		return forge.Response{}, apperrors.New(apperrors.CodeStorageUnavailable, "pool store is not configured")
	}

	req, err := validate(in)
	if err != nil {
		return forge.Response{}, err
	}

	ctx, span := s.tracer.Start(ctx, "forge.Generate", trace.WithAttributes(
		attribute.String("forge.kind", string(req.Kind)),
		attribute.Int("forge.count", req.Count),
		attribute.String("forge.univers_id", req.UniversID),
	))
	defer span.End()

	pools, err := s.loadPools(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return forge.Response{}, err
	}

	resp := s.engine.Generate(req, pools)
	span.SetAttributes(
		attribute.String("forge.seed", resp.Seed),
		attribute.Int("forge.items", len(resp.Items)),
		attribute.Int("forge.pool.candidates", len(pools.Candidates)),
		attribute.Int("forge.pool.fragments", len(pools.Fragments)),
	)
	if resp.Warning != "" {
		span.AddEvent("forge.warning", trace.WithAttributes(attribute.String("message", resp.Warning)))
	}

	log.Printf("generated %d %s item(s) seed=%q warning=%q", len(resp.Items), req.Kind, resp.Seed, resp.Warning)
	return resp, nil
}

func validate(in GenerateRequest) (forge.Request, error) {
	kind := lore.Kind(strings.ToLower(strings.TrimSpace(in.Kind)))
	if kind == "" {
		kind = lore.KindCharacter
	}
	if !kind.Valid() {
		names := make([]string, 0, len(lore.Kinds))
		for _, k := range lore.Kinds {
			names = append(names, string(k))
		}
		return forge.Request{}, apperrors.WithMetadata(apperrors.CodeInvalidKind, "invalid kind "+string(kind), map[string]string{
			"Kind":  string(kind),
			"Kinds": strings.Join(names, ", "),
		})
	}

	count := in.Count
	if count == 0 {
		count = DefaultCount
	}
	if count < 1 || count > forge.MaxCount {
		return forge.Request{}, apperrors.WithMetadata(apperrors.CodeCountOutOfRange, "count "+strconv.Itoa(count)+" out of range", map[string]string{
			"Count": strconv.Itoa(count),
			"Max":   strconv.Itoa(forge.MaxCount),
		})
	}

	return forge.Request{
		Kind:        kind,
		Count:       count,
		CultureID:   strings.TrimSpace(in.CultureID),
		CategorieID: strings.TrimSpace(in.CategorieID),
		UniversID:   strings.TrimSpace(in.UniversID),
		Genre:       strings.TrimSpace(in.Genre),
		Seed:        in.Seed,
		Keywords:    in.Keywords,
	}, nil
}

// loadPools fetches every pool the request needs before the engine runs.
func (s *Service) loadPools(ctx context.Context, req forge.Request) (forge.Pools, error) {
	if req.UniversID != "" {
		if _, err := s.store.GetUnivers(ctx, req.UniversID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return forge.Pools{}, apperrors.WrapWithMetadata(apperrors.CodeNotFound, "univers not found", map[string]string{
					"Resource": "univers",
					"ID":       req.UniversID,
				}, err)
			}
			return forge.Pools{}, apperrors.Wrap(apperrors.CodeStorageUnavailable, "get univers", err)
		}
	}

	candidateQuery := storage.PoolQuery{
		Kind:        req.Kind,
		UniversID:   req.UniversID,
		CultureID:   req.CultureID,
		CategorieID: req.CategorieID,
	}
	if req.Genre != "" {
		candidateQuery.Genres = genre.Expand(req.Genre)
	}

	var pools forge.Pools
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		candidates, err := s.store.ListCandidates(groupCtx, candidateQuery)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeStorageUnavailable, "list candidates", err)
		}
		pools.Candidates = candidates
		return nil
	})
	if req.Kind == lore.KindCharacter {
		group.Go(func() error {
			families, err := s.store.ListCandidates(groupCtx, storage.PoolQuery{
				Kind:      storage.KindFamily,
				UniversID: req.UniversID,
				CultureID: req.CultureID,
			})
			if err != nil {
				return apperrors.Wrap(apperrors.CodeStorageUnavailable, "list family names", err)
			}
			pools.FamilyNames = families
			return nil
		})
	}
	group.Go(func() error {
		fragments, err := s.store.ListFragments(groupCtx, storage.PoolQuery{
			Kind:      req.Kind,
			UniversID: req.UniversID,
		})
		if err != nil {
			return apperrors.Wrap(apperrors.CodeStorageUnavailable, "list fragments", err)
		}
		pools.Fragments = fragments
		return nil
	})
	if err := group.Wait(); err != nil {
		return forge.Pools{}, err
	}
	return pools, nil
}
