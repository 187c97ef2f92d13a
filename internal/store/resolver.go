package store

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/inodb/vibe-pep/internal/uniprot"
)

// Fetcher resolves an accession or gene name from the upstream source.
type Fetcher interface {
	Resolve(ctx context.Context, query string) (*uniprot.Protein, error)
}

// CachingResolver serves protein lookups from the store inside the
// freshness window and fetches-or-refreshes through the upstream client
// otherwise. The resolver only ever requests a refresh; it never mutates
// cache entries in place.
type CachingResolver struct {
	store   *Store
	fetcher Fetcher
	maxAge  time.Duration
	logger  *zap.Logger
}

// NewCachingResolver wraps a fetcher with the store. A non-positive
// maxAge selects FreshnessWindow.
func NewCachingResolver(s *Store, fetcher Fetcher, maxAge time.Duration) *CachingResolver {
	if maxAge <= 0 {
		maxAge = FreshnessWindow
	}
	return &CachingResolver{
		store:   s,
		fetcher: fetcher,
		maxAge:  maxAge,
		logger:  zap.NewNop(),
	}
}

// SetLogger sets the logger for cache diagnostics.
func (r *CachingResolver) SetLogger(l *zap.Logger) {
	r.logger = l
}

// Resolve returns a fresh cached protein if available, otherwise fetches
// and caches it. The cache lookup matches accession or gene name, so a
// gene query hits after its first resolution. Cache write failures
// degrade to pass-through with a logged warning; they never fail the
// lookup.
func (r *CachingResolver) Resolve(ctx context.Context, query string) (*uniprot.Protein, error) {
	if p, ok, err := r.store.GetProtein(query, r.maxAge); err != nil {
		r.logger.Warn("protein cache read failed",
			zap.String("query", query),
			zap.Error(err))
	} else if ok {
		r.logger.Debug("protein cache hit", zap.String("query", query))
		return p, nil
	}

	p, err := r.fetcher.Resolve(ctx, query)
	if err != nil {
		return nil, err
	}

	if err := r.store.PutProtein(p); err != nil {
		r.logger.Warn("protein cache write failed",
			zap.String("query", query),
			zap.Error(err))
	}

	return p, nil
}
