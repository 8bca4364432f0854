// package tasks implements the catalog refresh pipeline.
//
// The core abstraction is CatalogEngine, which renders the cached catalog
// snapshot immediately and revalidates every section against the metadata
// provider. Operations emit progress updates via channels for non-blocking
// status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/telaflix/telaflix/internal/models"
	"github.com/telaflix/telaflix/internal/services"
	"github.com/telaflix/telaflix/internal/shared"
	"github.com/telaflix/telaflix/internal/store"
)

// sectionOperation binds one catalog bucket to its fetch call.
type sectionOperation struct {
	name   string
	fetch  func(context.Context) ([]models.Movie, error)
	target *[]models.Movie
}

// CatalogEngine refreshes the browsing sections with cache-then-revalidate
// semantics. Every section resolves independently: a provider failure on one
// row leaves its cached contents in place and never blocks the others.
type CatalogEngine struct {
	catalog services.Catalog
	store   *store.Store
	logger  *log.Logger

	// generation invalidates in-flight refreshes that a newer call
	// superseded, so a slow response cannot overwrite fresher state.
	generation atomic.Uint64
}

// NewCatalogEngine creates an engine over the provider and the local cache.
// The logger may be nil.
func NewCatalogEngine(catalog services.Catalog, st *store.Store, logger *log.Logger) *CatalogEngine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &CatalogEngine{catalog: catalog, store: st, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *CatalogEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Refresh returns the freshest renderable catalog.
//
// The cached snapshot seeds the result and is reported first; the five
// sections are then fetched concurrently. Sections that fail keep their
// cached contents. When at least one section succeeds the whole snapshot is
// written back to the cache. A refresh superseded by a newer call returns
// [shared.ErrRefreshSuperseded] and touches nothing.
func (e *CatalogEngine) Refresh(ctx context.Context, progress chan<- ProgressUpdate) (*models.Sections, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog provider not initialized", shared.ErrServiceUnavailable)
	}

	gen := e.generation.Add(1)

	sections := models.Sections{}
	if cached := e.store.CachedSections(); cached != nil {
		sections = *cached
		e.sendProgress(progress, cacheRenderedUpdate(len(sections.All())))
	}

	ops := []sectionOperation{
		{name: "Em Alta", fetch: e.catalog.Trending, target: &sections.Trending},
		{name: "Populares", fetch: e.catalog.Popular, target: &sections.Popular},
		{name: "Nos Cinemas", fetch: e.catalog.NowPlaying, target: &sections.NowPlaying},
		{name: "Em Breve", fetch: e.catalog.Upcoming, target: &sections.Upcoming},
		{name: "Aclamados", fetch: e.catalog.TopRated, target: &sections.TopRated},
	}

	type sectionResult struct {
		movies []models.Movie
		err    error
	}
	results := make([]sectionResult, len(ops))

	var wg sync.WaitGroup
	for i, op := range ops {
		wg.Add(1)
		go func(i int, op sectionOperation) {
			defer wg.Done()
			movies, err := op.fetch(ctx)
			results[i] = sectionResult{movies: movies, err: err}
		}(i, op)
	}
	wg.Wait()

	if gen != e.generation.Load() {
		e.logger.Debugf("discarding superseded refresh (generation %d)", gen)
		return nil, shared.ErrRefreshSuperseded
	}

	failed := 0
	for i, op := range ops {
		res := results[i]
		if res.err != nil {
			failed++
			e.logger.Warnf("section %s failed, keeping cached contents: %v", op.name, res.err)
			e.sendProgress(progress, sectionFailedUpdate(i+1, len(ops), op.name, res.err))
			continue
		}
		*op.target = res.movies
		e.sendProgress(progress, sectionDoneUpdate(i+1, len(ops), op.name, len(res.movies)))
	}

	if failed == len(ops) {
		return &sections, fmt.Errorf("%w: every catalog section failed", shared.ErrServiceUnavailable)
	}

	e.store.SetCachedSections(sections)
	e.sendProgress(progress, cacheWrittenUpdate())
	return &sections, nil
}
