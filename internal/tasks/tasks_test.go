package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/telaflix/telaflix/internal/models"
	"github.com/telaflix/telaflix/internal/shared"
	"github.com/telaflix/telaflix/internal/store"
)

type mockCatalog struct {
	movies map[string][]models.Movie
	errs   map[string]error

	// when non-nil every fetch blocks until the channel is closed; entries
	// are announced on started so tests can sequence concurrent refreshes
	gate    chan struct{}
	started chan struct{}
}

func (m *mockCatalog) section(name string) ([]models.Movie, error) {
	if m.started != nil {
		select {
		case m.started <- struct{}{}:
		default:
		}
	}
	if m.gate != nil {
		<-m.gate
	}
	if err := m.errs[name]; err != nil {
		return []models.Movie{}, err
	}
	return m.movies[name], nil
}

func (m *mockCatalog) Trending(ctx context.Context) ([]models.Movie, error) {
	return m.section("trending")
}

func (m *mockCatalog) Popular(ctx context.Context) ([]models.Movie, error) {
	return m.section("popular")
}

func (m *mockCatalog) NowPlaying(ctx context.Context) ([]models.Movie, error) {
	return m.section("nowPlaying")
}

func (m *mockCatalog) Upcoming(ctx context.Context) ([]models.Movie, error) {
	return m.section("upcoming")
}

func (m *mockCatalog) TopRated(ctx context.Context) ([]models.Movie, error) {
	return m.section("topRated")
}

func (m *mockCatalog) Search(ctx context.Context, query string) ([]models.Movie, error) {
	return []models.Movie{}, nil
}

func (m *mockCatalog) Name() string { return "mock" }

func movie(id, title string) models.Movie {
	return models.Movie{ID: id, Title: title}
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return store.New(db, nil)
}

func fullCatalog() *mockCatalog {
	return &mockCatalog{movies: map[string][]models.Movie{
		"trending":   {movie("1", "Matrix")},
		"popular":    {movie("2", "A Origem")},
		"nowPlaying": {movie("3", "Duna")},
		"upcoming":   {movie("4", "Akira")},
		"topRated":   {movie("5", "Cidade de Deus")},
	}}
}

func TestCatalogEngineRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("populates every section and writes the cache", func(t *testing.T) {
		st := newTestStore(t)
		engine := NewCatalogEngine(fullCatalog(), st, nil)

		sections, err := engine.Refresh(ctx, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if sections.IsEmpty() {
			t.Fatal("expected populated sections")
		}
		if sections.Trending[0].Title != "Matrix" {
			t.Errorf("expected Matrix in trending, got %s", sections.Trending[0].Title)
		}

		cached := st.CachedSections()
		if cached == nil {
			t.Fatal("expected cache to be written")
		}
		if len(cached.TopRated) != 1 || cached.TopRated[0].ID != "5" {
			t.Errorf("expected cached top rated entry, got %+v", cached.TopRated)
		}
	})

	t.Run("failed section keeps cached contents", func(t *testing.T) {
		st := newTestStore(t)
		st.SetCachedSections(models.Sections{
			Popular: []models.Movie{movie("9", "Clássico em Cache")},
		})

		catalog := fullCatalog()
		catalog.errs = map[string]error{"popular": shared.ErrAPIRequest}
		engine := NewCatalogEngine(catalog, st, nil)

		sections, err := engine.Refresh(ctx, nil)
		if err != nil {
			t.Fatalf("expected partial failure to succeed, got %v", err)
		}
		if len(sections.Popular) != 1 || sections.Popular[0].Title != "Clássico em Cache" {
			t.Errorf("expected cached popular row to survive, got %+v", sections.Popular)
		}
		if len(sections.Trending) != 1 || sections.Trending[0].Title != "Matrix" {
			t.Errorf("expected fresh trending row, got %+v", sections.Trending)
		}

		t.Run("snapshot with the cached row is persisted", func(t *testing.T) {
			cached := st.CachedSections()
			if cached == nil {
				t.Fatal("expected cache to be written")
			}
			if len(cached.Popular) != 1 || cached.Popular[0].ID != "9" {
				t.Errorf("expected cached popular entry to persist, got %+v", cached.Popular)
			}
		})
	})

	t.Run("total failure returns cached sections and an error", func(t *testing.T) {
		st := newTestStore(t)
		st.SetCachedSections(models.Sections{
			Trending: []models.Movie{movie("9", "Clássico em Cache")},
		})

		catalog := &mockCatalog{errs: map[string]error{
			"trending":   shared.ErrAPIRequest,
			"popular":    shared.ErrAPIRequest,
			"nowPlaying": shared.ErrAPIRequest,
			"upcoming":   shared.ErrAPIRequest,
			"topRated":   shared.ErrAPIRequest,
		}}
		engine := NewCatalogEngine(catalog, st, nil)

		sections, err := engine.Refresh(ctx, nil)
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Fatalf("expected ErrServiceUnavailable, got %v", err)
		}
		if sections == nil || len(sections.Trending) != 1 {
			t.Errorf("expected cached contents to render, got %+v", sections)
		}
	})

	t.Run("nil provider", func(t *testing.T) {
		engine := NewCatalogEngine(nil, newTestStore(t), nil)
		if _, err := engine.Refresh(ctx, nil); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("progress reports cache before sections", func(t *testing.T) {
		st := newTestStore(t)
		st.SetCachedSections(models.Sections{
			Trending: []models.Movie{movie("9", "Clássico em Cache")},
		})
		engine := NewCatalogEngine(fullCatalog(), st, nil)

		progress := make(chan ProgressUpdate, 16)
		if _, err := engine.Refresh(ctx, progress); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		close(progress)

		var phases []Phase
		for update := range progress {
			phases = append(phases, update.Phase)
		}
		if len(phases) == 0 {
			t.Fatal("expected progress updates")
		}
		if phases[0] != RenderCache {
			t.Errorf("expected first update to render the cache, got %s", phases[0])
		}
		if phases[len(phases)-1] != WriteCache {
			t.Errorf("expected final update to report the cache write, got %s", phases[len(phases)-1])
		}
	})

	t.Run("superseded refresh is discarded", func(t *testing.T) {
		st := newTestStore(t)
		catalog := fullCatalog()
		catalog.gate = make(chan struct{})
		catalog.started = make(chan struct{}, 16)
		engine := NewCatalogEngine(catalog, st, nil)

		type result struct {
			sections *models.Sections
			err      error
		}

		first := make(chan result, 1)
		go func() {
			s, err := engine.Refresh(ctx, nil)
			first <- result{s, err}
		}()
		// wait for every section fetch of the first refresh to block
		for range 5 {
			<-catalog.started
		}

		second := make(chan result, 1)
		go func() {
			s, err := engine.Refresh(ctx, nil)
			second <- result{s, err}
		}()
		<-catalog.started

		close(catalog.gate)

		if res := <-first; !errors.Is(res.err, shared.ErrRefreshSuperseded) {
			t.Errorf("expected first refresh to be superseded, got %v", res.err)
		}
		if res := <-second; res.err != nil {
			t.Errorf("expected newest refresh to succeed, got %v", res.err)
		} else if res.sections.IsEmpty() {
			t.Error("expected newest refresh to carry sections")
		}
	})
}

func TestPhaseString(t *testing.T) {
	tc := []struct {
		phase Phase
		want  string
	}{
		{RenderCache, "render_cache"},
		{FetchSection, "fetch_section"},
		{WriteCache, "write_cache"},
		{Phase(99), ""},
	}
	for _, c := range tc {
		if got := c.phase.String(); got != c.want {
			t.Errorf("Phase(%d).String() = %q, want %q", c.phase, got, c.want)
		}
	}
}
