package store

import (
	"testing"

	"github.com/telaflix/telaflix/internal/models"
)

func TestCatalogCache(t *testing.T) {
	s := newTestStore(t)

	if got := s.CachedSections(); got != nil {
		t.Errorf("CachedSections() before write = %+v, want nil", got)
	}

	s.SetCachedSections(models.Sections{
		Trending: []models.Movie{{ID: "1", Title: "Movie A"}},
		Popular:  []models.Movie{{ID: "2", Title: "Movie B"}},
	})

	got := s.CachedSections()
	if got == nil {
		t.Fatal("CachedSections() = nil after write")
	}
	if len(got.Trending) != 1 || got.Trending[0].ID != "1" {
		t.Errorf("CachedSections().Trending = %v, want [A]", got.Trending)
	}

	// Snapshots replace wholesale: an empty refresh clears old buckets.
	s.SetCachedSections(models.Sections{})
	got = s.CachedSections()
	if got == nil {
		t.Fatal("CachedSections() = nil after second write")
	}
	if len(got.Trending) != 0 {
		t.Errorf("CachedSections().Trending after wholesale replace = %v, want empty", got.Trending)
	}
}

func TestCatalogCacheUnparseableYieldsNil(t *testing.T) {
	s := newTestStore(t)
	if err := s.set(cacheKey, "][ not json"); err != nil {
		t.Fatalf("set() error = %v", err)
	}
	if got := s.CachedSections(); got != nil {
		t.Errorf("CachedSections() on unparseable entry = %+v, want nil", got)
	}
}
