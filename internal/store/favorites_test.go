package store

import (
	"testing"

	"github.com/telaflix/telaflix/internal/models"
)

var (
	movieA = models.Movie{ID: "1", Title: "Movie A", Year: 2024}
	movieB = models.Movie{ID: "2", Title: "Movie B", Year: 2025}
	movieC = models.Movie{ID: "3", Title: "Movie C", Year: 2023}
)

func TestToggleFavorite(t *testing.T) {
	t.Run("add to empty list", func(t *testing.T) {
		got := ToggleFavorite([]models.Movie{}, movieA)
		if len(got) != 1 || got[0].ID != movieA.ID {
			t.Errorf("ToggleFavorite([], A) = %v, want [A]", got)
		}
	})

	t.Run("remove sole entry", func(t *testing.T) {
		got := ToggleFavorite([]models.Movie{movieA}, movieA)
		if len(got) != 0 {
			t.Errorf("ToggleFavorite([A], A) = %v, want []", got)
		}
	})

	t.Run("remove preserves order", func(t *testing.T) {
		got := ToggleFavorite([]models.Movie{movieA, movieB, movieC}, movieB)
		if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
			t.Errorf("ToggleFavorite([A B C], B) = %v, want [A C]", got)
		}
	})

	t.Run("membership by id only", func(t *testing.T) {
		// Same ID, drifted metadata: still the same favorite.
		refetched := models.Movie{ID: movieA.ID, Title: "Movie A (Remastered)", Year: 2026}
		got := ToggleFavorite([]models.Movie{movieA}, refetched)
		if len(got) != 0 {
			t.Errorf("ToggleFavorite treated drifted metadata as a new movie: %v", got)
		}
	})

	t.Run("double toggle restores list", func(t *testing.T) {
		orig := []models.Movie{movieA, movieB}
		got := ToggleFavorite(ToggleFavorite(orig, movieC), movieC)
		if len(got) != len(orig) {
			t.Fatalf("double toggle len = %d, want %d", len(got), len(orig))
		}
		for i := range orig {
			if got[i].ID != orig[i].ID {
				t.Errorf("double toggle reordered: got[%d] = %s, want %s", i, got[i].ID, orig[i].ID)
			}
		}
	})

	t.Run("input list not mutated", func(t *testing.T) {
		orig := []models.Movie{movieA, movieB}
		_ = ToggleFavorite(orig, movieA)
		if len(orig) != 2 || orig[0].ID != "1" || orig[1].ID != "2" {
			t.Errorf("ToggleFavorite mutated its input: %v", orig)
		}
	})
}

func TestFavoritesPersistence(t *testing.T) {
	s := newTestStore(t)

	if got := s.LoadFavorites(); len(got) != 0 {
		t.Errorf("LoadFavorites() before save = %v, want empty", got)
	}

	list := []models.Movie{movieA, movieB}
	if err := s.SaveFavorites(list); err != nil {
		t.Fatalf("SaveFavorites() error = %v", err)
	}

	got := s.LoadFavorites()
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Errorf("LoadFavorites() = %v, want [A B]", got)
	}

	// Corrupted entry degrades to an empty list, not an error.
	if err := s.set(favoritesKey, "junk-without-separator"); err != nil {
		t.Fatalf("set() error = %v", err)
	}
	if got := s.LoadFavorites(); len(got) != 0 {
		t.Errorf("LoadFavorites() on corrupted blob = %v, want empty", got)
	}
}
