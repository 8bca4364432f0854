package store

import (
	"fmt"

	"github.com/telaflix/telaflix/internal/models"
	"github.com/telaflix/telaflix/internal/secure"
)

// ToggleFavorite returns list with movie added when absent and removed when
// present. Membership is decided by ID alone so a favorite survives metadata
// drift between catalog refreshes. The input list is not modified; order of
// untouched entries is preserved.
func ToggleFavorite(list []models.Movie, movie models.Movie) []models.Movie {
	for i, m := range list {
		if m.ID == movie.ID {
			out := make([]models.Movie, 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...)
		}
	}
	out := make([]models.Movie, 0, len(list)+1)
	out = append(out, list...)
	return append(out, movie)
}

// SaveFavorites persists the whole favorites list through the storage codec.
// The list is written wholesale on every mutation; there is no diffing.
func (s *Store) SaveFavorites(list []models.Movie) error {
	if list == nil {
		list = []models.Movie{}
	}
	blob, err := secure.Encode(list)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}
	if err := s.set(favoritesKey, blob); err != nil {
		s.logger.Errorf("favorites write failed: %v", err)
		return fmt.Errorf("failed to persist favorites: %w", err)
	}
	return nil
}

// LoadFavorites restores the favorites list. A missing or corrupted entry
// yields an empty list.
func (s *Store) LoadFavorites() []models.Movie {
	blob, ok := s.get(favoritesKey)
	if !ok {
		return []models.Movie{}
	}

	var list []models.Movie
	if !secure.Decode(blob, &list) {
		s.logger.Warn("stored favorites failed integrity check, starting empty")
		return []models.Movie{}
	}
	if list == nil {
		list = []models.Movie{}
	}
	return list
}
