package store

import (
	"encoding/json"

	"github.com/telaflix/telaflix/internal/models"
)

// CachedSections returns the last catalog snapshot, or nil when none was
// written or the entry does not parse. Catalog data is not sensitive, so
// this path skips the codec.
func (s *Store) CachedSections() *models.Sections {
	raw, ok := s.get(cacheKey)
	if !ok {
		return nil
	}

	var sections models.Sections
	if err := json.Unmarshal([]byte(raw), &sections); err != nil {
		return nil
	}
	return &sections
}

// SetCachedSections writes the catalog snapshot. The cache is an
// optimization, not a durability guarantee: failures are logged at debug
// level and otherwise ignored.
func (s *Store) SetCachedSections(sections models.Sections) {
	data, err := json.Marshal(sections)
	if err != nil {
		s.logger.Debugf("catalog cache encode failed: %v", err)
		return
	}
	if err := s.set(cacheKey, string(data)); err != nil {
		s.logger.Debugf("catalog cache write failed: %v", err)
	}
}
