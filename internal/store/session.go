package store

import (
	"fmt"

	"github.com/telaflix/telaflix/internal/models"
	"github.com/telaflix/telaflix/internal/secure"
)

// SaveSession persists user as the active session through the storage codec.
//
// Session writes are critical: failures are returned to the caller (and
// logged) rather than swallowed.
func (s *Store) SaveSession(user models.UserRecord) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("refusing to persist session: %w", err)
	}

	blob, err := secure.Encode(user)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.set(sessionKey, blob); err != nil {
		s.logger.Errorf("session write failed: %v", err)
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// LoadSession restores the active session. Returns nil when no session was
// saved or the stored blob is corrupted; corruption is treated as a logged
// out state, never surfaced as an error.
func (s *Store) LoadSession() *models.UserRecord {
	blob, ok := s.get(sessionKey)
	if !ok {
		return nil
	}

	var user models.UserRecord
	if !secure.Decode(blob, &user) {
		s.logger.Warn("stored session failed integrity check, treating as logged out")
		return nil
	}
	return &user
}

// ClearSession removes the active session pointer. The user's ledger entry
// is left untouched.
func (s *Store) ClearSession() error {
	return s.delete(sessionKey)
}
