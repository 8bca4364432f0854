package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/telaflix/telaflix/internal/models"
)

// UpsertUser appends or updates user in the all-users ledger, keyed by
// email (case-insensitive). The ledger backs the administrative listing
// only; it is stored as plain JSON.
func (s *Store) UpsertUser(user models.UserRecord) error {
	users := s.ListUsers()

	replaced := false
	for i, u := range users {
		if strings.EqualFold(u.Email, user.Email) {
			users[i] = user
			replaced = true
			break
		}
	}
	if !replaced {
		users = append(users, user)
	}

	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode user ledger: %w", err)
	}
	if err := s.set(ledgerKey, string(data)); err != nil {
		s.logger.Errorf("user ledger write failed: %v", err)
		return fmt.Errorf("failed to persist user ledger: %w", err)
	}
	return nil
}

// FindUser returns the ledger record for email, or nil when unknown.
func (s *Store) FindUser(email string) *models.UserRecord {
	for _, u := range s.ListUsers() {
		if strings.EqualFold(u.Email, email) {
			return &u
		}
	}
	return nil
}

// ListUsers returns every record the ledger knows about. A missing or
// unparseable ledger yields an empty slice.
func (s *Store) ListUsers() []models.UserRecord {
	raw, ok := s.get(ledgerKey)
	if !ok {
		return []models.UserRecord{}
	}

	var users []models.UserRecord
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		s.logger.Warnf("user ledger unparseable, starting empty: %v", err)
		return []models.UserRecord{}
	}
	return users
}
