// package store provides the local persistence layer: a small key-value
// table in SQLite plus typed accessors for the session, favorites list,
// user ledger and catalog cache that live in it.
//
// The application state in memory is a transient copy; every mutation is
// written back whole. There is no merge across writers; last write wins.
package store

import (
	"database/sql"
	"io"

	"github.com/charmbracelet/log"
)

// Storage keys inside the store table. Session and favorites hold codec
// blobs; the ledger and catalog cache hold raw JSON.
const (
	sessionKey   = "telaflix_session_secure"
	favoritesKey = "telaflix_mylist_secure"
	ledgerKey    = "telaflix_users_v1"
	cacheKey     = "telaflix_catalog_cache_v2"
)

// Store wraps the key-value table with typed accessors.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// New creates a Store on top of an open database connection. The logger is
// used to surface write failures on critical entries; it may be nil.
func New(db *sql.DB, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{db: db, logger: logger}
}

// get returns the raw value for key. The second return is false when the
// key is absent or the read failed; expected absence never raises.
func (s *Store) get(key string) (string, bool) {
	var value string
	err := s.db.QueryRow("SELECT value FROM store WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		s.logger.Warnf("store read failed for %s: %v", key, err)
		return "", false
	}
	return value, true
}

// set writes the raw value for key, replacing any previous value.
func (s *Store) set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

// delete removes key from the store. Deleting an absent key is not an error.
func (s *Store) delete(key string) error {
	_, err := s.db.Exec("DELETE FROM store WHERE key = ?", key)
	return err
}
