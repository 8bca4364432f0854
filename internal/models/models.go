// package models defines the data model for the streaming front-end
package models

import (
	"fmt"
	"strings"
	"time"
)

// Movie is a catalog entry as presented by the UI. Instances come from the
// TMDB client or from the favorites store; two movies with the same ID are
// the same title regardless of other field differences.
type Movie struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	PosterURL   string  `json:"posterUrl"`
	BackdropURL string  `json:"backdropUrl,omitempty"`
	Rating      float64 `json:"rating"`
	Year        int     `json:"year"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	VideoURL    string  `json:"videoUrl"`
}

// Sections holds the named catalog buckets rendered as browsing rows. A
// refresh replaces buckets wholesale; stale buckets are shown until then.
type Sections struct {
	Trending   []Movie `json:"trending"`
	Popular    []Movie `json:"popular"`
	NowPlaying []Movie `json:"nowPlaying"`
	Upcoming   []Movie `json:"upcoming"`
	TopRated   []Movie `json:"topRated"`
}

// All flattens the buckets into a single list, de-duplicated by movie ID in
// bucket order.
func (s Sections) All() []Movie {
	seen := make(map[string]bool)
	var all []Movie
	for _, bucket := range [][]Movie{s.Trending, s.Popular, s.NowPlaying, s.Upcoming, s.TopRated} {
		for _, m := range bucket {
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true
			all = append(all, m)
		}
	}
	return all
}

// IsEmpty reports whether every bucket is empty.
func (s Sections) IsEmpty() bool {
	return len(s.Trending) == 0 && len(s.Popular) == 0 && len(s.NowPlaying) == 0 &&
		len(s.Upcoming) == 0 && len(s.TopRated) == 0
}

// UserRecord is the persisted identity of a registered viewer.
//
// Created on first successful verification of an email, updated on every
// repeat login. Records are never hard-deleted; logout only clears the
// active session pointer.
type UserRecord struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
	LastLogin time.Time `json:"lastLogin"`
	XP        int       `json:"xp"`
}

// Validate checks that the record carries the fields every persisted user
// must have.
func (u UserRecord) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user record missing id")
	}
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return fmt.Errorf("user record has invalid email %q", u.Email)
	}
	return nil
}

// Channel is a live IPTV channel parsed from an M3U playlist.
type Channel struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Logo  string `json:"logo"`
	URL   string `json:"url"`
	Group string `json:"group"`
}

// ChatMessage is one turn of the catalog assistant conversation.
type ChatMessage struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}
