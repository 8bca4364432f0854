// package services defines interfaces for the external APIs the app consumes
//
// TMDB, EmailJS, Gemini, IPTV playlists
package services

import (
	"context"

	"github.com/telaflix/telaflix/internal/models"
)

// Catalog defines the metadata provider the catalog screens are built from.
// Implementations return an empty slice together with the error on failure;
// callers render what they got and never crash on a failed section.
type Catalog interface {
	// Trending returns the daily trending movies.
	Trending(ctx context.Context) ([]models.Movie, error)

	// Popular returns the current popular movies.
	Popular(ctx context.Context) ([]models.Movie, error)

	// NowPlaying returns movies currently in theaters.
	NowPlaying(ctx context.Context) ([]models.Movie, error)

	// Upcoming returns upcoming releases.
	Upcoming(ctx context.Context) ([]models.Movie, error)

	// TopRated returns the all-time top rated movies.
	TopRated(ctx context.Context) ([]models.Movie, error)

	// Search looks up movies by free-text query. Queries shorter than two
	// characters yield an empty result without a network call.
	Search(ctx context.Context, query string) ([]models.Movie, error)

	// Name returns the provider name (e.g. "TMDB")
	Name() string
}

// Mailer delivers transactional email. Implementations report delivery
// failure through the returned error; they never block past their timeout.
type Mailer interface {
	// SendVerificationCode delivers a one-time code to the address.
	SendVerificationCode(ctx context.Context, email, code string) error

	// SendUpdate delivers a product news message to the address.
	SendUpdate(ctx context.Context, email, title, message string) error
}

// Assistant produces catalog-aware recommendations.
type Assistant interface {
	// Recommend answers userInput against the given catalog snapshot.
	Recommend(ctx context.Context, userInput string, catalog []models.Movie, language string) (string, error)
}

// ChannelLister loads live channels from playlist sources.
type ChannelLister interface {
	// FetchM3U loads and parses a single M3U playlist URL. All transport
	// paths failing yields an empty slice, not an error.
	FetchM3U(ctx context.Context, url string) []models.Channel

	// FetchAll merges every configured source plus pinned channels,
	// de-duplicated by stream URL.
	FetchAll(ctx context.Context) []models.Channel
}
