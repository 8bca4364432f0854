// TMDB implementation of [Catalog]
//
// Response types based on https://developer.themoviedb.org/reference
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/telaflix/telaflix/internal/models"
	"github.com/telaflix/telaflix/internal/secure"
	"github.com/telaflix/telaflix/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	tmdbBaseURL     = "https://api.themoviedb.org/3"
	tmdbImageBase   = "https://image.tmdb.org/t/p/w500"
	tmdbBackdrop    = "https://image.tmdb.org/t/p/original"
	tmdbReqTimeout  = 8 * time.Second
	defaultLanguage = "pt-BR"

	// Placeholders shown when TMDB has no artwork for a title.
	posterFallback   = "https://images.unsplash.com/photo-1594908900066-3f47337549d8?q=80&w=500&auto=format&fit=crop"
	backdropFallback = "https://images.unsplash.com/photo-1485846234645-a62644f84728?q=80&w=1280&auto=format&fit=crop"

	// AutoEmbed marks a movie as playable through the embed providers keyed
	// by TMDB id rather than a direct stream URL.
	AutoEmbed = "AUTO_EMBED"
)

// tmdbMovie is one entry of a TMDB list response.
type tmdbMovie struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	PosterPath    string  `json:"poster_path"`
	BackdropPath  string  `json:"backdrop_path"`
	VoteAverage   float64 `json:"vote_average"`
	ReleaseDate   string  `json:"release_date"`
	Overview      string  `json:"overview"`
}

// tmdbListResponse is the paginated envelope of every TMDB list endpoint.
type tmdbListResponse struct {
	Page         int         `json:"page"`
	Results      []tmdbMovie `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

// TMDBService implements [Catalog] against the TMDB REST API.
type TMDBService struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewTMDBService creates a TMDB client from configuration.
//
// When a v4 read-access token is present the underlying client is built via
// [oauth2.NewClient] with a static token source; otherwise the v3 api_key is
// appended to every request. A zero rate limit disables throttling.
func NewTMDBService(cfg shared.TMDBConfig) *TMDBService {
	language := cfg.Language
	if language == "" {
		language = defaultLanguage
	}

	client := &http.Client{Timeout: tmdbReqTimeout}
	if cfg.ReadAccessToken != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.ReadAccessToken})
		client = oauth2.NewClient(context.Background(), src)
		client.Timeout = tmdbReqTimeout
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return &TMDBService{
		baseURL:    tmdbBaseURL,
		apiKey:     cfg.APIKey,
		language:   language,
		httpClient: client,
		limiter:    limiter,
	}
}

func (t *TMDBService) Name() string { return "TMDB" }

// SetBaseURL overrides the API base URL. Used by tests.
func (t *TMDBService) SetBaseURL(u string) { t.baseURL = u }

// fetchMovies performs a list request against endpoint and maps the results.
// A non-2xx status or transport failure returns an empty slice with the
// error; the slice is always safe to render.
func (t *TMDBService) fetchMovies(ctx context.Context, endpoint string, page int) ([]models.Movie, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return []models.Movie{}, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
	}

	separator := "?"
	if strings.Contains(endpoint, "?") {
		separator = "&"
	}
	fullURL := fmt.Sprintf("%s%s%slanguage=%s&page=%d&include_adult=false",
		t.baseURL, endpoint, separator, url.QueryEscape(t.language), page)
	if t.apiKey != "" {
		fullURL += "&api_key=" + url.QueryEscape(t.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return []models.Movie{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return []models.Movie{}, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return []models.Movie{}, fmt.Errorf("%w: TMDB status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var list tmdbListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return []models.Movie{}, fmt.Errorf("failed to decode response: %w", err)
	}

	movies := make([]models.Movie, 0, len(list.Results))
	for _, m := range list.Results {
		movies = append(movies, formatMovie(m))
	}
	return movies, nil
}

// formatMovie maps a TMDB entry to the catalog model, substituting
// placeholders for missing artwork and synopsis.
func formatMovie(m tmdbMovie) models.Movie {
	title := m.Title
	if title == "" {
		title = m.OriginalTitle
	}
	if title == "" {
		title = "Título Indisponível"
	}

	posterURL := posterFallback
	if m.PosterPath != "" {
		posterURL = tmdbImageBase + m.PosterPath
	}
	backdropURL := backdropFallback
	if m.BackdropPath != "" {
		backdropURL = tmdbBackdrop + m.BackdropPath
	}

	year := 0
	if len(m.ReleaseDate) >= 4 {
		if y, err := strconv.Atoi(m.ReleaseDate[:4]); err == nil {
			year = y
		}
	}

	description := m.Overview
	if description == "" {
		description = "Sinopse oficial em processamento pela nossa equipe de tradução."
	}

	return models.Movie{
		ID:          strconv.Itoa(m.ID),
		Title:       title,
		PosterURL:   posterURL,
		BackdropURL: backdropURL,
		Rating:      m.VoteAverage,
		Year:        year,
		Description: description,
		Category:    "Cinema",
		VideoURL:    AutoEmbed,
	}
}

// Catalog interface implementation

func (t *TMDBService) Trending(ctx context.Context) ([]models.Movie, error) {
	return t.fetchMovies(ctx, "/trending/movie/day", 1)
}

func (t *TMDBService) Popular(ctx context.Context) ([]models.Movie, error) {
	return t.fetchMovies(ctx, "/movie/popular", 1)
}

func (t *TMDBService) NowPlaying(ctx context.Context) ([]models.Movie, error) {
	return t.fetchMovies(ctx, "/movie/now_playing", 1)
}

func (t *TMDBService) Upcoming(ctx context.Context) ([]models.Movie, error) {
	return t.fetchMovies(ctx, "/movie/upcoming", 1)
}

func (t *TMDBService) TopRated(ctx context.Context) ([]models.Movie, error) {
	return t.fetchMovies(ctx, "/movie/top_rated", 1)
}

// Search looks up movies by free-text query. Input is sanitized before it is
// sent or echoed anywhere; queries shorter than two characters short-circuit
// to an empty result.
func (t *TMDBService) Search(ctx context.Context, query string) ([]models.Movie, error) {
	query = secure.Sanitize(query)
	if len([]rune(query)) < 2 {
		return []models.Movie{}, nil
	}
	return t.fetchMovies(ctx, "/search/movie?query="+url.QueryEscape(query), 1)
}

// EmbedURLs returns the third-party embed player URLs for a movie, keyed by
// its TMDB id. Playback itself is out of scope; these are opaque targets.
func EmbedURLs(movieID, language string) []string {
	lang := "pt"
	if language != "" {
		lang = language
	}
	return []string{
		fmt.Sprintf("https://vidsrc.me/embed/movie?tmdb=%s&lang=%s", movieID, lang),
		fmt.Sprintf("https://embed.su/embed/movie/%s", movieID),
	}
}
