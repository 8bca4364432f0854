package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/telaflix/telaflix/internal/shared"
)

func tmdbServer(t *testing.T, wantPath string, results []map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wantPath != "" && r.URL.Path != wantPath {
			t.Errorf("expected path %s, got %s", wantPath, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"page":          1,
			"results":       results,
			"total_pages":   1,
			"total_results": len(results),
		})
	}))
}

func TestTMDBService(t *testing.T) {
	t.Run("NewTMDBService", func(t *testing.T) {
		t.Run("defaults language", func(t *testing.T) {
			svc := NewTMDBService(shared.TMDBConfig{APIKey: "k"})
			if svc.language != defaultLanguage {
				t.Errorf("expected language %s, got %s", defaultLanguage, svc.language)
			}
		})

		t.Run("keeps configured language", func(t *testing.T) {
			svc := NewTMDBService(shared.TMDBConfig{APIKey: "k", Language: "en-US"})
			if svc.language != "en-US" {
				t.Errorf("expected language en-US, got %s", svc.language)
			}
		})

		t.Run("disables limiter at zero rate", func(t *testing.T) {
			svc := NewTMDBService(shared.TMDBConfig{APIKey: "k"})
			if svc.limiter != nil {
				t.Error("expected nil limiter")
			}
		})
	})

	t.Run("Name", func(t *testing.T) {
		if svc := NewTMDBService(shared.TMDBConfig{}); svc.Name() != "TMDB" {
			t.Errorf("expected name TMDB, got %s", svc.Name())
		}
	})

	t.Run("Trending", func(t *testing.T) {
		server := tmdbServer(t, "/trending/movie/day", []map[string]any{
			{
				"id":            603,
				"title":         "Matrix",
				"poster_path":   "/matrix.jpg",
				"backdrop_path": "/matrix_bg.jpg",
				"vote_average":  8.2,
				"release_date":  "1999-03-31",
				"overview":      "Um hacker descobre a verdade.",
			},
		})
		defer server.Close()

		svc := NewTMDBService(shared.TMDBConfig{APIKey: "k", RateLimit: 100})
		svc.SetBaseURL(server.URL)

		movies, err := svc.Trending(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(movies) != 1 {
			t.Fatalf("expected 1 movie, got %d", len(movies))
		}

		m := movies[0]
		if m.ID != "603" {
			t.Errorf("expected ID 603, got %s", m.ID)
		}
		if m.Title != "Matrix" {
			t.Errorf("expected title Matrix, got %s", m.Title)
		}
		if m.PosterURL != tmdbImageBase+"/matrix.jpg" {
			t.Errorf("unexpected poster URL %s", m.PosterURL)
		}
		if m.Year != 1999 {
			t.Errorf("expected year 1999, got %d", m.Year)
		}
		if m.VideoURL != AutoEmbed {
			t.Errorf("expected video URL %s, got %s", AutoEmbed, m.VideoURL)
		}
	})

	t.Run("query parameters", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("language") != "pt-BR" {
				t.Errorf("expected language pt-BR, got %s", q.Get("language"))
			}
			if q.Get("api_key") != "secret" {
				t.Errorf("expected api_key secret, got %s", q.Get("api_key"))
			}
			if q.Get("include_adult") != "false" {
				t.Errorf("expected include_adult false, got %s", q.Get("include_adult"))
			}
			json.NewEncoder(w).Encode(map[string]any{"results": []map[string]any{}})
		}))
		defer server.Close()

		svc := NewTMDBService(shared.TMDBConfig{APIKey: "secret"})
		svc.SetBaseURL(server.URL)
		if _, err := svc.Popular(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("placeholder fallbacks", func(t *testing.T) {
		server := tmdbServer(t, "", []map[string]any{
			{"id": 1, "vote_average": 0.0},
		})
		defer server.Close()

		svc := NewTMDBService(shared.TMDBConfig{APIKey: "k"})
		svc.SetBaseURL(server.URL)

		movies, err := svc.TopRated(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		m := movies[0]
		if m.Title != "Título Indisponível" {
			t.Errorf("expected title placeholder, got %s", m.Title)
		}
		if m.PosterURL != posterFallback {
			t.Errorf("expected poster fallback, got %s", m.PosterURL)
		}
		if m.BackdropURL != backdropFallback {
			t.Errorf("expected backdrop fallback, got %s", m.BackdropURL)
		}
		if !strings.Contains(m.Description, "Sinopse oficial") {
			t.Errorf("expected synopsis placeholder, got %s", m.Description)
		}
		if m.Year != 0 {
			t.Errorf("expected year 0, got %d", m.Year)
		}
	})

	t.Run("original title fallback", func(t *testing.T) {
		server := tmdbServer(t, "", []map[string]any{
			{"id": 2, "original_title": "Les Quatre Cents Coups"},
		})
		defer server.Close()

		svc := NewTMDBService(shared.TMDBConfig{APIKey: "k"})
		svc.SetBaseURL(server.URL)

		movies, _ := svc.NowPlaying(context.Background())
		if movies[0].Title != "Les Quatre Cents Coups" {
			t.Errorf("expected original title fallback, got %s", movies[0].Title)
		}
	})

	t.Run("Search", func(t *testing.T) {
		t.Run("sends sanitized query", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/search/movie" {
					t.Errorf("expected path /search/movie, got %s", r.URL.Path)
				}
				if got := r.URL.Query().Get("query"); got != "matrix" {
					t.Errorf("expected sanitized query, got %q", got)
				}
				json.NewEncoder(w).Encode(map[string]any{"results": []map[string]any{}})
			}))
			defer server.Close()

			svc := NewTMDBService(shared.TMDBConfig{APIKey: "k"})
			svc.SetBaseURL(server.URL)
			if _, err := svc.Search(context.Background(), "  <matrix>  "); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("short query short-circuits", func(t *testing.T) {
			svc := NewTMDBService(shared.TMDBConfig{APIKey: "k"})
			svc.SetBaseURL("http://127.0.0.1:1")

			movies, err := svc.Search(context.Background(), "a")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(movies) != 0 {
				t.Errorf("expected empty result, got %d", len(movies))
			}
		})
	})

	t.Run("Error Handling", func(t *testing.T) {
		t.Run("non-2xx returns empty slice and error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			}))
			defer server.Close()

			svc := NewTMDBService(shared.TMDBConfig{APIKey: "bad"})
			svc.SetBaseURL(server.URL)

			movies, err := svc.Upcoming(context.Background())
			if err == nil {
				t.Fatal("expected error for 401")
			}
			if movies == nil || len(movies) != 0 {
				t.Errorf("expected empty non-nil slice, got %v", movies)
			}
		})

		t.Run("transport failure returns empty slice and error", func(t *testing.T) {
			svc := NewTMDBService(shared.TMDBConfig{APIKey: "k"})
			svc.SetBaseURL("http://127.0.0.1:1")

			movies, err := svc.Popular(context.Background())
			if err == nil {
				t.Fatal("expected transport error")
			}
			if len(movies) != 0 {
				t.Errorf("expected empty slice, got %d", len(movies))
			}
		})
	})
}

func TestEmbedURLs(t *testing.T) {
	t.Run("defaults to portuguese", func(t *testing.T) {
		urls := EmbedURLs("603", "")
		if len(urls) != 2 {
			t.Fatalf("expected 2 providers, got %d", len(urls))
		}
		if urls[0] != "https://vidsrc.me/embed/movie?tmdb=603&lang=pt" {
			t.Errorf("unexpected primary embed URL %s", urls[0])
		}
		if urls[1] != "https://embed.su/embed/movie/603" {
			t.Errorf("unexpected fallback embed URL %s", urls[1])
		}
	})

	t.Run("honors language", func(t *testing.T) {
		urls := EmbedURLs("27205", "en")
		if !strings.Contains(urls[0], "lang=en") {
			t.Errorf("expected lang=en in %s", urls[0])
		}
	})
}
