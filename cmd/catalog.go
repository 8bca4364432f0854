package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/telaflix/telaflix/internal/models"
	"github.com/telaflix/telaflix/internal/shared"
	"github.com/telaflix/telaflix/internal/tasks"
	"github.com/urfave/cli/v3"
)

// sectionLabels maps the section argument accepted on the command line to
// the bucket it selects.
var sectionLabels = []struct {
	key    string
	label  string
	movies func(models.Sections) []models.Movie
}{
	{"trending", "Em Alta", func(s models.Sections) []models.Movie { return s.Trending }},
	{"popular", "Populares", func(s models.Sections) []models.Movie { return s.Popular }},
	{"now-playing", "Nos Cinemas", func(s models.Sections) []models.Movie { return s.NowPlaying }},
	{"upcoming", "Em Breve", func(s models.Sections) []models.Movie { return s.Upcoming }},
	{"top-rated", "Aclamados", func(s models.Sections) []models.Movie { return s.TopRated }},
}

// CatalogRefresh fetches fresh sections and updates the local cache.
//
// A failed provider keeps the cached contents on screen, so the command
// prints whatever came back even when the refresh itself reports an error.
func (r *Runner) CatalogRefresh(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.engine == nil {
		return fmt.Errorf("%w: local store not initialized, run 'telaflix setup' first", shared.ErrServiceUnavailable)
	}

	progressChan := make(chan tasks.ProgressUpdate, 50)
	type outcome struct {
		sections *models.Sections
		err      error
	}
	done := make(chan outcome, 1)

	go func() {
		sections, err := r.engine.Refresh(ctx, progressChan)
		close(progressChan)
		done <- outcome{sections, err}
	}()

	for update := range progressChan {
		r.writePlain("→ %s\n", update.Message)
	}

	result := <-done
	if result.err != nil {
		if result.sections == nil || !errors.Is(result.err, shared.ErrServiceUnavailable) {
			return result.err
		}
		r.logger.Warnf("refresh failed, showing cached catalog: %v", result.err)
	}

	if useJSON {
		return r.writeJSON(result.sections, pretty)
	}

	r.writePlainln("✓ Catalog updated")
	for _, section := range sectionLabels {
		r.writePlain("  %s: %d titles\n", section.label, len(section.movies(*result.sections)))
	}
	return nil
}

// CatalogList shows the cached catalog, optionally limited to one section.
func (r *Runner) CatalogList(ctx context.Context, cmd *cli.Command) error {
	sectionKey := cmd.StringArg("section")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.store == nil {
		return fmt.Errorf("%w: local store not initialized, run 'telaflix setup' first", shared.ErrServiceUnavailable)
	}

	sections := r.store.CachedSections()
	if sections == nil {
		return r.writePlain("✗ No cached catalog. Run 'telaflix catalog refresh' first.\n")
	}

	if sectionKey != "" {
		for _, section := range sectionLabels {
			if section.key == sectionKey {
				movies := section.movies(*sections)
				if useJSON {
					return r.writeJSON(movies, pretty)
				}
				r.writePlainHeader(section.label)
				r.listMovies(movies)
				return nil
			}
		}
		return fmt.Errorf("%w: unknown section %q", shared.ErrInvalidInput, sectionKey)
	}

	if useJSON {
		return r.writeJSON(sections, pretty)
	}

	for _, section := range sectionLabels {
		movies := section.movies(*sections)
		if len(movies) == 0 {
			continue
		}
		r.writePlainHeader(section.label)
		r.listMovies(movies)
		r.writePlain("\n")
	}
	return nil
}

// CatalogSearch looks up titles against the catalog provider.
func (r *Runner) CatalogSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	limit := int(cmd.Int("limit"))
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}
	if r.catalog == nil {
		return fmt.Errorf("%w: TMDB credentials must be set in config.toml", shared.ErrServiceUnavailable)
	}

	r.logger.Infof("searching catalog for %q", query)

	movies, err := r.catalog.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if limit > 0 && limit < len(movies) {
		movies = movies[:limit]
	}

	if useJSON {
		return r.writeJSON(movies, pretty)
	}

	if len(movies) == 0 {
		return r.writePlain("No titles found for %q\n", query)
	}

	r.writePlain("Found %d titles:\n\n", len(movies))
	r.listMovies(movies)
	return nil
}

// listMovies prints a numbered movie listing.
func (r *Runner) listMovies(movies []models.Movie) {
	for i, movie := range movies {
		line := fmt.Sprintf("%d. %s", i+1, movie.Title)
		if movie.Year > 0 {
			line = fmt.Sprintf("%s (%d)", line, movie.Year)
		}
		r.writePlain("%s ★ %.1f\n", line, movie.Rating)
		if desc := strings.TrimSpace(movie.Description); desc != "" {
			if runes := []rune(desc); len(runes) > 100 {
				desc = string(runes[:100]) + "..."
			}
			r.writePlain("   %s\n", desc)
		}
	}
}
