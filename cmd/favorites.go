package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/telaflix/telaflix/internal/formatter"
	"github.com/telaflix/telaflix/internal/models"
	"github.com/telaflix/telaflix/internal/shared"
	"github.com/telaflix/telaflix/internal/store"
	"github.com/urfave/cli/v3"
)

// FavoritesList shows the saved personal list.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.store == nil {
		return fmt.Errorf("%w: local store not initialized, run 'telaflix setup' first", shared.ErrServiceUnavailable)
	}

	favorites := r.store.LoadFavorites()

	if useJSON {
		return r.writeJSON(favorites, pretty)
	}

	if len(favorites) == 0 {
		return r.writePlain("Your list is empty. Add titles with 'telaflix favorites toggle <title>'.\n")
	}

	r.writePlainHeader("Minha Lista")
	r.listMovies(favorites)
	return nil
}

// FavoritesToggle adds or removes a title by name.
//
// A title already on the list is matched locally and removed without a
// network call; anything else is resolved through catalog search and the
// first result is added.
func (r *Runner) FavoritesToggle(ctx context.Context, cmd *cli.Command) error {
	title := cmd.StringArg("title")
	if title == "" {
		return fmt.Errorf("%w: title", shared.ErrMissingArgument)
	}
	if r.store == nil {
		return fmt.Errorf("%w: local store not initialized, run 'telaflix setup' first", shared.ErrServiceUnavailable)
	}

	favorites := r.store.LoadFavorites()

	movie, found := findByTitle(favorites, title)
	if !found {
		if r.catalog == nil {
			return fmt.Errorf("%w: TMDB credentials must be set in config.toml", shared.ErrServiceUnavailable)
		}
		results, err := r.catalog.Search(ctx, title)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
		if len(results) == 0 {
			return r.writePlain("✗ No title found for %q\n", title)
		}
		movie = results[0]
	}

	updated := store.ToggleFavorite(favorites, movie)
	if err := r.store.SaveFavorites(updated); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStorageWrite, err)
	}

	if len(updated) > len(favorites) {
		r.writePlain("✓ Added %q to your list (%d titles)\n", movie.Title, len(updated))
	} else {
		r.writePlain("✓ Removed %q from your list (%d titles)\n", movie.Title, len(updated))
	}
	return nil
}

// FavoritesExport writes the list to CSV, text or a Markdown bundle.
func (r *Runner) FavoritesExport(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	output := cmd.String("output")
	imageURL := cmd.String("image")

	if r.store == nil {
		return fmt.Errorf("%w: local store not initialized, run 'telaflix setup' first", shared.ErrServiceUnavailable)
	}

	favorites := r.store.LoadFavorites()
	if len(favorites) == 0 {
		return r.writePlain("✗ Nothing to export, your list is empty\n")
	}

	switch format {
	case "csv":
		path, err := formatter.WriteFavoritesCSV(favorites, output)
		if err != nil {
			return fmt.Errorf("failed to export CSV: %w", err)
		}
		r.writePlain("✓ List exported to %s\n", path)
		r.writePlain("  Titles: %d\n", len(favorites))
		return nil

	case "markdown", "md":
		result, err := formatter.WriteMarkdownExport(favorites, r.ownerName(), output, imageURL)
		if err != nil {
			return fmt.Errorf("failed to export Markdown bundle: %w", err)
		}
		r.writePlain("✓ List exported to %s/\n", result.Directory)
		for _, file := range result.Files {
			r.writePlain("  %s\n", file)
		}
		return nil

	case "text", "txt":
		data, err := formatter.FavoritesToText(favorites)
		if err != nil {
			return fmt.Errorf("failed to render list: %w", err)
		}
		if output == "" {
			return r.writePlain("%s", string(data))
		}
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		r.writePlain("✓ List exported to %s\n", output)
		return nil
	}

	return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidInput, format)
}

// ownerName resolves the display name for exports, falling back to the
// generic subscriber label when logged out.
func (r *Runner) ownerName() string {
	if r.auth != nil {
		if user, err := r.auth.Current(); err == nil {
			return user.Name
		} else if !errors.Is(err, shared.ErrNotAuthenticated) {
			r.logger.Warnf("failed to load session: %v", err)
		}
	}
	return "Assinante"
}

// findByTitle matches a movie by exact title, case-insensitively.
func findByTitle(movies []models.Movie, title string) (models.Movie, bool) {
	for _, movie := range movies {
		if strings.EqualFold(movie.Title, title) {
			return movie, true
		}
	}
	return models.Movie{}, false
}
