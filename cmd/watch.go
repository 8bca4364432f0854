package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/telaflix/telaflix/internal/models"
	"github.com/telaflix/telaflix/internal/services"
	"github.com/telaflix/telaflix/internal/shared"
	"github.com/urfave/cli/v3"
)

// Watch resolves a movie or live channel and opens the player in the browser.
func (r *Runner) Watch(ctx context.Context, cmd *cli.Command) error {
	title := cmd.StringArg("title")
	asChannel := cmd.Bool("channel")
	printOnly := cmd.Bool("print")

	if title == "" {
		return fmt.Errorf("%w: title", shared.ErrMissingArgument)
	}

	if asChannel {
		return r.watchChannel(ctx, title, printOnly)
	}
	return r.watchMovie(ctx, title, printOnly)
}

func (r *Runner) watchChannel(ctx context.Context, name string, printOnly bool) error {
	if r.channels == nil {
		return fmt.Errorf("%w: channel lister not initialized", shared.ErrServiceUnavailable)
	}

	var match *models.Channel
	for _, ch := range r.channels.FetchAll(ctx) {
		if strings.Contains(strings.ToLower(ch.Name), strings.ToLower(name)) {
			match = &ch
			break
		}
	}
	if match == nil {
		return r.writePlain("✗ No channel matches %q\n", name)
	}

	if printOnly {
		return r.writePlain("%s\n", match.URL)
	}

	r.writePlain("▶ Opening %s...\n", match.Name)
	if err := r.openURL(match.URL); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}

func (r *Runner) watchMovie(ctx context.Context, title string, printOnly bool) error {
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

	movie := results[0]
	targets := []string{movie.VideoURL}
	if movie.VideoURL == services.AutoEmbed {
		targets = services.EmbedURLs(movie.ID, r.config.App.Language)
	}

	if printOnly {
		for _, target := range targets {
			r.writePlain("%s\n", target)
		}
		return nil
	}

	r.writePlain("▶ Opening %s", movie.Title)
	if movie.Year > 0 {
		r.writePlain(" (%d)", movie.Year)
	}
	r.writePlain("...\n")

	if err := r.openURL(targets[0]); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
