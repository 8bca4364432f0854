package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/telaflix/telaflix/internal/models"
	"github.com/telaflix/telaflix/internal/shared"
	"github.com/urfave/cli/v3"
)

// ChannelsList merges every configured playlist plus the pinned channels.
func (r *Runner) ChannelsList(ctx context.Context, cmd *cli.Command) error {
	group := cmd.String("group")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.channels == nil {
		return fmt.Errorf("%w: channel lister not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Info("fetching live channels from configured playlists")

	channels := r.channels.FetchAll(ctx)
	if group != "" {
		filtered := []models.Channel{}
		for _, ch := range channels {
			if strings.EqualFold(ch.Group, group) {
				filtered = append(filtered, ch)
			}
		}
		channels = filtered
	}

	if useJSON {
		return r.writeJSON(channels, pretty)
	}

	if len(channels) == 0 {
		return r.writePlain("✗ No channels available\n")
	}

	r.writePlain("Found %d channels:\n\n", len(channels))
	r.listChannels(channels)
	return nil
}

// ChannelsFetch loads and parses a single M3U playlist URL.
func (r *Runner) ChannelsFetch(ctx context.Context, cmd *cli.Command) error {
	playlistURL := cmd.StringArg("url")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if playlistURL == "" {
		return fmt.Errorf("%w: playlist URL", shared.ErrMissingArgument)
	}
	if r.channels == nil {
		return fmt.Errorf("%w: channel lister not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Infof("fetching playlist %v", playlistURL)

	channels := r.channels.FetchM3U(ctx, playlistURL)

	if useJSON {
		return r.writeJSON(channels, pretty)
	}

	if len(channels) == 0 {
		return r.writePlain("✗ Playlist unreachable or empty\n")
	}

	r.writePlain("Parsed %d channels:\n\n", len(channels))
	r.listChannels(channels)
	return nil
}

// listChannels prints a numbered channel listing grouped inline.
func (r *Runner) listChannels(channels []models.Channel) {
	for i, ch := range channels {
		r.writePlain("%d. %s [%s]\n", i+1, ch.Name, ch.Group)
	}
}
