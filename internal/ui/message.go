package ui

import (
	"github.com/telaflix/telaflix/internal/models"
	"github.com/telaflix/telaflix/internal/tasks"
)

// catalogRefreshedMsg reports a completed catalog refresh.
type catalogRefreshedMsg struct {
	sections *models.Sections
	err      error
}

// progressUpdateMsg carries one refresh progress event.
type progressUpdateMsg tasks.ProgressUpdate

// searchResultsMsg reports the outcome of a catalog search.
type searchResultsMsg struct {
	query  string
	movies []models.Movie
	err    error
}

// channelsFetchedMsg reports the merged live channel listing.
type channelsFetchedMsg struct {
	channels []models.Channel
}
