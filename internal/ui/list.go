package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/telaflix/telaflix/internal/models"
)

var (
	_ list.Item = movieItem{}
	_ list.Item = channelItem{}
)

// movieItem wraps [models.Movie] to implement [list.Item].
type movieItem struct {
	movie    models.Movie
	section  string
	favorite bool
}

func (i movieItem) FilterValue() string { return i.movie.Title }

func (i movieItem) Title() string {
	if i.favorite {
		return fmt.Sprintf("♥ %s", i.movie.Title)
	}
	return i.movie.Title
}

func (i movieItem) Description() string {
	desc := fmt.Sprintf("★ %.1f", i.movie.Rating)
	if i.movie.Year > 0 {
		desc = fmt.Sprintf("%s • %d", desc, i.movie.Year)
	}
	if i.section != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.section)
	}
	return desc
}

// channelItem wraps [models.Channel] to implement [list.Item].
type channelItem struct {
	channel models.Channel
}

func (i channelItem) FilterValue() string { return i.channel.Name }
func (i channelItem) Title() string       { return i.channel.Name }
func (i channelItem) Description() string { return i.channel.Group }
