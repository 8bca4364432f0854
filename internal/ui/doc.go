// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view browsing workflow:
//  1. [HomeView] : Browse the catalog rows (trending, popular, now playing, upcoming, top rated)
//  2. [SearchView] : Free-text title search
//  3. [FavoritesView] : The persisted "Minha Lista"
//  4. [ChannelsView] : Live IPTV channels from the configured playlists
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Catalog refresh progress flows through a channel from the CatalogEngine, providing
// non-blocking status reporting while cached rows stay on screen.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual
// help displayed via charmbracelet/bubbles/help. Pressing enter on a title or
// channel hands playback to the system browser.
package ui
