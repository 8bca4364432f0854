package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/telaflix/telaflix/internal/models"
	"github.com/telaflix/telaflix/internal/services"
	"github.com/telaflix/telaflix/internal/shared"
	"github.com/telaflix/telaflix/internal/store"
	"github.com/telaflix/telaflix/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	HomeView ViewState = iota
	SearchView
	FavoritesView
	ChannelsView
)

// sectionNames maps catalog buckets to the row label shown in the home list.
var sectionNames = []struct {
	name   string
	movies func(models.Sections) []models.Movie
}{
	{"Em Alta", func(s models.Sections) []models.Movie { return s.Trending }},
	{"Populares", func(s models.Sections) []models.Movie { return s.Popular }},
	{"Nos Cinemas", func(s models.Sections) []models.Movie { return s.NowPlaying }},
	{"Em Breve", func(s models.Sections) []models.Movie { return s.Upcoming }},
	{"Aclamados", func(s models.Sections) []models.Movie { return s.TopRated }},
}

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	engine   *tasks.CatalogEngine
	catalog  services.Catalog
	channels services.ChannelLister
	store    *store.Store
	language string

	width  int
	height int

	sections  models.Sections
	favorites []models.Movie

	homeList     list.Model
	searchList   list.Model
	favoriteList list.Model
	channelList  list.Model
	searchInput  textinput.Model
	searching    bool

	progressChan  chan tasks.ProgressUpdate
	refreshResult chan catalogRefreshedMsg
	progress      tasks.ProgressUpdate
	refreshing    bool
	status        string
	err           error

	help help.Model
	keys keyMap

	// openURL hands playback off to the system browser; replaced in tests.
	openURL func(string) error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, engine *tasks.CatalogEngine, catalog services.Catalog, channels services.ChannelLister, st *store.Store, language string) *Model {
	input := textinput.New()
	input.Placeholder = "Buscar títulos..."
	input.CharLimit = 80

	newList := func(title string) list.Model {
		l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
		l.Title = title
		return l
	}

	return &Model{
		ctx:          ctx,
		view:         HomeView,
		engine:       engine,
		catalog:      catalog,
		channels:     channels,
		store:        st,
		language:     language,
		homeList:     newList("Catálogo"),
		searchList:   newList("Resultados"),
		favoriteList: newList("Minha Lista"),
		channelList:  newList("TV Ao Vivo"),
		searchInput:  input,
		help:         help.New(),
		keys:         newKeyMap(),
		openURL:      shared.OpenBrowser,
	}
}

// Init starts the catalog refresh and the live channel fetch.
func (m *Model) Init() tea.Cmd {
	m.favorites = m.store.LoadFavorites()
	return tea.Batch(m.startRefresh(), m.fetchChannels())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, l := range []*list.Model{&m.homeList, &m.searchList, &m.favoriteList, &m.channelList} {
			l.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchInputKeys(msg)
		}
		return m.handleKeys(msg)

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		m.status = m.progress.Message
		return m, m.waitForProgress()

	case catalogRefreshedMsg:
		m.refreshing = false
		if msg.err != nil {
			m.err = msg.err
		}
		if msg.sections != nil {
			m.sections = *msg.sections
			m.rebuildHomeList()
			m.status = ""
		}
		return m, nil

	case searchResultsMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		items := make([]list.Item, len(msg.movies))
		for i, movie := range msg.movies {
			items[i] = movieItem{movie: movie, favorite: m.isFavorite(movie.ID)}
		}
		m.searchList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
		m.searchList.Title = fmt.Sprintf("Resultados para %q", msg.query)
		m.view = SearchView
		return m, nil

	case channelsFetchedMsg:
		items := make([]list.Item, len(msg.channels))
		for i, ch := range msg.channels {
			items[i] = channelItem{channel: ch}
		}
		m.channelList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
		m.channelList.Title = "TV Ao Vivo"
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.searching {
		return fmt.Sprintf("%s\n\n%s\n\n%s",
			styles.title.Render("TELAFLIX"),
			m.searchInput.View(),
			styles.help.Render("enter para buscar, esc para voltar"))
	}

	header := styles.title.Render("TELAFLIX")
	if m.status != "" {
		header = fmt.Sprintf("%s\n%s", header, styles.warn.Render(m.status))
	}
	if m.err != nil {
		header = fmt.Sprintf("%s\n%s", header, styles.err.Render(fmt.Sprintf("Aviso: %v", m.err)))
	}

	var body string
	switch m.view {
	case HomeView:
		body = m.homeList.View()
	case SearchView:
		body = m.searchList.View()
	case FavoritesView:
		body = m.favoriteList.View()
	case ChannelsView:
		body = m.channelList.View()
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.toggle, m.keys.search, m.keys.favorites, m.keys.channels, m.keys.quit}
	return fmt.Sprintf("%s\n%s\n\n%s", header, body, m.help.ShortHelpView(helpKeys))
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.back):
		m.view = HomeView
		return m, nil

	case key.Matches(msg, m.keys.search):
		m.searching = true
		m.searchInput.SetValue("")
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.favorites):
		m.rebuildFavoriteList()
		m.view = FavoritesView
		return m, nil

	case key.Matches(msg, m.keys.channels):
		m.view = ChannelsView
		return m, nil

	case key.Matches(msg, m.keys.refresh):
		if m.refreshing {
			return m, nil
		}
		return m, m.startRefresh()

	case key.Matches(msg, m.keys.toggle):
		if movie, ok := m.selectedMovie(); ok {
			m.favorites = store.ToggleFavorite(m.favorites, movie)
			if err := m.store.SaveFavorites(m.favorites); err != nil {
				m.err = err
			}
			m.rebuildHomeList()
			m.rebuildFavoriteList()
		}
		return m, nil

	case key.Matches(msg, m.keys.enter):
		return m, m.watchSelected()
	}

	return m.updateLists(msg)
}

func (m *Model) handleSearchInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case "enter":
		query := m.searchInput.Value()
		m.searching = false
		m.searchInput.Blur()
		return m, m.runSearch(query)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case HomeView:
		m.homeList, cmd = m.homeList.Update(msg)
	case SearchView:
		m.searchList, cmd = m.searchList.Update(msg)
	case FavoritesView:
		m.favoriteList, cmd = m.favoriteList.Update(msg)
	case ChannelsView:
		m.channelList, cmd = m.channelList.Update(msg)
	}
	return m, cmd
}

// selectedMovie returns the movie under the cursor in the active view.
func (m *Model) selectedMovie() (models.Movie, bool) {
	var selected list.Item
	switch m.view {
	case HomeView:
		selected = m.homeList.SelectedItem()
	case SearchView:
		selected = m.searchList.SelectedItem()
	case FavoritesView:
		selected = m.favoriteList.SelectedItem()
	default:
		return models.Movie{}, false
	}
	if item, ok := selected.(movieItem); ok {
		return item.movie, true
	}
	return models.Movie{}, false
}

// watchSelected opens the selected title or channel in the system browser.
func (m *Model) watchSelected() tea.Cmd {
	if m.view == ChannelsView {
		if item, ok := m.channelList.SelectedItem().(channelItem); ok {
			if err := m.openURL(item.channel.URL); err != nil {
				m.err = err
			}
		}
		return nil
	}

	if movie, ok := m.selectedMovie(); ok {
		target := movie.VideoURL
		if target == services.AutoEmbed {
			target = services.EmbedURLs(movie.ID, m.language)[0]
		}
		if err := m.openURL(target); err != nil {
			m.err = err
		}
	}
	return nil
}

func (m *Model) isFavorite(id string) bool {
	for _, movie := range m.favorites {
		if movie.ID == id {
			return true
		}
	}
	return false
}

func (m *Model) rebuildHomeList() {
	var items []list.Item
	for _, section := range sectionNames {
		for _, movie := range section.movies(m.sections) {
			items = append(items, movieItem{movie: movie, section: section.name, favorite: m.isFavorite(movie.ID)})
		}
	}
	m.homeList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
	m.homeList.Title = "Catálogo"
}

func (m *Model) rebuildFavoriteList() {
	items := make([]list.Item, len(m.favorites))
	for i, movie := range m.favorites {
		items[i] = movieItem{movie: movie, favorite: true}
	}
	m.favoriteList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
	m.favoriteList.Title = "Minha Lista"
}

func (m *Model) startRefresh() tea.Cmd {
	m.refreshing = true
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	result := make(chan catalogRefreshedMsg, 1)

	progressChan := m.progressChan
	go func() {
		sections, err := m.engine.Refresh(m.ctx, progressChan)
		result <- catalogRefreshedMsg{sections: sections, err: err}
		close(progressChan)
	}()
	m.refreshResult = result

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progressChan := m.progressChan
	result := m.refreshResult
	return func() tea.Msg {
		update, ok := <-progressChan
		if !ok {
			return <-result
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) runSearch(query string) tea.Cmd {
	return func() tea.Msg {
		movies, err := m.catalog.Search(m.ctx, query)
		return searchResultsMsg{query: query, movies: movies, err: err}
	}
}

func (m *Model) fetchChannels() tea.Cmd {
	return func() tea.Msg {
		return channelsFetchedMsg{channels: m.channels.FetchAll(m.ctx)}
	}
}
