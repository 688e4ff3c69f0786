// Package tui is the terminal front end. Each screen mount opens a
// viewstate controller session; the model re-renders from the snapshots the
// session publishes.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"movie-discovery-explorer/internal/models"
	"movie-discovery-explorer/internal/viewstate"
)

// Source is everything both screens read from.
type Source interface {
	viewstate.HomeSource
	viewstate.DetailSource
}

// Favorites is the favorites set as both screens use it.
type Favorites interface {
	viewstate.FavoriteLister
	viewstate.FavoriteToggler
}

// Options tunes the front end.
type Options struct {
	RotationInterval time.Duration
	SearchDebounce   time.Duration
}

type screen int

const (
	screenHome screen = iota
	screenDetail
)

type focus int

const (
	focusList focus = iota
	focusSearch
)

type homeStateMsg struct{ state viewstate.HomeState }

type detailStateMsg struct{ state viewstate.DetailState }

type searchDebounceMsg struct {
	seq   int
	query string
}

type favoriteToggledMsg struct {
	session string
	err     error
}

// Model is the bubbletea model of the explorer.
type Model struct {
	ctx       context.Context
	source    Source
	favorites Favorites
	opts      Options
	log       *zap.Logger

	screen screen
	width  int
	dark   bool

	home        *viewstate.HomeController
	homeUpdates <-chan viewstate.HomeState
	homeState   viewstate.HomeState

	detail        *viewstate.DetailController
	detailUpdates <-chan viewstate.DetailState
	detailState   viewstate.DetailState
	notice        string

	focus      focus
	search     textinput.Model
	searchSeq  int
	cursor     int
	suggestion int
	genreIndex int

	spinner spinner.Model
	initCmd tea.Cmd
}

// New creates the explorer model. ctx bounds every lookup it issues.
func New(ctx context.Context, source Source, favorites Favorites, opts Options, log *zap.Logger) Model {
	ti := textinput.New()
	ti.Placeholder = "Search movies..."
	ti.CharLimit = 100
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:       ctx,
		source:    source,
		favorites: favorites,
		opts:      opts,
		log:       log,
		dark:      true,
		search:    ti,
		spinner:   sp,
	}
	m.initCmd = m.mountHome()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.initCmd, m.spinner.Tick)
}

// Close ends whichever session is still open.
func (m Model) Close() {
	if m.home != nil {
		m.home.Close()
	}
	if m.detail != nil {
		m.detail.Close()
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case homeStateMsg:
		if m.home == nil || msg.state.SessionID != m.homeState.SessionID {
			return m, nil
		}
		m.homeState = msg.state
		m.clampCursors()
		return m, waitForHome(m.homeUpdates)

	case detailStateMsg:
		if m.detail == nil || msg.state.SessionID != m.detailState.SessionID {
			return m, nil
		}
		m.detailState = msg.state
		m.clampCursors()
		return m, waitForDetail(m.detailUpdates)

	case searchDebounceMsg:
		if msg.seq != m.searchSeq || m.home == nil {
			return m, nil
		}
		return m, m.searchCmd(msg.query)

	case favoriteToggledMsg:
		if msg.err != nil && msg.session == m.detailState.SessionID {
			m.notice = "Could not save favorites"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.Close()
		return m, tea.Quit
	case "ctrl+t":
		m.dark = !m.dark
		return m, nil
	}

	if m.screen == screenDetail {
		return m.handleDetailKey(msg)
	}
	if m.focus == focusSearch {
		return m.handleSearchKey(msg)
	}
	return m.handleHomeKey(msg)
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.homeState.Visible()
	switch msg.String() {
	case "q":
		m.Close()
		return m, tea.Quit
	case "t":
		m.dark = !m.dark
	case "/", "tab":
		m.focus = focusSearch
		cmd := m.search.Focus()
		return m, cmd
	case "up", "k":
		m.cursor = max(0, m.cursor-1)
	case "down", "j":
		m.cursor = max(0, min(len(visible)-1, m.cursor+1))
	case "left", "h":
		return m.cycleGenre(-1)
	case "right", "l":
		return m.cycleGenre(1)
	case "enter":
		if m.cursor >= 0 && m.cursor < len(visible) {
			picked := visible[m.cursor]
			kind := picked.MediaKind
			if kind == "" {
				kind = models.MediaMovie
			}
			cmd := m.mountDetail(kind, picked.ID)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	suggestions := m.homeState.Suggestions
	switch msg.String() {
	case "esc", "tab":
		m.focus = focusList
		m.search.Blur()
		return m, nil
	case "up":
		m.suggestion = max(0, m.suggestion-1)
		return m, nil
	case "down":
		m.suggestion = max(0, min(len(suggestions)-1, m.suggestion+1))
		return m, nil
	case "enter":
		if m.suggestion >= 0 && m.suggestion < len(suggestions) {
			picked := suggestions[m.suggestion]
			m.home.PickSuggestion()
			m.search.SetValue("")
			m.focus = focusList
			m.search.Blur()
			cmd := m.mountDetail(models.MediaMovie, picked.ID)
			return m, cmd
		}
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	query := m.search.Value()
	if query == before {
		return m, cmd
	}

	m.searchSeq++
	m.suggestion = 0
	if m.opts.SearchDebounce <= 0 {
		return m, tea.Batch(cmd, m.searchCmd(query))
	}
	seq := m.searchSeq
	return m, tea.Batch(cmd, tea.Tick(m.opts.SearchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq, query: query}
	}))
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	similar := m.detailState.Similar
	switch msg.String() {
	case "q":
		m.Close()
		return m, tea.Quit
	case "t":
		m.dark = !m.dark
	case "esc", "backspace":
		cmd := m.mountHome()
		return m, cmd
	case "f":
		m.notice = ""
		return m, m.toggleFavoriteCmd()
	case "up", "k":
		m.cursor = max(0, m.cursor-1)
	case "down", "j":
		m.cursor = max(0, min(len(similar)-1, m.cursor+1))
	case "enter":
		if m.cursor >= 0 && m.cursor < len(similar) {
			picked := similar[m.cursor]
			cmd := m.mountDetail(models.MediaMovie, picked.ID)
			return m, cmd
		}
	}
	return m, nil
}

// cycleGenre moves the genre selection; index 0 is all movies.
func (m Model) cycleGenre(step int) (tea.Model, tea.Cmd) {
	n := len(m.homeState.Genres) + 1
	m.genreIndex = ((m.genreIndex+step)%n + n) % n
	m.cursor = 0

	var genreID *int
	if m.genreIndex > 0 {
		id := m.homeState.Genres[m.genreIndex-1].ID
		genreID = &id
	}
	home := m.home
	ctx := m.ctx
	log := m.log
	return m, func() tea.Msg {
		if err := home.SelectGenre(ctx, genreID); err != nil && !errors.Is(err, viewstate.ErrSuperseded) {
			log.Warn("genre listing failed", zap.Error(err))
		}
		return nil
	}
}

func (m *Model) mountHome() tea.Cmd {
	m.closeSessions()
	m.screen = screenHome
	m.focus = focusList
	m.cursor = 0
	m.suggestion = 0
	m.genreIndex = 0
	m.search.SetValue("")
	m.search.Blur()

	home := viewstate.NewHomeController(m.source, m.favorites, m.opts.RotationInterval, m.log)
	m.home = home
	m.homeUpdates = home.Updates()
	m.homeState = home.State()

	ctx := m.ctx
	log := m.log
	return tea.Batch(func() tea.Msg {
		if err := home.Load(ctx); err != nil {
			log.Error("home screen failed to load", zap.Error(err))
		}
		return nil
	}, waitForHome(m.homeUpdates))
}

func (m *Model) mountDetail(kind models.MediaKind, id int) tea.Cmd {
	m.closeSessions()
	m.screen = screenDetail
	m.cursor = 0
	m.notice = ""

	detail := viewstate.NewDetailController(m.source, m.favorites, kind, id, m.log)
	m.detail = detail
	m.detailUpdates = detail.Updates()
	m.detailState = detail.State()

	ctx := m.ctx
	log := m.log
	return tea.Batch(func() tea.Msg {
		if err := detail.Load(ctx); err != nil {
			log.Error("detail screen failed to load", zap.Error(err))
		}
		return nil
	}, waitForDetail(m.detailUpdates))
}

func (m *Model) closeSessions() {
	if m.home != nil {
		m.home.Close()
		m.home = nil
	}
	if m.detail != nil {
		m.detail.Close()
		m.detail = nil
	}
}

func (m Model) searchCmd(query string) tea.Cmd {
	home := m.home
	ctx := m.ctx
	log := m.log
	return func() tea.Msg {
		if err := home.Search(ctx, query); err != nil && !errors.Is(err, viewstate.ErrSuperseded) {
			log.Warn("search failed", zap.String("query", query), zap.Error(err))
		}
		return nil
	}
}

func (m Model) toggleFavoriteCmd() tea.Cmd {
	detail := m.detail
	ctx := m.ctx
	session := m.detailState.SessionID
	return func() tea.Msg {
		_, err := detail.ToggleFavorite(ctx)
		return favoriteToggledMsg{session: session, err: err}
	}
}

func (m *Model) clampCursors() {
	n := len(m.homeState.Visible())
	if m.screen == screenDetail {
		n = len(m.detailState.Similar)
	}
	m.cursor = max(0, min(m.cursor, n-1))
	m.suggestion = max(0, min(m.suggestion, len(m.homeState.Suggestions)-1))
}

func waitForHome(ch <-chan viewstate.HomeState) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return homeStateMsg{state: s}
	}
}

func waitForDetail(ch <-chan viewstate.DetailState) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return detailStateMsg{state: s}
	}
}
