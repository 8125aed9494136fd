package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/showlist/internal/app"
	"github.com/mmcdole/showlist/internal/collection"
	"github.com/mmcdole/showlist/internal/domain"
	"github.com/mmcdole/showlist/internal/tui/components"
	"github.com/mmcdole/showlist/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
	StateConfirmLogout
)

// Vertical chrome: header, footer and the detail pane
const (
	HeaderHeight = 1
	FooterHeight = 1
	DetailHeight = 3
)

// Model is the main Bubble Tea model for the application.
// All state changes go through Controller.Dispatch on the Update goroutine.
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	Controller *app.Controller
	Store      Persistence

	// UI Components
	FormModal   components.FormModal
	SortModal   components.SortModal
	TokenPrompt components.TokenPrompt

	// Search
	searchInput textinput.Model
	searching   bool
	searchQuery string

	// Dimensions
	Width  int
	Height int

	// UI state
	cursor      int
	StatusMsg   string
	StatusIsErr bool
	Loading     bool

	sample []domain.Show
	logger *slog.Logger
}

// NewModel creates a new application model. A non-nil sample replaces the
// startup load.
func NewModel(ctrl *app.Controller, store Persistence, sample []domain.Show, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	si := textinput.New()
	si.Prompt = ""
	si.Placeholder = "title..."
	si.CharLimit = 100
	si.PlaceholderStyle = styles.DimStyle

	return Model{
		State:       StateBrowsing,
		Controller:  ctrl,
		Store:       store,
		FormModal:   components.NewFormModal(),
		SortModal:   components.NewSortModal(),
		TokenPrompt: components.NewTokenPrompt(),
		searchInput: si,
		Loading:     sample == nil,
		sample:      sample,
		logger:      logger,
	}
}

// Init starts the initial load
func (m Model) Init() tea.Cmd {
	if m.sample != nil {
		return LoadSampleCmd(m.sample)
	}
	return effectCmd(m.Store, m.Controller.Init())
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case app.ShowsLoaded:
		m.Loading = false
		cmd := m.dispatch(msg)
		m.clampCursor()
		return m, cmd

	case app.SaveCompleted:
		m.dispatch(msg)
		if msg.Err != nil {
			return m.setStatus("Save failed: "+msg.Err.Error(), true)
		}
		return m, nil

	case app.TokenCleared:
		m.dispatch(msg)
		if msg.Err != nil {
			return m.setStatus("Logout incomplete: "+msg.Err.Error(), true)
		}
		return m.setStatus("Logged out", false)

	case app.SessionStarted:
		m.Loading = true
		cmd := m.dispatch(msg)
		var status tea.Cmd
		m, status = m.setStatus("Session started", false)
		return m, tea.Batch(cmd, status)

	case ErrMsg:
		m.Loading = false
		m.logger.Error("command failed", "context", msg.Context, "error", msg.Err)
		return m.setStatus(msg.Error(), true)

	case StatusMsg:
		return m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// dispatch applies intent and returns the command for the resulting effect
func (m Model) dispatch(intent app.Intent) tea.Cmd {
	return effectCmd(m.Store, m.Controller.Dispatch(intent))
}

func (m Model) setStatus(text string, isErr bool) (Model, tea.Cmd) {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	delay := 3 * time.Second
	if isErr {
		delay = 5 * time.Second
	}
	return m, ClearStatusCmd(delay)
}

// visibleShows is what the list displays: the controller's sorted and
// genre-filtered view, narrowed by the search query when one is set.
func (m Model) visibleShows() []domain.Show {
	view := m.Controller.View()
	if m.searchQuery == "" {
		return view
	}
	return collection.Search(m.searchQuery, view)
}

// selected returns the show under the cursor
func (m Model) selected() (domain.Show, bool) {
	shows := m.visibleShows()
	if m.cursor < 0 || m.cursor >= len(shows) {
		return domain.Show{}, false
	}
	return shows[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.visibleShows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clearSearch() {
	m.searching = false
	m.searchQuery = ""
	m.searchInput.SetValue("")
	m.searchInput.Blur()
	m.clampCursor()
}

func (m Model) listHeight() int {
	h := m.Height - HeaderHeight - FooterHeight - DetailHeight
	if m.searching || m.searchQuery != "" {
		h--
	}
	return max(h, 1)
}
