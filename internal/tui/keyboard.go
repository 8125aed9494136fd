package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/showlist/internal/app"
	"github.com/mmcdole/showlist/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle state-specific keys
	switch m.State {
	case StateHelp:
		m.State = StateBrowsing
		return m, nil

	case StateConfirmLogout:
		switch {
		case key.Matches(msg, Keys.Confirm):
			m.State = StateBrowsing
			m.clearSearch()
			m.cursor = 0
			return m, m.dispatch(app.Logout{})
		case key.Matches(msg, Keys.Deny):
			m.State = StateBrowsing
		}
		return m, nil
	}

	// Route to active modal if any
	if handled, newModel, cmd := m.routeToModal(msg); handled {
		return newModel, cmd
	}

	// Edits made now would be replaced by the load in flight
	if m.Loading && key.Matches(msg, Keys.Add, Keys.Edit, Keys.Delete, Keys.Rate, Keys.MarkUnseen) {
		return m.setStatus("Still loading shows...", false)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.searchQuery != "" {
			m.clearSearch()
		}
		return m, nil

	case key.Matches(msg, Keys.Search):
		m.searching = true
		m.searchInput.Focus()
		return m, nil

	case key.Matches(msg, Keys.Sort):
		m.SortModal.Show(m.Controller.Order())
		return m, nil

	case key.Matches(msg, Keys.Add):
		m.dispatch(app.CancelEdit{})
		m.FormModal.Show("Add show", m.Controller.Form())
		return m, nil

	case key.Matches(msg, Keys.Edit):
		if show, ok := m.selected(); ok {
			m.dispatch(app.Edit{Show: show})
			m.FormModal.Show("Edit show", m.Controller.Form())
		}
		return m, nil

	case key.Matches(msg, Keys.Delete):
		show, ok := m.selected()
		if !ok {
			return m, nil
		}
		cmd := m.dispatch(app.Delete{Show: show})
		m.clampCursor()
		var status tea.Cmd
		m, status = m.setStatus("Deleted: "+show.Title, false)
		return m, tea.Batch(cmd, status)

	case key.Matches(msg, Keys.Rate):
		show, ok := m.selected()
		if !ok {
			return m, nil
		}
		rank := int(msg.String()[0] - '0')
		return m, m.dispatch(app.Rate{Title: show.Title, Rank: rank})

	case key.Matches(msg, Keys.MarkUnseen):
		if show, ok := m.selected(); ok {
			return m, m.dispatch(app.MarkUnseen{Title: show.Title})
		}
		return m, nil

	case key.Matches(msg, Keys.NextGenre):
		m.cursor = 0
		return m, m.dispatch(m.nextGenreIntent())

	case key.Matches(msg, Keys.ClearGenre):
		m.cursor = 0
		return m, m.dispatch(app.ClearGenreFilter{})

	case key.Matches(msg, Keys.SignIn):
		if !m.Store.HasRemote() {
			return m.setStatus("No backup server configured (run: showlist login)", true)
		}
		m.TokenPrompt.Show()
		return m, nil

	case key.Matches(msg, Keys.Logout):
		m.State = StateConfirmLogout
		return m, nil

	case key.Matches(msg, Keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, Keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, Keys.PageUp):
		m.moveCursor(-m.listHeight())
	case key.Matches(msg, Keys.PageDown):
		m.moveCursor(m.listHeight())
	case key.Matches(msg, Keys.Home):
		m.cursor = 0
	case key.Matches(msg, Keys.End):
		m.cursor = len(m.visibleShows()) - 1
		m.clampCursor()
	}

	return m, nil
}

// nextGenreIntent cycles the genre filter: none, then each genre in order,
// then none again.
func (m Model) nextGenreIntent() app.Intent {
	genres := m.Controller.Genres()
	i := slices.Index(genres, m.Controller.GenreFilter())
	if len(genres) == 0 || i == len(genres)-1 {
		return app.ClearGenreFilter{}
	}
	return app.SetGenreFilter{Genre: genres[i+1]}
}

// routeToModal sends key input to whichever modal or input is active
func (m Model) routeToModal(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	if m.FormModal.IsVisible() {
		var cmd tea.Cmd
		var action components.FormAction
		m.FormModal, cmd, action = m.FormModal.Update(msg)

		switch action {
		case components.FormChanged:
			field := m.FormModal.Focused()
			m.dispatch(app.FormFieldUpdate{Field: field, Value: m.FormModal.Value(field)})

		case components.FormSubmitted:
			effect := m.Controller.Dispatch(app.FormSubmit{})
			if effect == nil {
				m.FormModal.SetErrors(m.Controller.Form().Errors)
				return true, m, cmd
			}
			m.FormModal.Hide()
			m.clampCursor()
			return true, m, tea.Batch(cmd, effectCmd(m.Store, effect))

		case components.FormCancelled:
			m.dispatch(app.CancelEdit{})
		}
		return true, m, cmd
	}

	if m.SortModal.IsVisible() {
		handled, selection := m.SortModal.HandleKey(msg.String())
		if handled {
			if selection != nil {
				m.dispatch(app.SetOrder{Order: *selection})
				m.cursor = 0
			}
			return true, m, nil
		}
	}

	if m.TokenPrompt.IsVisible() {
		var cmd tea.Cmd
		var action components.FormAction
		m.TokenPrompt, cmd, action = m.TokenPrompt.Update(msg)
		if action == components.FormSubmitted {
			return true, m, tea.Batch(cmd, StartSessionCmd(m.Store, m.TokenPrompt.Token()))
		}
		return true, m, cmd
	}

	if m.searching {
		switch msg.String() {
		case "enter":
			m.searching = false
			m.searchInput.Blur()
			return true, m, nil
		case "esc":
			m.clearSearch()
			return true, m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.searchQuery = strings.TrimSpace(m.searchInput.Value())
		m.cursor = 0
		return true, m, cmd
	}

	return false, m, nil
}
