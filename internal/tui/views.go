package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/showlist/internal/collection"
	"github.com/mmcdole/showlist/internal/domain"
	"github.com/mmcdole/showlist/internal/tui/components"
	"github.com/mmcdole/showlist/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	switch m.State {
	case StateHelp:
		return m.renderHelp()
	case StateConfirmLogout:
		return m.renderLogoutConfirmation()
	}

	for _, modal := range []struct {
		visible bool
		view    func() string
	}{
		{m.FormModal.IsVisible(), m.FormModal.View},
		{m.SortModal.IsVisible(), m.SortModal.View},
		{m.TokenPrompt.IsVisible(), m.TokenPrompt.View},
	} {
		if modal.visible {
			return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, modal.view())
		}
	}

	rows := []string{m.renderHeader()}
	if m.searching || m.searchQuery != "" {
		rows = append(rows, styles.FilterPromptStyle.Render("/ ")+m.searchInput.View())
	}
	rows = append(rows, m.renderList(), m.renderDetail(), m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderHeader() string {
	left := styles.TitleStyle.Render("showlist") + " " +
		styles.BadgeStyle.Render(components.OrderLabel(m.Controller.Order()))
	if g := m.Controller.GenreFilter(); g != "" {
		left += " " + styles.AccentStyle.Render("#"+g)
	}

	session := styles.DimStyle.Render("local")
	if m.Controller.Token() != "" {
		session = styles.SuccessStyle.Render("● synced")
	}
	right := styles.DimStyle.Render(fmt.Sprintf("%d shows  ", len(m.Controller.Shows()))) + session

	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderList() string {
	height := m.listHeight()
	shows := m.visibleShows()

	var lines []string
	switch {
	case m.Loading:
		lines = append(lines, styles.DimStyle.Render("  Loading shows..."))
	case len(shows) == 0 && len(m.Controller.Shows()) == 0:
		lines = append(lines, styles.DimStyle.Render("  No shows yet. Press a to add one."))
	case len(shows) == 0:
		lines = append(lines, styles.DimStyle.Render("  Nothing matches."))
	}

	offset := 0
	if m.cursor >= height {
		offset = m.cursor - height + 1
	}
	for i := offset; i < len(shows) && i < offset+height; i++ {
		lines = append(lines, m.renderShowRow(shows[i], i == m.cursor))
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// renderShowRow renders one list row: rating, title and genres
func (m Model) renderShowRow(show domain.Show, selected bool) string {
	marker := "  "
	if selected {
		marker = styles.AccentStyle.Render("▸ ")
	}

	titleWidth := max(m.Width/2, 10)
	title := styles.Pad(styles.Truncate(show.Title, titleWidth), titleWidth)
	title = highlightMatches(title, m.searchQuery)
	if selected {
		title = styles.TitleStyle.Render(title)
	}

	genres := styles.DimStyle.Render(collection.JoinGenres(show.Genres))

	return marker + styles.RenderRating(show.Rating) + "  " + title + "  " + genres
}

// highlightMatches marks the characters of text that fuzzy-match query
func highlightMatches(text, query string) string {
	if query == "" {
		return text
	}
	matches := fuzzy.Find(strings.ToLower(query), []string{strings.ToLower(text)})
	if len(matches) == 0 {
		return text
	}

	matched := make(map[int]bool, len(matches[0].MatchedIndexes))
	for _, idx := range matches[0].MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder
	for i, r := range text {
		if matched[i] {
			b.WriteString(styles.MatchHighlightStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (m Model) renderDetail() string {
	rule := styles.DimStyle.Render(strings.Repeat("─", max(m.Width, 1)))

	show, ok := m.selected()
	if !ok {
		return rule + "\n\n"
	}

	desc := show.DescriptionText()
	if desc == "" {
		desc = "No description."
	}
	seen := "Not seen yet"
	if show.Seen() {
		seen = fmt.Sprintf("Rated %d/5", show.RatingValue())
	}

	return rule + "\n" +
		styles.SubtitleStyle.Render(styles.Truncate(desc, m.Width)) + "\n" +
		styles.DimStyle.Render(seen)
}

func (m Model) renderFooter() string {
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	hint := func(k, desc string) string {
		return styles.AccentStyle.Render(k) + styles.DimStyle.Render(" "+desc)
	}
	right := strings.Join([]string{
		hint("a", "add"), hint("1-5", "rate"), hint("/", "search"), hint("?", "help"),
	}, "  ")

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
NAVIGATION                      SHOWS
  j/k        Up/down              a      Add show
  g/Home     First show           e      Edit show
  G/End      Last show            x      Delete show
  PgUp/PgDn  Scroll page          1-5    Rate (marks seen)
                                  u      Mark unseen

VIEW                            OTHER
  s          Sort                 T      Enter session token
  f          Next genre           L      Logout
  F          All genres           q      Quit
  /          Search titles        ?      This help
  Esc        Clear search

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// renderLogoutConfirmation renders the logout confirmation modal
func (m Model) renderLogoutConfirmation() string {
	modal := `
              Log Out?

  This will forget your session token
  and clear the list from this screen.

        [Y] Yes      [N] No
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(modal))
}
