package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/showlist/internal/domain"
	"github.com/mmcdole/showlist/internal/tui/styles"
)

// OrderLabel returns the display name for a sort order
func OrderLabel(o domain.OrderBy) string {
	switch o {
	case domain.OrderTitleAsc:
		return "Title A-Z"
	case domain.OrderRatingAsc:
		return "Rating ↑"
	case domain.OrderRatingDesc:
		return "Rating ↓"
	default:
		return "Unknown"
	}
}

// SortModal is a small popup for choosing sort order
type SortModal struct {
	visible bool
	options []domain.OrderBy
	cursor  int
	active  domain.OrderBy
}

// NewSortModal creates a new sort modal
func NewSortModal() SortModal {
	return SortModal{options: domain.Orders()}
}

// Show displays the modal with the cursor on the active order
func (m *SortModal) Show(active domain.OrderBy) {
	m.visible = true
	m.active = active
	m.cursor = 0
	for i, opt := range m.options {
		if opt == active {
			m.cursor = i
			break
		}
	}
}

// Hide dismisses the modal
func (m *SortModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m SortModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press, returns (handled, selection).
// If selection is non-nil, the user confirmed a choice.
func (m *SortModal) HandleKey(key string) (handled bool, selection *domain.OrderBy) {
	if !m.visible {
		return false, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		chosen := m.options[m.cursor]
		m.visible = false
		return true, &chosen
	case "esc", "s":
		m.visible = false
	}

	return true, nil // consume all keys when visible
}

// View renders the sort modal
func (m SortModal) View() string {
	if !m.visible || len(m.options) == 0 {
		return ""
	}

	var lines []string
	for i, opt := range m.options {
		prefix := "  "
		if opt == m.active {
			prefix = "✓ "
		}
		text := styles.Pad(prefix+OrderLabel(opt), 20)

		style := lipgloss.NewStyle().Foreground(styles.LightGray)
		switch {
		case i == m.cursor:
			style = lipgloss.NewStyle().Foreground(styles.White).Background(styles.SlateLight)
		case opt == m.active:
			style = lipgloss.NewStyle().Foreground(styles.Amber)
		}
		lines = append(lines, style.Render(text))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Amber).
		Background(styles.SlateDark).
		Padding(0, 1).
		Render(styles.ModalTitleStyle.Render("Sort by") + "\n" + strings.Join(lines, "\n"))
}
