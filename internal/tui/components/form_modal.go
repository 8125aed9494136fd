package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/showlist/internal/domain"
	"github.com/mmcdole/showlist/internal/form"
	"github.com/mmcdole/showlist/internal/tui/styles"
)

// FormAction tells the caller what a key press did to the form
type FormAction int

const (
	FormNone FormAction = iota
	FormChanged
	FormSubmitted
	FormCancelled
)

var fieldPlaceholders = map[form.Field]string{
	form.FieldTitle:       "Breaking Bad",
	form.FieldDescription: "optional",
	form.FieldGenres:      "drama, crime",
	form.FieldRating:      "1-5, empty if unseen",
}

// FormModal edits the four show fields, one textinput per field
type FormModal struct {
	visible bool
	title   string
	fields  []form.Field
	inputs  []textinput.Model
	focus   int
	errors  []string
}

// NewFormModal creates a new form modal
func NewFormModal() FormModal {
	fields := form.Fields()
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = 40
		ti.CharLimit = 200
		ti.Placeholder = fieldPlaceholders[f]
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
		ti.PlaceholderStyle = styles.DimStyle
		inputs[i] = ti
	}
	inputs[len(inputs)-1].CharLimit = 1

	return FormModal{fields: fields, inputs: inputs}
}

// Show displays the modal filled from state
func (m *FormModal) Show(title string, state domain.FormState) {
	m.visible = true
	m.title = title
	m.errors = state.Errors
	for i, f := range m.fields {
		m.inputs[i].SetValue(form.FieldValue(state, f))
	}
	m.setFocus(0)
}

// Hide dismisses the modal
func (m *FormModal) Hide() {
	m.visible = false
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

// IsVisible returns whether the modal is shown
func (m FormModal) IsVisible() bool {
	return m.visible
}

// SetErrors shows validation messages under the fields
func (m *FormModal) SetErrors(errs []string) {
	m.errors = errs
}

// Focused returns the field being edited
func (m FormModal) Focused() form.Field {
	return m.fields[m.focus]
}

// Value returns the raw text of field
func (m FormModal) Value(field form.Field) string {
	for i, f := range m.fields {
		if f == field {
			return m.inputs[i].Value()
		}
	}
	return ""
}

func (m *FormModal) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = (i + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

// Update handles input events, returns (modal, cmd, action).
// FormChanged means the focused field's text changed.
func (m FormModal) Update(msg tea.Msg) (FormModal, tea.Cmd, FormAction) {
	if !m.visible {
		return m, nil, FormNone
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return m, nil, FormSubmitted
		case "esc":
			m.Hide()
			return m, nil, FormCancelled
		case "tab", "down":
			m.setFocus(m.focus + 1)
			return m, nil, FormNone
		case "shift+tab", "up":
			m.setFocus(m.focus - 1)
			return m, nil, FormNone
		}
	}

	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.inputs[m.focus].Value() != before {
		return m, cmd, FormChanged
	}
	return m, cmd, FormNone
}

// View renders the form modal
func (m FormModal) View() string {
	if !m.visible {
		return ""
	}

	const labelWidth = 13

	rows := []string{styles.ModalTitleStyle.Render(m.title)}
	for i, f := range m.fields {
		label := styles.Pad(f.String(), labelWidth)
		if i == m.focus {
			label = styles.AccentStyle.Render(label)
		} else {
			label = styles.DimStyle.Render(label)
		}
		rows = append(rows, label+m.inputs[i].View())
	}

	if len(m.errors) > 0 {
		rows = append(rows, "")
		for _, e := range m.errors {
			rows = append(rows, styles.ErrorStyle.Render(e))
		}
	}

	rows = append(rows, "", styles.DimStyle.Render("tab next · enter save · esc cancel"))

	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
