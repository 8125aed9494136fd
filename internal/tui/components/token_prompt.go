package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/showlist/internal/tui/styles"
)

// MsgBlankToken is shown when an empty token is submitted
const MsgBlankToken = "Token cannot be blank"

// TokenPrompt asks for a backup session token. The token is masked and
// never leaves the prompt until submitted.
type TokenPrompt struct {
	visible bool
	input   textinput.Model
	err     string
}

// NewTokenPrompt creates a hidden token prompt
func NewTokenPrompt() TokenPrompt {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Width = 40
	ti.CharLimit = 512
	ti.Placeholder = "paste token..."
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return TokenPrompt{input: ti}
}

// Show opens an empty prompt
func (p *TokenPrompt) Show() {
	p.visible = true
	p.err = ""
	p.input.SetValue("")
	p.input.Focus()
}

// Hide dismisses the prompt
func (p *TokenPrompt) Hide() {
	p.visible = false
	p.input.Blur()
}

// IsVisible returns whether the prompt is shown
func (p TokenPrompt) IsVisible() bool {
	return p.visible
}

// Token returns the entered token without surrounding whitespace
func (p TokenPrompt) Token() string {
	return strings.TrimSpace(p.input.Value())
}

// Update handles input events. FormSubmitted is only reported for a
// non-blank token; the prompt hides itself on submit and cancel.
func (p TokenPrompt) Update(msg tea.Msg) (TokenPrompt, tea.Cmd, FormAction) {
	if !p.visible {
		return p, nil, FormNone
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if p.Token() == "" {
				p.err = MsgBlankToken
				return p, nil, FormNone
			}
			p.Hide()
			return p, nil, FormSubmitted
		case "esc":
			p.Hide()
			return p, nil, FormCancelled
		}
	}

	p.err = ""
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd, FormNone
}

// View renders the prompt
func (p TokenPrompt) View() string {
	if !p.visible {
		return ""
	}

	rows := []string{
		styles.ModalTitleStyle.Render("Session token"),
		styles.DimStyle.Render("Your list will sync with the backup server."),
		"",
		styles.AccentStyle.Render("Token  ") + p.input.View(),
	}
	if p.err != "" {
		rows = append(rows, "", styles.ErrorStyle.Render(p.err))
	}
	rows = append(rows, "", styles.DimStyle.Render("enter sign in · esc cancel"))

	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
