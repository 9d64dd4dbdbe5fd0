package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kompaksatyabuana/kompak/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with Kompak styling and an inline
// validation message.
type TextInput struct {
	Model   textinput.Model
	message string
}

// NewTextInput creates a focused text input limited to maxLen runes.
func NewTextInput(placeholder string, maxLen int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.Focus()

	if maxLen > 0 {
		ti.CharLimit = maxLen
		ti.SetWidth(maxLen)
	}

	return TextInput{Model: ti}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. Editing clears the validation message.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	before := t.Model.Value()

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	if t.Model.Value() != before {
		t.message = ""
	}
	return t, cmd
}

// View renders the input followed by the validation message, if any.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.message != "" {
		view += "\n" + theme.Warning.Render(t.message)
	}
	return view
}

// Value returns the current input value with surrounding spaces removed.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// SetMessage shows msg below the input until the next edit.
func (t *TextInput) SetMessage(msg string) {
	t.message = msg
}

// Message returns the current validation message.
func (t TextInput) Message() string {
	return t.message
}

// Reset clears the value and the message.
func (t *TextInput) Reset() {
	t.Model.Reset()
	t.message = ""
}

// Width returns the rendered width of the input line.
func (t TextInput) Width() int {
	return lipgloss.Width(t.Model.View())
}
