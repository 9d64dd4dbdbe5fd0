package components

import (
	"github.com/kompaksatyabuana/kompak/internal/ui/theme"
)

// Button is a styled, keyboard-labelled button.
type Button struct {
	Label  string
	Key    string
	Active bool
}

// NewButton creates a new button triggered by key.
func NewButton(label, key string, active bool) Button {
	return Button{Label: label, Key: key, Active: active}
}

// View renders the button.
func (b Button) View() string {
	label := b.Label
	if b.Key != "" {
		label = "[" + b.Key + "] " + label
	}
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}

// Row renders buttons side by side with a gap.
func Row(buttons ...Button) string {
	out := ""
	for i, b := range buttons {
		if i > 0 {
			out += "   "
		}
		out += b.View()
	}
	return out
}
