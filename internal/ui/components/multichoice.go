package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kompaksatyabuana/kompak/internal/ui/theme"
)

// MaxKeyedOptions is the number of options reachable with digit keys.
const MaxKeyedOptions = 9

// MultiChoice renders a question's options. It holds no selection state of
// its own; the caller passes the chosen option on every render.
type MultiChoice struct {
	Options []string
	Chosen  string
	// Reveal marks the correct option and a wrong choice.
	Reveal  bool
	Correct string
}

// NewMultiChoice creates a multiple-choice view with chosen marked.
func NewMultiChoice(options []string, chosen string) MultiChoice {
	return MultiChoice{Options: options, Chosen: chosen}
}

// WithReveal returns a copy that highlights correct.
func (m MultiChoice) WithReveal(correct string) MultiChoice {
	m.Reveal = true
	m.Correct = correct
	return m
}

// ChosenIndex returns the index of the chosen option, or -1.
func (m MultiChoice) ChosenIndex() int {
	for i, opt := range m.Options {
		if opt == m.Chosen {
			return i
		}
	}
	return -1
}

// Move returns the option d steps from the chosen one, clamped to the
// list. With nothing chosen, moving down picks the first option and moving
// up picks the last.
func (m MultiChoice) Move(d int) string {
	if len(m.Options) == 0 {
		return ""
	}
	i := m.ChosenIndex()
	switch {
	case i < 0 && d > 0:
		i = 0
	case i < 0:
		i = len(m.Options) - 1
	default:
		i += d
	}
	i = max(0, min(i, len(m.Options)-1))
	return m.Options[i]
}

// View renders one line per option.
func (m MultiChoice) View() string {
	lines := make([]string, 0, len(m.Options))
	for i, opt := range m.Options {
		key := " "
		if i < MaxKeyedOptions {
			key = fmt.Sprintf("%d", i+1)
		}
		prefix := "  "
		if opt == m.Chosen {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, key, opt)

		lines = append(lines, m.style(opt).Render(line))
	}
	return strings.Join(lines, "\n")
}

func (m MultiChoice) style(opt string) lipgloss.Style {
	if m.Reveal {
		switch {
		case opt == m.Correct:
			return theme.Correct
		case opt == m.Chosen:
			return theme.Incorrect
		default:
			return lipgloss.NewStyle().Foreground(theme.TextDim)
		}
	}
	if opt == m.Chosen {
		return theme.Selected
	}
	return theme.Unselected
}
