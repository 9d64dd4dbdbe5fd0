package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kompaksatyabuana/kompak/internal/ui/theme"
)

const minBarWidth = 4

// StepBar shows the position within the quiz as "Question i of N"
// followed by a bar that fills with each question reached.
type StepBar struct {
	Current int // 1-based
	Total   int
	Width   int
}

// NewStepBar creates a StepBar for question current (1-based) of total.
func NewStepBar(current, total, width int) StepBar {
	return StepBar{Current: current, Total: total, Width: width}
}

// Fraction returns the share of the quiz reached, clamped to [0, 1].
func (b StepBar) Fraction() float64 {
	if b.Total <= 0 {
		return 0
	}
	f := float64(b.Current) / float64(b.Total)
	return max(0, min(f, 1))
}

// Label returns the text shown before the bar.
func (b StepBar) Label() string {
	return fmt.Sprintf("Question %d of %d", b.Current, b.Total)
}

// View renders the label and the bar within Width columns.
func (b StepBar) View() string {
	label := lipgloss.NewStyle().Foreground(theme.Text).Render(b.Label()) + "  "

	barWidth := max(b.Width-lipgloss.Width(label), minBarWidth)
	filled := int(float64(barWidth) * b.Fraction())

	return label +
		theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))
}
