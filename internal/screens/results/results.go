package results

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kompaksatyabuana/kompak/internal/router"
	"github.com/kompaksatyabuana/kompak/internal/screen"
	"github.com/kompaksatyabuana/kompak/internal/session"
	"github.com/kompaksatyabuana/kompak/internal/ui/components"
	"github.com/kompaksatyabuana/kompak/internal/ui/layout"
	"github.com/kompaksatyabuana/kompak/internal/ui/theme"
)

// ResultsScreen displays the outcome of a finished attempt.
type ResultsScreen struct {
	summary *session.SessionSummary
	restart func() error
	offset  int // first review row shown
	err     string
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen. restart is invoked when the participant asks
// to take the quiz again.
func New(summary *session.SessionSummary, restart func() error) *ResultsScreen {
	return &ResultsScreen{summary: summary, restart: restart}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter/R", Description: "Take quiz again"},
		{Key: "↑↓", Description: "Scroll review"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "r", "R", "esc":
		if err := s.restart(); err != nil {
			s.err = err.Error()
			return s, nil
		}
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		if s.summary != nil && s.offset < len(s.summary.Questions)-1 {
			s.offset++
		}
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Quiz Completed!"))
	b.WriteString("\n\n")

	score := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(gradeColor(sum.Grade)).
		Padding(0, 3).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(fmt.Sprintf("%d%%", sum.Percent)) +
			"\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render("Your Score"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, score))
	b.WriteString("\n\n")

	timeTaken := session.FormatClock(sum.Elapsed)
	if sum.TimedOut {
		timeTaken += " (time's up)"
	}
	details := []struct{ label, value string }{
		{"Name:", sum.Name},
		{"Correct Answers:", fmt.Sprintf("%d out of %d", sum.Score, sum.Total)},
		{"Time Taken:", timeTaken},
	}
	var rows []string
	for _, d := range details {
		rows = append(rows, lipgloss.NewStyle().Foreground(theme.TextDim).Width(18).Render(d.label)+
			lipgloss.NewStyle().Foreground(theme.Text).Render(d.value))
	}
	rows = append(rows, lipgloss.NewStyle().Foreground(theme.TextDim).Width(18).Render("Grade:")+
		lipgloss.NewStyle().Foreground(gradeColor(sum.Grade)).Bold(true).Render(sum.Grade.Label()))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(rows, "\n")))
	b.WriteString("\n\n")

	if len(sum.Questions) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Review")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")

		used := lipgloss.Height(b.String()) + 4
		for _, line := range s.reviewLines(min(width-8, 72), height-used) {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
			b.WriteString("\n")
		}
	}

	if s.err != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Warning.Render(s.err)))
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.NewButton("Take Quiz Again", "Enter", true).View()))

	return b.String()
}

// reviewLines renders one line per question starting at the scroll offset,
// limited to limit lines.
func (s *ResultsScreen) reviewLines(width, limit int) []string {
	if limit < 1 {
		limit = 1
	}
	qs := s.summary.Questions
	var lines []string
	for i := s.offset; i < len(qs) && len(lines) < limit; i++ {
		r := qs[i]
		mark, style := "✓", theme.Correct
		if !r.Correct {
			mark, style = "✗", theme.Incorrect
		}
		chosen := r.Chosen
		if chosen == "" {
			chosen = "(no answer)"
		}
		text := fmt.Sprintf("%s %d. %s  %s", mark, i+1, truncate(r.Prompt, width/2), chosen)
		if !r.Correct {
			text += fmt.Sprintf(" → %s", r.CorrectAnswer)
		}
		lines = append(lines, style.Render(truncate(text, width)))
	}
	return lines
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// gradeColor returns the theme color for a grade band.
func gradeColor(g session.Grade) color.Color {
	switch g {
	case session.GradeExcellent:
		return theme.Success
	case session.GradeGood:
		return theme.Accent
	default:
		return theme.Error
	}
}
