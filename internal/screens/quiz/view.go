package quiz

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/kompaksatyabuana/kompak/internal/questions"
	"github.com/kompaksatyabuana/kompak/internal/ui/components"
	"github.com/kompaksatyabuana/kompak/internal/ui/layout"
	"github.com/kompaksatyabuana/kompak/internal/ui/theme"
)

func centered(width int, style lipgloss.Style, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render(text)
}

// renderLoading renders the loading state.
func renderLoading(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Loading questions..."))
}

// renderLoadFailed renders the blocking load error with its recovery keys.
func renderLoadFailed(width, height int, err error) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.Warning.Render("Could not load the questions."),
		"",
		lipgloss.NewStyle().Foreground(theme.TextDim).Width(min(width-8, 70)).Align(lipgloss.Center).Render(describeLoadError(err)),
		"",
		components.Row(
			components.NewButton("Retry", "R", true),
			components.NewButton("Quit", "Q", false),
		),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func describeLoadError(err error) string {
	if err == nil {
		return "Unknown error."
	}
	var loadErr *questions.LoadError
	if errors.As(err, &loadErr) && loadErr.StatusCode != 0 {
		return fmt.Sprintf("The server answered %d %s.", loadErr.StatusCode, http.StatusText(loadErr.StatusCode))
	}
	return err.Error()
}

// renderStart renders the name prompt and quiz information.
func (s *QuizScreen) renderStart(width, height int) string {
	facts := []string{
		"⏱  " + describeDuration(s.snap.TimeLimit),
		fmt.Sprintf("❓ %d questions", s.snap.Total),
		"🎯 Multiple choice",
	}
	info := strings.Join(facts, "     ")
	if layout.IsCompactWidth(width) {
		info = lipgloss.JoinVertical(lipgloss.Left, facts...)
	}

	input := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1).
		Width(s.input.Width() + 4).
		Render(s.input.View())

	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render("Welcome to English Quiz!"),
		theme.Subtitle.Render("Test your English knowledge with our interactive quiz."),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Render(info),
		"",
		input,
		"",
		components.NewButton("Start Quiz", "Enter", true).View(),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// describeDuration renders a time limit as "5 minutes" or "90 seconds".
func describeDuration(d time.Duration) string {
	secs := int(d / time.Second)
	switch {
	case secs == 60:
		return "1 minute"
	case secs > 0 && secs%60 == 0:
		return fmt.Sprintf("%d minutes", secs/60)
	default:
		return fmt.Sprintf("%d seconds", secs)
	}
}

// renderQuestion renders the active question with navigation.
func (s *QuizScreen) renderQuestion(width, height int) string {
	snap := s.snap
	q := snap.Question
	if q == nil {
		return ""
	}
	inner := min(width-4, 76)

	var b strings.Builder
	b.WriteString(components.NewStepBar(snap.Index+1, snap.Total, inner).View())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Width(inner).Foreground(theme.Text).Bold(true).Render(q.Prompt))
	b.WriteString("\n\n")

	mc := components.NewMultiChoice(q.Options, snap.Selected)
	if snap.ShowExplanation {
		mc = mc.WithReveal(q.Answer)
	}
	b.WriteString(mc.View())
	b.WriteString("\n")

	if snap.ShowExplanation && q.HasExplanation() {
		b.WriteString("\n")
		b.WriteString(theme.Explanation.Width(inner).Render("Explanation\n" + q.Explanation))
		b.WriteString("\n")
	}

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(theme.Warning.Render(s.notice))
		b.WriteString("\n")
	}

	nextLabel := "Next Question"
	if snap.IsLast() {
		nextLabel = "Finish Quiz"
	}
	b.WriteString("\n")
	b.WriteString(components.Row(
		components.NewButton("Previous Question", "←", snap.Index > 0),
		components.NewButton(nextLabel, "→", snap.Selected != "" && !snap.AdvancePending),
	))

	if !layout.IsCompactHeight(height) {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Participant: %s", snap.Name)))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

// renderFinished is shown when the results screen has been dismissed
// without restarting.
func renderFinished(width, height int, notice string) string {
	text := centered(width, lipgloss.NewStyle().Foreground(theme.TextDim),
		"Quiz finished. Press Enter to see your results or R to try again.")
	if notice != "" {
		text = lipgloss.JoinVertical(lipgloss.Center, text, "", theme.Warning.Render(notice))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text)
}
