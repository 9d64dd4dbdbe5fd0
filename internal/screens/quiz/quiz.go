package quiz

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/kompaksatyabuana/kompak/internal/questions"
	"github.com/kompaksatyabuana/kompak/internal/router"
	"github.com/kompaksatyabuana/kompak/internal/screen"
	"github.com/kompaksatyabuana/kompak/internal/screens/results"
	"github.com/kompaksatyabuana/kompak/internal/session"
	"github.com/kompaksatyabuana/kompak/internal/ui/components"
	"github.com/kompaksatyabuana/kompak/internal/ui/layout"
	"github.com/kompaksatyabuana/kompak/internal/ui/theme"
)

const nameMaxLen = 40

// QuizScreen renders one quiz session and routes keys to the controller.
type QuizScreen struct {
	ctrl        *session.Controller
	src         questions.Source
	loadTimeout time.Duration

	snap        session.Snapshot
	input       components.TextInput
	notice      string // inline validation message on the question view
	showResults bool   // results screen has been pushed for this attempt
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a QuizScreen for ctrl. src is used for manual reloads.
func New(ctrl *session.Controller, src questions.Source, loadTimeout time.Duration) *QuizScreen {
	return &QuizScreen{
		ctrl:        ctrl,
		src:         src,
		loadTimeout: loadTimeout,
		snap:        ctrl.Snapshot(),
		input:       components.NewTextInput("Enter your full name", nameMaxLen),
	}
}

// LoadCmd fetches the question list into ctrl once.
func LoadCmd(ctrl *session.Controller, src questions.Source, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return loadDoneMsg{Err: ctrl.Load(ctx, src)}
	}
}

func (s *QuizScreen) reloadCmd() tea.Cmd {
	ctrl, src, timeout := s.ctrl, s.src, s.loadTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return loadDoneMsg{Err: ctrl.Reload(ctx, src)}
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *QuizScreen) Title() string {
	return "English Quiz"
}

// Status shows the countdown while an attempt is running.
func (s *QuizScreen) Status() string {
	if s.snap.Phase != session.PhaseInProgress {
		return ""
	}
	secs := int(s.snap.Remaining / time.Second)
	return theme.ClockStyle(secs).Render("Time " + session.FormatClock(s.snap.Remaining))
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.snap.Phase {
	case session.PhaseLoadFailed:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Q", Description: "Quit"},
		}
	case session.PhaseNotStarted:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start quiz"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case session.PhaseInProgress:
		return []layout.KeyHint{
			{Key: "1-9", Description: "Choose"},
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter/→", Description: "Next"},
			{Key: "←", Description: "Previous"},
		}
	case session.PhaseFinished:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Results"},
			{Key: "R", Description: "Restart"},
		}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case StateChangedMsg, loadDoneMsg:
		return s, s.refresh()

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.snap.Phase == session.PhaseNotStarted {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// refresh re-reads the controller and reacts to phase changes.
func (s *QuizScreen) refresh() tea.Cmd {
	prev := s.snap.Phase
	s.snap = s.ctrl.Snapshot()

	switch s.snap.Phase {
	case session.PhaseFinished:
		if !s.showResults {
			return s.pushResults()
		}
	case session.PhaseNotStarted:
		s.showResults = false
		if prev == session.PhaseInProgress || prev == session.PhaseFinished {
			s.input.Reset()
			s.notice = ""
			return s.input.Init()
		}
	case session.PhaseInProgress:
		if prev != session.PhaseInProgress {
			s.notice = ""
		}
	}
	return nil
}

func (s *QuizScreen) pushResults() tea.Cmd {
	summary, err := s.ctrl.BuildSummary()
	if err != nil {
		return nil
	}
	s.showResults = true
	scr := results.New(summary, s.ctrl.Restart)
	return func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.snap.Phase {
	case session.PhaseLoadFailed:
		switch key {
		case "r", "R":
			return s, s.reloadCmd()
		case "q", "Q":
			return s, tea.Quit
		}
		return s, nil

	case session.PhaseNotStarted:
		if key == "enter" {
			return s, s.start()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case session.PhaseInProgress:
		return s, s.handleQuestionKey(key)

	case session.PhaseFinished:
		switch key {
		case "enter":
			return s, s.pushResults()
		case "r", "R":
			if err := s.ctrl.Restart(); err != nil {
				s.notice = err.Error()
				return s, nil
			}
			return s, s.refresh()
		}
	}
	return s, nil
}

func (s *QuizScreen) start() tea.Cmd {
	if err := s.ctrl.Start(s.input.Value()); err != nil {
		if session.IsValidation(err) {
			s.input.SetMessage(err.Error())
		}
		return nil
	}
	return s.refresh()
}

func (s *QuizScreen) handleQuestionKey(key string) tea.Cmd {
	var err error
	switch key {
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if s.snap.AdvancePending {
			return nil
		}
		err = s.ctrl.SelectIndex(int(key[0] - '1'))
		if errors.Is(err, session.ErrUnknownOption) {
			return nil
		}
	case "up", "k", "down", "j":
		if s.snap.AdvancePending || s.snap.Question == nil {
			return nil
		}
		d := 1
		if key == "up" || key == "k" {
			d = -1
		}
		mc := components.NewMultiChoice(s.snap.Question.Options, s.snap.Selected)
		err = s.ctrl.Select(mc.Move(d))
	case "enter", "right", "n":
		_, err = s.ctrl.Next()
	case "left", "p":
		err = s.ctrl.Previous()
	default:
		return nil
	}

	if session.IsValidation(err) {
		s.notice = err.Error()
	} else {
		s.notice = ""
	}
	return s.refresh()
}

func (s *QuizScreen) View(width, height int) string {
	switch s.snap.Phase {
	case session.PhaseLoading:
		return renderLoading(width, height)
	case session.PhaseLoadFailed:
		return renderLoadFailed(width, height, s.snap.LoadErr)
	case session.PhaseNotStarted:
		return s.renderStart(width, height)
	case session.PhaseInProgress:
		return s.renderQuestion(width, height)
	default:
		return renderFinished(width, height, s.notice)
	}
}
