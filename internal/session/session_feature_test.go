package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"github.com/kompaksatyabuana/kompak/internal/questions"
)

// TestSessionFeatures runs the lifecycle scenarios in features/.
func TestSessionFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "session",
		ScenarioInitializer: initializeSessionScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

func initializeSessionScenario(ctx *godog.ScenarioContext) {
	state := &sessionState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})
	ctx.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		state.close()
		return ctx, nil
	})

	ctx.Step(`^a question bank with (\d+) questions$`, state.givenBank)
	ctx.Step(`^question (\d+) has the explanation "([^"]*)"$`, state.givenExplanation)
	ctx.Step(`^the quiz is loaded$`, state.load)
	ctx.Step(`^the participant starts the quiz as "([^"]*)"$`, state.start)
	ctx.Step(`^the participant answers "([^"]*)"$`, state.answer)
	ctx.Step(`^the participant presses next$`, state.next)
	ctx.Step(`^the participant restarts$`, state.restart)
	ctx.Step(`^(\d+) seconds pass$`, state.wait)
	ctx.Step(`^the start is rejected with "([^"]*)"$`, state.rejectedWith)
	ctx.Step(`^the action is rejected with "([^"]*)"$`, state.rejectedWith)
	ctx.Step(`^the phase is "([^"]*)"$`, state.phaseIs)
	ctx.Step(`^the current question is (\d+)$`, state.currentQuestionIs)
	ctx.Step(`^the score is (\d+) of (\d+)$`, state.scoreIs)
	ctx.Step(`^the grade is "([^"]*)"$`, state.gradeIs)
	ctx.Step(`^the remaining time is "([^"]*)"$`, state.remainingIs)
	ctx.Step(`^the explanation is shown$`, state.explanationShown)
	ctx.Step(`^the explanation is hidden$`, state.explanationHidden)
	ctx.Step(`^no answers are recorded$`, state.noAnswers)
}

// sessionState holds one scenario's controller and last result.
type sessionState struct {
	bank    []questions.Question
	sched   *ManualScheduler
	ctrl    *Controller
	lastErr error
}

func (s *sessionState) reset() {
	s.close()
	s.bank = nil
	s.sched = NewManualScheduler()
	s.ctrl = nil
	s.lastErr = nil
}

func (s *sessionState) close() {
	if s.ctrl != nil {
		s.ctrl.Close()
	}
}

// givenBank builds n questions; odd questions are answered "A", even ones "C".
func (s *sessionState) givenBank(n int) error {
	s.bank = make([]questions.Question, n)
	for i := range s.bank {
		answer := "A"
		if i%2 == 1 {
			answer = "C"
		}
		s.bank[i] = questions.Question{
			ID:      i + 1,
			Prompt:  fmt.Sprintf("Question %d?", i+1),
			Options: []string{"A", "B", "C"},
			Answer:  answer,
		}
	}
	return nil
}

func (s *sessionState) givenExplanation(n int, text string) error {
	if n < 1 || n > len(s.bank) {
		return fmt.Errorf("no question %d", n)
	}
	s.bank[n-1].Explanation = text
	return nil
}

func (s *sessionState) load() error {
	s.ctrl = New(WithScheduler(s.sched))
	return s.ctrl.Load(context.Background(), staticSource{qs: s.bank})
}

func (s *sessionState) start(name string) error {
	s.lastErr = s.ctrl.Start(name)
	return nil
}

func (s *sessionState) answer(option string) error {
	return s.ctrl.Select(option)
}

func (s *sessionState) next() error {
	_, s.lastErr = s.ctrl.Next()
	return nil
}

func (s *sessionState) restart() error {
	return s.ctrl.Restart()
}

func (s *sessionState) wait(secs int) error {
	s.sched.Advance(time.Duration(secs) * time.Second)
	return nil
}

func (s *sessionState) rejectedWith(msg string) error {
	if s.lastErr == nil {
		return fmt.Errorf("expected rejection %q, got success", msg)
	}
	if s.lastErr.Error() != msg {
		return fmt.Errorf("expected rejection %q, got %q", msg, s.lastErr.Error())
	}
	return nil
}

func (s *sessionState) phaseIs(want string) error {
	if got := s.ctrl.Snapshot().Phase.String(); got != want {
		return fmt.Errorf("phase = %q, want %q", got, want)
	}
	return nil
}

func (s *sessionState) currentQuestionIs(n int) error {
	if got := s.ctrl.Snapshot().Index + 1; got != n {
		return fmt.Errorf("current question = %d, want %d", got, n)
	}
	return nil
}

func (s *sessionState) scoreIs(score, total int) error {
	snap := s.ctrl.Snapshot()
	if snap.Score != score || snap.Total != total {
		return fmt.Errorf("score = %d of %d, want %d of %d", snap.Score, snap.Total, score, total)
	}
	return nil
}

func (s *sessionState) gradeIs(want string) error {
	sum, err := s.ctrl.BuildSummary()
	if err != nil {
		return err
	}
	if string(sum.Grade) != want {
		return fmt.Errorf("grade = %q, want %q", sum.Grade, want)
	}
	return nil
}

func (s *sessionState) remainingIs(want string) error {
	if got := FormatClock(s.ctrl.Snapshot().Remaining); got != want {
		return fmt.Errorf("remaining = %s, want %s", got, want)
	}
	return nil
}

func (s *sessionState) explanationShown() error {
	if !s.ctrl.Snapshot().ShowExplanation {
		return fmt.Errorf("explanation not shown")
	}
	return nil
}

func (s *sessionState) explanationHidden() error {
	if s.ctrl.Snapshot().ShowExplanation {
		return fmt.Errorf("explanation still shown")
	}
	return nil
}

func (s *sessionState) noAnswers() error {
	if n := s.ctrl.Snapshot().Answered(); n != 0 {
		return fmt.Errorf("%d answers recorded", n)
	}
	return nil
}
