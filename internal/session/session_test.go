package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kompaksatyabuana/kompak/internal/questions"
)

// staticSource implements questions.Source for testing.
type staticSource struct {
	qs  []questions.Question
	err error
}

func (s staticSource) Fetch(_ context.Context) ([]questions.Question, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.qs, nil
}

func twoQuestionBank() []questions.Question {
	return []questions.Question{
		{ID: 1, Prompt: "First?", Options: []string{"A", "B"}, Answer: "A"},
		{ID: 2, Prompt: "Second?", Options: []string{"B", "C"}, Answer: "C"},
	}
}

func testController(t *testing.T, qs []questions.Question, opts ...Option) (*Controller, *ManualScheduler) {
	t.Helper()
	sched := NewManualScheduler()
	opts = append([]Option{WithScheduler(sched), WithIDGenerator(func() string { return "attempt-1" })}, opts...)
	c := New(opts...)
	if err := c.Load(context.Background(), staticSource{qs: qs}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	t.Cleanup(c.Close)
	return c, sched
}

func startedController(t *testing.T, qs []questions.Question, opts ...Option) (*Controller, *ManualScheduler) {
	t.Helper()
	c, sched := testController(t, qs, opts...)
	if err := c.Start("Budi"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return c, sched
}

func TestController_LoadSuccess(t *testing.T) {
	c, _ := testController(t, twoQuestionBank())
	snap := c.Snapshot()
	if snap.Phase != PhaseNotStarted {
		t.Errorf("Phase = %v, want %v", snap.Phase, PhaseNotStarted)
	}
	if len(snap.Answers) != snap.Total || snap.Total != 2 {
		t.Errorf("answers = %d, total = %d, want 2 and 2", len(snap.Answers), snap.Total)
	}
	if snap.Remaining != DefaultTimeLimit {
		t.Errorf("Remaining = %v, want %v", snap.Remaining, DefaultTimeLimit)
	}
}

func TestController_LoadFailure(t *testing.T) {
	c := New(WithScheduler(NewManualScheduler()))
	loadErr := &questions.LoadError{Source: "test", StatusCode: 500}
	err := c.Load(context.Background(), staticSource{err: loadErr})
	if !errors.Is(err, loadErr) {
		t.Fatalf("Load error = %v, want %v", err, loadErr)
	}

	snap := c.Snapshot()
	if snap.Phase != PhaseLoadFailed {
		t.Errorf("Phase = %v, want %v", snap.Phase, PhaseLoadFailed)
	}
	if snap.Total != 0 {
		t.Errorf("Total = %d, want no partial list", snap.Total)
	}
	if err := c.Start("Budi"); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("Start in load-failed = %v, want ErrWrongPhase", err)
	}
	if err := c.Restart(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("Restart in load-failed = %v, want ErrWrongPhase", err)
	}

	// Manual reload recovers.
	if err := c.Reload(context.Background(), staticSource{qs: twoQuestionBank()}); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := c.Snapshot().Phase; got != PhaseNotStarted {
		t.Errorf("Phase after reload = %v, want %v", got, PhaseNotStarted)
	}
}

func TestController_StartValidation(t *testing.T) {
	tests := []struct {
		name    string
		qs      []questions.Question
		input   string
		wantErr error
	}{
		{"empty name", twoQuestionBank(), "", ErrNameRequired},
		{"blank name", twoQuestionBank(), "   ", ErrNameRequired},
		{"no questions", []questions.Question{}, "Budi", ErrNoQuestions},
		{"both missing reports name first", []questions.Question{}, "", ErrNameRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, sched := testController(t, tt.qs)
			before := c.Snapshot()

			err := c.Start(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Start(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
			if !IsValidation(err) {
				t.Errorf("expected a validation error, got %T", err)
			}
			after := c.Snapshot()
			if after.Phase != before.Phase || after.Name != before.Name {
				t.Errorf("state changed on rejected start: %+v -> %+v", before, after)
			}
			if sched.Pending() != 0 {
				t.Errorf("pending timers = %d, want 0", sched.Pending())
			}
		})
	}
}

func TestController_StartWhileLoading(t *testing.T) {
	c := New(WithScheduler(NewManualScheduler()))
	if err := c.Start("Budi"); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("Start while loading = %v, want ErrNoQuestions", err)
	}
}

func TestController_Start(t *testing.T) {
	c, sched := startedController(t, twoQuestionBank())
	snap := c.Snapshot()

	if snap.Phase != PhaseInProgress {
		t.Fatalf("Phase = %v, want %v", snap.Phase, PhaseInProgress)
	}
	if snap.Name != "Budi" || snap.AttemptID != "attempt-1" {
		t.Errorf("Name/AttemptID = %q/%q", snap.Name, snap.AttemptID)
	}
	if snap.Index != 0 || snap.Question == nil || snap.Question.ID != 1 {
		t.Errorf("expected first question at index 0, got %d", snap.Index)
	}
	if snap.Answered() != 0 {
		t.Errorf("Answered = %d, want 0", snap.Answered())
	}
	if sched.Pending() != 1 {
		t.Errorf("pending timers = %d, want countdown only", sched.Pending())
	}
}

func TestController_SelectLastWriteWins(t *testing.T) {
	c, _ := startedController(t, twoQuestionBank())

	if err := c.Select("B"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := c.SelectIndex(0); err != nil {
		t.Fatalf("SelectIndex: %v", err)
	}
	snap := c.Snapshot()
	if snap.Selected != "A" || snap.Answers[0] != "A" {
		t.Errorf("Selected = %q, Answers[0] = %q, want A", snap.Selected, snap.Answers[0])
	}

	if err := c.Select("Z"); !errors.Is(err, ErrUnknownOption) {
		t.Errorf("Select(Z) = %v, want ErrUnknownOption", err)
	}
	if err := c.SelectIndex(5); !errors.Is(err, ErrUnknownOption) {
		t.Errorf("SelectIndex(5) = %v, want ErrUnknownOption", err)
	}
	if got := c.Snapshot().Answers[0]; got != "A" {
		t.Errorf("rejected select changed answer to %q", got)
	}
}

func TestController_NextRequiresAnswer(t *testing.T) {
	c, _ := startedController(t, twoQuestionBank())

	_, err := c.Next()
	if !errors.Is(err, ErrNoAnswer) {
		t.Fatalf("Next without answer = %v, want ErrNoAnswer", err)
	}
	if idx := c.Snapshot().Index; idx != 0 {
		t.Errorf("Index = %d, want 0", idx)
	}
}

func TestController_NextRestoresRecordedAnswer(t *testing.T) {
	c, _ := startedController(t, twoQuestionBank())

	_ = c.Select("A")
	if res, err := c.Next(); err != nil || res != AdvanceMoved {
		t.Fatalf("Next = %v, %v", res, err)
	}
	snap := c.Snapshot()
	if snap.Index != 1 || snap.Selected != "" {
		t.Errorf("Index/Selected = %d/%q, want 1/\"\"", snap.Index, snap.Selected)
	}

	_ = c.Select("C")
	if err := c.Previous(); err != nil {
		t.Fatalf("Previous: %v", err)
	}
	snap = c.Snapshot()
	if snap.Index != 0 || snap.Selected != "A" {
		t.Errorf("after Previous Index/Selected = %d/%q, want 0/A", snap.Index, snap.Selected)
	}

	_, _ = c.Next()
	if got := c.Snapshot().Selected; got != "C" {
		t.Errorf("Selected after returning = %q, want C", got)
	}
}

func TestController_PreviousAtFirstIsNoop(t *testing.T) {
	c, _ := startedController(t, twoQuestionBank())
	_ = c.Select("B")

	if err := c.Previous(); err != nil {
		t.Fatalf("Previous at 0 = %v, want nil", err)
	}
	snap := c.Snapshot()
	if snap.Index != 0 || snap.Selected != "B" {
		t.Errorf("Index/Selected = %d/%q, want 0/B", snap.Index, snap.Selected)
	}
}

func TestController_CompleteScoresAndGrades(t *testing.T) {
	c, sched := startedController(t, twoQuestionBank())

	_ = c.Select("A")
	_, _ = c.Next()
	_ = c.Select("B")
	sched.Advance(42 * time.Second)

	res, err := c.Next()
	if err != nil || res != AdvanceFinished {
		t.Fatalf("Next on last = %v, %v, want AdvanceFinished", res, err)
	}

	snap := c.Snapshot()
	if snap.Phase != PhaseFinished {
		t.Fatalf("Phase = %v, want finished", snap.Phase)
	}
	if snap.Score != 1 {
		t.Errorf("Score = %d, want 1", snap.Score)
	}
	if sched.Pending() != 0 {
		t.Errorf("pending timers after finish = %d, want 0", sched.Pending())
	}

	sum, err := c.BuildSummary()
	if err != nil {
		t.Fatalf("BuildSummary: %v", err)
	}
	if sum.Grade != GradeNeedsImprovement || sum.Percent != 50 {
		t.Errorf("Grade/Percent = %q/%d, want needs improvement/50", sum.Grade, sum.Percent)
	}
	if sum.Elapsed != 42*time.Second || sum.TimedOut {
		t.Errorf("Elapsed = %v TimedOut = %v", sum.Elapsed, sum.TimedOut)
	}
	if !sum.Questions[0].Correct || sum.Questions[1].Correct {
		t.Errorf("unexpected review %+v", sum.Questions)
	}
}

func TestController_NAdvancesFinish(t *testing.T) {
	qs := []questions.Question{
		{ID: 1, Prompt: "1", Options: []string{"a", "b"}, Answer: "a"},
		{ID: 2, Prompt: "2", Options: []string{"a", "b"}, Answer: "b"},
		{ID: 3, Prompt: "3", Options: []string{"a", "b"}, Answer: "a"},
		{ID: 4, Prompt: "4", Options: []string{"a", "b"}, Answer: "b"},
	}
	c, _ := startedController(t, qs)

	for i := range qs {
		if got := c.Snapshot().Phase; got != PhaseInProgress {
			t.Fatalf("advance %d: Phase = %v before finishing", i, got)
		}
		_ = c.SelectIndex(0)
		if _, err := c.Next(); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}
	snap := c.Snapshot()
	if snap.Phase != PhaseFinished || snap.Score != 2 {
		t.Errorf("Phase/Score = %v/%d, want finished/2", snap.Phase, snap.Score)
	}
}

func TestController_TimeoutFinishesWithRecordedAnswers(t *testing.T) {
	c, sched := startedController(t, twoQuestionBank(), WithTimeLimit(10*time.Second))
	_ = c.Select("A")

	sched.Advance(9 * time.Second)
	snap := c.Snapshot()
	if snap.Phase != PhaseInProgress || snap.Remaining != time.Second {
		t.Fatalf("Phase/Remaining = %v/%v, want in-progress/1s", snap.Phase, snap.Remaining)
	}

	sched.Advance(time.Second)
	snap = c.Snapshot()
	if snap.Phase != PhaseFinished {
		t.Fatalf("Phase = %v, want finished on timeout", snap.Phase)
	}
	if snap.Score != 1 || snap.Remaining != 0 {
		t.Errorf("Score/Remaining = %d/%v, want 1/0", snap.Score, snap.Remaining)
	}
	if snap.Elapsed() != 10*time.Second {
		t.Errorf("Elapsed = %v, want 10s", snap.Elapsed())
	}

	// No duplicate finish from a stale countdown.
	sched.Advance(5 * time.Second)
	if got := c.Snapshot().Remaining; got != 0 {
		t.Errorf("Remaining = %v after finish, want 0", got)
	}
	sum, _ := c.BuildSummary()
	if !sum.TimedOut {
		t.Error("expected TimedOut summary")
	}
}

func TestController_ExplanationDefersAdvance(t *testing.T) {
	qs := twoQuestionBank()
	qs[0].Explanation = "A is the first letter"
	c, sched := startedController(t, qs)

	_ = c.Select("A")
	res, err := c.Next()
	if err != nil || res != AdvanceDeferred {
		t.Fatalf("Next = %v, %v, want AdvanceDeferred", res, err)
	}
	snap := c.Snapshot()
	if !snap.ShowExplanation || !snap.AdvancePending || snap.Index != 0 {
		t.Fatalf("expected explanation at index 0, got %+v", snap)
	}

	// Extra clicks neither cancel nor duplicate the advance.
	if res, _ := c.Next(); res != AdvancePending {
		t.Errorf("second Next = %v, want AdvancePending", res)
	}

	sched.Advance(2 * time.Second)
	if idx := c.Snapshot().Index; idx != 0 {
		t.Errorf("Index = %d before delay elapsed", idx)
	}

	sched.Advance(time.Second)
	snap = c.Snapshot()
	if snap.Index != 1 || snap.ShowExplanation || snap.AdvancePending {
		t.Errorf("after delay: %+v", snap)
	}

	sched.Advance(10 * time.Second)
	if idx := c.Snapshot().Index; idx != 1 {
		t.Errorf("advance fired twice, Index = %d", idx)
	}
}

func TestController_ExplanationOnLastQuestionFinishes(t *testing.T) {
	qs := twoQuestionBank()
	qs[1].Explanation = "C is correct"
	c, sched := startedController(t, qs)

	_ = c.Select("A")
	_, _ = c.Next()
	_ = c.Select("C")
	if res, _ := c.Next(); res != AdvanceDeferred {
		t.Fatalf("Next = %v, want AdvanceDeferred", res)
	}
	sched.Advance(DefaultExplanationDelay)

	snap := c.Snapshot()
	if snap.Phase != PhaseFinished || snap.Score != 2 {
		t.Errorf("Phase/Score = %v/%d, want finished/2", snap.Phase, snap.Score)
	}
}

func TestController_PreviousCancelsDeferredAdvance(t *testing.T) {
	qs := twoQuestionBank()
	qs[1].Explanation = "C is correct"
	c, sched := startedController(t, qs)

	_ = c.Select("A")
	_, _ = c.Next()
	_ = c.Select("C")
	_, _ = c.Next()

	if err := c.Previous(); err != nil {
		t.Fatalf("Previous: %v", err)
	}
	sched.Advance(DefaultExplanationDelay)

	snap := c.Snapshot()
	if snap.Phase != PhaseInProgress || snap.Index != 0 || snap.AdvancePending {
		t.Errorf("deferred advance survived retreat: %+v", snap)
	}
}

func TestController_RestartResetsSession(t *testing.T) {
	c, sched := startedController(t, twoQuestionBank())
	_ = c.Select("A")
	_, _ = c.Next()
	_ = c.Select("C")
	sched.Advance(30 * time.Second)
	_, _ = c.Next()

	if err := c.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	snap := c.Snapshot()
	if snap.Phase != PhaseNotStarted {
		t.Errorf("Phase = %v, want not-started", snap.Phase)
	}
	if snap.Remaining != DefaultTimeLimit || snap.Index != 0 || snap.Name != "" || snap.Score != 0 {
		t.Errorf("fields not reset: %+v", snap)
	}
	if snap.Answered() != 0 || len(snap.Answers) != 2 {
		t.Errorf("answers not reset: %v", snap.Answers)
	}
	if len(c.Questions()) != 2 {
		t.Error("question list must survive restart")
	}
}

func TestController_RestartCancelsTimers(t *testing.T) {
	qs := twoQuestionBank()
	qs[0].Explanation = "because"
	c, sched := startedController(t, qs)
	_ = c.Select("A")
	_, _ = c.Next()

	if err := c.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if sched.Pending() != 0 {
		t.Errorf("pending timers after restart = %d, want 0", sched.Pending())
	}

	// A new attempt must not be touched by callbacks from the old one.
	if err := c.Start("Sari"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	sched.Advance(DefaultExplanationDelay)
	snap := c.Snapshot()
	if snap.Index != 0 || snap.Remaining != DefaultTimeLimit-DefaultExplanationDelay {
		t.Errorf("stale callback leaked into new attempt: %+v", snap)
	}
}

func TestController_WrongPhase(t *testing.T) {
	c, _ := testController(t, twoQuestionBank())

	if err := c.Select("A"); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("Select before start = %v", err)
	}
	if _, err := c.Next(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("Next before start = %v", err)
	}
	if err := c.Previous(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("Previous before start = %v", err)
	}
	if _, err := c.BuildSummary(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("BuildSummary before finish = %v", err)
	}
}

func TestController_ObserverSeesTimerTransitions(t *testing.T) {
	var phases []Phase
	_, sched := startedController(t, twoQuestionBank(),
		WithTimeLimit(2*time.Second),
		WithObserver(func(s Snapshot) { phases = append(phases, s.Phase) }),
	)

	sched.Advance(2 * time.Second)
	if len(phases) == 0 || phases[len(phases)-1] != PhaseFinished {
		t.Errorf("observer phases = %v, want last to be finished", phases)
	}
}

func TestController_CloseStopsTimers(t *testing.T) {
	c, sched := startedController(t, twoQuestionBank())
	c.Close()
	if sched.Pending() != 0 {
		t.Errorf("pending timers after Close = %d", sched.Pending())
	}
	sched.Advance(time.Minute)
	if got := c.Snapshot().Remaining; got != DefaultTimeLimit {
		t.Errorf("Remaining = %v after Close, want unchanged", got)
	}
}

func TestScore(t *testing.T) {
	qs := twoQuestionBank()
	tests := []struct {
		answers []string
		want    int
	}{
		{[]string{"A", "C"}, 2},
		{[]string{"A", "B"}, 1},
		{[]string{"", ""}, 0},
		{[]string{"B"}, 0},
		{nil, 0},
	}
	for _, tt := range tests {
		if got := Score(qs, tt.answers); got != tt.want {
			t.Errorf("Score(%v) = %d, want %d", tt.answers, got, tt.want)
		}
	}
}
