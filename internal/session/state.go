package session

import (
	"fmt"
	"time"

	"github.com/kompaksatyabuana/kompak/internal/questions"
)

const (
	// DefaultTimeLimit is the time budget of one attempt.
	DefaultTimeLimit = 300 * time.Second

	// DefaultExplanationDelay is how long an explanation stays on screen
	// before the deferred advance runs.
	DefaultExplanationDelay = 3 * time.Second

	// TickInterval is the countdown resolution.
	TickInterval = time.Second
)

// Phase represents the lifecycle phase of the controller.
type Phase int

const (
	PhaseLoading    Phase = iota // Waiting for the question list
	PhaseLoadFailed              // Question list could not be loaded; reload only
	PhaseNotStarted              // Questions loaded, waiting for a participant
	PhaseInProgress              // Timed attempt running
	PhaseFinished                // Score computed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseLoadFailed:
		return "load-failed"
	case PhaseNotStarted:
		return "not-started"
	case PhaseInProgress:
		return "in-progress"
	case PhaseFinished:
		return "finished"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// AdvanceResult describes what a Next call did.
type AdvanceResult int

const (
	AdvanceMoved    AdvanceResult = iota // Moved to the following question
	AdvanceDeferred                      // Explanation shown, advance scheduled
	AdvancePending                       // A deferred advance is already scheduled
	AdvanceFinished                      // Last question; attempt finished
)

// Snapshot is an immutable copy of controller state for rendering.
type Snapshot struct {
	Phase     Phase
	LoadErr   error
	AttemptID string
	Name      string

	Total    int
	Index    int
	Question *questions.Question // nil unless in progress

	// Selected is the answer displayed for the current question ("" if unset).
	Selected string
	Answers  []string

	ShowExplanation bool
	AdvancePending  bool

	Remaining time.Duration
	TimeLimit time.Duration
	Score     int
}

// Answered returns how many questions have a recorded answer.
func (s Snapshot) Answered() int {
	n := 0
	for _, a := range s.Answers {
		if a != "" {
			n++
		}
	}
	return n
}

// IsLast reports whether the current question is the final one.
func (s Snapshot) IsLast() bool {
	return s.Total > 0 && s.Index == s.Total-1
}

// Elapsed returns the time used so far.
func (s Snapshot) Elapsed() time.Duration {
	return s.TimeLimit - s.Remaining
}

// Progress returns the share of the quiz reached, counting the current
// question, in [0, 1].
func (s Snapshot) Progress() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Index+1) / float64(s.Total)
}
