package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/kompaksatyabuana/kompak/internal/questions"
)

// Observer receives a snapshot after every transition, including ones
// driven by timers. It is called without the controller lock held.
type Observer func(Snapshot)

// Controller owns one quiz session and exposes one method per transition.
// It is safe for concurrent use; timer callbacks re-enter through the same
// lock and are discarded if the session moved on since they were scheduled.
type Controller struct {
	mu sync.Mutex

	sched            Scheduler
	logger           hclog.Logger
	observers        []Observer
	timeLimit        int // seconds
	explanationDelay time.Duration
	newID            func() string

	phase     Phase
	loadErr   error
	questions []questions.Question

	attemptID       string
	name            string
	answers         []string
	index           int
	selected        string
	remaining       int // seconds
	score           int
	showExplanation bool

	countdown Timer
	advance   Timer
	// epoch invalidates callbacks scheduled before the last cancel.
	epoch uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithScheduler sets the timer source. Defaults to SystemScheduler.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

// WithTimeLimit sets the attempt time budget, truncated to whole seconds.
func WithTimeLimit(d time.Duration) Option {
	return func(c *Controller) {
		if secs := int(d / time.Second); secs > 0 {
			c.timeLimit = secs
		}
	}
}

// WithExplanationDelay sets how long an explanation is shown before the
// deferred advance.
func WithExplanationDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.explanationDelay = d
		}
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l hclog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithObserver registers a callback invoked after every transition.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observers = append(c.observers, o) }
}

// WithIDGenerator replaces the attempt ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) { c.newID = fn }
}

// New creates a Controller in the loading phase.
func New(opts ...Option) *Controller {
	c := &Controller{
		sched:            SystemScheduler{},
		logger:           hclog.NewNullLogger(),
		timeLimit:        int(DefaultTimeLimit / time.Second),
		explanationDelay: DefaultExplanationDelay,
		newID:            func() string { return uuid.New().String() },
		phase:            PhaseLoading,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.remaining = c.timeLimit
	return c
}

// update runs fn under the lock, then notifies observers with the
// resulting snapshot after releasing it.
func (c *Controller) update(fn func() error) error {
	c.mu.Lock()
	err := fn()
	snap := c.snapshotLocked()
	observers := c.observers
	c.mu.Unlock()

	for _, o := range observers {
		o(snap)
	}
	return err
}

// Load fetches the question list once. On failure the controller enters
// PhaseLoadFailed and keeps no partial list.
func (c *Controller) Load(ctx context.Context, src questions.Source) error {
	c.mu.Lock()
	if c.phase != PhaseLoading {
		c.mu.Unlock()
		return ErrWrongPhase
	}
	c.mu.Unlock()

	qs, err := src.Fetch(ctx)

	return c.update(func() error {
		if c.phase != PhaseLoading {
			return ErrWrongPhase
		}
		if err != nil {
			c.phase = PhaseLoadFailed
			c.loadErr = err
			c.logger.Error("question load failed", "error", err)
			return err
		}
		c.questions = qs
		c.phase = PhaseNotStarted
		c.resetLocked()
		c.logger.Debug("questions loaded", "count", len(qs))
		return nil
	})
}

// Reload retries a failed load. It is the only action available in
// PhaseLoadFailed.
func (c *Controller) Reload(ctx context.Context, src questions.Source) error {
	err := c.update(func() error {
		if c.phase != PhaseLoadFailed {
			return ErrWrongPhase
		}
		c.phase = PhaseLoading
		c.loadErr = nil
		return nil
	})
	if err != nil {
		return err
	}
	return c.Load(ctx, src)
}

// Start begins a timed attempt for the named participant.
func (c *Controller) Start(name string) error {
	return c.update(func() error {
		if c.phase != PhaseNotStarted && c.phase != PhaseLoading {
			return ErrWrongPhase
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return ErrNameRequired
		}
		if c.phase == PhaseLoading || len(c.questions) == 0 {
			return ErrNoQuestions
		}

		c.resetLocked()
		c.name = name
		c.attemptID = c.newID()
		c.phase = PhaseInProgress

		epoch := c.epoch
		c.countdown = c.sched.Every(TickInterval, func() { c.tick(epoch) })

		c.logger.Info("quiz started",
			"attempt", c.attemptID,
			"participant", c.name,
			"questions", len(c.questions),
			"time_limit_secs", c.timeLimit)
		return nil
	})
}

// tick is the countdown callback.
func (c *Controller) tick(epoch uint64) {
	_ = c.update(func() error {
		if epoch != c.epoch || c.phase != PhaseInProgress {
			return nil
		}
		if c.remaining > 0 {
			c.remaining--
		}
		if c.remaining == 0 {
			c.logger.Info("time limit reached", "attempt", c.attemptID)
			c.finishLocked()
		}
		return nil
	})
}

// Select records option as the answer to the current question. Selecting
// again overwrites the previous choice.
func (c *Controller) Select(option string) error {
	return c.update(func() error {
		if c.phase != PhaseInProgress {
			return ErrWrongPhase
		}
		if !c.questions[c.index].HasOption(option) {
			return ErrUnknownOption
		}
		c.answers[c.index] = option
		c.selected = option
		return nil
	})
}

// SelectIndex records the i-th option (0-based) of the current question.
func (c *Controller) SelectIndex(i int) error {
	c.mu.Lock()
	if c.phase != PhaseInProgress {
		c.mu.Unlock()
		return ErrWrongPhase
	}
	opts := c.questions[c.index].Options
	if i < 0 || i >= len(opts) {
		c.mu.Unlock()
		return ErrUnknownOption
	}
	option := opts[i]
	c.mu.Unlock()
	return c.Select(option)
}

// Next advances past the current question. If the question has an
// explanation, the explanation is shown and the advance runs after the
// explanation delay; further calls while it is pending are ignored. On the
// last question the attempt finishes instead.
func (c *Controller) Next() (AdvanceResult, error) {
	var result AdvanceResult
	err := c.update(func() error {
		if c.phase != PhaseInProgress {
			return ErrWrongPhase
		}
		if c.advance != nil {
			result = AdvancePending
			return nil
		}
		if c.answers[c.index] == "" {
			return ErrNoAnswer
		}

		if c.questions[c.index].HasExplanation() {
			c.showExplanation = true
			epoch := c.epoch
			c.advance = c.sched.After(c.explanationDelay, func() { c.deferredAdvance(epoch) })
			result = AdvanceDeferred
			return nil
		}

		result = c.proceedLocked()
		return nil
	})
	return result, err
}

// deferredAdvance is the explanation-delay callback.
func (c *Controller) deferredAdvance(epoch uint64) {
	_ = c.update(func() error {
		if epoch != c.epoch || c.phase != PhaseInProgress || c.advance == nil {
			return nil
		}
		c.advance = nil
		c.proceedLocked()
		return nil
	})
}

// proceedLocked moves to the next question or finishes on the last one.
func (c *Controller) proceedLocked() AdvanceResult {
	c.showExplanation = false
	if c.index+1 < len(c.questions) {
		c.index++
		c.selected = c.answers[c.index]
		return AdvanceMoved
	}
	c.finishLocked()
	return AdvanceFinished
}

// Previous moves back one question. It is a no-op on the first question.
// A pending deferred advance is cancelled.
func (c *Controller) Previous() error {
	return c.update(func() error {
		if c.phase != PhaseInProgress {
			return ErrWrongPhase
		}
		if c.index == 0 {
			return nil
		}
		if c.advance != nil {
			c.advance.Stop()
			c.advance = nil
		}
		c.index--
		c.selected = c.answers[c.index]
		c.showExplanation = false
		return nil
	})
}

// finishLocked scores the attempt and stops all timers.
func (c *Controller) finishLocked() {
	c.cancelTimersLocked()
	c.score = Score(c.questions, c.answers)
	c.showExplanation = false
	c.phase = PhaseFinished
	c.logger.Info("quiz finished",
		"attempt", c.attemptID,
		"score", c.score,
		"total", len(c.questions),
		"elapsed_secs", c.timeLimit-c.remaining)
}

// Restart discards the current attempt and returns to PhaseNotStarted. The
// loaded question list is kept.
func (c *Controller) Restart() error {
	return c.update(func() error {
		switch c.phase {
		case PhaseNotStarted, PhaseInProgress, PhaseFinished:
		default:
			return ErrWrongPhase
		}
		if c.attemptID != "" {
			c.logger.Info("quiz restarted", "attempt", c.attemptID)
		}
		c.resetLocked()
		c.phase = PhaseNotStarted
		return nil
	})
}

// Close cancels all timers. The controller must not be used afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelTimersLocked()
}

// resetLocked restores every session field to its initial value.
func (c *Controller) resetLocked() {
	c.cancelTimersLocked()
	c.attemptID = ""
	c.name = ""
	c.answers = make([]string, len(c.questions))
	c.index = 0
	c.selected = ""
	c.remaining = c.timeLimit
	c.score = 0
	c.showExplanation = false
}

// cancelTimersLocked stops the countdown and any deferred advance and
// invalidates callbacks already in flight.
func (c *Controller) cancelTimersLocked() {
	if c.countdown != nil {
		c.countdown.Stop()
		c.countdown = nil
	}
	if c.advance != nil {
		c.advance.Stop()
		c.advance = nil
	}
	c.epoch++
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	answers := make([]string, len(c.answers))
	copy(answers, c.answers)

	snap := Snapshot{
		Phase:           c.phase,
		LoadErr:         c.loadErr,
		AttemptID:       c.attemptID,
		Name:            c.name,
		Total:           len(c.questions),
		Index:           c.index,
		Selected:        c.selected,
		Answers:         answers,
		ShowExplanation: c.showExplanation,
		AdvancePending:  c.advance != nil,
		Remaining:       time.Duration(c.remaining) * time.Second,
		TimeLimit:       time.Duration(c.timeLimit) * time.Second,
		Score:           c.score,
	}
	if c.phase == PhaseInProgress {
		q := c.questions[c.index]
		snap.Question = &q
	}
	return snap
}

// Questions returns a copy of the loaded question list.
func (c *Controller) Questions() []questions.Question {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]questions.Question, len(c.questions))
	copy(out, c.questions)
	return out
}

// Score counts answers equal to their question's correct answer. Unset
// answers never match.
func Score(qs []questions.Question, answers []string) int {
	score := 0
	for i, q := range qs {
		if i < len(answers) && q.IsCorrect(answers[i]) {
			score++
		}
	}
	return score
}
