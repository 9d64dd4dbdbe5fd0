package session

import "time"

// QuestionReview is one row of the results breakdown.
type QuestionReview struct {
	Prompt        string
	Chosen        string // "" when unanswered
	CorrectAnswer string
	Explanation   string
	Correct       bool
}

// SessionSummary holds the data displayed on the results screen.
type SessionSummary struct {
	AttemptID string
	Name      string
	Score     int
	Total     int
	Percent   int
	Grade     Grade
	Elapsed   time.Duration
	TimedOut  bool
	Questions []QuestionReview
}

// BuildSummary creates a SessionSummary for a finished attempt.
func (c *Controller) BuildSummary() (*SessionSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseFinished {
		return nil, ErrWrongPhase
	}

	reviews := make([]QuestionReview, len(c.questions))
	for i, q := range c.questions {
		reviews[i] = QuestionReview{
			Prompt:        q.Prompt,
			Chosen:        c.answers[i],
			CorrectAnswer: q.Answer,
			Explanation:   q.Explanation,
			Correct:       q.IsCorrect(c.answers[i]),
		}
	}

	total := len(c.questions)
	return &SessionSummary{
		AttemptID: c.attemptID,
		Name:      c.name,
		Score:     c.score,
		Total:     total,
		Percent:   Percent(c.score, total),
		Grade:     GradeFor(c.score, total),
		Elapsed:   time.Duration(c.timeLimit-c.remaining) * time.Second,
		TimedOut:  c.remaining == 0,
		Questions: reviews,
	}, nil
}
