package questions

// Question is a single multiple-choice quiz item. The JSON field names
// match the question bank format served by /api/questions.
type Question struct {
	ID          int      `json:"id"`
	Prompt      string   `json:"pertanyaan"`
	Options     []string `json:"pilihan"`
	Answer      string   `json:"jawaban"`
	Explanation string   `json:"penjelasan,omitempty"`
}

// HasExplanation reports whether the question carries an explanation to
// show before moving on.
func (q Question) HasExplanation() bool {
	return q.Explanation != ""
}

// HasOption reports whether option is one of the question's choices.
func (q Question) HasOption(option string) bool {
	return q.OptionIndex(option) >= 0
}

// OptionIndex returns the position of option in Options, or -1.
func (q Question) OptionIndex(option string) int {
	for i, o := range q.Options {
		if o == option {
			return i
		}
	}
	return -1
}

// IsCorrect reports whether answer matches the correct answer.
// An empty (unset) answer is never correct.
func (q Question) IsCorrect(answer string) bool {
	return answer != "" && answer == q.Answer
}

// clone returns a deep copy so callers cannot mutate a bank's options.
func (q Question) clone() Question {
	opts := make([]string, len(q.Options))
	copy(opts, q.Options)
	q.Options = opts
	return q
}

// cloneAll deep-copies a question list.
func cloneAll(qs []Question) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = q.clone()
	}
	return out
}
