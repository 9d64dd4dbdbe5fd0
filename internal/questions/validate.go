package questions

import (
	"fmt"
	"strings"
)

// Validate checks the semantic rules the schema cannot express: unique
// ids, non-blank options without duplicates, and an answer that is one of
// the options. It returns an *InvalidBankError listing every problem.
func Validate(qs []Question) error {
	var problems []string
	seen := make(map[int]int, len(qs))

	for i, q := range qs {
		where := fmt.Sprintf("question %d (id %d)", i+1, q.ID)

		if prev, dup := seen[q.ID]; dup {
			problems = append(problems, fmt.Sprintf("%s: duplicate id, first used by question %d", where, prev+1))
		} else {
			seen[q.ID] = i
		}

		if strings.TrimSpace(q.Prompt) == "" {
			problems = append(problems, where+": empty prompt")
		}
		if len(q.Options) < 2 {
			problems = append(problems, where+": needs at least two options")
		}

		opts := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			if strings.TrimSpace(o) == "" {
				problems = append(problems, where+": blank option")
				continue
			}
			if opts[o] {
				problems = append(problems, fmt.Sprintf("%s: option %q listed twice", where, o))
			}
			opts[o] = true
		}

		if !opts[q.Answer] {
			problems = append(problems, fmt.Sprintf("%s: answer %q is not one of the options", where, q.Answer))
		}
	}

	if len(problems) > 0 {
		return &InvalidBankError{Problems: problems}
	}
	return nil
}
