package questions

import (
	"errors"
	"fmt"
)

// ErrEmptyBank is returned when a bank file contains no questions.
var ErrEmptyBank = errors.New("question bank is empty")

// LoadError indicates the question list could not be retrieved or was
// malformed. No partial list accompanies a LoadError.
type LoadError struct {
	// Source names where the load was attempted (a path or URL).
	Source string
	// StatusCode is the HTTP status for non-200 responses, 0 otherwise.
	StatusCode int
	Err        error
}

func (e *LoadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("load questions from %s: unexpected status %d", e.Source, e.StatusCode)
	}
	return fmt.Sprintf("load questions from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// InvalidBankError lists every problem found while validating a bank.
type InvalidBankError struct {
	Problems []string
}

func (e *InvalidBankError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid question bank: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid question bank: %s (and %d more)", e.Problems[0], len(e.Problems)-1)
}
