package session

import "errors"

// ValidationError is a user-correctable input problem. It never changes
// session state and is meant to be shown inline.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	ErrNameRequired  = &ValidationError{Message: "Please enter your name"}
	ErrNoQuestions   = &ValidationError{Message: "Questions are not ready yet"}
	ErrNoAnswer      = &ValidationError{Message: "Please select an answer"}
	ErrUnknownOption = &ValidationError{Message: "That option is not part of this question"}
)

// ErrWrongPhase is returned when a transition is invoked from a phase that
// does not allow it.
var ErrWrongPhase = errors.New("action not allowed in the current phase")

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
