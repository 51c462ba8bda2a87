package register

import (
	"errors"
	"strings"
)

// ErrMissingImage is returned when submission is attempted with no image in
// either acquisition mode. It is detected before any network call.
var ErrMissingImage = errors.New("no photo attached to the registration")

// ValidationError carries the final-section validation messages when the
// submission pipeline rejects a draft.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "registration form is invalid: " + strings.Join(e.Messages, "; ")
}
