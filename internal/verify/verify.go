// Package verify confirms that the backend finished its asynchronous face
// processing after a registration. Confirmation is best-effort: the
// registration already succeeded, so nothing here ever surfaces an error to
// the user - an unconfirmed record only delays the identification feature.
package verify

import (
	"context"
	"log"
	"time"

	"faceconsole/internal/capture"
	"faceconsole/internal/constants"
	"faceconsole/internal/faceapi"
)

// Clock abstracts the backoff delay so tests run without real timers.
type Clock interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Backend is the slice of the API client the verifier needs.
type Backend interface {
	GetUser(ctx context.Context, id string) (*faceapi.User, error)
	VerifyFace(ctx context.Context, file *capture.File) (*faceapi.StatusResult, error)
}

// Verifier polls a user record until its derived face identifier shows up.
type Verifier struct {
	backend  Backend
	clock    Clock
	attempts int
}

// New creates a verifier with the real clock and the default attempt limit.
func New(backend Backend) *Verifier {
	return NewWithClock(backend, realClock{})
}

// NewWithClock creates a verifier with an injected clock.
func NewWithClock(backend Backend, clock Clock) *Verifier {
	return &Verifier{
		backend:  backend,
		clock:    clock,
		attempts: constants.VerifyAttempts,
	}
}

// Confirm fetches the user detail record up to the attempt limit, waiting
// attemptNumber x backoff step between attempts (1s, 2s). It reports whether
// the backend produced a face identifier. On exhaustion it fires one
// best-effort re-trigger with the registration image; that call's failure is
// swallowed. Attempts run strictly sequentially, never in parallel.
func (v *Verifier) Confirm(ctx context.Context, userID string, image *capture.File) bool {
	for attempt := 1; attempt <= v.attempts; attempt++ {
		user, err := v.backend.GetUser(ctx, userID)
		if err != nil {
			log.Printf("verification attempt %d for user %s failed: %v", attempt, userID, err)
		} else if user.FaceID != "" {
			return true
		}

		if attempt < v.attempts {
			delay := constants.VerifyBackoffStep * time.Duration(attempt)
			if err := v.clock.Sleep(ctx, delay); err != nil {
				return false
			}
		}
	}

	log.Printf("verification for user %s not confirmed after %d attempts", userID, v.attempts)

	if image != nil {
		if _, err := v.backend.VerifyFace(ctx, image); err != nil {
			log.Printf("face processing re-trigger for user %s failed: %v", userID, err)
		}
	}

	return false
}
