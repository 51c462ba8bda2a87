// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

import "time"

// Image constraints enforced before submission
const (
	// MaxImageBytes is the maximum accepted photo size
	MaxImageBytes = 5 << 20 // 5 MiB

	// MaxRegisterFormSize is the maximum multipart form size accepted
	// by the web register endpoint (photo plus text fields)
	MaxRegisterFormSize = MaxImageBytes + (1 << 20)
)

// AllowedImageMIMEs lists the photo formats the backend accepts.
var AllowedImageMIMEs = []string{"image/jpeg", "image/png"}

// Field validation constants
const (
	// PhoneDigits is the exact number of digits a phone number must have
	PhoneDigits = 10

	// DefaultNickname is substituted when the nickname field is left blank.
	// The backend rejects registrations with an empty nickname even for
	// categories that have no nickname concept.
	DefaultNickname = "unnamed"
)

// Verification retry constants
const (
	// VerifyAttempts is the maximum number of user-detail fetches made
	// while waiting for the backend to derive a face identifier
	VerifyAttempts = 3

	// VerifyBackoffStep is multiplied by the attempt number to get the
	// delay before the next attempt (1s, 2s)
	VerifyBackoffStep = time.Second
)

// Batch identification constants
const (
	// SweepWorkers is the number of parallel recognition requests
	// during a folder sweep
	SweepWorkers = 8
)
