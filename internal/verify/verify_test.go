package verify

import (
	"context"
	"errors"
	"testing"
	"time"

	"faceconsole/internal/capture"
	"faceconsole/internal/faceapi"
)

// fakeClock records requested delays and returns instantly.
type fakeClock struct {
	slept []time.Duration
	err   error
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.slept = append(c.slept, d)
	return c.err
}

// fakeBackend scripts GetUser responses per attempt.
type fakeBackend struct {
	users       []*faceapi.User // one entry per GetUser call; nil entry means error
	getCalls    int
	verifyCalls int
	verifyErr   error
	verifyFile  *capture.File
}

func (b *fakeBackend) GetUser(ctx context.Context, id string) (*faceapi.User, error) {
	b.getCalls++
	if b.getCalls > len(b.users) {
		return nil, errors.New("unscripted GetUser call")
	}
	user := b.users[b.getCalls-1]
	if user == nil {
		return nil, errors.New("backend unavailable")
	}
	return user, nil
}

func (b *fakeBackend) VerifyFace(ctx context.Context, file *capture.File) (*faceapi.StatusResult, error) {
	b.verifyCalls++
	b.verifyFile = file
	if b.verifyErr != nil {
		return nil, b.verifyErr
	}
	return &faceapi.StatusResult{Status: "success"}, nil
}

func TestConfirm_SucceedsOnFirstAttempt(t *testing.T) {
	clock := &fakeClock{}
	backend := &fakeBackend{users: []*faceapi.User{{ID: "u1", FaceID: "f1"}}}

	verifier := NewWithClock(backend, clock)
	if !verifier.Confirm(context.Background(), "u1", nil) {
		t.Fatal("expected confirmation")
	}
	if backend.getCalls != 1 {
		t.Errorf("expected 1 GetUser call, got %d", backend.getCalls)
	}
	if len(clock.slept) != 0 {
		t.Errorf("no sleep expected before a successful first attempt, got %v", clock.slept)
	}
}

func TestConfirm_LinearBackoffBetweenAttempts(t *testing.T) {
	clock := &fakeClock{}
	backend := &fakeBackend{users: []*faceapi.User{
		{ID: "u1"},
		{ID: "u1"},
		{ID: "u1", FaceID: "f1"},
	}}

	verifier := NewWithClock(backend, clock)
	if !verifier.Confirm(context.Background(), "u1", nil) {
		t.Fatal("expected confirmation on the third attempt")
	}

	want := []time.Duration{1 * time.Second, 2 * time.Second}
	if len(clock.slept) != len(want) {
		t.Fatalf("expected delays %v, got %v", want, clock.slept)
	}
	for i := range want {
		if clock.slept[i] != want[i] {
			t.Errorf("attempt %d delay: expected %v, got %v", i+1, want[i], clock.slept[i])
		}
	}
}

func TestConfirm_AttemptLimitIsThree(t *testing.T) {
	clock := &fakeClock{}
	backend := &fakeBackend{users: []*faceapi.User{{ID: "u1"}, {ID: "u1"}, {ID: "u1"}}}

	verifier := NewWithClock(backend, clock)
	if verifier.Confirm(context.Background(), "u1", nil) {
		t.Fatal("expected exhaustion, not confirmation")
	}
	if backend.getCalls != 3 {
		t.Errorf("expected exactly 3 GetUser calls, got %d", backend.getCalls)
	}
	if len(clock.slept) != 2 {
		t.Errorf("expected 2 sleeps for 3 attempts, got %d", len(clock.slept))
	}
}

func TestConfirm_BackendErrorsCountAsAttempts(t *testing.T) {
	clock := &fakeClock{}
	backend := &fakeBackend{users: []*faceapi.User{nil, nil, {ID: "u1", FaceID: "f1"}}}

	verifier := NewWithClock(backend, clock)
	if !verifier.Confirm(context.Background(), "u1", nil) {
		t.Fatal("expected confirmation after transient errors")
	}
	if backend.getCalls != 3 {
		t.Errorf("expected 3 GetUser calls, got %d", backend.getCalls)
	}
}

func TestConfirm_RetriggersOnceOnExhaustion(t *testing.T) {
	clock := &fakeClock{}
	backend := &fakeBackend{users: []*faceapi.User{{ID: "u1"}, {ID: "u1"}, {ID: "u1"}}}
	image := &capture.File{Name: "x.jpg", MIME: "image/jpeg", Data: []byte{1, 2, 3}}

	verifier := NewWithClock(backend, clock)
	if verifier.Confirm(context.Background(), "u1", image) {
		t.Fatal("expected exhaustion")
	}
	if backend.verifyCalls != 1 {
		t.Errorf("expected exactly one re-trigger, got %d", backend.verifyCalls)
	}
	if backend.verifyFile != image {
		t.Error("re-trigger did not carry the registration image")
	}
}

func TestConfirm_RetriggerFailureIsSwallowed(t *testing.T) {
	clock := &fakeClock{}
	backend := &fakeBackend{
		users:     []*faceapi.User{{ID: "u1"}, {ID: "u1"}, {ID: "u1"}},
		verifyErr: errors.New("backend down"),
	}

	verifier := NewWithClock(backend, clock)
	// Must return cleanly; the outcome stays false either way.
	if verifier.Confirm(context.Background(), "u1", &capture.File{Data: []byte{1}}) {
		t.Fatal("expected exhaustion")
	}
}

func TestConfirm_NoRetriggerWithoutImage(t *testing.T) {
	clock := &fakeClock{}
	backend := &fakeBackend{users: []*faceapi.User{{ID: "u1"}, {ID: "u1"}, {ID: "u1"}}}

	verifier := NewWithClock(backend, clock)
	verifier.Confirm(context.Background(), "u1", nil)
	if backend.verifyCalls != 0 {
		t.Errorf("no re-trigger expected without an image, got %d", backend.verifyCalls)
	}
}

func TestConfirm_CancelledContextStopsPolling(t *testing.T) {
	clock := &fakeClock{err: context.Canceled}
	backend := &fakeBackend{users: []*faceapi.User{{ID: "u1"}, {ID: "u1"}, {ID: "u1"}}}

	verifier := NewWithClock(backend, clock)
	if verifier.Confirm(context.Background(), "u1", nil) {
		t.Fatal("expected failure on cancellation")
	}
	if backend.getCalls != 1 {
		t.Errorf("polling should stop at the first cancelled sleep, got %d calls", backend.getCalls)
	}
}
