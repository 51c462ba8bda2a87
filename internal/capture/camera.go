package capture

import (
	"context"
	"errors"
	"fmt"
)

// Facing selects which camera a multi-camera device exposes.
type Facing string

const (
	FacingFront Facing = "front"
	FacingBack  Facing = "back"
)

// Device produces JPEG stills from a physical camera. Implementations own
// the underlying hardware handle; Close releases it.
type Device interface {
	Still(ctx context.Context, facing Facing) ([]byte, error)
	Close() error
}

// ErrCameraReleased is returned when a camera is used after Release.
var ErrCameraReleased = errors.New("camera already released")

// Camera exclusively owns a capture device for the duration of a capture
// session. It is acquired with Open and must be released with Release when
// the session ends or the user switches to upload mode.
type Camera struct {
	device Device
	facing Facing
	frame  string
}

// Open acquires the device and starts a capture session facing front.
func Open(d Device) *Camera {
	return &Camera{device: d, facing: FacingFront}
}

// Facing returns the currently selected camera.
func (c *Camera) Facing() Facing {
	return c.facing
}

// Capture takes one still frame and stores it as a JPEG data URI. A previous
// frame is replaced.
func (c *Camera) Capture(ctx context.Context) error {
	if c.device == nil {
		return ErrCameraReleased
	}
	data, err := c.device.Still(ctx, c.facing)
	if err != nil {
		return fmt.Errorf("could not capture frame: %w", err)
	}
	c.frame = EncodeFrame(data)
	return nil
}

// Retake discards the captured frame and returns to the live preview.
func (c *Camera) Retake() {
	c.frame = ""
}

// ToggleFacing switches between front and back cameras. Any already-captured
// frame is discarded because it came from the other camera.
func (c *Camera) ToggleFacing() {
	if c.facing == FacingFront {
		c.facing = FacingBack
	} else {
		c.facing = FacingFront
	}
	c.frame = ""
}

// Frame returns the captured frame as a data URI, or empty if none was taken.
func (c *Camera) Frame() string {
	return c.frame
}

// Release closes the underlying device. The camera cannot be used afterwards.
// Releasing twice is a no-op.
func (c *Camera) Release() error {
	if c.device == nil {
		return nil
	}
	err := c.device.Close()
	c.device = nil
	c.frame = ""
	return err
}
