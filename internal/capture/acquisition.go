package capture

// Mode selects how the photo is acquired.
type Mode int

const (
	// ModeUpload holds a binary file chosen by the user
	ModeUpload Mode = iota
	// ModeCamera holds a still frame taken from a live camera
	ModeCamera
)

// Acquisition holds the photo for one registration draft. At most one of
// {uploaded file, captured frame} is non-empty at any time; switching modes
// clears both.
type Acquisition struct {
	mode  Mode
	file  *File
	frame string
}

// NewAcquisition starts in upload mode with no image.
func NewAcquisition() *Acquisition {
	return &Acquisition{mode: ModeUpload}
}

// Mode returns the active acquisition mode.
func (a *Acquisition) Mode() Mode {
	return a.mode
}

// SetMode switches acquisition mode. Any held file or frame is discarded,
// even when the mode does not change.
func (a *Acquisition) SetMode(m Mode) {
	a.mode = m
	a.file = nil
	a.frame = ""
}

// SetFile stores an uploaded file. Switches to upload mode and discards any
// captured frame.
func (a *Acquisition) SetFile(f *File) {
	a.mode = ModeUpload
	a.file = f
	a.frame = ""
}

// SetFrame stores a captured still frame. Switches to camera mode and
// discards any uploaded file.
func (a *Acquisition) SetFrame(frame string) {
	a.mode = ModeCamera
	a.frame = frame
	a.file = nil
}

// File returns the uploaded file, or nil when none is held.
func (a *Acquisition) File() *File {
	return a.file
}

// Frame returns the captured frame, or empty when none is held.
func (a *Acquisition) Frame() string {
	return a.frame
}

// HasImage reports whether either variant is populated.
func (a *Acquisition) HasImage() bool {
	return a.file != nil || a.frame != ""
}

// Size returns the byte size of the held image, or 0 when none is held.
// For captured frames this is the decoded payload size.
func (a *Acquisition) Size() int {
	if a.file != nil {
		return len(a.file.Data)
	}
	if a.frame != "" {
		if f, err := DecodeFrame(a.frame); err == nil {
			return len(f.Data)
		}
	}
	return 0
}

// MIME returns the MIME type of the held image, or empty when none is held.
// Captured frames are always JPEG.
func (a *Acquisition) MIME() string {
	if a.file != nil {
		return a.file.MIME
	}
	if a.frame != "" {
		return "image/jpeg"
	}
	return ""
}
