// Package capture handles image acquisition for registration and
// identification: either an uploaded file or a still frame taken from a
// camera device, never both at once.
package capture

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrImageDecode indicates a captured frame could not be converted to bytes:
// the data-URI prefix is malformed or the base64 payload is invalid.
var ErrImageDecode = errors.New("could not decode captured frame")

// File is a binary image ready for submission.
type File struct {
	Name string
	MIME string
	Data []byte
}

// DecodeFrame converts a captured still frame (a base64 JPEG, with or without
// a data-URI prefix) into a File with a timestamp-based name. Captured frames
// are always JPEG, so the MIME type is fixed regardless of the prefix.
func DecodeFrame(frame string) (*File, error) {
	payload := frame
	if strings.HasPrefix(frame, "data:") {
		_, rest, ok := strings.Cut(frame, ";base64,")
		if !ok {
			return nil, fmt.Errorf("%w: malformed data URI", ErrImageDecode)
		}
		payload = rest
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty frame", ErrImageDecode)
	}

	name := fmt.Sprintf("capture_%d.jpg", time.Now().UnixNano())
	return &File{Name: name, MIME: "image/jpeg", Data: data}, nil
}

// EncodeFrame builds a JPEG data URI from raw image bytes. It is the inverse
// of DecodeFrame for the payload portion.
func EncodeFrame(data []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data)
}
