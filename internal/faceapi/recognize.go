package faceapi

import (
	"context"
	"errors"
	"net/http"

	"faceconsole/internal/capture"
)

// Recognize identifies a face from a binary image. When userID is non-empty
// the backend performs a targeted verification against that record instead of
// a search across the whole index. A negative result is returned as
// Recognized=false, never as an error.
func (c *Client) Recognize(ctx context.Context, file *capture.File, userID string) (*RecognizeResult, error) {
	if file == nil || len(file.Data) == 0 {
		return nil, errors.New("no image file to recognize")
	}

	fields := map[string]string{}
	if userID != "" {
		fields["user_id"] = userID
	}

	body, contentType, err := buildMultipart(fields, file)
	if err != nil {
		return nil, err
	}

	return doRequest[RecognizeResult](ctx, c, http.MethodPost, "recognize", body, contentType)
}

// RecognizeInline identifies a face from a base64 image (no data-URI prefix)
// sent as JSON.
func (c *Client) RecognizeInline(ctx context.Context, imageBase64, userID string) (*RecognizeResult, error) {
	if imageBase64 == "" {
		return nil, errors.New("no inline image to recognize")
	}

	payload := map[string]string{"image_base64": imageBase64}
	if userID != "" {
		payload["user_id"] = userID
	}

	return doPostJSON[RecognizeResult](ctx, c, "recognize", payload)
}
