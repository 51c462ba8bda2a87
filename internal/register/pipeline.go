// Package register implements the submission pipeline: it takes a completed
// draft, normalizes the image to a binary file, builds the backend payload,
// and posts it. The registration POST is never retried automatically - the
// backend trains its face index on accepted registrations, so a failed
// submission must be repeated by the user, not by the client.
package register

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"faceconsole/internal/capture"
	"faceconsole/internal/constants"
	"faceconsole/internal/faceapi"
	"faceconsole/internal/form"
)

// Pipeline submits registration drafts to the backend.
type Pipeline struct {
	client *faceapi.Client
	cache  *DraftCache // optional; nil disables draft recovery
	inline bool        // send the image as base64 JSON instead of multipart
}

// NewPipeline creates a pipeline posting multipart registrations.
func NewPipeline(client *faceapi.Client, cache *DraftCache) *Pipeline {
	return &Pipeline{client: client, cache: cache}
}

// SetInline switches the pipeline to the inline-JSON registration endpoint.
func (p *Pipeline) SetInline(inline bool) {
	p.inline = inline
}

// Submit runs the pipeline steps strictly in order: re-validate the final
// section, normalize the image, cache the draft fields for recovery, build
// the payload, POST, and parse the response.
func (p *Pipeline) Submit(ctx context.Context, draft *form.Draft) (*faceapi.RegisterResult, error) {
	if errs := draft.ValidateFinal(); len(errs) > 0 {
		return nil, &ValidationError{Messages: errs}
	}

	file, err := NormalizeImage(draft.Image())
	if err != nil {
		return nil, err
	}

	fields := buildPayload(draft)

	// Best-effort recovery cache: a failed write must not block submission.
	draftID := uuid.NewString()
	if p.cache != nil {
		if err := p.cache.Save(draftID, draft.Schema().Category, fields); err != nil {
			log.Printf("warning: could not cache draft %s: %v", draftID, err)
		}
	}

	var result *faceapi.RegisterResult
	if p.inline {
		result, err = p.client.RegisterInline(ctx, fields, stripDataURI(draft.Image(), file))
	} else {
		result, err = p.client.RegisterUpload(ctx, fields, file)
	}
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	if p.cache != nil {
		if err := p.cache.Remove(draftID); err != nil {
			log.Printf("warning: could not remove cached draft %s: %v", draftID, err)
		}
	}

	return result, nil
}

// NormalizeImage converts the acquisition to a single binary file: a captured
// frame is decoded, an uploaded file is used unmodified, and neither is an
// error before any network call happens.
func NormalizeImage(image *capture.Acquisition) (*capture.File, error) {
	if image == nil || !image.HasImage() {
		return nil, ErrMissingImage
	}
	if frame := image.Frame(); frame != "" {
		return capture.DecodeFrame(frame)
	}
	return image.File(), nil
}

// buildPayload maps every schema field to a string value. The backend schema
// requires all keys to be present even when empty; booleans go as "1"/"0".
// A blank nickname is replaced with the backend-mandated placeholder.
func buildPayload(draft *form.Draft) map[string]string {
	schema := draft.Schema()

	fields := make(map[string]string)
	for _, name := range schema.FieldNames() {
		fields[name] = draft.Field(name)
	}
	fields["category"] = string(schema.Category)
	fields["form_type"] = schema.FormType

	if strings.TrimSpace(fields["nickname"]) == "" {
		fields["nickname"] = constants.DefaultNickname
	}

	return fields
}

// stripDataURI returns the bare base64 payload for the inline endpoint, which
// rejects data-URI prefixes. For uploaded files the bytes are re-encoded.
func stripDataURI(image *capture.Acquisition, file *capture.File) string {
	if frame := image.Frame(); frame != "" {
		if _, rest, ok := strings.Cut(frame, ";base64,"); ok {
			return rest
		}
		return frame
	}
	return strings.TrimPrefix(capture.EncodeFrame(file.Data), "data:image/jpeg;base64,")
}
