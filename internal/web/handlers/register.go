package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"faceconsole/internal/capture"
	"faceconsole/internal/config"
	"faceconsole/internal/constants"
	"faceconsole/internal/form"
	"faceconsole/internal/register"
	"faceconsole/internal/verify"
	"faceconsole/internal/web/middleware"
)

// RegisterHandler handles registration submissions from the browser frontend.
type RegisterHandler struct {
	config *config.Config
	cache  *register.DraftCache
}

// NewRegisterHandler creates a new registration handler. The draft cache is
// optional.
func NewRegisterHandler(cfg *config.Config, cache *register.DraftCache) *RegisterHandler {
	return &RegisterHandler{config: cfg, cache: cache}
}

// readUploadedImage extracts the photo from the multipart form: either a
// binary "file" part or a "frame" field carrying a captured data URI.
func readUploadedImage(r *http.Request, acq *capture.Acquisition) error {
	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, constants.MaxImageBytes+1))
		if err != nil {
			return fmt.Errorf("could not read uploaded file: %w", err)
		}
		mime := header.Header.Get("Content-Type")
		if mime == "" {
			mime = http.DetectContentType(data)
		}
		acq.SetFile(&capture.File{Name: header.Filename, MIME: mime, Data: data})
		return nil
	}

	if frame := r.FormValue("frame"); frame != "" {
		acq.SetFrame(frame)
	}
	return nil
}

// Register accepts a completed multi-step form as a multipart request:
// category, every schema field as a string, and the photo as either a binary
// file or a captured frame. The draft is walked through its sections so the
// same gating applies as in an interactive flow.
func (h *RegisterHandler) Register(w http.ResponseWriter, r *http.Request) {
	// Bound the whole request body, not just the in-memory buffer.
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxRegisterFormSize)
	if err := r.ParseMultipartForm(constants.MaxRegisterFormSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	category := r.FormValue("category")
	if category == "" {
		respondError(w, http.StatusBadRequest, "category is required")
		return
	}

	schema, err := form.Lookup(form.Category(category))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	draft := form.NewDraft(schema)
	for _, name := range schema.FieldNames() {
		draft.SetField(name, r.FormValue(name))
	}
	if err := readUploadedImage(r, draft.Image()); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Walk the state machine so section gating applies server-side too.
	for !draft.OnLastSection() {
		if !draft.GoNext() {
			respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":   "validation failed",
				"section": draft.Section(),
				"details": draft.Errors(),
			})
			return
		}
	}

	client := middleware.MustGetClient(r.Context(), w)
	if client == nil {
		return
	}

	pipeline := register.NewPipeline(client, h.cache)
	result, err := pipeline.Submit(r.Context(), draft)
	if err != nil {
		var validationErr *register.ValidationError
		switch {
		case errors.As(err, &validationErr):
			respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":   "validation failed",
				"section": draft.Section(),
				"details": validationErr.Messages,
			})
		case errors.Is(err, register.ErrMissingImage), errors.Is(err, capture.ErrImageDecode):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusBadGateway, err.Error())
		}
		return
	}

	// Confirm face processing in the background; the registration already
	// succeeded so the response does not wait for it.
	if result.UserID != "" {
		if image, err := register.NormalizeImage(draft.Image()); err == nil {
			verifier := verify.New(client)
			go verifier.Confirm(context.Background(), result.UserID, image)
		}
	}

	respondJSON(w, http.StatusOK, result)
}
