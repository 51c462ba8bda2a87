package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"faceconsole/internal/capture"
	"faceconsole/internal/config"
	"faceconsole/internal/constants"
	"faceconsole/internal/faceapi"
	"faceconsole/internal/web/middleware"
)

// RecognizeHandler handles face identification requests.
type RecognizeHandler struct {
	config *config.Config
}

// NewRecognizeHandler creates a new recognition handler.
func NewRecognizeHandler(cfg *config.Config) *RecognizeHandler {
	return &RecognizeHandler{config: cfg}
}

type recognizeRequest struct {
	ImageBase64 string `json:"image_base64"`
	UserID      string `json:"user_id"`
}

// Recognize identifies a face. The request is either multipart with a "file"
// part, or JSON with an inline base64 image; an optional user_id narrows the
// call to a targeted verification. A "not recognized" backend answer is
// passed through as a normal result, not an error.
func (h *RecognizeHandler) Recognize(w http.ResponseWriter, r *http.Request) {
	client := middleware.MustGetClient(r.Context(), w)
	if client == nil {
		return
	}

	var result *faceapi.RecognizeResult
	var err error

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req recognizeRequest
		if decodeErr := json.NewDecoder(r.Body).Decode(&req); decodeErr != nil {
			respondError(w, http.StatusBadRequest, errInvalidRequestBody)
			return
		}
		if req.ImageBase64 == "" {
			respondError(w, http.StatusBadRequest, "image_base64 is required")
			return
		}
		result, err = client.RecognizeInline(r.Context(), req.ImageBase64, req.UserID)
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, constants.MaxRegisterFormSize)
		if parseErr := r.ParseMultipartForm(constants.MaxRegisterFormSize); parseErr != nil {
			respondError(w, http.StatusBadRequest, "failed to parse multipart form")
			return
		}
		file, header, fileErr := r.FormFile("file")
		if fileErr != nil {
			respondError(w, http.StatusBadRequest, "file is required")
			return
		}
		defer file.Close()

		data, readErr := io.ReadAll(io.LimitReader(file, constants.MaxImageBytes+1))
		if readErr != nil {
			respondError(w, http.StatusBadRequest, "could not read uploaded file")
			return
		}
		if len(data) > constants.MaxImageBytes {
			respondError(w, http.StatusBadRequest,
				fmt.Sprintf("image exceeds the %d MiB limit", constants.MaxImageBytes>>20))
			return
		}
		image := &capture.File{
			Name: header.Filename,
			MIME: header.Header.Get("Content-Type"),
			Data: data,
		}
		result, err = client.Recognize(r.Context(), image, r.FormValue("user_id"))
	}

	if err != nil {
		respondError(w, http.StatusBadGateway, fmt.Sprintf("recognition failed: %v", err))
		return
	}

	respondJSON(w, http.StatusOK, result)
}
