package faceapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// APIError is returned for non-2xx backend responses. Message is the most
// specific explanation available: the backend-provided message, the first
// entry of the backend's detail list, or the generic HTTP status text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// errorBody covers the shapes the backend uses for error payloads.
type errorBody struct {
	Message string   `json:"message"`
	Error   string   `json:"error"`
	Detail  []string `json:"detail"`
}

// newAPIError builds an APIError from a failed response, choosing the most
// specific message the body offers.
func newAPIError(resp *http.Response) *APIError {
	msg := ""
	if body, err := io.ReadAll(resp.Body); err == nil {
		var parsed errorBody
		if json.Unmarshal(body, &parsed) == nil {
			switch {
			case parsed.Message != "":
				msg = parsed.Message
			case parsed.Error != "":
				msg = parsed.Error
			case len(parsed.Detail) > 0:
				msg = parsed.Detail[0]
			}
		}
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}

// IsNotFound returns true if the error is a 404 Not Found API response.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
