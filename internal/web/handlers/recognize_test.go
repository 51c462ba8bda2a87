package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"faceconsole/internal/constants"
)

func TestRecognize_MultipartMatch(t *testing.T) {
	stub := newBackendStub(t)
	stub.on("POST", "/api/recognize", http.StatusOK, map[string]any{
		"recognized": true,
		"username":   "Ann",
		"user_id":    "u1",
	})
	router := newTestRouter(t, stub)

	body, contentType := multipartBody(t, nil, "probe.jpg", make([]byte, 512))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recognize", body)
	req.Header.Set("Content-Type", contentType)

	rec := doRequest(t, router, req)
	assertStatus(t, rec, http.StatusOK)

	result := decodeBody(t, rec)
	if result["recognized"] != true || result["username"] != "Ann" {
		t.Errorf("unexpected result: %v", result)
	}
}

func TestRecognize_NoMatchPassesThrough(t *testing.T) {
	stub := newBackendStub(t)
	stub.on("POST", "/api/recognize", http.StatusOK, map[string]any{
		"recognized": false,
		"message":    "no matching face found",
	})
	router := newTestRouter(t, stub)

	body, contentType := multipartBody(t, nil, "probe.jpg", make([]byte, 512))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recognize", body)
	req.Header.Set("Content-Type", contentType)

	rec := doRequest(t, router, req)
	assertStatus(t, rec, http.StatusOK)

	result := decodeBody(t, rec)
	if result["recognized"] != false {
		t.Errorf("expected recognized=false passed through, got %v", result)
	}
	if result["message"] != "no matching face found" {
		t.Errorf("backend message lost: %v", result)
	}
}

func TestRecognize_JSONInline(t *testing.T) {
	stub := newBackendStub(t)
	stub.on("POST", "/api/recognize", http.StatusOK, map[string]any{
		"recognized": true,
		"username":   "Bob",
		"user_id":    "u2",
	})
	router := newTestRouter(t, stub)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recognize",
		strings.NewReader(`{"image_base64": "/9j/4AAQ", "user_id": "u2"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := doRequest(t, router, req)
	assertStatus(t, rec, http.StatusOK)
}

func TestRecognize_JSONMissingImage(t *testing.T) {
	router := newTestRouter(t, newBackendStub(t))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recognize",
		strings.NewReader(`{"user_id": "u2"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := doRequest(t, router, req)
	assertStatus(t, rec, http.StatusBadRequest)
	assertErrorField(t, rec, "image_base64")
}

func TestRecognize_JSONMalformedBody(t *testing.T) {
	router := newTestRouter(t, newBackendStub(t))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recognize",
		strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")

	rec := doRequest(t, router, req)
	assertStatus(t, rec, http.StatusBadRequest)
}

func TestRecognize_MultipartMissingFile(t *testing.T) {
	router := newTestRouter(t, newBackendStub(t))

	body, contentType := multipartBody(t, map[string]string{"user_id": "u1"}, "", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recognize", body)
	req.Header.Set("Content-Type", contentType)

	rec := doRequest(t, router, req)
	assertStatus(t, rec, http.StatusBadRequest)
	assertErrorField(t, rec, "file")
}

func TestRecognize_OversizedImageRejected(t *testing.T) {
	// No backend route: an oversized image must never reach the backend.
	router := newTestRouter(t, newBackendStub(t))

	body, contentType := multipartBody(t, nil, "huge.jpg", make([]byte, constants.MaxImageBytes+1))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recognize", body)
	req.Header.Set("Content-Type", contentType)

	rec := doRequest(t, router, req)
	assertStatus(t, rec, http.StatusBadRequest)
	assertErrorField(t, rec, "5 MiB")
}

func TestRecognize_BackendDown(t *testing.T) {
	stub := newBackendStub(t)
	stub.on("POST", "/api/recognize", http.StatusServiceUnavailable, map[string]string{
		"message": "face engine restarting",
	})
	router := newTestRouter(t, stub)

	body, contentType := multipartBody(t, nil, "probe.jpg", make([]byte, 16))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recognize", body)
	req.Header.Set("Content-Type", contentType)

	rec := doRequest(t, router, req)
	assertStatus(t, rec, http.StatusBadGateway)
	assertErrorField(t, rec, "face engine restarting")
}
