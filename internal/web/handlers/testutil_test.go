package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"faceconsole/internal/config"
	"faceconsole/internal/faceapi"
	"faceconsole/internal/web/middleware"
)

// backendStub scripts the remote face backend for handler tests. Each route
// entry maps "METHOD /api/path" to a response. The mutex covers calls from
// background confirmation goroutines.
type backendStub struct {
	mu     sync.Mutex
	routes map[string]stubResponse
	calls  []string
}

type stubResponse struct {
	status int
	body   any
}

func newBackendStub(t *testing.T) *backendStub {
	t.Helper()
	return &backendStub{routes: map[string]stubResponse{}}
}

func (s *backendStub) on(method, path string, status int, body any) {
	s.routes[method+" "+path] = stubResponse{status: status, body: body}
}

// callCount reports how many backend calls hit the given route.
func (s *backendStub) callCount(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, call := range s.calls {
		if call == method+" "+path {
			count++
		}
	}
	return count
}

func (s *backendStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	s.mu.Lock()
	s.calls = append(s.calls, key)
	resp, ok := s.routes[key]
	s.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	json.NewEncoder(w).Encode(resp.body)
}

// newTestRouter wires the handlers under test behind the client middleware,
// backed by the stubbed remote backend.
func newTestRouter(t *testing.T, stub *backendStub) *chi.Mux {
	t.Helper()
	backend := httptest.NewServer(stub)
	t.Cleanup(backend.Close)

	client, err := faceapi.New(backend.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	cfg := &config.Config{}
	registerHandler := NewRegisterHandler(cfg, nil)
	recognizeHandler := NewRecognizeHandler(cfg)
	usersHandler := NewUsersHandler(cfg)
	schemaHandler := NewSchemaHandler()

	router := chi.NewRouter()
	router.Get("/api/v1/health", HealthCheck)
	router.Get("/api/v1/schemas", schemaHandler.Get)
	router.Group(func(r chi.Router) {
		r.Use(middleware.WithFaceClient(client))
		r.Post("/api/v1/register", registerHandler.Register)
		r.Post("/api/v1/recognize", recognizeHandler.Recognize)
		r.Get("/api/v1/users", usersHandler.List)
		r.Get("/api/v1/users/{id}", usersHandler.Get)
		r.Delete("/api/v1/users/{id}", usersHandler.Delete)
	})
	return router
}

func doRequest(t *testing.T, router *chi.Mux, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// multipartBody builds a multipart form with string fields and an optional
// binary file part named "file".
func multipartBody(t *testing.T, fields map[string]string, fileName string, fileData []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("could not write field %s: %v", name, err)
		}
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		if err != nil {
			t.Fatalf("could not create file part: %v", err)
		}
		if _, err := part.Write(fileData); err != nil {
			t.Fatalf("could not write file part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("could not close multipart writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("could not decode response body: %v", err)
	}
	return out
}

func assertErrorField(t *testing.T, rec *httptest.ResponseRecorder, substr string) {
	t.Helper()
	body := decodeBody(t, rec)
	msg, _ := body["error"].(string)
	if msg == "" {
		t.Fatalf("expected an error field, got %v", body)
	}
	if substr != "" && !bytes.Contains([]byte(msg), []byte(substr)) {
		t.Errorf("expected error containing %q, got %q", substr, msg)
	}
}
