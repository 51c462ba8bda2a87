package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"faceconsole/internal/config"
	"faceconsole/internal/faceapi"
	"faceconsole/internal/roster"
	"faceconsole/internal/web/middleware"
)

// UsersHandler handles the roster endpoints.
type UsersHandler struct {
	config *config.Config
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(cfg *config.Config) *UsersHandler {
	return &UsersHandler{config: cfg}
}

// filtersFromQuery maps list query parameters onto roster filters and sort.
func filtersFromQuery(r *http.Request) (roster.Filters, roster.Sort) {
	q := r.URL.Query()

	filters := roster.Filters{
		Query:         q.Get("q"),
		HasPhone:      q.Get("has_phone") == "1",
		HasNationalID: q.Get("has_national_id") == "1",
		Category:      q.Get("category"),
		FormType:      q.Get("form_type"),
	}

	sort := roster.Sort{Desc: q.Get("order") == "desc"}
	switch q.Get("sort") {
	case "created_at":
		sort.Field = roster.SortByCreated
	case "name", "":
		sort.Field = roster.SortByName
	}

	return filters, sort
}

// List fetches the roster and applies the requested filters and sort.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	client := middleware.MustGetClient(r.Context(), w)
	if client == nil {
		return
	}

	view := roster.NewView(client)
	users, err := view.FetchAll(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	filters, sort := filtersFromQuery(r)
	derived := roster.Apply(users, filters, sort)

	respondJSON(w, http.StatusOK, map[string]any{
		"users": derived,
		"total": len(users),
	})
}

// Get fetches a single record for the detail view.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	client := middleware.MustGetClient(r.Context(), w)
	if client == nil {
		return
	}

	id := chi.URLParam(r, "id")
	user, err := roster.NewView(client).FetchOne(r.Context(), id)
	if err != nil {
		if faceapi.IsNotFound(err) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"user": user})
}

// Delete removes a record from the backend.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	client := middleware.MustGetClient(r.Context(), w)
	if client == nil {
		return
	}

	id := chi.URLParam(r, "id")
	if err := client.DeleteUser(r.Context(), id); err != nil {
		if faceapi.IsNotFound(err) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
