package handlers

import (
	"net/http"

	"faceconsole/internal/form"
)

// SchemaHandler serves the registration form schemas so a frontend can
// render the multi-step forms without hardcoding them.
type SchemaHandler struct{}

// NewSchemaHandler creates a new schema handler.
func NewSchemaHandler() *SchemaHandler {
	return &SchemaHandler{}
}

// Get returns all category schemas.
func (h *SchemaHandler) Get(w http.ResponseWriter, r *http.Request) {
	categories := make([]*form.Schema, 0)
	for _, category := range form.Categories() {
		schema, err := form.Lookup(category)
		if err != nil {
			continue
		}
		categories = append(categories, schema)
	}
	respondJSON(w, http.StatusOK, map[string]any{"categories": categories})
}
