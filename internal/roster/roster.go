// Package roster is the read path over the registered-person collection:
// fetch the list, apply text/boolean/categorical filters and sorting on the
// client side, and fetch single records for the detail view.
package roster

import (
	"context"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"faceconsole/internal/faceapi"
)

// SortField selects the sort key.
type SortField string

const (
	SortByName    SortField = "name"
	SortByCreated SortField = "created_at"
)

// Sort is a sort key plus direction.
type Sort struct {
	Field SortField
	Desc  bool
}

// Filters narrows the fetched collection. Zero values pass everything
// through: an empty query matches all records, unset categorical filters do
// not constrain, and boolean filters only apply when true.
type Filters struct {
	Query         string
	HasPhone      bool
	HasNationalID bool
	Category      string
	FormType      string
}

// View fetches roster data from the backend.
type View struct {
	client *faceapi.Client
}

// NewView creates a roster view over the given client.
func NewView(client *faceapi.Client) *View {
	return &View{client: client}
}

// FetchAll retrieves the full collection.
func (v *View) FetchAll(ctx context.Context) ([]faceapi.User, error) {
	return v.client.ListUsers(ctx)
}

// FetchOne retrieves a single record for the detail view.
func (v *View) FetchOne(ctx context.Context, id string) (*faceapi.User, error) {
	return v.client.GetUser(ctx, id)
}

// createdAtLayouts are the timestamp formats the backend has emitted.
var createdAtLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseCreatedAt parses a creation timestamp, returning the zero time for
// unparsable values so they sort before everything else.
func parseCreatedAt(value string) time.Time {
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// matchesQuery is a case-insensitive substring match across the searchable
// fields of a record.
func matchesQuery(user faceapi.User, query string) bool {
	if query == "" {
		return true
	}
	query = strings.ToLower(query)
	for _, field := range []string{
		user.Name, user.Phone, user.NationalID,
		user.EmployeeID, user.Address, user.Department,
	} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// matches applies all filters to one record.
func matches(user faceapi.User, f Filters) bool {
	if !matchesQuery(user, f.Query) {
		return false
	}
	if f.HasPhone && strings.TrimSpace(user.Phone) == "" {
		return false
	}
	if f.HasNationalID && strings.TrimSpace(user.NationalID) == "" {
		return false
	}
	if f.Category != "" && user.Category != f.Category {
		return false
	}
	if f.FormType != "" && user.FormType != f.FormType {
		return false
	}
	return true
}

// Apply filters and sorts a fetched collection. It is pure: the input slice
// is never mutated and identical inputs yield identical output order. The
// sort is stable, so records the key cannot distinguish keep their fetched
// order. Name comparison is locale-aware.
func Apply(raw []faceapi.User, f Filters, s Sort) []faceapi.User {
	derived := make([]faceapi.User, 0, len(raw))
	for _, user := range raw {
		if matches(user, f) {
			derived = append(derived, user)
		}
	}

	switch s.Field {
	case SortByName:
		coll := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(derived, func(i, j int) bool {
			cmp := coll.CompareString(derived[i].Name, derived[j].Name)
			if s.Desc {
				return cmp > 0
			}
			return cmp < 0
		})
	case SortByCreated:
		sort.SliceStable(derived, func(i, j int) bool {
			ti := parseCreatedAt(derived[i].CreatedAt)
			tj := parseCreatedAt(derived[j].CreatedAt)
			if s.Desc {
				return ti.After(tj)
			}
			return ti.Before(tj)
		})
	}

	return derived
}
