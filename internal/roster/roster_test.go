package roster

import (
	"testing"

	"faceconsole/internal/faceapi"
)

func sampleUsers() []faceapi.User {
	return []faceapi.User{
		{ID: "1", Name: "Ann", Phone: "0501111111", NationalID: "100", Category: "woman", FormType: "woman_v1", CreatedAt: "2024-01-01T10:00:00Z"},
		{ID: "2", Name: "Bob", Phone: "", NationalID: "200", Category: "man", FormType: "man_v1", CreatedAt: "2023-01-01 09:30:00"},
		{ID: "3", Name: "carla", Phone: "0503333333", NationalID: "", Category: "woman", FormType: "woman_v1", CreatedAt: "2025-03-15"},
		{ID: "4", Name: "Dan", Phone: "   ", NationalID: "400", Category: "disabled", FormType: "disabled_v1", CreatedAt: "not-a-date"},
	}
}

func ids(users []faceapi.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}

func assertOrder(t *testing.T, got []faceapi.User, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("expected ids %v, got %v", want, gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("expected ids %v, got %v", want, gotIDs)
		}
	}
}

func TestApply_IsPure(t *testing.T) {
	raw := sampleUsers()
	filters := Filters{Query: "ann"}
	sort := Sort{Field: SortByName}

	first := Apply(raw, filters, sort)
	second := Apply(raw, filters, sort)

	assertOrder(t, first, "1")
	assertOrder(t, second, "1")

	// The fetched slice keeps its original order.
	assertOrder(t, raw, "1", "2", "3", "4")
}

func TestApply_QueryMatchesAcrossFields(t *testing.T) {
	raw := sampleUsers()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"name case-insensitive", "CARLA", []string{"3"}},
		{"phone substring", "0501", []string{"1"}},
		{"national id", "400", []string{"4"}},
		{"no match", "zzz", nil},
		{"empty matches all", "", []string{"1", "2", "3", "4"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Apply(raw, Filters{Query: tc.query}, Sort{})
			assertOrder(t, got, tc.want...)
		})
	}
}

func TestApply_BooleanFilters(t *testing.T) {
	raw := sampleUsers()

	// Whitespace-only phone does not count as present.
	got := Apply(raw, Filters{HasPhone: true}, Sort{})
	assertOrder(t, got, "1", "3")

	got = Apply(raw, Filters{HasNationalID: true}, Sort{})
	assertOrder(t, got, "1", "2", "4")

	got = Apply(raw, Filters{HasPhone: true, HasNationalID: true}, Sort{})
	assertOrder(t, got, "1")
}

func TestApply_CategoricalFilters(t *testing.T) {
	raw := sampleUsers()

	got := Apply(raw, Filters{Category: "woman"}, Sort{})
	assertOrder(t, got, "1", "3")

	got = Apply(raw, Filters{FormType: "man_v1"}, Sort{})
	assertOrder(t, got, "2")

	// Exact match only.
	got = Apply(raw, Filters{Category: "wom"}, Sort{})
	assertOrder(t, got)
}

func TestApply_SortByName(t *testing.T) {
	raw := sampleUsers()

	// Case-insensitive: carla sorts between Bob and Dan.
	got := Apply(raw, Filters{}, Sort{Field: SortByName})
	assertOrder(t, got, "1", "2", "3", "4")

	got = Apply(raw, Filters{}, Sort{Field: SortByName, Desc: true})
	assertOrder(t, got, "4", "3", "2", "1")
}

func TestApply_SortByCreated(t *testing.T) {
	raw := sampleUsers()

	// Unparsable timestamps sort before everything else ascending.
	got := Apply(raw, Filters{}, Sort{Field: SortByCreated})
	assertOrder(t, got, "4", "2", "1", "3")

	got = Apply(raw, Filters{}, Sort{Field: SortByCreated, Desc: true})
	assertOrder(t, got, "3", "1", "2", "4")
}

func TestApply_NoSortKeepsFetchedOrder(t *testing.T) {
	raw := sampleUsers()
	got := Apply(raw, Filters{}, Sort{})
	assertOrder(t, got, "1", "2", "3", "4")
}

func TestApply_StableForEqualKeys(t *testing.T) {
	raw := []faceapi.User{
		{ID: "a", Name: "Same", CreatedAt: "2024-01-01T00:00:00Z"},
		{ID: "b", Name: "Same", CreatedAt: "2024-01-01T00:00:00Z"},
		{ID: "c", Name: "Same", CreatedAt: "2024-01-01T00:00:00Z"},
	}
	got := Apply(raw, Filters{}, Sort{Field: SortByName})
	assertOrder(t, got, "a", "b", "c")

	got = Apply(raw, Filters{}, Sort{Field: SortByCreated, Desc: true})
	assertOrder(t, got, "a", "b", "c")
}

func TestParseCreatedAt_Layouts(t *testing.T) {
	tests := []struct {
		value string
		zero  bool
	}{
		{"2024-01-01T10:00:00Z", false},
		{"2023-01-01 09:30:00", false},
		{"2025-03-15", false},
		{"yesterday", true},
		{"", true},
	}
	for _, tc := range tests {
		got := parseCreatedAt(tc.value)
		if got.IsZero() != tc.zero {
			t.Errorf("parseCreatedAt(%q): zero=%v, expected zero=%v", tc.value, got.IsZero(), tc.zero)
		}
	}
}
