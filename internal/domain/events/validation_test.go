package events

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateEmptyData(t *testing.T) {
	errs := Validate(Event{})

	require.NotEmpty(t, errs)
	require.Contains(t, errs, "Title is required")
}

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name  string
		data  Event
		valid bool
	}{
		{"present", Event{"title": "Open House"}, true},
		{"missing", Event{}, false},
		{"empty", Event{"title": ""}, false},
		{"whitespace only", Event{"title": "   "}, false},
		{"not a string", Event{"title": 42}, false},
		{"nil", Event{"title": nil}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.data)
			if tt.valid {
				require.Empty(t, errs)
			} else {
				require.Contains(t, errs, "Title is required")
			}
		})
	}
}

func TestValidateLocation(t *testing.T) {
	t.Run("valid location", func(t *testing.T) {
		errs := Validate(Event{
			"title": "X",
			"location": map[string]any{
				"name":        "Park",
				"coordinates": []any{1.0, 2.0},
			},
		})
		require.Empty(t, errs)
	})

	t.Run("location absent is fine", func(t *testing.T) {
		require.Empty(t, Validate(Event{"title": "X"}))
	})

	t.Run("location not an object", func(t *testing.T) {
		errs := Validate(Event{"title": "X", "location": "Library"})
		require.Contains(t, errs, "Location must be an object")
	})

	t.Run("missing name", func(t *testing.T) {
		errs := Validate(Event{
			"title":    "X",
			"location": map[string]any{"coordinates": []any{1.0, 2.0}},
		})
		require.Contains(t, errs, "Location name is required")
	})

	t.Run("empty name", func(t *testing.T) {
		errs := Validate(Event{
			"title":    "X",
			"location": map[string]any{"name": "", "coordinates": []any{1.0, 2.0}},
		})
		require.Contains(t, errs, "Location name is required")
	})

	t.Run("missing coordinates", func(t *testing.T) {
		errs := Validate(Event{
			"title":    "X",
			"location": map[string]any{"name": "Park"},
		})
		require.Contains(t, errs, "Location coordinates must be an array of [longitude, latitude]")
	})

	t.Run("wrong coordinate arity", func(t *testing.T) {
		errs := Validate(Event{
			"title":    "X",
			"location": map[string]any{"name": "Park", "coordinates": []any{1.0}},
		})
		require.Contains(t, errs, "Location coordinates must be an array of [longitude, latitude]")
	})

	t.Run("coordinates not an array", func(t *testing.T) {
		errs := Validate(Event{
			"title":    "X",
			"location": map[string]any{"name": "Park", "coordinates": "1,2"},
		})
		require.Contains(t, errs, "Location coordinates must be an array of [longitude, latitude]")
	})

	t.Run("multiple failures accumulate", func(t *testing.T) {
		errs := Validate(Event{
			"location": map[string]any{},
		})
		require.Len(t, errs, 3)
	})
}
