package ids

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewEventID(t *testing.T) {
	id, err := NewEventID()

	require.NoError(t, err)
	require.True(t, strings.HasPrefix(id, EventIDPrefix))
	require.NoError(t, ValidateEventID(id))
}

func TestNewEventIDUniqueness(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id, err := NewEventID()
		require.NoError(t, err)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestIsEventID(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"valid", "evt_01HQZX3Y4K6F7G8H9J0K1M2N3P", true},
		{"lowercase ulid", "evt_01hqzx3y4k6f7g8h9j0k1m2n3p", true},
		{"surrounding whitespace", "  evt_01HQZX3Y4K6F7G8H9J0K1M2N3P ", true},
		{"missing prefix", "01HQZX3Y4K6F7G8H9J0K1M2N3P", false},
		{"wrong prefix", "event_01HQZX3Y4K6F7G8H9J0K1M2N3P", false},
		{"too short", "evt_123", false},
		{"empty", "", false},
		{"excluded ulid characters", "evt_01ILOU3Y4K6F7G8H9J0K1M2N3P", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.valid, IsEventID(tt.value))
		})
	}
}

func TestValidateEventID(t *testing.T) {
	require.NoError(t, ValidateEventID("evt_01HQZX3Y4K6F7G8H9J0K1M2N3P"))
	require.ErrorIs(t, ValidateEventID("nope"), ErrInvalidEventID)
}
