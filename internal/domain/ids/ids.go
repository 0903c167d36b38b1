package ids

import (
	"crypto/rand"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// EventIDPrefix marks catalog event identifiers.
const EventIDPrefix = "evt_"

var (
	eventIDRegex = regexp.MustCompile(`(?i)^evt_[0-9A-HJKMNP-TV-Z]{26}$`)

	ErrInvalidEventID = errors.New("invalid event id")
)

// NewEventID mints a new event identifier: the evt_ prefix followed by a
// ULID. The ULID keeps identifiers time-ordered and unique without a
// collision check against the stored sequence.
func NewEventID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return EventIDPrefix + id.String(), nil
}

// IsEventID returns true when value has the evt_<ULID> shape.
func IsEventID(value string) bool {
	return eventIDRegex.MatchString(strings.TrimSpace(value))
}

// ValidateEventID validates an event identifier string.
func ValidateEventID(value string) error {
	if !IsEventID(value) {
		return ErrInvalidEventID
	}
	return nil
}
