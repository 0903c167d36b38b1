package events

import "errors"

// ErrNotFound indicates the targeted event is absent from the catalog.
var ErrNotFound = errors.New("event not found")
