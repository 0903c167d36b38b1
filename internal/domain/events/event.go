package events

// Event is one catalog record. The catalog is schemaless beyond its reserved
// fields: callers may attach arbitrary JSON fields and the store keeps them
// verbatim, which is why the record is a plain document map rather than a
// closed struct. The store owns "id", "createdAt" and "updatedAt"; "title" is
// required and "location" is shape-checked by Validate.
type Event map[string]any

// Reserved field names.
const (
	FieldID        = "id"
	FieldTitle     = "title"
	FieldLocation  = "location"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// ID returns the record identifier, or "" when unset or not a string.
func (e Event) ID() string {
	id, _ := e[FieldID].(string)
	return id
}

// Title returns the record title, or "" when unset or not a string.
func (e Event) Title() string {
	title, _ := e[FieldTitle].(string)
	return title
}

// CreatedAt returns the raw createdAt timestamp string.
func (e Event) CreatedAt() string {
	ts, _ := e[FieldCreatedAt].(string)
	return ts
}

// UpdatedAt returns the raw updatedAt timestamp string.
func (e Event) UpdatedAt() string {
	ts, _ := e[FieldUpdatedAt].(string)
	return ts
}

// Clone returns a shallow copy. Mutating the copy's top-level keys leaves the
// original untouched; nested values stay shared.
func (e Event) Clone() Event {
	if e == nil {
		return nil
	}
	out := make(Event, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// merge overlays patch onto a copy of e. Patch fields win key by key; keys
// absent from the patch keep their existing values.
func (e Event) merge(patch Event) Event {
	out := e.Clone()
	for k, v := range patch {
		out[k] = v
	}
	return out
}
