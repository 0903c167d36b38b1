package events

import "strings"

// Validation messages returned to clients.
const (
	msgTitleRequired        = "Title is required"
	msgLocationNotObject    = "Location must be an object"
	msgLocationNameRequired = "Location name is required"
	msgLocationCoordinates  = "Location coordinates must be an array of [longitude, latitude]"
)

// Validate shape-checks caller-supplied event data and returns human-readable
// messages, empty when valid. It is a pure function: creating an event is a
// separate step and deliberately does not validate, so callers choose when to
// enforce the rules.
//
// Checks: title must be a non-empty string; when location is present it must
// be an object carrying a non-empty string name and a 2-element coordinate
// pair. Coordinate values are not range-checked (shape only).
func Validate(data Event) []string {
	var errs []string

	title, ok := data[FieldTitle].(string)
	if !ok || strings.TrimSpace(title) == "" {
		errs = append(errs, msgTitleRequired)
	}

	if raw, present := data[FieldLocation]; present && raw != nil {
		location, ok := raw.(map[string]any)
		if !ok {
			errs = append(errs, msgLocationNotObject)
			return errs
		}

		name, ok := location["name"].(string)
		if !ok || strings.TrimSpace(name) == "" {
			errs = append(errs, msgLocationNameRequired)
		}

		if !isCoordinatePair(location["coordinates"]) {
			errs = append(errs, msgLocationCoordinates)
		}
	}

	return errs
}

// isCoordinatePair reports whether value is a 2-element array. JSON numbers
// decode as float64 but the check is shape-only, matching the catalog's
// "no geospatial validation" stance.
func isCoordinatePair(value any) bool {
	pair, ok := value.([]any)
	return ok && len(pair) == 2
}
