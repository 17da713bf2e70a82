package display

import "encoding/json"

// MarshalJSON marshals command output for machine consumption. Indented so
// the result is still skimmable when a human asks for --json.
func MarshalJSON(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
