package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	fieldName     = "name"
	fieldStartURL = "startUrl"
)

// TestDefinition is a single browser test loaded from a definition file.
// Name and StartURL are the only fields the runner understands; every other
// top-level key is kept in Extra and sent back to the execution service as is.
type TestDefinition struct {
	Path     string `json:"-"` // File the definition was loaded from
	Name     string
	StartURL string
	Extra    map[string]json.RawMessage
}

// UnmarshalJSON parses a definition object, requiring a string "name".
func (t *TestDefinition) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("test definition must be a JSON object: %w", err)
	}
	if raw == nil {
		return errors.New("test definition must be a JSON object")
	}

	nameRaw, ok := raw[fieldName]
	if !ok {
		return errors.New(`test definition is missing "name"`)
	}
	if err := json.Unmarshal(nameRaw, &t.Name); err != nil {
		return fmt.Errorf(`test definition "name" must be a string: %w`, err)
	}
	delete(raw, fieldName)

	t.StartURL = ""
	if urlRaw, ok := raw[fieldStartURL]; ok {
		// A non-string startUrl is replaced by the tunnel URL anyway
		_ = json.Unmarshal(urlRaw, &t.StartURL)
		delete(raw, fieldStartURL)
	}

	t.Extra = raw
	return nil
}

// MarshalJSON writes the pass-through fields together with name and startUrl.
func (t TestDefinition) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(t.Extra)+2)
	for k, v := range t.Extra {
		out[k] = v
	}
	out[fieldName] = t.Name
	if t.StartURL != "" {
		out[fieldStartURL] = t.StartURL
	}
	return json.Marshal(out)
}
