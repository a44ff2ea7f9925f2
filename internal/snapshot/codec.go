package snapshot

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Encode serializes a record to the opaque blob stored in the key/value
// store. Encoding is stable: equal records produce equal blobs.
func Encode(r Record) (string, error) {
	data, err := yaml.Marshal(map[string]string(r))
	if err != nil {
		return "", fmt.Errorf("snapshot: cannot encode record: %w", err)
	}
	return string(data), nil
}

// Decode parses a blob back into a record. Any structural problem comes
// back wrapped in ErrMalformed; callers fall back to a fresh session.
func Decode(blob string) (Record, error) {
	var m map[string]string
	if err := yaml.Unmarshal([]byte(blob), &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if m == nil {
		m = map[string]string{}
	}
	return Record(m), nil
}
