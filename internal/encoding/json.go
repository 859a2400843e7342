// Package encoding reads and writes the files nutrilog exchanges with the
// user: food imports and history exports.
package encoding

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// LoadJSON reads a JSON file and unmarshals it into the provided value.
func LoadJSON[T any](path string) (*T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	defer func() { _ = f.Close() }()

	result, err := DecodeJSON[T](f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON from %s: %w", path, err)
	}

	return result, nil
}

// DecodeJSON decodes one JSON document from r. Unknown fields are rejected
// so typos in hand-written files surface.
func DecodeJSON[T any](r io.Reader) (*T, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var result T
	if err := dec.Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

// SaveJSON marshals the value to indented JSON and writes it to path.
// Creates parent directories if they don't exist.
// Uses 0600 permissions for the file.
func SaveJSON[T any](path string, value T) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return WriteFileSecure(path, append(data, '\n'))
}
