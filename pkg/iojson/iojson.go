// Package iojson holds helpers for reading and writing JSON from a command
// line interface perspective.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// Error is the JSON shape written for failures when a command runs with --json.
type Error struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// fallbackError hand-builds an error document when marshaling itself failed.
func fallbackError(msg string, cause error) string {
	msgBytes, _ := json.Marshal(msg)
	causeBytes, _ := json.Marshal(cause.Error())
	return fmt.Sprintf(`{"message":%s,"data":{"json_error":%s}}`, msgBytes, causeBytes)
}

// MarshalError renders msg and data as an indented Error document. A
// marshaling failure still yields valid JSON describing that failure.
func MarshalError(msg string, data map[string]any) string {
	bits, err := json.MarshalIndent(Error{Message: msg, Data: data}, "", "  ")
	if err != nil {
		return fallbackError(msg, err)
	}
	return string(bits)
}

// WriteError writes an Error document to w.
func WriteError(w io.Writer, msg string, data map[string]any) error {
	_, err := fmt.Fprintln(w, MarshalError(msg, data))
	return err
}

// WriteWith writes obj as indented JSON to w. Marshaling failures are
// reported as an Error document on ew.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		_, err = fmt.Fprintln(ew, fallbackError("iojson: marshal output", err))
		return err
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// WriteLine writes obj as a single compact JSON line.
func WriteLine(w io.Writer, obj any) error {
	return json.NewEncoder(w).Encode(obj)
}

// WriteLines writes each item as one compact JSON document per line.
func WriteLines[T any](w io.Writer, items []T) error {
	for i, item := range items {
		if err := WriteLine(w, item); err != nil {
			return fmt.Errorf("iojson: encode line %d: %w", i, err)
		}
	}
	return nil
}
