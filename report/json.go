package report

import (
	"encoding/json"
	"fmt"
)

// EncodeJSON returns r as indented JSON.
func EncodeJSON(r Results) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeJSON parses a report written by EncodeJSON.
func DecodeJSON(data []byte) (Results, error) {
	var r Results
	if err := json.Unmarshal(data, &r); err != nil {
		return Results{}, fmt.Errorf("failed to parse report: %w", err)
	}
	return r, nil
}
