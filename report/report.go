// Package report renders simulation results as a table and exports them as
// JSON or FlatBuffers.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/signalnine/biscuits/simulation"
)

// Format is an output format.
type Format string

const (
	FormatTable       Format = "table"
	FormatJSON        Format = "json"
	FormatFlatBuffers Format = "fb"
)

// ErrUnknownFormat is returned for formats other than table, json and fb.
var ErrUnknownFormat = errors.New("unknown report format")

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTable, FormatJSON, FormatFlatBuffers:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Results is one simulator run: every strategy's summary against one rule set.
type Results struct {
	RunID        string               `json:"run_id,omitempty"`
	Rules        string               `json:"rules"`
	Seed         uint64               `json:"seed"`
	Trials       int64                `json:"trials"`
	Ceiling      int                  `json:"ceiling"`
	LowScoreWins bool                 `json:"low_score_wins"`
	Summaries    []simulation.Summary `json:"summaries"`
}

// NewResults collects ranked summaries of one run. Rule set, seed and trial
// count come from the summaries, which RunAll fills in identically.
func NewResults(runID string, summaries []simulation.Summary) Results {
	r := Results{RunID: runID, Summaries: summaries}
	if len(summaries) > 0 {
		first := summaries[0]
		r.Rules = first.Rules
		r.Seed = first.Seed
		r.Trials = first.Trials
		r.Ceiling = first.Ceiling
		r.LowScoreWins = first.LowScoreWins
	}
	return r
}

// Write renders r to w in the given format.
func Write(w io.Writer, r Results, format Format) error {
	switch format {
	case FormatTable:
		return WriteTable(w, r)
	case FormatJSON:
		data, err := EncodeJSON(r)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatFlatBuffers:
		_, err := w.Write(EncodeFlatBuffer(r))
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteFile exports r to path. The file is written to a temp name and renamed
// into place so readers never see a partial report.
func WriteFile(path string, r Results, format Format) error {
	var data []byte
	switch format {
	case FormatJSON:
		var err error
		if data, err = EncodeJSON(r); err != nil {
			return err
		}
	case FormatFlatBuffers:
		data = EncodeFlatBuffer(r)
	default:
		return fmt.Errorf("%w: %q cannot be exported", ErrUnknownFormat, format)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to finalize report: %w", err)
	}
	return nil
}

// ReadFile loads a report exported by WriteFile.
func ReadFile(path string) (Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Results{}, fmt.Errorf("failed to read report: %w", err)
	}
	if filepath.Ext(path) == ".json" {
		return DecodeJSON(data)
	}
	return DecodeFlatBuffer(data)
}
