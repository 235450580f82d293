// Package codec reads and writes the schedules JSON envelope:
//
//	{"schedules": {"<schedule id>": {...record...}, ...}}
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"github.com/northpower/dailysched/internal/models"
)

// Source is anything that can enumerate schedule records.
type Source interface {
	All() iter.Seq[models.ScheduleRecord]
}

// Envelope is the on-disk shape of an export.
type Envelope struct {
	Schedules map[string]models.ScheduleRecord `json:"schedules"`
}

// FormatError reports an import document that does not have the envelope shape.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid schedules document: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid schedules document: %s", e.Reason)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Export serializes every record from src, pretty-printed with two-space indent.
func Export(src Source) ([]byte, error) {
	env := Envelope{Schedules: make(map[string]models.ScheduleRecord)}
	for r := range src.All() {
		env.Schedules[r.ScheduleID] = r
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize schedules: %w", err)
	}
	return append(data, '\n'), nil
}

// Import decodes an envelope and returns its records for the caller to merge.
// Records are normalized from legacy shapes but are not validated; the map key
// is authoritative for each record's schedule id.
func Import(data []byte) ([]models.ScheduleRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		if !json.Valid(trimmed) {
			return nil, &FormatError{Reason: "malformed JSON"}
		}
		return nil, &FormatError{Reason: "top-level value must be an object"}
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &top); err != nil {
		return nil, &FormatError{Reason: "malformed JSON", Err: err}
	}

	raw, ok := top["schedules"]
	if !ok {
		return nil, &FormatError{Reason: `missing "schedules" key`}
	}

	var entries orderedObject
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, &FormatError{Reason: `"schedules" must be an object`, Err: err}
	}

	records := make([]models.ScheduleRecord, 0, len(entries))
	for _, e := range entries {
		r, err := normalize(e.value)
		if err != nil {
			return nil, &FormatError{Reason: fmt.Sprintf("schedule %q", e.key), Err: err}
		}
		r.ScheduleID = e.key
		records = append(records, r)
	}
	return records, nil
}

// ExportFile writes the envelope to path through a temporary file and rename,
// so a failed write never leaves a truncated export behind. It returns the
// number of bytes written.
func ExportFile(path string, src Source) (int, error) {
	data, err := Export(src)
	if err != nil {
		return 0, err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return 0, fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return 0, fmt.Errorf("failed to write export: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return 0, fmt.Errorf("failed to write export: %w", err)
	}
	return len(data), nil
}

// ImportFile reads and decodes an envelope from path.
func ImportFile(path string) ([]models.ScheduleRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}
	return Import(data)
}
