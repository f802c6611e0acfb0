// Package runlog keeps an append-only record of how each statement was
// resolved, so a surprising column choice can be audited after the fact.
package runlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Entry records the resolution outcome for one statement file.
type Entry struct {
	Timestamp    time.Time `json:"timestamp"`
	File         string    `json:"file"`
	HeaderLines  int       `json:"header_lines"`
	DateColumn   int       `json:"date_column"`
	MoneyColumn  int       `json:"money_column"`
	DescColumn   int       `json:"description_column"`
	Sign         int       `json:"sign"`
	Transactions int       `json:"transactions"`
}

// logFile is the JSONL run log kept next to the backups.
const logFile = "ledgerfold-runs.jsonl"

// Append writes entries to <dir>/ledgerfold-runs.jsonl, creating the
// directory and file if needed.
func Append(dir string, entries []Entry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating run log dir: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, logFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for i, e := range entries {
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	return nil
}

// Read returns all entries from <dir>/ledgerfold-runs.jsonl. Returns nil
// if the file does not exist.
func Read(dir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dir, logFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	var entries []Entry
	dec := json.NewDecoder(f)
	for {
		var e Entry
		if err := dec.Decode(&e); err != nil {
			if errors.Is(err, io.EOF) {
				return entries, nil
			}
			return nil, fmt.Errorf("decoding run log: %w", err)
		}
		entries = append(entries, e)
	}
}
