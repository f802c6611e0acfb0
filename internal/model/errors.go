package model

import (
	"fmt"
	"strings"
)

// NoDateColumnError reports a statement with no date-convertible column.
type NoDateColumnError struct {
	File string
}

func (e *NoDateColumnError) Error() string {
	return fmt.Sprintf("%s: could not find a column with the date", e.File)
}

// NoNumericColumnError reports a statement with no numeric column usable
// as a transaction amount.
type NoNumericColumnError struct {
	File string
}

func (e *NoNumericColumnError) Error() string {
	return fmt.Sprintf("%s: no numeric column usable as an amount", e.File)
}

// MalformedRow is one line whose separator count differs from the rest of
// its file. Line is the index into the post-header buffer.
type MalformedRow struct {
	Line int
	Raw  string
}

// MalformedRowError reports lines with inconsistent separator counts.
// Column indices resolved over a misaligned buffer would be meaningless,
// so the whole file is rejected.
type MalformedRowError struct {
	File     string
	Expected int
	Rows     []MalformedRow
}

func (e *MalformedRowError) Error() string {
	parts := make([]string, len(e.Rows))
	for i, r := range e.Rows {
		parts[i] = fmt.Sprintf("line %d: %q", r.Line, r.Raw)
	}
	return fmt.Sprintf("%s: expected %d separators per line: %s",
		e.File, e.Expected, strings.Join(parts, "; "))
}

// FilterInvariantError reports a noise description that survived
// filtering. It signals a defect in the normalizer, never bad input.
type FilterInvariantError struct {
	File        string
	Description string
}

func (e *FilterInvariantError) Error() string {
	return fmt.Sprintf("%s: filtered description %q reached the ledger", e.File, e.Description)
}
