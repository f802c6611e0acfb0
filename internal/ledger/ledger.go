// Package ledger aggregates normalized transactions into a date-indexed
// store covering every calendar day of each statement's span.
package ledger

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerfold-dev/ledgerfold/internal/model"
)

const dayFormat = "2006-01-02"

// Day holds the transactions recorded for one calendar date. Amounts and
// Descriptions are parallel, in arrival order.
type Day struct {
	Amounts      []decimal.Decimal
	Descriptions []string
}

// Ledger is the only cross-file state: statements fold into it one after
// another. Entries are append-only and keyed by ISO date.
type Ledger struct {
	days map[string]*Day
}

// New creates an empty Ledger.
func New() *Ledger {
	return &Ledger{days: make(map[string]*Day)}
}

// Ingest folds one statement's transactions in. Every calendar day in
// [from, to] gets an entry, empty days included, so date gaps show up in
// the rendered output rather than being silently omitted.
func (l *Ledger) Ingest(txns []model.Transaction, from, to time.Time) {
	if from.IsZero() {
		return
	}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		l.day(d.Format(dayFormat))
	}
	for _, t := range txns {
		day := l.day(t.Date.Format(dayFormat))
		day.Amounts = append(day.Amounts, t.Amount)
		day.Descriptions = append(day.Descriptions, t.Description)
	}
}

func (l *Ledger) day(key string) *Day {
	d, ok := l.days[key]
	if !ok {
		d = &Day{}
		l.days[key] = d
	}
	return d
}

// Day returns a copy of the entry for an ISO date, if present.
func (l *Ledger) Day(key string) (Day, bool) {
	d, ok := l.days[key]
	if !ok {
		return Day{}, false
	}
	return *d, true
}

// Size returns the number of calendar days tracked.
func (l *Ledger) Size() int {
	return len(l.days)
}

// Row is one rendered ledger line: an ISO date, the day's amounts as a
// +-joined sum expression, and its descriptions joined with "; ".
type Row struct {
	Date         string
	Amounts      string
	Descriptions string
}

// Render returns one Row per known calendar day, sorted by ISO date
// string, which is chronological order. Empty days render with empty
// amount and description fields.
func (l *Ledger) Render() []Row {
	keys := make([]string, 0, len(l.days))
	for k := range l.days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]Row, 0, len(keys))
	for _, k := range keys {
		d := l.days[k]
		amounts := make([]string, len(d.Amounts))
		for i, a := range d.Amounts {
			amounts[i] = a.StringFixed(2)
		}
		rows = append(rows, Row{
			Date:         k,
			Amounts:      strings.Join(amounts, "+"),
			Descriptions: strings.Join(d.Descriptions, "; "),
		})
	}
	return rows
}

// Snapshot writes the human-readable table, one line per day.
func (l *Ledger) Snapshot(w io.Writer) error {
	for _, r := range l.Render() {
		if _, err := fmt.Fprintf(w, "%s  : %s; %s\n", r.Date, r.Amounts, r.Descriptions); err != nil {
			return fmt.Errorf("writing snapshot: %w", err)
		}
	}
	return nil
}
