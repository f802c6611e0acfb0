package statement

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ledgerfold-dev/ledgerfold/internal/classify"
	"github.com/ledgerfold-dev/ledgerfold/internal/model"
)

// Normalizer turns raw statement buffers into canonical transactions.
// The noise filter holds known "payment received" descriptions, matched
// case-insensitively; those rows double-count against the itemized
// purchases and never reach the ledger.
type Normalizer struct {
	sep     string
	filters map[string]struct{}
	log     zerolog.Logger
}

// NewNormalizer creates a Normalizer for one separator and filter set.
func NewNormalizer(sep string, filters []string, log zerolog.Logger) *Normalizer {
	set := make(map[string]struct{}, len(filters))
	for _, f := range filters {
		set[strings.ToLower(f)] = struct{}{}
	}
	return &Normalizer{sep: sep, filters: set, log: log}
}

// Statement is the normalized form of one input file. Amounts are in
// ledger convention: money leaving the account is positive. From and To
// bound the span over every data row, filtered ones included, so a
// statement ending in a payment posting still materializes that day.
type Statement struct {
	File         string
	HeaderLines  int
	Roles        model.ColumnRoles
	Sign         int // -1 when the raw sample was net-positive
	Transactions []model.Transaction
	From, To     time.Time
}

// Normalize runs the full pipeline for one file: header detection,
// separator validation, column-role resolution, noise filtering, and
// sign normalization. Any failure is fatal for the file.
func (n *Normalizer) Normalize(file string, lines []string) (*Statement, error) {
	header := HeaderLines(lines, n.sep)
	buffer := lines[header:]
	if len(buffer) == 0 {
		return nil, &model.NoDateColumnError{File: file}
	}
	if err := ValidateSeparators(file, buffer, n.sep); err != nil {
		return nil, err
	}

	rows := make([][]string, len(buffer))
	for i, line := range buffer {
		rows[i] = splitRow(line, n.sep)
	}

	roles, err := ResolveColumns(file, rows)
	if err != nil {
		return nil, err
	}
	n.log.Debug().Str("file", file).Int("header_lines", header).
		Int("date", roles.Date).Int("money", roles.Money).Int("description", roles.Description).
		Msg("columns resolved")

	type raw struct {
		date   time.Time
		amount float64
		desc   string
	}
	var kept []raw
	var from, to time.Time
	for i, row := range rows {
		line := header + i + 1
		date, ok := classify.Date(row[roles.Date])
		if !ok {
			return nil, fmt.Errorf("%s: line %d: cannot parse date %q", file, line, row[roles.Date])
		}
		if from.IsZero() || date.Before(from) {
			from = date
		}
		if date.After(to) {
			to = date
		}
		if classify.TrimQuotes(row[roles.Money]) == "" {
			n.log.Debug().Str("file", file).Int("line", line).Msg("dropping row with empty amount")
			continue
		}
		amount, ok := classify.Numeric(row[roles.Money])
		if !ok {
			return nil, fmt.Errorf("%s: line %d: cannot parse amount %q", file, line, row[roles.Money])
		}
		desc := classify.TrimQuotes(row[roles.Description])
		if n.isNoise(desc) {
			n.log.Debug().Str("file", file).Str("description", desc).Msg("dropping payment row")
			continue
		}
		kept = append(kept, raw{date: date, amount: amount, desc: desc})
	}

	amounts := make([]float64, len(kept))
	for i, t := range kept {
		amounts[i] = t.amount
	}
	sign := signConvention(amounts)
	n.log.Debug().Str("file", file).Int("sign", sign).Msg("sign convention")

	st := &Statement{File: file, HeaderLines: header, Roles: roles, Sign: sign, From: from, To: to}
	for _, t := range kept {
		if n.isNoise(t.desc) {
			return nil, &model.FilterInvariantError{File: file, Description: t.desc}
		}
		st.Transactions = append(st.Transactions, model.Transaction{
			Date: t.date,
			// Debits are negative after the sign flip; the final negation
			// records spending as positive in the ledger.
			Amount:      decimal.NewFromFloat(t.amount * float64(sign)).Round(2).Neg(),
			Description: t.desc,
		})
	}
	return st, nil
}

func (n *Normalizer) isNoise(desc string) bool {
	_, ok := n.filters[strings.ToLower(desc)]
	return ok
}

// signConvention returns the multiplier that makes debits negative: flip
// when the sample's mean sign is positive, keep otherwise.
func signConvention(amounts []float64) int {
	if len(amounts) == 0 {
		return 1
	}
	var sum float64
	for _, a := range amounts {
		switch {
		case a > 0:
			sum++
		case a < 0:
			sum--
		}
	}
	if sum/float64(len(amounts)) > 0 {
		return -1
	}
	return 1
}
