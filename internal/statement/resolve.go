package statement

import (
	"fmt"
	"math"
	"time"
	"unicode"

	"github.com/ledgerfold-dev/ledgerfold/internal/classify"
	"github.com/ledgerfold-dev/ledgerfold/internal/model"
)

// Magnitude bounds for a plausible transaction amount. Outside this range
// a numeric column is an account number, zip code, or similar.
const (
	amountFloor = 1e-8
	amountCeil  = 1e5
)

// minRowsForStats is the buffer size above which ties are broken
// statistically instead of positionally.
const minRowsForStats = 3

// ResolveColumns decides which column holds the date, the amount, and the
// description. The first data row establishes the candidate pools; with
// more than minRowsForStats rows the whole buffer breaks ties: earliest
// first-row value for the date, longest varying alphabetic run for the
// description, largest relative variation for the amount.
func ResolveColumns(file string, rows [][]string) (model.ColumnRoles, error) {
	first := rows[0]

	var (
		dateCols []int
		dates    []time.Time
		numCols  []int
		textCols []int
	)
	for i, cell := range first {
		if d, ok := classify.Date(cell); ok {
			dateCols = append(dateCols, i)
			dates = append(dates, d)
			continue
		}
		if v, ok := classify.Numeric(cell); ok {
			if math.Abs(v) > amountFloor && math.Abs(v) < amountCeil {
				numCols = append(numCols, i)
			}
			continue
		}
		textCols = append(textCols, i)
	}

	if len(dateCols) == 0 {
		return model.ColumnRoles{}, &model.NoDateColumnError{File: file}
	}
	if len(numCols) == 0 {
		return model.ColumnRoles{}, &model.NoNumericColumnError{File: file}
	}

	// Statements often carry a posting date after the transaction date;
	// the earliest value on the sample row is the primary one.
	dateIdx := dateCols[0]
	earliest := dates[0]
	for i, d := range dates[1:] {
		if d.Before(earliest) {
			earliest = d
			dateIdx = dateCols[i+1]
		}
	}

	descIdx, err := resolveDescription(file, rows, textCols, dateIdx)
	if err != nil {
		return model.ColumnRoles{}, err
	}

	return model.ColumnRoles{
		Date:        dateIdx,
		Money:       resolveMoney(rows, numCols),
		Description: descIdx,
	}, nil
}

// resolveDescription picks the description among the text columns after
// the date column: the one whose per-cell alphabetic length varies and
// has the largest mean. Constant-length columns (fixed category labels)
// are skipped.
func resolveDescription(file string, rows [][]string, textCols []int, dateIdx int) (int, error) {
	var cands []int
	for _, c := range textCols {
		if c > dateIdx {
			cands = append(cands, c)
		}
	}
	if len(cands) == 0 {
		return 0, fmt.Errorf("%s: no text column after the date column", file)
	}
	if len(rows) <= minRowsForStats {
		return cands[0], nil
	}

	best := -1
	bestMean := 0.0
	for _, c := range cands {
		lengths := make([]float64, len(rows))
		for i, row := range rows {
			lengths[i] = float64(alphaLen(row[c]))
		}
		mean, std := meanStd(lengths)
		if std == 0 {
			continue
		}
		if best == -1 || mean > bestMean {
			best = c
			bestMean = mean
		}
	}
	if best == -1 {
		return cands[0], nil
	}
	return best, nil
}

// resolveMoney picks the amount among the surviving numeric candidates:
// the column with the largest relative variation (std / |mean|), since
// transaction amounts swing proportionally far more than balances or
// reference numbers. Blank cells are excluded from the statistics.
func resolveMoney(rows [][]string, numCols []int) int {
	best := numCols[0]
	bestVar := math.Inf(-1)
	for _, c := range numCols {
		var sample []float64
		for _, row := range rows {
			if classify.TrimQuotes(row[c]) == "" {
				continue
			}
			if v, ok := classify.Numeric(row[c]); ok {
				sample = append(sample, v)
			}
		}
		if len(sample) == 0 {
			continue
		}
		mean, std := meanStd(sample)
		relVar := std / math.Abs(mean)
		if relVar > bestVar {
			best = c
			bestVar = relVar
		}
	}
	return best
}

func alphaLen(cell string) int {
	n := 0
	for _, r := range cell {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}

// meanStd returns the mean and population standard deviation.
func meanStd(xs []float64) (mean, std float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean = sum / float64(len(xs))
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / float64(len(xs)))
}
