// Package classify decides what a single raw statement cell is: a date,
// a numeric literal, or free text.
package classify

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Kind labels a classified cell.
type Kind int

const (
	KindText Kind = iota
	KindDate
	KindNumeric
)

// dateLayouts are the accepted statement date formats, tried in order.
var dateLayouts = []string{"01/02/2006", "01/02/06"}

// numericPattern matches a complete numeric literal, nothing more. A cell
// with trailing junk ("4.50 USD") is text, not a number.
var numericPattern = regexp.MustCompile(`^[-+]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][-+]?[0-9]+)?$`)

// Date reports whether the cell parses as a statement date.
func Date(cell string) (time.Time, bool) {
	s := TrimQuotes(cell)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Numeric reports whether the cell is a numeric literal.
func Numeric(cell string) (float64, bool) {
	s := TrimQuotes(cell)
	if !numericPattern.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Classify buckets a cell as date, numeric, or text. Dates win over
// numbers, so a cell belongs to exactly one kind.
func Classify(cell string) Kind {
	if _, ok := Date(cell); ok {
		return KindDate
	}
	if _, ok := Numeric(cell); ok {
		return KindNumeric
	}
	return KindText
}

// TrimQuotes removes one surrounding layer of double quotes.
func TrimQuotes(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}
