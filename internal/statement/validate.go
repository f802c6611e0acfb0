package statement

import (
	"math"
	"strings"

	"github.com/ledgerfold-dev/ledgerfold/internal/model"
)

// ValidateSeparators confirms every line of the post-header buffer
// carries the expected separator count (the rounded mean over the
// buffer). Any deviation is fatal for the file.
func ValidateSeparators(file string, lines []string, sep string) error {
	if len(lines) == 0 {
		return nil
	}

	counts := make([]int, len(lines))
	total := 0
	for i, line := range lines {
		counts[i] = strings.Count(line, sep)
		total += counts[i]
	}
	expected := int(math.Round(float64(total) / float64(len(lines))))

	var bad []model.MalformedRow
	for i, line := range lines {
		if counts[i] != expected {
			bad = append(bad, model.MalformedRow{Line: i, Raw: line})
		}
	}
	if len(bad) > 0 {
		return &model.MalformedRowError{File: file, Expected: expected, Rows: bad}
	}
	return nil
}
