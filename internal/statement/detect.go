package statement

import (
	"strings"

	"github.com/ledgerfold-dev/ledgerfold/internal/classify"
)

// HeaderLines counts the leading lines before the first data line. A line
// is a data line once any of its fields parses as a date. A buffer with
// no date anywhere returns len(lines); the resolver turns that into an
// error.
func HeaderLines(lines []string, sep string) int {
	for i, line := range lines {
		for _, field := range splitRow(line, sep) {
			if _, ok := classify.Date(field); ok {
				return i
			}
		}
	}
	return len(lines)
}

// splitRow splits a raw line into fields on the bare separator. Header
// and noise lines are not well-formed CSV, so encoding/csv cannot be used
// on this path.
func splitRow(line, sep string) []string {
	return strings.Split(strings.TrimRight(line, " \t\r\n"), sep)
}
