package employee

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const employeeCodePrefix = "EMP"

// NextEmployeeCode increments the numeric suffix of the last issued code.
// An empty or non-numeric last code starts the sequence at EMP001.
func NextEmployeeCode(last string) string {
	digits := strings.TrimLeftFunc(strings.TrimPrefix(strings.TrimSpace(last), employeeCodePrefix), func(r rune) bool {
		return !unicode.IsDigit(r)
	})

	n, err := strconv.Atoi(digits)
	if err != nil {
		n = 0
	}
	return fmt.Sprintf("%s%03d", employeeCodePrefix, n+1)
}
