package survey

// convert.go provides cell conversion for survey CSV data.
//
// Two families of converters exist:
//   - Strict (ToInt, ToNumeric, ToFloat): the whole cell must be a number.
//     Invalid input returns ok=false / Valid=false and the loader rejects the row.
//   - Lenient (PrefixInt, PrefixFloat): the longest numeric prefix is used and
//     anything after it is ignored. A cell with no leading number becomes 0.

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
// Matches integers and decimals. pgtype.Numeric does not scan exponents.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

var (
	intPrefixRegex   = regexp.MustCompile(`^[+-]?\d+`)
	floatPrefixRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
)

// CleanCell removes common CSV artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.TrimSpace(strings.Trim(s, `"'`))
}

// ToInt converts a cell to an int. The cleaned cell must be a plain
// base-10 integer with an optional sign.
func ToInt(s string) (int, bool) {
	s = CleanCell(s)
	if s == "" {
		return 0, false
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return i, true
}

// ToNumeric converts a string to pgtype.Numeric.
// Handles currency symbols, thousands separators, and accounting format (parentheses for negative).
func ToNumeric(s string) pgtype.Numeric {
	s = CleanCell(s)
	if s == "" {
		return pgtype.Numeric{Valid: false}
	}

	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if isNegative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return pgtype.Numeric{Valid: false}
	}

	var n pgtype.Numeric
	if err := n.Scan(s); err != nil {
		return pgtype.Numeric{Valid: false}
	}
	return n
}

// ToFloat converts a cell to float64 via ToNumeric.
func ToFloat(s string) (float64, bool) {
	n := ToNumeric(s)
	if !n.Valid {
		return 0, false
	}
	f, err := n.Float64Value()
	if err != nil || !f.Valid {
		return 0, false
	}
	return f.Float64, true
}

// PrefixInt returns the integer formed by the leading digits of s,
// after optional whitespace and sign. Out-of-range values saturate.
func PrefixInt(s string) int {
	m := intPrefixRegex.FindString(strings.TrimLeft(s, " \t\r\n"))
	if m == "" {
		return 0
	}
	i, _ := strconv.ParseInt(m, 10, 0)
	return int(i)
}

// PrefixFloat returns the decimal number at the start of s,
// after optional whitespace. Out-of-range values become ±Inf.
func PrefixFloat(s string) float64 {
	m := floatPrefixRegex.FindString(strings.TrimLeft(s, " \t\r\n"))
	if m == "" {
		return 0
	}
	f, _ := strconv.ParseFloat(m, 64)
	return f
}
