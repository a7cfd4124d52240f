// Package strutil converts query-string values.
package strutil

import (
	"strconv"
	"strings"
	"time"
)

// ConvertToInt parses s, returning 0 when it is not an integer
func ConvertToInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// ConvertToIntDefault parses s, returning def when s is empty or invalid
func ConvertToIntDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

// ConvertToBool parses s, returning false when it is not a boolean
func ConvertToBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}

// SplitCSV splits a comma separated list, dropping blanks and upper-casing
// each entry, e.g. "new, in_review" becomes [NEW IN_REVIEW]
func SplitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, strings.ToUpper(p))
		}
	}
	return out
}

// SplitList splits a comma separated list, dropping blanks and keeping case
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseTime parses an RFC3339 timestamp; ok is false for empty or bad input
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
