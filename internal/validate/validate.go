// Package validate holds the pure format checks shared by the tool surface.
package validate

import (
	"regexp"
	"strings"
	"time"
)

var (
	orderIDPattern = regexp.MustCompile(`^A\d{4}$`)
	emailPattern   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	zipPattern     = regexp.MustCompile(`^\d{5,6}$`)
)

// OrderID reports whether the id matches the catalog format: "A" followed by
// exactly four digits.
func OrderID(id string) bool {
	return orderIDPattern.MatchString(id)
}

// Email performs a basic structural check on an email address.
func Email(email string) bool {
	return emailPattern.MatchString(email)
}

// ZipCode accepts 5 digit (US) and 6 digit (e.g. India) postal codes.
func ZipCode(zip string) bool {
	return zipPattern.MatchString(strings.TrimSpace(zip))
}

// Timestamp parses an RFC 3339 timestamp, returning the parsed time in UTC.
func Timestamp(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}
