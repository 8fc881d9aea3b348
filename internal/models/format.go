package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	PrefixRepair  = "REP"
	PrefixRequest = "REQ"

	DateLayout = "2006-01-02"
)

// DisplayID renders a ticket id with its type prefix, zero-padded to at
// least three digits: 7 -> REQ007, 1500 -> REQ1500.
func DisplayID(prefix string, id int) string {
	return fmt.Sprintf("%s%03d", prefix, id)
}

// FormatDate returns t as YYYY-MM-DD, or nil when t is nil or zero.
func FormatDate(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and keeps the
// calendar day only.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}
