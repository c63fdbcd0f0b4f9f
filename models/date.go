package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates (ISO 8601, standard for
// HTML5 date inputs).
const DateLayout = "2006-01-02"

// Date is a calendar date without a time component. It marshals to
// "YYYY-MM-DD"; JSON null is treated as absent when used through a pointer,
// while an empty or malformed string is a decode error.
type Date struct {
	time.Time
}

// ParseDate parses a date string in YYYY-MM-DD form.
func ParseDate(dateStr string) (Date, error) {
	parsed, err := time.Parse(DateLayout, strings.TrimSpace(dateStr))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date format: expected YYYY-MM-DD")
	}
	return Date{parsed}, nil
}

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// Before reports whether d falls on an earlier calendar day than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	parsed, err := ParseDate(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
