// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Date layouts.
const (
	// DateInputLayout is the value format of an HTML date input.
	DateInputLayout = "2006-01-02"
	// DateDisplayLayout is the day-month-year format shown to users.
	DateDisplayLayout = "02/01/2006"
)

// ErrInvalidDate is returned when a date string cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")

// Date is a calendar date without a time of day.
// The zero value represents "no date".
type Date struct {
	t time.Time
}

// NewDate returns the date for the given year, month and day.
// Out-of-range values are normalized the same way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t as seen in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrInvalidDate
	}
	t, err := time.Parse(DateInputLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{t: t}, nil
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// AddYears returns d shifted by n calendar years.
// February 29 rolls over to March 1 in non-leap target years.
func (d Date) AddYears(n int) Date {
	return Date{t: d.t.AddDate(n, 0, 0)}
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// String returns the date in YYYY-MM-DD form, or "" for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateInputLayout)
}

// Display returns the date in DD/MM/YYYY form, or "" for the zero date.
func (d Date) Display() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateDisplayLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
