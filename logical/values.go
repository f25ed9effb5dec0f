package logical

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"time"
)

const secondsPerDay = 86400

// Date is a calendar date without a time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// DateFromDays returns the date the given number of days after 1970-01-01.
func DateFromDays(days int64) Date {
	return DateOf(time.Unix(days*secondsPerDay, 0).UTC())
}

// ParseDate parses an ISO-8601 calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// In returns midnight of d in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// DaysSinceEpoch returns the number of days between 1970-01-01 and d.
func (d Date) DaysSinceEpoch() int64 {
	return d.In(time.UTC).Unix() / secondsPerDay
}

// Valid reports whether d names an existing calendar day.
func (d Date) Valid() bool {
	return DateOf(d.In(time.UTC)) == d
}

// String returns the date in YYYY-MM-DD form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// LocalDateTime is a wall-clock date and time without a time zone.
type LocalDateTime struct {
	Date       Date
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

// LocalDateTimeOf returns the wall-clock reading of t in t's location.
func LocalDateTimeOf(t time.Time) LocalDateTime {
	return LocalDateTime{
		Date:       DateOf(t),
		Hour:       t.Hour(),
		Minute:     t.Minute(),
		Second:     t.Second(),
		Nanosecond: t.Nanosecond(),
	}
}

var localDateTimeLayouts = []string{
	"2006-01-02T15:04:05", // fraction of a second is accepted when parsing
	"2006-01-02T15:04",
}

// ParseLocalDateTime parses an ISO-8601 local date-time such as
// 2024-01-15T10:30, 2024-01-15T10:30:00 or 2024-01-15T10:30:00.123456.
// Text carrying a zone or offset is rejected.
func ParseLocalDateTime(s string) (LocalDateTime, error) {
	var firstErr error
	for _, layout := range localDateTimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return LocalDateTimeOf(t), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return LocalDateTime{}, firstErr
}

// In returns the instant at which the wall clock in loc reads dt.
func (dt LocalDateTime) In(loc *time.Location) time.Time {
	return time.Date(dt.Date.Year, dt.Date.Month, dt.Date.Day, dt.Hour, dt.Minute, dt.Second, dt.Nanosecond, loc)
}

// Valid reports whether every field of dt is in range.
func (dt LocalDateTime) Valid() bool {
	return LocalDateTimeOf(dt.In(time.UTC)) == dt
}

// String returns the date-time in ISO-8601 form without a zone.
func (dt LocalDateTime) String() string {
	return dt.In(time.UTC).Format("2006-01-02T15:04:05.999999999")
}

// Fixed is a fixed-length binary value.
type Fixed []byte

// Len returns the number of bytes in f.
func (f Fixed) Len() int { return len(f) }

// Equal reports whether f and other hold the same bytes.
func (f Fixed) Equal(other Fixed) bool { return bytes.Equal(f, other) }

// String returns f as lower-case hex.
func (f Fixed) String() string { return hex.EncodeToString(f) }
