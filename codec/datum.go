// Package codec implements the lexical parsing/formatting pairs for the leaf
// value spaces of the MDTO schema: calendar values with explicit precision,
// XSD durations, non-negative integers, and anyURI.
package codec

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Precision records which calendar components a Datum carries. MDTO date
// fields accept gYear, gYearMonth, date and dateTime; re-serialization must
// reproduce the original precision, so it is part of the value.
type Precision int

const (
	Year Precision = iota
	YearMonth
	Day
	Second
)

func (p Precision) String() string {
	switch p {
	case Year:
		return "gYear"
	case YearMonth:
		return "gYearMonth"
	case Day:
		return "date"
	case Second:
		return "dateTime"
	default:
		return "unknown"
	}
}

// Datum is a calendar value with its lexical precision. Two Datum values are
// equal only when both instant and precision match: "2023" and "2023-01-01"
// denote different assertions.
type Datum struct {
	Time      time.Time
	Precision Precision
}

// Equal compares instant and precision.
func (d Datum) Equal(o Datum) bool {
	return d.Precision == o.Precision && d.Time.Equal(o.Time)
}

// String formats the value in the canonical lexical form of its precision.
func (d Datum) String() string {
	switch d.Precision {
	case Year:
		return d.Time.Format("2006")
	case YearMonth:
		return d.Time.Format("2006-01")
	case Day:
		return d.Time.Format("2006-01-02")
	default:
		return d.Time.Format("2006-01-02T15:04:05")
	}
}

var dateTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05.999999999Z07:00",
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02Z07:00",
}

// ParseDateTime parses an xs:dateTime lexical value (optional fraction and
// timezone).
func ParseDateTime(s string) (Datum, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Datum{Time: t, Precision: Second}, nil
		}
	}
	return Datum{}, fmt.Errorf("not a valid dateTime: %q", s)
}

// ParseDate parses an xs:date lexical value (optional timezone).
func ParseDate(s string) (Datum, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Datum{Time: t, Precision: Day}, nil
		}
	}
	return Datum{}, fmt.Errorf("not a valid date: %q", s)
}

// ParseGYear parses an xs:gYear lexical value. Negative years and years of
// more than four digits are carried as-is; "0000" and leading zeros beyond
// four digits are invalid lexically.
func ParseGYear(s string) (Datum, error) {
	body, neg := strings.CutPrefix(s, "-")
	if len(body) < 4 || !allDigits(body) {
		return Datum{}, fmt.Errorf("not a valid gYear: %q", s)
	}
	if len(body) > 4 && body[0] == '0' {
		return Datum{}, fmt.Errorf("not a valid gYear: %q", s)
	}
	year, err := strconv.Atoi(body)
	if err != nil || year == 0 {
		return Datum{}, fmt.Errorf("not a valid gYear: %q", s)
	}
	if neg {
		year = -year
	}
	return Datum{Time: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), Precision: Year}, nil
}

// ParseGYearMonth parses an xs:gYearMonth lexical value.
func ParseGYearMonth(s string) (Datum, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Datum{}, fmt.Errorf("not a valid gYearMonth: %q", s)
	}
	return Datum{Time: t, Precision: YearMonth}, nil
}

// ParseDatum parses the MDTO date union: dateTime, date, gYearMonth or gYear,
// tried most-specific first.
func ParseDatum(s string) (Datum, error) {
	if d, err := ParseDateTime(s); err == nil {
		return d, nil
	}
	if d, err := ParseDate(s); err == nil {
		return d, nil
	}
	if d, err := ParseGYearMonth(s); err == nil {
		return d, nil
	}
	if d, err := ParseGYear(s); err == nil {
		return d, nil
	}
	return Datum{}, fmt.Errorf("not a valid gYear, gYearMonth, date or dateTime: %q", s)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
