// Package parse holds small value helpers shared by models and views:
// numeric sniffing and the "YYYY-MM-DD HH:MM:SS" timestamp layout that REST
// backends commonly emit for DATETIME columns.
package parse

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateTimeLayout is the six-field layout understood by ParseDateTime.
const DateTimeLayout = "2006-01-02 15:04:05"

// IsNumeric reports whether value parses as a finite floating point number.
func IsNumeric(value string) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return false
	}
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// ParseDateTime parses text as a UTC "YYYY-MM-DD HH:MM:SS" timestamp and
// returns it in local time. Text that does not split into exactly six
// fields yields time.Now(); use ParseDateTimeStrict to observe the failure.
func ParseDateTime(text string) time.Time {
	t, err := ParseDateTimeStrict(text)
	if err != nil {
		return time.Now()
	}
	return t
}

// ParseDateTimeStrict is ParseDateTime with malformed input reported as an
// error instead of silently replaced by the current time.
func ParseDateTimeStrict(text string) (time.Time, error) {
	fields := splitDateTime(text)
	if len(fields) != 6 {
		return time.Time{}, fmt.Errorf("datetime %q: want 6 fields, got %d", text, len(fields))
	}
	var parts [6]int
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return time.Time{}, fmt.Errorf("datetime %q: field %d: %w", text, i+1, err)
		}
		parts[i] = n
	}
	// time.Date normalises out-of-range fields the same way a calendar
	// constructor does, so "2020-01-32" rolls into February.
	utc := time.Date(parts[0], time.Month(parts[1]), parts[2], parts[3], parts[4], parts[5], 0, time.UTC)
	return utc.Local(), nil
}

// DateDiff returns end minus start, both parsed with ParseDateTime. An empty
// endpoint stands for the current time.
func DateDiff(start, end string) time.Duration {
	s := resolve(start)
	e := resolve(end)
	return e.Sub(s)
}

// FormatDateTime renders t in UTC using DateTimeLayout.
func FormatDateTime(t time.Time) string {
	return t.UTC().Format(DateTimeLayout)
}

// ToUTC shifts t by the local zone offset so that its local wall clock
// reads what t's UTC wall clock read. At UTC+2, 12:00+02 becomes 10:00+02.
func ToUTC(t time.Time) time.Time {
	local := t.Local()
	_, offset := local.Zone()
	return local.Add(-time.Duration(offset) * time.Second)
}

// FromUTC undoes ToUTC: the local wall clock of t is read as a UTC wall
// clock. At UTC+2, 10:00+02 becomes 12:00+02.
func FromUTC(t time.Time) time.Time {
	local := t.Local()
	_, offset := local.Zone()
	return local.Add(time.Duration(offset) * time.Second)
}

func resolve(text string) time.Time {
	if strings.TrimSpace(text) == "" {
		return time.Now()
	}
	return ParseDateTime(text)
}

// splitDateTime keeps empty fields so "2020--01 ..." does not collapse into
// a valid six-field value.
func splitDateTime(text string) []string {
	var fields []string
	start := 0
	for i, r := range text {
		if r == '-' || r == ':' || r == ' ' {
			fields = append(fields, text[start:i])
			start = i + 1
		}
	}
	return append(fields, text[start:])
}
