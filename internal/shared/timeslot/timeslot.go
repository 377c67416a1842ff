// Package timeslot holds the time primitives every reservation path shares:
// parsing human-facing "H:MM AM/PM - H:MM AM/PM" ranges into canonical
// 24-hour values, interval ordering/overlap checks, and the campus-local
// "is this slot already gone" check.
//
// Canonical times are "HH:MM" strings; because both fields are zero-padded,
// lexicographic comparison matches chronological comparison on the same day.
package timeslot

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout is the civil-date wire format for reservations.
	DateLayout = "2006-01-02"

	clockLayout = "15:04"
)

var (
	ErrInvalidRange = errors.New("invalid time range format")
	ErrInvalidTime  = errors.New("invalid time value")
	ErrInvalidDate  = errors.New("invalid date value")
)

// Accepts 1-2 digit hours, 2 digit minutes, optional space before a
// case-insensitive meridiem, and flexible whitespace around the dash.
var rangePattern = regexp.MustCompile(`^\s*(\d{1,2}):(\d{2})\s?([APap][Mm])\s*-\s*(\d{1,2}):(\d{2})\s?([APap][Mm])\s*$`)

// ParseRange parses a combined range string into canonical 24-hour start and
// end times. The string must look like "1:30 PM - 2:30 PM".
func ParseRange(s string) (start, end string, err error) {
	m := rangePattern.FindStringSubmatch(s)
	if m == nil {
		return "", "", ErrInvalidRange
	}

	start, err = to24Hour(m[1], m[2], m[3])
	if err != nil {
		return "", "", err
	}
	end, err = to24Hour(m[4], m[5], m[6])
	if err != nil {
		return "", "", err
	}
	return start, end, nil
}

// FormatRange renders two canonical 24-hour times back into the human-facing
// range form, e.g. ("13:30", "14:30") -> "1:30 PM - 2:30 PM".
func FormatRange(start, end string) (string, error) {
	s, err := to12Hour(start)
	if err != nil {
		return "", err
	}
	e, err := to12Hour(end)
	if err != nil {
		return "", err
	}
	return s + " - " + e, nil
}

// IsOrdered reports whether start is strictly before end, comparing both as
// 24-hour wall-clock times on the same day.
func IsOrdered(start, end string) bool {
	return start < end
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}

// IsPast reports whether the civil date + start time, interpreted in loc, is
// strictly earlier than the current moment in that same zone. The zone is
// always the configured campus zone, never the server's ambient one, so the
// server and its clients agree on what "today" means.
func IsPast(date, start string, loc *time.Location) (bool, error) {
	slot, err := time.ParseInLocation(DateLayout+" "+clockLayout, date+" "+start, loc)
	if err != nil {
		return false, fmt.Errorf("%w: %q %q", ErrInvalidTime, date, start)
	}
	return slot.Before(time.Now().In(loc)), nil
}

// ParseDate validates a YYYY-MM-DD civil date string.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// IsCanonical reports whether s is a valid zero-padded 24-hour "HH:MM" value.
func IsCanonical(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	_, err := time.Parse(clockLayout, s)
	return err == nil
}

func to24Hour(hourStr, minStr, meridiem string) (string, error) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 1 || hour > 12 {
		return "", fmt.Errorf("%w: hour %q", ErrInvalidTime, hourStr)
	}
	minute, err := strconv.Atoi(minStr)
	if err != nil || minute > 59 {
		return "", fmt.Errorf("%w: minute %q", ErrInvalidTime, minStr)
	}

	pm := strings.EqualFold(meridiem, "PM")
	if hour == 12 {
		hour = 0
	}
	if pm {
		hour += 12
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

func to12Hour(s string) (string, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	hour := t.Hour()
	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	hour = hour % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute(), meridiem), nil
}
