// Package workday implements the institution's calendar rules: the Costa
// Rica "today", business days and the hours of a school day.
package workday

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DayStart and DayEnd bound partial-day requests, in minutes after midnight.
	DayStart = 7 * 60
	DayEnd   = 16*60 + 30

	// MaxPartialMinutes is the longest a partial day (media jornada) may be.
	MaxPartialMinutes = 240

	// JustificationWindow is how many business days back a justification or
	// clock omission may refer to.
	JustificationWindow = 2

	dateLayout = "2006-01-02"
)

// costaRica has no DST, so the fixed offset is exact when tzdata is missing.
var costaRica = time.FixedZone("CST", -6*60*60)

// Location loads the named zone, falling back to Costa Rica's fixed offset.
func Location(name string) *time.Location {
	if name == "" {
		return costaRica
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return costaRica
	}
	return loc
}

// DateOf returns the calendar date of t in loc as midnight UTC.
func DateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses YYYY-MM-DD into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(s))
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(d time.Time) string {
	return d.Format(dateLayout)
}

// IsBusinessDay reports whether d falls Monday through Friday.
func IsBusinessDay(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// PreviousBusinessDays returns the n business days strictly before today,
// most recent first.
func PreviousBusinessDays(today time.Time, n int) []time.Time {
	days := make([]time.Time, 0, n)
	d := today
	for len(days) < n {
		d = d.AddDate(0, 0, -1)
		if IsBusinessDay(d) {
			days = append(days, d)
		}
	}
	return days
}

// InJustificationWindow reports whether d is one of the business days a
// justification may cover.
func InJustificationWindow(d, today time.Time) bool {
	for _, allowed := range PreviousBusinessDays(today, JustificationWindow) {
		if allowed.Equal(d) {
			return true
		}
	}
	return false
}

// ParseClock parses "HH:MM" (or "HH:MM:SS") into minutes after midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time %q", s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}

	return h*60 + m, nil
}

// FormatClock renders minutes after midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ValidatePartialDay checks a media jornada time span. It returns the
// normalised "HH:MM" start and end.
func ValidatePartialDay(start, end string) (string, string, error) {
	s, err := ParseClock(start)
	if err != nil {
		return "", "", fmt.Errorf("hora_inicio inválida")
	}
	e, err := ParseClock(end)
	if err != nil {
		return "", "", fmt.Errorf("hora_fin inválida")
	}

	if s < DayStart || s > DayEnd || e < DayStart || e > DayEnd {
		return "", "", fmt.Errorf("las horas deben estar entre %s y %s", FormatClock(DayStart), FormatClock(DayEnd))
	}
	if e <= s {
		return "", "", fmt.Errorf("hora_fin debe ser posterior a hora_inicio")
	}
	if e-s > MaxPartialMinutes {
		return "", "", fmt.Errorf("la media jornada no puede exceder %d horas", MaxPartialMinutes/60)
	}

	return FormatClock(s), FormatClock(e), nil
}

// CompactHours renders a span as "HHMM-HHMM", the short form stored with
// each request.
func CompactHours(start, end string) string {
	return strings.ReplaceAll(start, ":", "") + "-" + strings.ReplaceAll(end, ":", "")
}
