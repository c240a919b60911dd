package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	layoutDate    = "02/01/2006"
	layoutTime    = "15:04"
	layoutISODate = "2006-01-02"
	invalidPeriod = "Thời gian không hợp lệ"
	hourUnit      = "giờ"
	minuteUnit    = "phút"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FormatDate renders t as dd/mm/yyyy in local time.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// FormatTime renders t as HH:MM in local time.
func FormatTime(t time.Time) string {
	return t.In(time.Local).Format(layoutTime)
}

// ParseISO accepts RFC 3339 timestamps with or without fractional seconds.
func ParseISO(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
}

// ParseDay parses YYYY-MM-DD as the start of that day in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(layoutISODate, strings.TrimSpace(s), loc)
}

// FindDuration describes the travel time between departure and arrival,
// e.g. "1 giờ 30 phút".
func FindDuration(departure, arrival time.Time) string {
	if arrival.Before(departure) {
		return invalidPeriod
	}
	minutes := int(arrival.Sub(departure) / time.Minute)
	hours, rest := minutes/60, minutes%60
	switch {
	case hours == 0:
		return fmt.Sprintf("%d %s", rest, minuteUnit)
	case rest == 0:
		return fmt.Sprintf("%d %s", hours, hourUnit)
	default:
		return fmt.Sprintf("%d %s %d %s", hours, hourUnit, rest, minuteUnit)
	}
}
