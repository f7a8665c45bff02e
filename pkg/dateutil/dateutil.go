package dateutil

import (
	"fmt"
	"math"
	"time"
)

const day = 24 * time.Hour

// Date builds a midnight UTC date
func Date(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO date (2006-01-02) as midnight UTC
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// ParseInstant accepts either RFC3339 or a plain ISO date
func ParseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return ParseDate(s)
}

// TruncateToDay strips the clock portion of t in its own location
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysUntil returns the number of whole or partial days from now until date,
// rounded up. Negative when date is in the past.
func DaysUntil(now, date time.Time) int {
	return int(math.Ceil(float64(date.Sub(now)) / float64(day)))
}

// IsOverdue reports whether date lies strictly before now
func IsOverdue(date, now time.Time) bool {
	return date.Before(now)
}

// UKTaxYearStart returns 6 April of the given year
func UKTaxYearStart(year int) time.Time {
	return Date(year, time.April, 6)
}

// TaxYearLabel renders the tax year starting in year, e.g. 2026/27
func TaxYearLabel(year int) string {
	return fmt.Sprintf("%d/%02d", year, (year+1)%100)
}

// QuarterlyUpdateDeadlines returns the four MTD quarterly update deadlines for
// the tax year starting 6 April of year: 7 Aug, 7 Nov, 7 Feb and 7 May.
func QuarterlyUpdateDeadlines(year int) [4]time.Time {
	return [4]time.Time{
		Date(year, time.August, 7),
		Date(year, time.November, 7),
		Date(year+1, time.February, 7),
		Date(year+1, time.May, 7),
	}
}

// FinalDeclarationDeadline is 31 January following the end of the tax year
func FinalDeclarationDeadline(year int) time.Time {
	return Date(year+2, time.January, 31)
}

// FormatUK renders a date as en-GB long form, e.g. 6 April 2026
func FormatUK(t time.Time) string {
	return t.Format("2 January 2006")
}

// FormatISO renders a date as 2006-01-02
func FormatISO(t time.Time) string {
	return t.Format("2006-01-02")
}
