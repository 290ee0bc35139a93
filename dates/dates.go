// Package dates normalizes the loosely-specified date tokens used by ledger
// filters. Dates travel as strings (YYYY-MM-DD) end to end so the store can
// compare them lexicographically.
package dates

import (
	"time"

	"github.com/Tibluka/voicetaskapi/models"
)

const (
	// DayLayout is the canonical calendar-date format.
	DayLayout = "2006-01-02"
	// MonthLayout is the canonical year-month format.
	MonthLayout = "2006-01"
	// YearLayout is the canonical year format.
	YearLayout = "2006"
)

// Range turns a date token of granularity year ("2024"), month ("2024-06")
// or day ("2024-06-15") into an inclusive start / exclusive end pair of
// calendar dates: the first day of the period and the first day of the next
// period at the same granularity.
func Range(token string) (start, end string, err error) {
	switch len(token) {
	case len(YearLayout):
		t, perr := time.Parse(YearLayout, token)
		if perr != nil {
			return "", "", models.NewValidationError("date")
		}
		return t.Format(DayLayout), t.AddDate(1, 0, 0).Format(DayLayout), nil
	case len(MonthLayout):
		t, perr := time.Parse(MonthLayout, token)
		if perr != nil {
			return "", "", models.NewValidationError("date")
		}
		return t.Format(DayLayout), t.AddDate(0, 1, 0).Format(DayLayout), nil
	case len(DayLayout):
		t, perr := time.Parse(DayLayout, token)
		if perr != nil {
			return "", "", models.NewValidationError("date")
		}
		return t.Format(DayLayout), t.AddDate(0, 0, 1).Format(DayLayout), nil
	default:
		return "", "", models.NewValidationError("date")
	}
}

// ParseDay parses a strict YYYY-MM-DD calendar date.
func ParseDay(date string) (time.Time, error) {
	t, err := time.Parse(DayLayout, date)
	if err != nil {
		return time.Time{}, models.NewValidationError("date")
	}
	return t, nil
}

// ValidYearMonth reports whether s is a strict YYYY-MM token.
func ValidYearMonth(s string) bool {
	_, err := time.Parse(MonthLayout, s)
	return err == nil && len(s) == len(MonthLayout)
}

// AddMonths advances a calendar date by n months, clamping to the last day
// of the target month instead of normalizing past it (Jan 31 + 1 month is
// Feb 28/29, not Mar 2).
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, t.Location()).AddDate(0, n, 0)
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

// CurrentMonth returns the current YYYY-MM token.
func CurrentMonth() string {
	return time.Now().Format(MonthLayout)
}
