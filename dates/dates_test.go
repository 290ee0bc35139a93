package dates

import (
	"testing"
	"time"

	"github.com/Tibluka/voicetaskapi/models"
)

func TestRange(t *testing.T) {
	tests := []struct {
		token string
		start string
		end   string
	}{
		{"2024", "2024-01-01", "2025-01-01"},
		{"2024-06", "2024-06-01", "2024-07-01"},
		{"2024-12", "2024-12-01", "2025-01-01"},
		{"2024-06-15", "2024-06-15", "2024-06-16"},
		{"2024-12-31", "2024-12-31", "2025-01-01"},
		{"2024-02-29", "2024-02-29", "2024-03-01"},
	}
	for _, tc := range tests {
		start, end, err := Range(tc.token)
		if err != nil {
			t.Errorf("Range(%q): unexpected error: %v", tc.token, err)
			continue
		}
		if start != tc.start || end != tc.end {
			t.Errorf("Range(%q) = [%s, %s), want [%s, %s)", tc.token, start, end, tc.start, tc.end)
		}
	}
}

func TestRangeInvalid(t *testing.T) {
	for _, token := range []string{"", "24", "2024-13", "2024-06-32", "2024/06/15", "junk-date"} {
		_, _, err := Range(token)
		if !models.IsValidation(err) {
			t.Errorf("Range(%q): want validation error, got %v", token, err)
		}
	}
}

func TestParseDay(t *testing.T) {
	day, err := ParseDay("2024-06-15")
	if err != nil {
		t.Fatalf("ParseDay: %v", err)
	}
	if day.Format(DayLayout) != "2024-06-15" {
		t.Errorf("round trip = %s", day.Format(DayLayout))
	}
	if _, err := ParseDay("2024-02-30"); !models.IsValidation(err) {
		t.Errorf("ParseDay(2024-02-30): want validation error, got %v", err)
	}
}

func TestValidYearMonth(t *testing.T) {
	if !ValidYearMonth("2024-06") {
		t.Error("2024-06 should be valid")
	}
	for _, s := range []string{"2024", "2024-13", "2024-06-15", "06/2024"} {
		if ValidYearMonth(s) {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestAddMonthsClamps(t *testing.T) {
	tests := []struct {
		base string
		n    int
		want string
	}{
		{"2024-01-15", 1, "2024-02-15"},
		{"2024-01-31", 1, "2024-02-29"},
		{"2023-01-31", 1, "2023-02-28"},
		{"2024-01-31", 3, "2024-04-30"},
		{"2024-11-30", 2, "2025-01-30"},
		{"2024-01-31", 12, "2025-01-31"},
	}
	for _, tc := range tests {
		base, err := time.Parse(DayLayout, tc.base)
		if err != nil {
			t.Fatalf("parse %s: %v", tc.base, err)
		}
		got := AddMonths(base, tc.n).Format(DayLayout)
		if got != tc.want {
			t.Errorf("AddMonths(%s, %d) = %s, want %s", tc.base, tc.n, got, tc.want)
		}
	}
}
