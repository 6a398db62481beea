package scheduler

import (
	"testing"
	"time"

	"app/models"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func weekdayCandidate(open, close string, days ...string) *models.ActivityCandidate {
	hours := models.WorkingHours{}
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"} {
		hours[day] = models.DayHours{IsOpen: false}
	}
	for _, day := range days {
		hours[day] = models.DayHours{IsOpen: true, OpenTime: open, CloseTime: close}
	}
	return &models.ActivityCandidate{
		ActivityID:   "act_test",
		Theme:        "skincare",
		WorkingHours: hours,
		Active:       true,
	}
}

func TestIsOpenAtWithinWindow(t *testing.T) {
	cand := weekdayCandidate("09:00", "18:00", "monday", "tuesday", "wednesday", "thursday", "friday")
	monday := mustDate(t, "2024-12-16")

	cases := []struct {
		clock string
		want  bool
	}{
		{"09:00", true},
		{"12:30", true},
		{"18:00", true},
		{"08:59", false},
		{"18:01", false},
	}
	for _, c := range cases {
		got, err := IsOpenAt(cand, monday, c.clock)
		if err != nil {
			t.Fatalf("IsOpenAt(%q) returned error: %v", c.clock, err)
		}
		if got != c.want {
			t.Fatalf("IsOpenAt(%q) = %v; want %v", c.clock, got, c.want)
		}
	}
}

func TestIsOpenAtClosedDay(t *testing.T) {
	cand := weekdayCandidate("09:00", "18:00", "monday", "tuesday", "wednesday", "thursday", "friday")
	saturday := mustDate(t, "2024-12-21")

	open, err := IsOpenAt(cand, saturday, "10:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if open {
		t.Fatalf("expected closed on saturday")
	}
}

func TestIsOpenAtMissingEntryIsClosed(t *testing.T) {
	cand := &models.ActivityCandidate{WorkingHours: models.WorkingHours{}}
	open, err := IsOpenAt(cand, mustDate(t, "2024-12-16"), "10:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if open {
		t.Fatalf("expected missing weekday entry to count as closed")
	}
}

func TestIsOpenAtAllDayWhenNoTimesRecorded(t *testing.T) {
	cand := &models.ActivityCandidate{WorkingHours: models.WorkingHours{
		"monday": {IsOpen: true},
	}}
	open, err := IsOpenAt(cand, mustDate(t, "2024-12-16"), "03:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !open {
		t.Fatalf("open day without recorded times should be open all day")
	}
}

func TestIsOpenAtOvernightWindow(t *testing.T) {
	cand := weekdayCandidate("22:00", "02:00", "friday")
	friday := mustDate(t, "2024-12-20")

	cases := []struct {
		clock string
		want  bool
	}{
		{"23:00", true},
		{"22:00", true},
		{"01:30", true},
		{"02:00", true},
		{"12:00", false},
		{"21:59", false},
	}
	for _, c := range cases {
		got, err := IsOpenAt(cand, friday, c.clock)
		if err != nil {
			t.Fatalf("IsOpenAt(%q) returned error: %v", c.clock, err)
		}
		if got != c.want {
			t.Fatalf("overnight IsOpenAt(%q) = %v; want %v", c.clock, got, c.want)
		}
	}
}

func TestIsOpenAtMalformedTime(t *testing.T) {
	cand := weekdayCandidate("09:00", "18:00", "monday")
	monday := mustDate(t, "2024-12-16")

	for _, clock := range []string{"", "9:00", "09:60", "25:00", "0900", "ab:cd", "09:00:00"} {
		if _, err := IsOpenAt(cand, monday, clock); err == nil {
			t.Fatalf("expected error for malformed time %q", clock)
		}
	}
}

func TestParseClockFormatClock(t *testing.T) {
	minutes, err := parseClock("14:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minutes != 870 {
		t.Fatalf("parseClock(14:30) = %d; want 870", minutes)
	}
	if got := formatClock(870); got != "14:30" {
		t.Fatalf("formatClock(870) = %q; want 14:30", got)
	}
	// Wraps past midnight.
	if got := formatClock(25 * 60); got != "01:00" {
		t.Fatalf("formatClock(1500) = %q; want 01:00", got)
	}
}

func TestParseDurationMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"2h", 120},
		{"1h30", 90},
		{"1h30m", 90},
		{"30min", 30},
		{"45m", 45},
		{"5h", 300},
		{"", 120},
		{"soon", 120},
	}
	for _, c := range cases {
		if got := parseDurationMinutes(c.in); got != c.want {
			t.Fatalf("parseDurationMinutes(%q) = %d; want %d", c.in, got, c.want)
		}
	}
}
