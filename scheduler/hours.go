package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"app/models"
)

const minutesPerDay = 24 * 60

// parseClock converts a strict "HH:MM" string into minutes since midnight.
func parseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, newError(KindInvalidRequest, "malformed time %q, expected HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, newError(KindInvalidRequest, "malformed time %q, hour out of range", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, newError(KindInvalidRequest, "malformed time %q, minute out of range", s)
	}
	return hour*60 + minute, nil
}

// formatClock renders minutes since midnight as "HH:MM", wrapping past
// midnight.
func formatClock(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// weekdayKey maps a date onto the lowercase weekday keys of a weekly
// working-hours table.
func weekdayKey(date time.Time) string {
	return strings.ToLower(date.Weekday().String())
}

// withinWindow checks minutes against an [open, close] window, treating a
// close earlier than the open as an overnight window.
func withinWindow(minutes, open, close int) bool {
	if close < open {
		return minutes >= open || minutes <= close
	}
	return minutes >= open && minutes <= close
}

// openAtMinutes evaluates one weekly entry at the given minutes since
// midnight. An open day with no recorded times counts as open all day.
func openAtMinutes(day models.DayHours, minutes int) (bool, error) {
	if !day.IsOpen {
		return false, nil
	}
	if day.OpenTime == "" || day.CloseTime == "" {
		return true, nil
	}
	open, err := parseClock(day.OpenTime)
	if err != nil {
		return false, err
	}
	close, err := parseClock(day.CloseTime)
	if err != nil {
		return false, err
	}
	return withinWindow(minutes, open, close), nil
}

// IsOpenAt reports whether the candidate is open at the given date and
// clock time ("HH:MM"). A malformed clock string is an error, never a
// silent false. The check is total for all well-formed input.
func IsOpenAt(candidate *models.ActivityCandidate, date time.Time, clock string) (bool, error) {
	minutes, err := parseClock(clock)
	if err != nil {
		return false, err
	}
	day, ok := candidate.WorkingHours[weekdayKey(date)]
	if !ok {
		return false, nil
	}
	return openAtMinutes(day, minutes)
}
