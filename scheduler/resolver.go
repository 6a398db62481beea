package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"app/models"
)

// resolveSchedule re-validates every item against its actual date, repairs
// conflicting times where possible and returns the resolved candidates
// keyed by activity id for the summary stage.
//
// The pass is intentionally single-shot: a repaired time is not re-checked
// within the same pass, so re-running it over a partially repaired schedule
// may adjust again. Callers rely on that behavior staying put.
func (e *Engine) resolveSchedule(ctx context.Context, schedule []models.ScheduleDay) map[string]*models.ActivityCandidate {
	resolved := e.lookupAll(ctx, distinctActivityIDs(schedule))

	for di := range schedule {
		day := &schedule[di]
		date, err := time.Parse(dateLayout, day.Date)
		if err != nil {
			log.Printf("skipping conflict check for unparseable date %q", day.Date)
			continue
		}
		for ii := range day.Items {
			item := &day.Items[ii]
			cand := resolved[item.ActivityID]
			if cand == nil {
				log.Printf("%s: schedule references unknown activity %s", KindActivityNotFound, item.ActivityID)
				item.Notes = appendNote(item.Notes, "Warning: activity not found in catalog.")
				continue
			}
			open, err := IsOpenAt(cand, date, item.ScheduledTime)
			if err != nil {
				item.Notes = appendNote(item.Notes, fmt.Sprintf("Warning: invalid scheduled time %q.", item.ScheduledTime))
				continue
			}
			if open {
				continue
			}
			reason := conflictReason(cand, date)
			if alt, ok := e.findAlternativeTime(cand, date, item); ok {
				item.ScheduledTime = alt
				item.Notes = appendNote(item.Notes, "Time adjusted due to working hours.")
			} else {
				item.Notes = appendNote(item.Notes, "Warning: "+reason)
			}
		}
	}
	return resolved
}

// lookupAll fans out catalog lookups for the distinct ids. Failed lookups
// degrade to nil entries; they never abort the pass.
func (e *Engine) lookupAll(ctx context.Context, ids []string) map[string]*models.ActivityCandidate {
	resolved := make(map[string]*models.ActivityCandidate, len(ids))
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			cand, err := e.source.Lookup(ctx, id)
			if err != nil {
				log.Printf("activity lookup %s failed: %v", id, err)
				cand = nil
			}
			mu.Lock()
			resolved[id] = cand
			mu.Unlock()
		}(id)
	}
	wg.Wait()
	return resolved
}

func distinctActivityIDs(schedule []models.ScheduleDay) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, day := range schedule {
		for _, item := range day.Items {
			if item.ActivityID == "" || seen[item.ActivityID] {
				continue
			}
			seen[item.ActivityID] = true
			ids = append(ids, item.ActivityID)
		}
	}
	return ids
}

// conflictReason explains why the scheduled time failed validation,
// including the actual hours where a window exists.
func conflictReason(cand *models.ActivityCandidate, date time.Time) string {
	weekday := weekdayKey(date)
	day, ok := cand.WorkingHours[weekday]
	if !ok || !day.IsOpen {
		return fmt.Sprintf("closed on that weekday (%s)", weekday)
	}
	return fmt.Sprintf("outside open-close window (%s-%s)", day.OpenTime, day.CloseTime)
}

// findAlternativeTime enumerates 30-minute slots inside the working window
// of the actual date, leaving room for the item's estimated duration before
// closing, and picks the slot closest to the original time that still
// differs from it by at least the configured minimum shift.
func (e *Engine) findAlternativeTime(cand *models.ActivityCandidate, date time.Time, item *models.ScheduleItem) (string, bool) {
	day, ok := cand.WorkingHours[weekdayKey(date)]
	if !ok || !day.IsOpen {
		// No alternative exists on a closed day; other dates are never tried.
		return "", false
	}
	if day.OpenTime == "" || day.CloseTime == "" {
		return "", false
	}
	open, err := parseClock(day.OpenTime)
	if err != nil {
		return "", false
	}
	close, err := parseClock(day.CloseTime)
	if err != nil {
		return "", false
	}
	if close < open {
		close += minutesPerDay
	}
	original, err := parseClock(item.ScheduledTime)
	if err != nil {
		return "", false
	}

	duration := parseDurationMinutes(item.Duration)
	latest := close - duration
	step := e.cfg.RepairStepMinutes
	if step <= 0 {
		step = 30
	}

	best := -1
	bestDistance := 0
	for t := open; t <= latest; t += step {
		slot := t % minutesPerDay
		distance := absInt(slot - original)
		if distance < e.cfg.RepairMinShiftMinutes {
			continue
		}
		if best < 0 || distance < bestDistance {
			best = slot
			bestDistance = distance
		}
	}
	if best < 0 {
		return "", false
	}
	return formatClock(best), true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// appendNote concatenates schedule-item notes, keeping them single-line.
func appendNote(notes, addition string) string {
	return strings.TrimSpace(strings.TrimSpace(notes) + " " + addition)
}
