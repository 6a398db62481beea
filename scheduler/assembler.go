package scheduler

import (
	"log"
	"time"

	"app/models"
)

const dateLayout = "2006-01-02"

// maxItemsPerDay bounds the per-day item target regardless of how many
// themes were requested.
const maxItemsPerDay = 3

// inclusiveDays counts calendar days from start through end.
func inclusiveDays(start, end time.Time) int {
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}

// perDayTarget derives how many items each day aims for.
func perDayTarget(themeCount int) int {
	if themeCount < 1 {
		return 1
	}
	if themeCount > maxItemsPerDay {
		return maxItemsPerDay
	}
	return themeCount
}

// assembleSchedule turns the ranked pool into day-by-day items. Items are
// drawn round-robin from the pool; a candidate the remaining budget cannot
// cover is skipped but the cursor still advances, so it is not retried.
// Budget consumption is strictly monotonic across the whole trip.
func (e *Engine) assembleSchedule(req *models.TripRequest, start, end time.Time, pool []models.ActivityCandidate) []models.ScheduleDay {
	days := inclusiveDays(start, end)
	target := perDayTarget(len(req.Themes))
	remaining := req.Budget

	schedule := make([]models.ScheduleDay, 0, days)
	cursor := 0
	for dayIdx := 0; dayIdx < days; dayIdx++ {
		date := start.AddDate(0, 0, dayIdx)
		day := models.ScheduleDay{
			Date:      date.Format(dateLayout),
			DayNumber: dayIdx + 1,
			Items:     []models.ScheduleItem{},
		}
		for order := 0; order < target; order++ {
			cand := pool[cursor%len(pool)]
			cursor++
			price := cand.EffectiveAmount()
			if price > remaining {
				continue
			}
			remaining -= price
			day.TotalCost += price
			day.Items = append(day.Items, models.ScheduleItem{
				ActivityID:    cand.ActivityID,
				ScheduledTime: e.slotTime(&cand, len(day.Items)),
				Duration:      e.cfg.durationForTheme(cand.Theme),
				Status:        models.ItemPlanned,
			})
		}
		if len(day.Items) < target {
			log.Printf("%s: day %d filled %d of %d items, remaining budget %.2f",
				KindSchedulingExhausted, day.DayNumber, len(day.Items), target, remaining)
		}
		schedule = append(schedule, day)
	}
	return schedule
}

// slotTime places an item using the candidate's Monday opening time as a
// weekly-pattern proxy, spaced three hours apart within the day. Without a
// recorded Monday opening, a fixed rotation applies. The conflict resolver
// later re-validates against the actual date.
func (e *Engine) slotTime(cand *models.ActivityCandidate, orderInDay int) string {
	monday, ok := cand.WorkingHours["monday"]
	if ok && monday.IsOpen && monday.OpenTime != "" {
		if open, err := parseClock(monday.OpenTime); err == nil {
			return formatClock(open + e.cfg.ItemSpacingMinutes*orderInDay)
		}
	}
	if len(e.cfg.RotationTimes) == 0 {
		return "09:00"
	}
	return e.cfg.RotationTimes[orderInDay%len(e.cfg.RotationTimes)]
}
