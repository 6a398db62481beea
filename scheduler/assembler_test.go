package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"app/models"
)

func TestInclusiveDays(t *testing.T) {
	start := mustDate(t, "2024-12-15")
	end := mustDate(t, "2024-12-17")
	if got := inclusiveDays(start, end); got != 3 {
		t.Fatalf("inclusiveDays = %d; want 3", got)
	}
	if got := inclusiveDays(start, start); got != 1 {
		t.Fatalf("inclusiveDays same day = %d; want 1", got)
	}
}

func TestPerDayTarget(t *testing.T) {
	cases := []struct{ themes, want int }{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 3},
		{5, 3},
	}
	for _, c := range cases {
		if got := perDayTarget(c.themes); got != c.want {
			t.Fatalf("perDayTarget(%d) = %d; want %d", c.themes, got, c.want)
		}
	}
}

func TestAssembleScheduleRoundRobinUnderBudget(t *testing.T) {
	e := newTestEngine(&stubSource{}, nil)
	pool := []models.ActivityCandidate{
		testCandidate("act_a", "skincare", "Seoul", 300),
		testCandidate("act_b", "skincare", "Seoul", 450),
	}
	req := testRequest("skincare")

	schedule := e.assembleSchedule(req, mustDate(t, "2024-12-15"), mustDate(t, "2024-12-17"), pool)

	assert.Len(t, schedule, 3)
	// One theme means one item per day; the third draw cycles back to
	// act_a, which the remaining 250 cannot cover, so day 3 stays empty.
	assert.Len(t, schedule[0].Items, 1)
	assert.Equal(t, "act_a", schedule[0].Items[0].ActivityID)
	assert.Len(t, schedule[1].Items, 1)
	assert.Equal(t, "act_b", schedule[1].Items[0].ActivityID)
	assert.Empty(t, schedule[2].Items)

	consumed := 0.0
	for _, day := range schedule {
		consumed += day.TotalCost
	}
	assert.Equal(t, 750.0, consumed)
	assert.LessOrEqual(t, consumed, req.Budget)
}

func TestAssembleScheduleSkipAdvancesCursor(t *testing.T) {
	e := newTestEngine(&stubSource{}, nil)
	pool := []models.ActivityCandidate{
		testCandidate("act_big", "skincare", "Seoul", 500),
		testCandidate("act_small", "skincare", "Seoul", 100),
	}
	req := testRequest("skincare")
	req.Budget = 550

	schedule := e.assembleSchedule(req, mustDate(t, "2024-12-15"), mustDate(t, "2024-12-16"), pool)

	// Day 1 takes act_big (remaining 50). Day 2 draws act_small, cannot
	// afford it, and the cursor moves on; the skipped candidate is not
	// retried.
	assert.Len(t, schedule, 2)
	assert.Len(t, schedule[0].Items, 1)
	assert.Equal(t, "act_big", schedule[0].Items[0].ActivityID)
	assert.Empty(t, schedule[1].Items)
}

func TestAssembleScheduleMondayProxySlotting(t *testing.T) {
	e := newTestEngine(&stubSource{}, nil)
	cand := testCandidate("act_a", "skincare", "Seoul", 10)
	cand.WorkingHours["monday"] = models.DayHours{IsOpen: true, OpenTime: "10:00", CloseTime: "20:00"}
	pool := []models.ActivityCandidate{cand}
	req := testRequest("skincare", "dermatology", "wellness")

	schedule := e.assembleSchedule(req, mustDate(t, "2024-12-15"), mustDate(t, "2024-12-15"), pool)

	// Three themes give three slots per day, spaced three hours from the
	// Monday opening time regardless of the actual weekday.
	items := schedule[0].Items
	if assert.Len(t, items, 3) {
		assert.Equal(t, "10:00", items[0].ScheduledTime)
		assert.Equal(t, "13:00", items[1].ScheduledTime)
		assert.Equal(t, "16:00", items[2].ScheduledTime)
	}
}

func TestAssembleScheduleRotationFallback(t *testing.T) {
	e := newTestEngine(&stubSource{}, nil)
	cand := testCandidate("act_a", "skincare", "Seoul", 10)
	cand.WorkingHours["monday"] = models.DayHours{IsOpen: false}
	pool := []models.ActivityCandidate{cand}
	req := testRequest("skincare", "dermatology", "wellness")

	schedule := e.assembleSchedule(req, mustDate(t, "2024-12-15"), mustDate(t, "2024-12-15"), pool)

	items := schedule[0].Items
	if assert.Len(t, items, 3) {
		assert.Equal(t, "09:00", items[0].ScheduledTime)
		assert.Equal(t, "13:00", items[1].ScheduledTime)
		assert.Equal(t, "16:00", items[2].ScheduledTime)
	}
}

func TestAssembleScheduleDurations(t *testing.T) {
	e := newTestEngine(&stubSource{}, nil)
	pool := []models.ActivityCandidate{
		testCandidate("act_derma", "dermatology", "Seoul", 10),
		testCandidate("act_face", "face surgery", "Seoul", 10),
		testCandidate("act_other", "octopus yoga", "Seoul", 10),
	}
	req := testRequest("dermatology", "face surgery", "octopus yoga")

	schedule := e.assembleSchedule(req, mustDate(t, "2024-12-16"), mustDate(t, "2024-12-16"), pool)

	items := schedule[0].Items
	if assert.Len(t, items, 3) {
		assert.Equal(t, "1h30", items[0].Duration)
		assert.Equal(t, "5h", items[1].Duration)
		assert.Equal(t, "2h", items[2].Duration)
	}
}

func TestAssembleScheduleDayTotalsMatchItems(t *testing.T) {
	e := newTestEngine(&stubSource{}, nil)
	pool := []models.ActivityCandidate{
		testCandidate("act_a", "skincare", "Seoul", 120),
		testCandidate("act_b", "dermatology", "Seoul", 80),
	}
	req := testRequest("skincare", "dermatology")

	schedule := e.assembleSchedule(req, mustDate(t, "2024-12-15"), mustDate(t, "2024-12-18"), pool)

	prices := map[string]float64{"act_a": 120, "act_b": 80}
	for _, day := range schedule {
		sum := 0.0
		for _, item := range day.Items {
			sum += prices[item.ActivityID]
		}
		assert.Equal(t, sum, day.TotalCost, "day %d", day.DayNumber)
	}
}
