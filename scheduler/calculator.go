package scheduler

import (
	"sort"
	"strings"

	"app/models"
)

// tierMultiplier maps the solution type to its cost factor. Unknown or
// empty tiers fall back to the topranking factor of 1.0.
func (e *Engine) tierMultiplier(solutionType string) float64 {
	if m, ok := e.cfg.TierMultipliers[strings.ToLower(solutionType)]; ok {
		return m
	}
	return 1.0
}

// effectivePrice resolves an item's price: the custom override wins,
// otherwise the resolved candidate's amount, otherwise zero.
func effectivePrice(item *models.ScheduleItem, resolved map[string]*models.ActivityCandidate) float64 {
	if item.CustomPrice != nil {
		return *item.CustomPrice
	}
	if cand := resolved[item.ActivityID]; cand != nil {
		return cand.EffectiveAmount()
	}
	return 0
}

// finalizeSchedule recomputes day totals from effective prices, applies the
// tier multiplier and builds the summary.
//
// The multiplier is applied once to the aggregate total and again,
// independently, to each day total. The two-step application matches the
// billing contract and must not be collapsed into a single pass, even
// though it can accumulate rounding drift over long trips.
func (e *Engine) finalizeSchedule(req *models.TripRequest, schedule []models.ScheduleDay, resolved map[string]*models.ActivityCandidate) models.ScheduleSummary {
	multiplier := e.tierMultiplier(req.SolutionType)

	totalRaw := 0.0
	totalItems := 0
	themes := make(map[string]bool)
	idSet := make(map[string]bool)

	for di := range schedule {
		day := &schedule[di]
		dayRaw := 0.0
		for ii := range day.Items {
			item := &day.Items[ii]
			dayRaw += effectivePrice(item, resolved)
			totalItems++
			idSet[item.ActivityID] = true
			if cand := resolved[item.ActivityID]; cand != nil {
				themes[strings.ToLower(cand.Theme)] = true
			}
		}
		totalRaw += dayRaw
		day.TotalCost = dayRaw * multiplier
	}

	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return models.ScheduleSummary{
		TotalDays:       len(schedule),
		TotalActivities: totalItems,
		ThemesCovered:   len(themes),
		EstimatedCost:   totalRaw * multiplier,
		ActivityIDs:     ids,
	}
}
