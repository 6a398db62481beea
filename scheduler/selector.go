package scheduler

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"

	"app/catalog"
	"app/models"
)

// queryLeniency widens the catalog price ceiling past the naive per-theme
// split so slightly-over-budget options still reach the ranking stage.
const queryLeniency = 1.2

// startingFromLeniency gives "starting from" prices extra slack, since the
// quoted amount is a floor, not the expected spend.
const startingFromLeniency = 1.3

// selectCandidates runs the full selection pipeline: per-theme catalog
// fan-out, dedupe, budget and availability filtering, ranking and the
// per-theme cap.
func (e *Engine) selectCandidates(ctx context.Context, req *models.TripRequest) ([]models.ActivityCandidate, error) {
	themeCount := float64(len(req.Themes))
	queryMaxPrice := req.Budget / themeCount * queryLeniency

	// Theme queries are independent; fan out and tolerate partial failure.
	perTheme := make([][]models.ActivityCandidate, len(req.Themes))
	queryErrs := make([]error, len(req.Themes))
	var wg sync.WaitGroup
	for i, theme := range req.Themes {
		wg.Add(1)
		go func(i int, theme string) {
			defer wg.Done()
			candidates, err := e.source.Query(ctx, catalog.QueryFilter{
				Theme:    theme,
				Region:   req.Region,
				MaxPrice: queryMaxPrice,
			})
			perTheme[i] = candidates
			queryErrs[i] = err
		}(i, theme)
	}
	wg.Wait()

	failed := 0
	for i, err := range queryErrs {
		if err != nil {
			failed++
			log.Printf("%s: catalog query for theme %q failed: %v", KindPartialCatalogFailure, req.Themes[i], err)
		}
	}
	if failed == len(req.Themes) {
		return nil, newError(KindCatalogUnavailable, "all %d theme queries failed", len(req.Themes))
	}

	// Merge in theme order, first occurrence of an id wins.
	seen := make(map[string]bool)
	var pool []models.ActivityCandidate
	for _, candidates := range perTheme {
		for _, cand := range candidates {
			if seen[cand.ActivityID] {
				continue
			}
			seen[cand.ActivityID] = true
			pool = append(pool, cand)
		}
	}

	budgetPerTheme := req.Budget * e.cfg.BudgetScale / themeCount
	maxAllowed := budgetPerTheme * queryLeniency

	filtered := pool[:0]
	for _, cand := range pool {
		if !cand.Active {
			continue
		}
		if themeIndex(req.Themes, cand.Theme) < 0 {
			continue
		}
		if !budgetCompatible(cand.Price, maxAllowed) {
			continue
		}
		if !e.coarselyAvailable(&cand) {
			continue
		}
		filtered = append(filtered, cand)
	}

	e.rankCandidates(req, filtered, budgetPerTheme)
	filtered = e.capPerTheme(filtered)

	if len(filtered) == 0 {
		return nil, newError(KindNoActivitiesFound, "no activities matched themes %v in %s", req.Themes, req.Region)
	}
	return filtered, nil
}

// budgetCompatible applies the pricing-kind rules against the per-theme
// ceiling.
func budgetCompatible(price models.Price, maxAllowed float64) bool {
	switch price.Kind {
	case models.PriceStartingFrom:
		return price.Amount <= maxAllowed*startingFromLeniency
	case models.PriceRange:
		// Only the lower bound has to fit.
		return price.Amount <= maxAllowed
	default:
		return price.Amount <= maxAllowed
	}
}

// coarselyAvailable drops candidates that are never open, or never open at
// any of the common visiting hours Monday through Friday. Advisory only;
// the resolver still re-checks real dates.
func (e *Engine) coarselyAvailable(cand *models.ActivityCandidate) bool {
	anyOpen := false
	for _, day := range cand.WorkingHours {
		if day.IsOpen {
			anyOpen = true
			break
		}
	}
	if !anyOpen {
		return false
	}
	for _, weekday := range []string{"monday", "tuesday", "wednesday", "thursday", "friday"} {
		day, ok := cand.WorkingHours[weekday]
		if !ok {
			continue
		}
		for _, clock := range e.cfg.CommonHours {
			minutes, err := parseClock(clock)
			if err != nil {
				continue
			}
			if open, err := openAtMinutes(day, minutes); err == nil && open {
				return true
			}
		}
	}
	return false
}

// rankCandidates sorts the pool in place by the composite key: requested
// theme order, then price-fit score, then location relevance.
func (e *Engine) rankCandidates(req *models.TripRequest, pool []models.ActivityCandidate, budgetPerTheme float64) {
	type rankKey struct {
		themeIdx int
		fit      float64
		location float64
	}
	keys := make(map[string]rankKey, len(pool))
	for _, cand := range pool {
		keys[cand.ActivityID] = rankKey{
			themeIdx: themeIndex(req.Themes, cand.Theme),
			fit:      priceFitScore(cand.Price.Amount, budgetPerTheme),
			location: e.locationScore(cand.Location.Region, req.Region),
		}
	}
	sort.SliceStable(pool, func(i, j int) bool {
		a, b := keys[pool[i].ActivityID], keys[pool[j].ActivityID]
		if a.themeIdx != b.themeIdx {
			return a.themeIdx < b.themeIdx
		}
		if a.fit != b.fit {
			return a.fit < b.fit
		}
		return a.location > b.location
	})
}

// priceFitScore prefers candidates landing in the 60-80% band of the
// per-theme budget; cheaper options are mildly penalized, expensive ones
// more so. Lower is better.
func priceFitScore(amount, budgetPerTheme float64) float64 {
	if budgetPerTheme <= 0 {
		return 1.0
	}
	ratio := amount / budgetPerTheme
	switch {
	case ratio >= 0.6 && ratio <= 0.8:
		return ratio
	case ratio < 0.6:
		return ratio + 0.5
	default:
		return ratio + 1.0
	}
}

// locationScore grades how close a candidate's region is to the requested
// one. Higher is better.
func (e *Engine) locationScore(candidateRegion, requestedRegion string) float64 {
	cr := strings.ToLower(strings.TrimSpace(candidateRegion))
	rr := strings.ToLower(strings.TrimSpace(requestedRegion))
	if cr == "" || rr == "" {
		return 0
	}
	if cr == rr {
		return 100
	}
	if strings.Contains(cr, rr) || strings.Contains(rr, cr) {
		return 75
	}
	if neighbors, ok := e.cfg.RegionAdjacency[rr]; ok {
		if score, ok := neighbors[cr]; ok {
			return score
		}
	}
	return 0
}

// capPerTheme keeps at most MaxPerTheme candidates per theme, in ranked
// order.
func (e *Engine) capPerTheme(pool []models.ActivityCandidate) []models.ActivityCandidate {
	if e.cfg.MaxPerTheme <= 0 {
		return pool
	}
	counts := make(map[string]int)
	capped := pool[:0]
	for _, cand := range pool {
		theme := strings.ToLower(cand.Theme)
		if counts[theme] >= e.cfg.MaxPerTheme {
			continue
		}
		counts[theme]++
		capped = append(capped, cand)
	}
	return capped
}

// themeIndex returns the position of theme in the requested order, or -1.
func themeIndex(themes []string, theme string) int {
	for i, t := range themes {
		if strings.EqualFold(t, theme) {
			return i
		}
	}
	return -1
}
