package scheduler

import (
	"context"
	"log"
	"strings"
	"time"

	"app/catalog"
	"app/models"
)

// ScheduleSaver persists a generated result. Persistence is a best-effort
// side effect; a failing save never fails generation.
type ScheduleSaver interface {
	Save(ctx context.Context, ownerID string, result *models.ScheduleResult) (string, error)
}

// Engine assembles budget-constrained schedules from the activity catalog.
// It is stateless across calls; each Generate owns its own request,
// candidate pool and budget accumulator, so one Engine may serve concurrent
// callers.
type Engine struct {
	source catalog.Source
	saver  ScheduleSaver
	cfg    Config
}

// NewEngine wires an engine over a catalog source. saver may be nil when
// persistence is not configured.
func NewEngine(source catalog.Source, saver ScheduleSaver, cfg Config) *Engine {
	return &Engine{source: source, saver: saver, cfg: cfg}
}

// Generate runs the full pipeline: validate, select, assemble, resolve,
// summarize, then best-effort persist. Validation failures short-circuit
// before any catalog I/O. An unreachable catalog degrades to the placeholder
// schedule instead of an error; an empty pool after successful queries is
// terminal.
func (e *Engine) Generate(ctx context.Context, req *models.TripRequest) (*models.ScheduleResult, error) {
	start, end, err := validateRequest(req)
	if err != nil {
		return nil, err
	}

	pool, err := e.selectCandidates(ctx, req)
	if err != nil {
		if IsKind(err, KindCatalogUnavailable) {
			log.Printf("degrading to fallback schedule: %v", err)
			return e.fallbackResult(req, err), nil
		}
		return nil, err
	}

	schedule := e.assembleSchedule(req, start, end, pool)
	resolved := e.resolveSchedule(ctx, schedule)
	summary := e.finalizeSchedule(req, schedule, resolved)

	result := &models.ScheduleResult{Schedule: schedule, Summary: summary}
	e.persist(ctx, req, result)
	return result, nil
}

// Resolve re-validates and repairs a schedule that arrived from outside the
// engine, then recomputes its totals and summary.
func (e *Engine) Resolve(ctx context.Context, req *models.TripRequest, schedule []models.ScheduleDay) (*models.ScheduleResult, error) {
	if _, _, err := validateRequest(req); err != nil {
		return nil, err
	}
	resolved := e.resolveSchedule(ctx, schedule)
	summary := e.finalizeSchedule(req, schedule, resolved)
	return &models.ScheduleResult{Schedule: schedule, Summary: summary}, nil
}

func (e *Engine) persist(ctx context.Context, req *models.TripRequest, result *models.ScheduleResult) {
	if e.saver == nil {
		return
	}
	id, err := e.saver.Save(ctx, req.OwnerID, result)
	if err != nil {
		log.Printf("schedule save failed (continuing): %v", err)
		return
	}
	result.ScheduleID = id
}

// validateRequest checks the request and parses its date range. All
// failures are InvalidRequest and happen before any I/O.
func validateRequest(req *models.TripRequest) (start, end time.Time, err error) {
	if req == nil {
		return start, end, newError(KindInvalidRequest, "missing request")
	}
	if req.Budget <= 0 {
		return start, end, newError(KindInvalidRequest, "budget must be positive, got %.2f", req.Budget)
	}
	if len(req.Themes) == 0 {
		return start, end, newError(KindInvalidRequest, "at least one theme is required")
	}
	for _, theme := range req.Themes {
		if strings.TrimSpace(theme) == "" {
			return start, end, newError(KindInvalidRequest, "themes must not be blank")
		}
	}
	start, err = time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return start, end, newError(KindInvalidRequest, "invalid start date %q", req.StartDate)
	}
	end, err = time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return start, end, newError(KindInvalidRequest, "invalid end date %q", req.EndDate)
	}
	if !end.After(start) {
		return start, end, newError(KindInvalidRequest, "end date must be after start date")
	}
	switch strings.ToLower(req.SolutionType) {
	case "", models.SolutionTopRanking, models.SolutionPremium, models.SolutionBudget:
	default:
		return start, end, newError(KindInvalidRequest, "unknown solution type %q", req.SolutionType)
	}
	return start, end, nil
}

// fallbackActivityID marks the hardcoded placeholder used when the catalog
// is entirely unreachable.
const fallbackActivityID = "fallback_activity_001"

// fallbackResult builds the single-day placeholder schedule, annotated with
// the failure that caused the degradation.
func (e *Engine) fallbackResult(req *models.TripRequest, cause error) *models.ScheduleResult {
	date := time.Now().Format(dateLayout)
	if d, err := time.Parse(dateLayout, req.StartDate); err == nil {
		date = d.Format(dateLayout)
	}
	customPrice := 200.0
	multiplier := e.tierMultiplier(req.SolutionType)

	day := models.ScheduleDay{
		Date:      date,
		DayNumber: 1,
		Items: []models.ScheduleItem{{
			ActivityID:    fallbackActivityID,
			ScheduledTime: "09:00",
			Duration:      "2h",
			Status:        models.ItemPlanned,
			Notes:         "Comprehensive consultation and planning",
			CustomPrice:   &customPrice,
		}},
		TotalCost: customPrice * multiplier,
		Notes:     appendNote("Schedule generation failed - showing fallback data", "("+string(KindOf(cause))+")"),
	}

	return &models.ScheduleResult{
		Schedule: []models.ScheduleDay{day},
		Summary: models.ScheduleSummary{
			TotalDays:       1,
			TotalActivities: 1,
			ThemesCovered:   0,
			EstimatedCost:   customPrice * multiplier,
			ActivityIDs:     []string{fallbackActivityID},
		},
	}
}
