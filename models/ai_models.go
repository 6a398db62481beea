package models

// AIDraftRequest asks the Gemini planner for a free-text schedule draft
// constrained to a set of real catalog activities.
type AIDraftRequest struct {
	Trip TripRequest `json:"trip"`
}

// AIDraftSchedule is the structured JSON shape the model is asked to emit.
// Costs are intentionally absent; all pricing is computed server-side.
type AIDraftSchedule struct {
	Schedule []ScheduleDay `json:"schedule"`
}
