package models

// --- Schedule Item Statuses ---

const (
	ItemPlanned   = "planned"
	ItemBooked    = "booked"
	ItemCompleted = "completed"
	ItemCancelled = "cancelled"
)

// ScheduleItem is one scheduled slot in a day. ActivityID is a weak
// reference into the catalog; it is only ever resolved through a lookup,
// never dereferenced directly.
type ScheduleItem struct {
	ActivityID    string   `json:"activityId"`
	ScheduledTime string   `json:"scheduledTime"` // HH:MM
	Duration      string   `json:"duration"`      // e.g. "2h", "1h30", "30min"
	Status        string   `json:"status"`
	Notes         string   `json:"notes"`
	CustomPrice   *float64 `json:"customPrice,omitempty"`
}

// ScheduleDay is one day of the assembled itinerary. TotalCost is derived
// from the items and recomputed by the engine; it is never set by callers.
type ScheduleDay struct {
	Date      string         `json:"date"` // YYYY-MM-DD
	DayNumber int            `json:"dayNumber"`
	Items     []ScheduleItem `json:"items"`
	TotalCost float64        `json:"totalCost"`
	Notes     string         `json:"notes,omitempty"`
}

// ScheduleSummary aggregates a generated schedule.
type ScheduleSummary struct {
	TotalDays       int      `json:"totalDays"`
	TotalActivities int      `json:"totalActivities"`
	ThemesCovered   int      `json:"themesCovered"`
	EstimatedCost   float64  `json:"estimatedCost"`
	ActivityIDs     []string `json:"activityIds"`
}

// ScheduleResult is the engine's success payload. ScheduleID is set only
// when the best-effort persistence succeeded.
type ScheduleResult struct {
	Schedule   []ScheduleDay   `json:"schedule"`
	Summary    ScheduleSummary `json:"summary"`
	ScheduleID string          `json:"scheduleId,omitempty"`
}

// StoredSchedule wraps a persisted result with its storage id.
type StoredSchedule struct {
	ScheduleID string         `json:"scheduleId"`
	OwnerID    string         `json:"ownerId,omitempty"`
	Result     ScheduleResult `json:"result"`
	CreatedAt  string         `json:"createdAt"`
}
