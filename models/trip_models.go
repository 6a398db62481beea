package models

// --- Solution Tiers ---

// Solution types drive the cost multiplier applied by the summary calculator.
const (
	SolutionTopRanking = "topranking"
	SolutionPremium    = "premium"
	SolutionBudget     = "budget"
)

// TripRequest is the caller's scheduling intent. It is treated as immutable
// once validated; the engine never writes back into it.
type TripRequest struct {
	Region          string   `json:"region"`
	StartDate       string   `json:"startDate"` // YYYY-MM-DD
	EndDate         string   `json:"endDate"`   // YYYY-MM-DD
	Themes          []string `json:"themes"`    // ordered, first = highest priority
	Budget          float64  `json:"budget"`
	SolutionType    string   `json:"solutionType"`
	SpecialRequests string   `json:"specialRequests,omitempty"`
	OwnerID         string   `json:"ownerId,omitempty"`
}

// --- Activity Catalog Types ---

// Pricing kinds for catalog activities.
const (
	PriceFixed        = "fixed"
	PriceStartingFrom = "starting_from"
	PriceRange        = "range"
)

// Price carries the quoted price of an activity. For "range" pricing Amount
// is the lower bound and MaxAmount the upper.
type Price struct {
	Currency  string   `json:"currency"`
	Amount    float64  `json:"amount"`
	Kind      string   `json:"kind"`
	MaxAmount *float64 `json:"maxAmount,omitempty"`
}

// Coordinates is an optional lat/lng pair on a location.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location places an activity in a region/district/city hierarchy.
type Location struct {
	Name        string       `json:"name,omitempty"`
	Region      string       `json:"region"`
	District    string       `json:"district,omitempty"`
	City        string       `json:"city,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// DayHours is one entry of a weekly working-hours table. An open day with no
// recorded times means open all day.
type DayHours struct {
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime,omitempty"`  // HH:MM
	CloseTime string `json:"closeTime,omitempty"` // HH:MM
}

// WorkingHours maps lowercase weekday names ("monday".."sunday") to that
// day's hours. Missing entries are treated as closed.
type WorkingHours map[string]DayHours

// ActivityCandidate is a read-only copy of one bookable activity from the
// external catalog, held only for the duration of a single generation call.
type ActivityCandidate struct {
	ActivityID   string       `json:"activityId"`
	Name         string       `json:"name"`
	Theme        string       `json:"theme"`
	WorkingHours WorkingHours `json:"workingHours"`
	Location     Location     `json:"location"`
	Price        Price        `json:"price"`
	Active       bool         `json:"active"`
}

// EffectiveAmount returns the amount used for budget arithmetic.
func (a *ActivityCandidate) EffectiveAmount() float64 {
	return a.Price.Amount
}
