package catalog

import (
	"context"
	"strings"
	"sync"

	"app/models"
)

// MemorySource is an in-process catalog used by tests and by local runs
// without a database. Safe for concurrent use.
type MemorySource struct {
	mu         sync.RWMutex
	order      []string
	activities map[string]models.ActivityCandidate
}

// NewMemorySource builds a source over the given candidates.
func NewMemorySource(candidates ...models.ActivityCandidate) *MemorySource {
	s := &MemorySource{activities: make(map[string]models.ActivityCandidate)}
	s.Add(candidates...)
	return s
}

// Add registers candidates, keeping insertion order for stable queries.
func (s *MemorySource) Add(candidates ...models.ActivityCandidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cand := range candidates {
		if _, exists := s.activities[cand.ActivityID]; !exists {
			s.order = append(s.order, cand.ActivityID)
		}
		s.activities[cand.ActivityID] = cand
	}
}

// Query filters candidates the same way the Postgres source does: active
// only, theme equality, region substring, price ceiling.
func (s *MemorySource) Query(ctx context.Context, filter QueryFilter) ([]models.ActivityCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.ActivityCandidate
	skipped := 0
	for _, id := range s.order {
		cand := s.activities[id]
		if !cand.Active {
			continue
		}
		if filter.Theme != "" && !strings.EqualFold(cand.Theme, filter.Theme) {
			continue
		}
		if filter.Region != "" && !strings.Contains(strings.ToLower(cand.Location.Region), strings.ToLower(filter.Region)) {
			continue
		}
		if filter.MaxPrice > 0 && cand.Price.Amount > filter.MaxPrice {
			continue
		}
		if filter.Offset > 0 && skipped < filter.Offset {
			skipped++
			continue
		}
		out = append(out, cand)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

// Lookup resolves one candidate by id.
func (s *MemorySource) Lookup(ctx context.Context, activityID string) (*models.ActivityCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	cand, ok := s.activities[activityID]
	if !ok {
		return nil, ErrNotFound
	}
	return &cand, nil
}

func weekdayHours(open, close string, days ...string) models.WorkingHours {
	hours := models.WorkingHours{}
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"} {
		hours[day] = models.DayHours{IsOpen: false}
	}
	for _, day := range days {
		hours[day] = models.DayHours{IsOpen: true, OpenTime: open, CloseTime: close}
	}
	return hours
}

// SampleActivities returns a small Seoul catalog for local runs without a
// database connection.
func SampleActivities() []models.ActivityCandidate {
	weekdays := []string{"monday", "tuesday", "wednesday", "thursday", "friday"}
	allWeek := append(append([]string{}, weekdays...), "saturday", "sunday")
	return []models.ActivityCandidate{
		{
			ActivityID:   "act_seoul_derma_001",
			Name:         "Gangnam Glow Dermatology",
			Theme:        "dermatology",
			WorkingHours: weekdayHours("09:00", "18:00", weekdays...),
			Location:     models.Location{Name: "Gangnam Glow Clinic", Region: "Seoul", District: "Gangnam"},
			Price:        models.Price{Currency: "USD", Amount: 320, Kind: models.PriceFixed},
			Active:       true,
		},
		{
			ActivityID:   "act_seoul_skin_002",
			Name:         "Myeongdong Skincare Lounge",
			Theme:        "skincare",
			WorkingHours: weekdayHours("10:00", "20:00", allWeek...),
			Location:     models.Location{Name: "Myeongdong Lounge", Region: "Seoul", District: "Jung-gu"},
			Price:        models.Price{Currency: "USD", Amount: 180, Kind: models.PriceStartingFrom},
			Active:       true,
		},
		{
			ActivityID:   "act_seoul_spa_003",
			Name:         "Hanok Wellness Spa",
			Theme:        "wellness",
			WorkingHours: weekdayHours("11:00", "22:00", allWeek...),
			Location:     models.Location{Name: "Hanok Spa", Region: "Seoul", District: "Jongno"},
			Price:        models.Price{Currency: "USD", Amount: 95, Kind: models.PriceFixed},
			Active:       true,
		},
		{
			ActivityID:   "act_seoul_hair_004",
			Name:         "Apgujeong Hair Atelier",
			Theme:        "hair",
			WorkingHours: weekdayHours("10:00", "19:00", "tuesday", "wednesday", "thursday", "friday", "saturday"),
			Location:     models.Location{Name: "Apgujeong Atelier", Region: "Seoul", District: "Gangnam"},
			Price:        models.Price{Currency: "USD", Amount: 140, Kind: models.PriceFixed},
			Active:       true,
		},
	}
}
