package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"app/models"
)

// PostgresSource reads the activity catalog from PostgreSQL. Working hours,
// location and price are stored as jsonb columns.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource wraps a pgx pool as a catalog Source.
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

const activityColumns = "activity_id, name, theme, working_hours, location, price, active"

func scanActivity(row pgx.Row) (*models.ActivityCandidate, error) {
	var (
		cand         models.ActivityCandidate
		workingHours []byte
		location     []byte
		price        []byte
	)
	if err := row.Scan(&cand.ActivityID, &cand.Name, &cand.Theme, &workingHours, &location, &price, &cand.Active); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(workingHours, &cand.WorkingHours); err != nil {
		return nil, fmt.Errorf("failed to decode working hours: %w", err)
	}
	if err := json.Unmarshal(location, &cand.Location); err != nil {
		return nil, fmt.Errorf("failed to decode location: %w", err)
	}
	if err := json.Unmarshal(price, &cand.Price); err != nil {
		return nil, fmt.Errorf("failed to decode price: %w", err)
	}
	return &cand, nil
}

// Query returns active activities matching the filter, cheapest first.
func (s *PostgresSource) Query(ctx context.Context, filter QueryFilter) ([]models.ActivityCandidate, error) {
	query := "SELECT " + activityColumns + " FROM activities WHERE active = TRUE"
	args := []interface{}{}

	if filter.Theme != "" {
		args = append(args, strings.ToLower(filter.Theme))
		query += fmt.Sprintf(" AND LOWER(theme) = $%d", len(args))
	}
	if filter.Region != "" {
		args = append(args, filter.Region)
		query += fmt.Sprintf(" AND location->>'region' ILIKE $%d", len(args))
	}
	if filter.MaxPrice > 0 {
		args = append(args, filter.MaxPrice)
		query += fmt.Sprintf(" AND (price->>'amount')::numeric <= $%d", len(args))
	}
	query += " ORDER BY (price->>'amount')::numeric ASC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	var candidates []models.ActivityCandidate
	for rows.Next() {
		cand, err := scanActivity(rows)
		if err != nil {
			// Skip rows with malformed jsonb instead of failing the query.
			continue
		}
		candidates = append(candidates, *cand)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activities: %w", err)
	}
	return candidates, nil
}

// Lookup resolves one activity by id. Unknown ids map to ErrNotFound.
func (s *PostgresSource) Lookup(ctx context.Context, activityID string) (*models.ActivityCandidate, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+activityColumns+" FROM activities WHERE activity_id = $1", activityID)
	cand, err := scanActivity(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up activity %s: %w", activityID, err)
	}
	return cand, nil
}

// Seed upserts candidates into the activities table. Used by local
// bootstrap and integration fixtures.
func (s *PostgresSource) Seed(ctx context.Context, candidates []models.ActivityCandidate) error {
	for _, cand := range candidates {
		workingHours, err := toJSONB(cand.WorkingHours)
		if err != nil {
			return err
		}
		location, err := toJSONB(cand.Location)
		if err != nil {
			return err
		}
		price, err := toJSONB(cand.Price)
		if err != nil {
			return err
		}
		_, err = s.pool.Exec(ctx, `
			INSERT INTO activities (activity_id, name, theme, working_hours, location, price, active)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (activity_id) DO UPDATE SET
				name = EXCLUDED.name,
				theme = EXCLUDED.theme,
				working_hours = EXCLUDED.working_hours,
				location = EXCLUDED.location,
				price = EXCLUDED.price,
				active = EXCLUDED.active
		`, cand.ActivityID, cand.Name, cand.Theme, workingHours, location, price, cand.Active)
		if err != nil {
			return fmt.Errorf("failed to seed activity %s: %w", cand.ActivityID, err)
		}
	}
	return nil
}

func toJSONB(v interface{}) (models.JSONB, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var j models.JSONB
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, err
	}
	return j, nil
}
