package catalog

import (
	"context"
	"errors"

	"app/models"
)

// ErrNotFound is returned by Lookup for unknown or inactive activity ids.
var ErrNotFound = errors.New("activity not found")

// QueryFilter narrows a catalog search. Zero values mean "no constraint".
type QueryFilter struct {
	Theme    string
	Region   string
	MaxPrice float64
	Limit    int
	Offset   int
}

// Source is the read side of the external activity catalog. The scheduling
// engine is parameterized by this interface; implementations must be safe
// for concurrent use, since theme queries and id lookups fan out.
type Source interface {
	Query(ctx context.Context, filter QueryFilter) ([]models.ActivityCandidate, error)
	Lookup(ctx context.Context, activityID string) (*models.ActivityCandidate, error)
}
