package pricing

import (
	"context"
	"time"
)

// Repository stores daily pricing rows per property.
type Repository interface {
	Range(ctx context.Context, propertyID int64, from, to time.Time) ([]Entry, error)
	Upsert(ctx context.Context, propertyID int64, entries []Entry) error
}
