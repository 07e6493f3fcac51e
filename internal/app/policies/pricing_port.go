package policies

import (
	"context"
	"time"

	domainpricing "staysia/internal/domain/pricing"
)

// PricingSource fetches the daily pricing rows of a property for [from, to].
type PricingSource interface {
	FetchPricing(ctx context.Context, propertyID int64, from, to time.Time) ([]domainpricing.Entry, error)
}
