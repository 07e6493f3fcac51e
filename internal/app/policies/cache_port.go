package policies

import (
	"context"

	"staysia/internal/app/dto"
)

// DetailsCache keeps rendered property detail payloads.
type DetailsCache interface {
	Get(ctx context.Context, propertyID int64) (dto.PropertyDetails, bool, error)
	Set(ctx context.Context, propertyID int64, details dto.PropertyDetails) error
	Invalidate(ctx context.Context, propertyID int64) error
}
