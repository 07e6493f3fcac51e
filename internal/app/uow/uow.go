package uow

import (
	"context"

	domainbooking "staysia/internal/domain/booking"
	domainpricing "staysia/internal/domain/pricing"
	domainproperties "staysia/internal/domain/properties"
	domainreviews "staysia/internal/domain/reviews"
	domainuser "staysia/internal/domain/user"
)

// UnitOfWork coordinates repositories inside a transaction boundary.
type UnitOfWork interface {
	Properties() domainproperties.Repository
	Rooms() domainproperties.RoomRepository
	Reviews() domainreviews.Repository
	Pricing() domainpricing.Repository
	Bookings() domainbooking.Repository
	Users() domainuser.Repository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UoWFactory starts unit of work instances.
type UoWFactory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

type TxOptions struct {
	ReadOnly bool
}
