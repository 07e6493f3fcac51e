package memory

import (
	"context"
	"errors"

	"staysia/internal/app/uow"
	domainbooking "staysia/internal/domain/booking"
	domainpricing "staysia/internal/domain/pricing"
	domainproperties "staysia/internal/domain/properties"
	domainreviews "staysia/internal/domain/reviews"
	domainuser "staysia/internal/domain/user"
)

// ErrFactoryMisconfigured indicates missing repositories.
var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Factory wires in-memory repositories into a unit-of-work boundary. No isolation is provided.
type Factory struct {
	PropertiesRepo domainproperties.Repository
	RoomsRepo      domainproperties.RoomRepository
	ReviewsRepo    domainreviews.Repository
	PricingRepo    domainpricing.Repository
	BookingRepo    domainbooking.Repository
	UsersRepo      domainuser.Repository
}

// NewFactory returns a factory over fresh empty repositories.
func NewFactory() Factory {
	return Factory{
		PropertiesRepo: NewPropertyRepository(),
		RoomsRepo:      NewRoomRepository(),
		ReviewsRepo:    NewReviewRepository(),
		PricingRepo:    NewPricingRepository(),
		BookingRepo:    NewBookingRepository(),
		UsersRepo:      NewUserRepository(),
	}
}

func (f Factory) Begin(_ context.Context, _ uow.TxOptions) (uow.UnitOfWork, error) {
	if f.PropertiesRepo == nil || f.RoomsRepo == nil || f.ReviewsRepo == nil ||
		f.PricingRepo == nil || f.BookingRepo == nil || f.UsersRepo == nil {
		return nil, ErrFactoryMisconfigured
	}
	return &Unit{f: f}, nil
}

type Unit struct {
	f Factory
}

func (u *Unit) Properties() domainproperties.Repository { return u.f.PropertiesRepo }

func (u *Unit) Rooms() domainproperties.RoomRepository { return u.f.RoomsRepo }

func (u *Unit) Reviews() domainreviews.Repository { return u.f.ReviewsRepo }

func (u *Unit) Pricing() domainpricing.Repository { return u.f.PricingRepo }

func (u *Unit) Bookings() domainbooking.Repository { return u.f.BookingRepo }

func (u *Unit) Users() domainuser.Repository { return u.f.UsersRepo }

func (u *Unit) Commit(context.Context) error { return nil }

func (u *Unit) Rollback(context.Context) error { return nil }

var _ uow.UoWFactory = Factory{}
