package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"staysia/internal/app/uow"
	domainbooking "staysia/internal/domain/booking"
	domainpricing "staysia/internal/domain/pricing"
	domainproperties "staysia/internal/domain/properties"
	domainreviews "staysia/internal/domain/reviews"
	domainuser "staysia/internal/domain/user"
)

var ErrUnitOfWorkNotConfigured = errors.New("postgres: unit of work factory missing database")

// Factory wires Postgres transactions into the generic UnitOfWork interface.
// Bookings live in Mongo and are not part of the SQL transaction.
type Factory struct {
	DB          *sqlx.DB
	BookingRepo domainbooking.Repository
}

func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.DB == nil {
		return nil, ErrUnitOfWorkNotConfigured
	}
	tx, err := f.DB.BeginTxx(ctx, &sql.TxOptions{ReadOnly: opts.ReadOnly})
	if err != nil {
		return nil, err
	}
	return &Unit{tx: tx, bookings: f.BookingRepo}, nil
}

type Unit struct {
	tx       *sqlx.Tx
	bookings domainbooking.Repository
	done     bool
}

func (u *Unit) Properties() domainproperties.Repository {
	return NewPropertyRepository(u.tx)
}

func (u *Unit) Rooms() domainproperties.RoomRepository {
	return NewRoomRepository(u.tx)
}

func (u *Unit) Reviews() domainreviews.Repository {
	return NewReviewRepository(u.tx)
}

func (u *Unit) Pricing() domainpricing.Repository {
	return NewPricingRepository(u.tx)
}

func (u *Unit) Bookings() domainbooking.Repository {
	return u.bookings
}

func (u *Unit) Users() domainuser.Repository {
	return NewUserRepository(u.tx)
}

func (u *Unit) Commit(context.Context) error {
	if u.done {
		return nil
	}
	u.done = true
	return u.tx.Commit()
}

// Rollback is a no-op after Commit.
func (u *Unit) Rollback(context.Context) error {
	if u.done {
		return nil
	}
	u.done = true
	if err := u.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

var _ uow.UoWFactory = Factory{}
