package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	domainpricing "staysia/internal/domain/pricing"
	domainproperties "staysia/internal/domain/properties"
	domainreviews "staysia/internal/domain/reviews"
	"staysia/internal/domain/shared/daterange"
	domainuser "staysia/internal/domain/user"
)

type RoomRepository struct {
	db sqlx.ExtContext
}

func NewRoomRepository(db sqlx.ExtContext) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomRow struct {
	ID            int64          `db:"id"`
	PropertyID    int64          `db:"property_id"`
	Name          string         `db:"name"`
	Type          string         `db:"type"`
	PricePerNight int64          `db:"price_per_night"`
	MaxGuests     int            `db:"max_guests"`
	Beds          []byte         `db:"beds"`
	Size          int            `db:"size"`
	Amenities     pq.StringArray `db:"amenities"`
	Available     bool           `db:"available"`
}

func (r *RoomRepository) ListByProperty(ctx context.Context, id domainproperties.PropertyID) ([]domainproperties.Room, error) {
	var rows []roomRow
	err := sqlx.SelectContext(ctx, r.db, &rows, `SELECT id, property_id, name, type, price_per_night, max_guests,
		beds, size, amenities, available FROM rooms WHERE property_id = $1 ORDER BY id`, int64(id))
	if err != nil {
		return nil, err
	}
	out := make([]domainproperties.Room, 0, len(rows))
	for _, row := range rows {
		beds := map[string]int{}
		if len(row.Beds) > 0 {
			if err := json.Unmarshal(row.Beds, &beds); err != nil {
				return nil, err
			}
		}
		out = append(out, domainproperties.Room{
			ID:            row.ID,
			PropertyID:    domainproperties.PropertyID(row.PropertyID),
			Name:          row.Name,
			Type:          row.Type,
			PricePerNight: row.PricePerNight,
			MaxGuests:     row.MaxGuests,
			Beds:          beds,
			Size:          row.Size,
			Amenities:     []string(row.Amenities),
			Available:     row.Available,
		})
	}
	return out, nil
}

func (r *RoomRepository) Add(ctx context.Context, room domainproperties.Room) error {
	beds, err := json.Marshal(room.Beds)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO rooms (property_id, name, type, price_per_night, max_guests, beds, size, amenities, available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		int64(room.PropertyID), room.Name, room.Type, room.PricePerNight, room.MaxGuests, beds, room.Size,
		pq.StringArray(nonNil(room.Amenities)), room.Available)
	return err
}

type ReviewRepository struct {
	db sqlx.ExtContext
}

func NewReviewRepository(db sqlx.ExtContext) *ReviewRepository {
	return &ReviewRepository{db: db}
}

type reviewRow struct {
	ID            int64     `db:"id"`
	PropertyID    int64     `db:"property_id"`
	UserName      string    `db:"user_name"`
	UserAvatar    string    `db:"user_avatar"`
	Rating        float64   `db:"rating"`
	Comment       string    `db:"comment"`
	Cleanliness   float64   `db:"cleanliness"`
	Accuracy      float64   `db:"accuracy"`
	Communication float64   `db:"communication"`
	Location      float64   `db:"location"`
	Value         float64   `db:"value"`
	CreatedAt     time.Time `db:"created_at"`
}

func (r *ReviewRepository) ListByProperty(ctx context.Context, id domainproperties.PropertyID) ([]domainreviews.Review, error) {
	var rows []reviewRow
	err := sqlx.SelectContext(ctx, r.db, &rows, `SELECT id, property_id, user_name, user_avatar, rating, comment,
		cleanliness, accuracy, communication, location, value, created_at
		FROM reviews WHERE property_id = $1 ORDER BY created_at DESC, id DESC`, int64(id))
	if err != nil {
		return nil, err
	}
	out := make([]domainreviews.Review, 0, len(rows))
	for _, row := range rows {
		out = append(out, domainreviews.Review{
			ID:            row.ID,
			PropertyID:    domainproperties.PropertyID(row.PropertyID),
			UserName:      row.UserName,
			UserAvatar:    row.UserAvatar,
			Rating:        row.Rating,
			Comment:       row.Comment,
			Cleanliness:   row.Cleanliness,
			Accuracy:      row.Accuracy,
			Communication: row.Communication,
			Location:      row.Location,
			Value:         row.Value,
			CreatedAt:     row.CreatedAt.UTC(),
		})
	}
	return out, nil
}

func (r *ReviewRepository) Add(ctx context.Context, rv domainreviews.Review) error {
	if err := rv.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO reviews (property_id, user_name, user_avatar, rating, comment,
		cleanliness, accuracy, communication, location, value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		int64(rv.PropertyID), rv.UserName, rv.UserAvatar, rv.Rating, rv.Comment,
		rv.Cleanliness, rv.Accuracy, rv.Communication, rv.Location, rv.Value, rv.CreatedAt.UTC())
	return err
}

type PricingRepository struct {
	db sqlx.ExtContext
}

func NewPricingRepository(db sqlx.ExtContext) *PricingRepository {
	return &PricingRepository{db: db}
}

type pricingRow struct {
	Date   time.Time `db:"date"`
	Price  int64     `db:"price"`
	Status string    `db:"status"`
}

// Range returns rows with from <= date <= to, ascending.
func (r *PricingRepository) Range(ctx context.Context, propertyID int64, from, to time.Time) ([]domainpricing.Entry, error) {
	var rows []pricingRow
	err := sqlx.SelectContext(ctx, r.db, &rows, `SELECT date, price, status FROM property_pricing
		WHERE property_id = $1 AND date >= $2 AND date <= $3 ORDER BY date`,
		propertyID, daterange.FormatDay(from), daterange.FormatDay(to))
	if err != nil {
		return nil, err
	}
	out := make([]domainpricing.Entry, 0, len(rows))
	for _, row := range rows {
		entry, err := domainpricing.ParseEntry(daterange.FormatDay(row.Date), row.Price, row.Status)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

func (r *PricingRepository) Upsert(ctx context.Context, propertyID int64, entries []domainpricing.Entry) error {
	for _, e := range entries {
		_, err := r.db.ExecContext(ctx, `INSERT INTO property_pricing (property_id, date, price, status)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (property_id, date) DO UPDATE SET price = EXCLUDED.price, status = EXCLUDED.status`,
			propertyID, daterange.FormatDay(e.Date), e.Price, string(e.Status))
		if err != nil {
			return err
		}
	}
	return nil
}

type UserRepository struct {
	db sqlx.ExtContext
}

func NewUserRepository(db sqlx.ExtContext) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, r.db, &exists, `SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))`, email)
	return exists, err
}

var (
	_ domainproperties.RoomRepository = (*RoomRepository)(nil)
	_ domainreviews.Repository        = (*ReviewRepository)(nil)
	_ domainpricing.Repository        = (*PricingRepository)(nil)
	_ domainuser.Repository           = (*UserRepository)(nil)
)
