package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	domainproperties "staysia/internal/domain/properties"
)

const propertyColumns = `id, name, city, area, type, price, nights, rating, image_url, is_guest_favorite,
	description, address, country, bedrooms, bathrooms, max_guests, pets_allowed,
	check_in_time, check_out_time, images, amenities, created_at, updated_at`

type PropertyRepository struct {
	db sqlx.ExtContext
}

func NewPropertyRepository(db sqlx.ExtContext) *PropertyRepository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) ByID(ctx context.Context, id domainproperties.PropertyID) (*domainproperties.Property, error) {
	var row propertyRow
	err := sqlx.GetContext(ctx, r.db, &row, `SELECT `+propertyColumns+` FROM properties WHERE id = $1`, int64(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domainproperties.ErrNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *PropertyRepository) Search(ctx context.Context, params domainproperties.SearchParams) ([]*domainproperties.Property, error) {
	query, args := buildSearchQuery(params.Normalized())
	var rows []propertyRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]*domainproperties.Property, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *PropertyRepository) Save(ctx context.Context, p *domainproperties.Property) error {
	row := newPropertyRow(p)
	if p.ID == 0 {
		var id int64
		err := sqlx.GetContext(ctx, r.db, &id, `INSERT INTO properties (
			name, city, area, type, price, nights, rating, image_url, is_guest_favorite,
			description, address, country, bedrooms, bathrooms, max_guests, pets_allowed,
			check_in_time, check_out_time, images, amenities, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING id`,
			row.Name, row.City, row.Area, row.Type, row.Price, row.Nights, row.Rating, row.ImageURL, row.IsGuestFavorite,
			row.Description, row.Address, row.Country, row.Bedrooms, row.Bathrooms, row.MaxGuests, row.PetsAllowed,
			row.CheckInTime, row.CheckOutTime, row.Images, row.Amenities, row.CreatedAt, row.UpdatedAt,
		)
		if err != nil {
			return err
		}
		p.ID = domainproperties.PropertyID(id)
		return nil
	}
	res, err := r.db.ExecContext(ctx, `UPDATE properties SET
			name = $2, city = $3, area = $4, type = $5, price = $6, nights = $7, rating = $8, image_url = $9,
			is_guest_favorite = $10, description = $11, address = $12, country = $13, bedrooms = $14,
			bathrooms = $15, max_guests = $16, pets_allowed = $17, check_in_time = $18, check_out_time = $19,
			images = $20, amenities = $21, updated_at = $22
		WHERE id = $1`,
		row.ID, row.Name, row.City, row.Area, row.Type, row.Price, row.Nights, row.Rating, row.ImageURL,
		row.IsGuestFavorite, row.Description, row.Address, row.Country, row.Bedrooms,
		row.Bathrooms, row.MaxGuests, row.PetsAllowed, row.CheckInTime, row.CheckOutTime,
		row.Images, row.Amenities, row.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domainproperties.ErrNotFound
	}
	return nil
}

// buildSearchQuery expects normalized params. Rating ties put properties in Indonesia first.
func buildSearchQuery(p domainproperties.SearchParams) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if p.City != "" {
		add("lower(city) = $%d", p.City)
	}
	if p.Type != "" {
		add("lower(type) = $%d", p.Type)
	}
	if p.Guests > 0 {
		add("(max_guests = 0 OR max_guests >= $%d)", p.Guests)
	}
	if p.Pets != nil && *p.Pets {
		add("pets_allowed = $%d", true)
	}

	var b strings.Builder
	b.WriteString("SELECT " + propertyColumns + " FROM properties")
	if len(conds) > 0 {
		b.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY " + orderClause(p.Sort))
	args = append(args, p.Limit, p.Offset)
	fmt.Fprintf(&b, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return b.String(), args
}

func orderClause(sort domainproperties.CatalogSort) string {
	switch sort {
	case domainproperties.SortByRating:
		return "rating DESC, CASE WHEN lower(country) = 'indonesia' THEN 0 ELSE 1 END, id ASC"
	case domainproperties.SortPriceAsc:
		return "price ASC, id ASC"
	case domainproperties.SortPriceDesc:
		return "price DESC, id ASC"
	case domainproperties.SortNewest:
		return "created_at DESC, id ASC"
	default:
		return "id ASC"
	}
}

type propertyRow struct {
	ID              int64          `db:"id"`
	Name            string         `db:"name"`
	City            string         `db:"city"`
	Area            string         `db:"area"`
	Type            string         `db:"type"`
	Price           int64          `db:"price"`
	Nights          int            `db:"nights"`
	Rating          float64        `db:"rating"`
	ImageURL        string         `db:"image_url"`
	IsGuestFavorite bool           `db:"is_guest_favorite"`
	Description     string         `db:"description"`
	Address         string         `db:"address"`
	Country         string         `db:"country"`
	Bedrooms        int            `db:"bedrooms"`
	Bathrooms       int            `db:"bathrooms"`
	MaxGuests       int            `db:"max_guests"`
	PetsAllowed     bool           `db:"pets_allowed"`
	CheckInTime     string         `db:"check_in_time"`
	CheckOutTime    string         `db:"check_out_time"`
	Images          pq.StringArray `db:"images"`
	Amenities       pq.StringArray `db:"amenities"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

func newPropertyRow(p *domainproperties.Property) propertyRow {
	return propertyRow{
		ID:              int64(p.ID),
		Name:            p.Name,
		City:            p.City,
		Area:            p.Area,
		Type:            p.Type,
		Price:           p.Price,
		Nights:          p.Nights,
		Rating:          p.Rating,
		ImageURL:        p.ImageURL,
		IsGuestFavorite: p.IsGuestFavorite,
		Description:     p.Description,
		Address:         p.Address,
		Country:         p.Country,
		Bedrooms:        p.Bedrooms,
		Bathrooms:       p.Bathrooms,
		MaxGuests:       p.MaxGuests,
		PetsAllowed:     p.PetsAllowed,
		CheckInTime:     p.CheckInTime,
		CheckOutTime:    p.CheckOutTime,
		Images:          pq.StringArray(nonNil(p.Images)),
		Amenities:       pq.StringArray(nonNil(p.Amenities)),
		CreatedAt:       p.CreatedAt.UTC(),
		UpdatedAt:       p.UpdatedAt.UTC(),
	}
}

func (r propertyRow) toDomain() *domainproperties.Property {
	return &domainproperties.Property{
		ID:              domainproperties.PropertyID(r.ID),
		Name:            r.Name,
		City:            r.City,
		Area:            r.Area,
		Type:            r.Type,
		Price:           r.Price,
		Nights:          r.Nights,
		Rating:          r.Rating,
		ImageURL:        r.ImageURL,
		IsGuestFavorite: r.IsGuestFavorite,
		Description:     r.Description,
		Address:         r.Address,
		Country:         r.Country,
		Bedrooms:        r.Bedrooms,
		Bathrooms:       r.Bathrooms,
		MaxGuests:       r.MaxGuests,
		PetsAllowed:     r.PetsAllowed,
		CheckInTime:     r.CheckInTime,
		CheckOutTime:    r.CheckOutTime,
		Images:          []string(r.Images),
		Amenities:       []string(r.Amenities),
		CreatedAt:       r.CreatedAt.UTC(),
		UpdatedAt:       r.UpdatedAt.UTC(),
	}
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

var _ domainproperties.Repository = (*PropertyRepository)(nil)
