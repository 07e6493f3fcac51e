package fixtures

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"staysia/internal/app/uow"
	domainpricing "staysia/internal/domain/pricing"
	domainproperties "staysia/internal/domain/properties"
	domainreviews "staysia/internal/domain/reviews"
	"staysia/internal/domain/shared/daterange"
)

// Loader imports demo catalog data and seeds a pricing calendar for every imported property.
type Loader struct {
	UoWFactory uow.UoWFactory
	Logger     *slog.Logger
	Seed       int64
	Now        func() time.Time
}

type Stats struct {
	Properties int
	Rooms      int
	Reviews    int
	PriceDays  int
}

// Load reads path and imports its properties. An empty catalog is required; a populated one is left untouched.
func (l Loader) Load(ctx context.Context, path string) (Stats, error) {
	logger := l.logger()
	if path == "" {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("fixtures file not found, skipping", "path", path)
			return Stats{}, nil
		}
		return Stats{}, fmt.Errorf("read fixtures: %w", err)
	}
	if len(data) == 0 {
		logger.Warn("fixtures file empty", "path", path)
		return Stats{}, nil
	}
	var fixtures []propertyFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return Stats{}, fmt.Errorf("decode fixtures: %w", err)
	}
	return l.importAll(ctx, fixtures)
}

func (l Loader) importAll(ctx context.Context, fixtures []propertyFixture) (Stats, error) {
	var stats Stats
	if len(fixtures) == 0 {
		return stats, nil
	}
	if l.UoWFactory == nil {
		return stats, uow.ErrUnitOfWorkMissing
	}
	populated, err := l.populated(ctx)
	if err != nil {
		return stats, err
	}
	logger := l.logger()
	if populated {
		logger.Info("catalog already populated, fixtures skipped")
		return stats, nil
	}

	now := l.now()
	gen := domainpricing.NewGenerator(l.Seed)
	for _, fx := range fixtures {
		rooms, reviews, days, err := l.importOne(ctx, fx, gen, now)
		if err != nil {
			logger.Error("cannot import fixture property", "name", fx.Name, "error", err)
			continue
		}
		stats.Properties++
		stats.Rooms += rooms
		stats.Reviews += reviews
		stats.PriceDays += days
	}
	logger.Info("fixtures imported",
		"properties", stats.Properties,
		"rooms", stats.Rooms,
		"reviews", stats.Reviews,
		"price_days", stats.PriceDays,
	)
	return stats, nil
}

func (l Loader) importOne(ctx context.Context, fx propertyFixture, gen *domainpricing.Generator, now time.Time) (int, int, int, error) {
	property, err := domainproperties.NewProperty(fx.params(now))
	if err != nil {
		return 0, 0, 0, err
	}
	property.Images = append(property.Images, fx.Images...)

	unit, err := l.UoWFactory.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return 0, 0, 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = unit.Rollback(ctx)
		}
	}()

	if err := unit.Properties().Save(ctx, property); err != nil {
		return 0, 0, 0, fmt.Errorf("save property: %w", err)
	}
	for _, rf := range fx.Rooms {
		room := rf.room(property.ID)
		if err := unit.Rooms().Add(ctx, room); err != nil {
			return 0, 0, 0, fmt.Errorf("add room %q: %w", rf.Name, err)
		}
	}
	for i, rv := range fx.Reviews {
		review := rv.review(property.ID, now.AddDate(0, 0, -7*(i+1)))
		if err := review.Validate(); err != nil {
			return 0, 0, 0, fmt.Errorf("review by %q: %w", rv.UserName, err)
		}
		if err := unit.Reviews().Add(ctx, review); err != nil {
			return 0, 0, 0, fmt.Errorf("add review: %w", err)
		}
	}
	entries := gen.Generate(property.Price, daterange.Today(now), domainpricing.SeedHorizonDays)
	if err := unit.Pricing().Upsert(ctx, int64(property.ID), entries); err != nil {
		return 0, 0, 0, fmt.Errorf("seed pricing: %w", err)
	}
	if err := unit.Commit(ctx); err != nil {
		return 0, 0, 0, err
	}
	committed = true
	return len(fx.Rooms), len(fx.Reviews), len(entries), nil
}

func (l Loader) populated(ctx context.Context) (bool, error) {
	unit, err := l.UoWFactory.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return false, err
	}
	defer func() { _ = unit.Rollback(ctx) }()
	existing, err := unit.Properties().Search(ctx, domainproperties.SearchParams{Limit: 1})
	if err != nil {
		return false, err
	}
	return len(existing) > 0, nil
}

func (l Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

func (l Loader) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

// DefaultPath returns the first existing candidate fixtures file.
func DefaultPath() string {
	candidates := []string{
		filepath.Join("data", "properties.json"),
		filepath.Join("..", "..", "data", "properties.json"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return candidates[0]
}

type propertyFixture struct {
	Name            string          `json:"name"`
	City            string          `json:"city"`
	Area            string          `json:"area"`
	Type            string          `json:"type"`
	Price           int64           `json:"price"`
	Nights          int             `json:"nights"`
	Rating          float64         `json:"rating"`
	ImageURL        string          `json:"image_url"`
	IsGuestFavorite bool            `json:"is_guest_favorite"`
	Description     string          `json:"description"`
	Address         string          `json:"address"`
	Country         string          `json:"country"`
	Bedrooms        int             `json:"bedrooms"`
	Bathrooms       int             `json:"bathrooms"`
	MaxGuests       int             `json:"max_guests"`
	PetsAllowed     bool            `json:"pets_allowed"`
	CheckInTime     string          `json:"check_in_time"`
	CheckOutTime    string          `json:"check_out_time"`
	Images          []string        `json:"images"`
	Amenities       []string        `json:"amenities"`
	Rooms           []roomFixture   `json:"rooms"`
	Reviews         []reviewFixture `json:"reviews"`
}

func (f propertyFixture) params(now time.Time) domainproperties.CreateParams {
	price := f.Price
	rating := f.Rating
	params := domainproperties.CreateParams{
		Name:            f.Name,
		City:            f.City,
		Area:            f.Area,
		Type:            f.Type,
		ImageURL:        f.ImageURL,
		Price:           &price,
		Rating:          &rating,
		IsGuestFavorite: f.IsGuestFavorite,
		Description:     f.Description,
		Address:         f.Address,
		Country:         f.Country,
		Bedrooms:        f.Bedrooms,
		Bathrooms:       f.Bathrooms,
		MaxGuests:       f.MaxGuests,
		PetsAllowed:     f.PetsAllowed,
		CheckInTime:     f.CheckInTime,
		CheckOutTime:    f.CheckOutTime,
		Amenities:       f.Amenities,
		Now:             now,
	}
	if f.Nights > 0 {
		nights := f.Nights
		params.Nights = &nights
	}
	return params
}

type roomFixture struct {
	Name          string         `json:"name"`
	Type          string         `json:"type"`
	PricePerNight int64          `json:"price_per_night"`
	MaxGuests     int            `json:"max_guests"`
	Beds          map[string]int `json:"beds"`
	Size          int            `json:"size"`
	Amenities     []string       `json:"amenities"`
	Available     *bool          `json:"available"`
}

func (f roomFixture) room(id domainproperties.PropertyID) domainproperties.Room {
	available := true
	if f.Available != nil {
		available = *f.Available
	}
	return domainproperties.Room{
		PropertyID:    id,
		Name:          f.Name,
		Type:          f.Type,
		PricePerNight: f.PricePerNight,
		MaxGuests:     f.MaxGuests,
		Beds:          f.Beds,
		Size:          f.Size,
		Amenities:     f.Amenities,
		Available:     available,
	}
}

type reviewFixture struct {
	UserName      string  `json:"user_name"`
	UserAvatar    string  `json:"user_avatar"`
	Rating        float64 `json:"rating"`
	Comment       string  `json:"comment"`
	Cleanliness   float64 `json:"cleanliness"`
	Accuracy      float64 `json:"accuracy"`
	Communication float64 `json:"communication"`
	Location      float64 `json:"location"`
	Value         float64 `json:"value"`
}

func (f reviewFixture) review(id domainproperties.PropertyID, at time.Time) domainreviews.Review {
	return domainreviews.Review{
		PropertyID:    id,
		UserName:      f.UserName,
		UserAvatar:    f.UserAvatar,
		Rating:        f.Rating,
		Comment:       f.Comment,
		Cleanliness:   f.Cleanliness,
		Accuracy:      f.Accuracy,
		Communication: f.Communication,
		Location:      f.Location,
		Value:         f.Value,
		CreatedAt:     at.UTC(),
	}
}
