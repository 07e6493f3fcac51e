package properties

import (
	"context"
	"errors"
	"strings"
	"time"

	"staysia/internal/domain/shared/events"
)

var (
	ErrNotFound  = errors.New("properties: not found")
	ErrInvalidID = errors.New("properties: id must be a positive integer")
)

// DefaultNights is the stay length quoted on cards when none is configured.
const DefaultNights = 2

type PropertyID int64

// Property is a rentable stay. Price is the base nightly price in whole IDR.
type Property struct {
	ID              PropertyID
	Name            string
	City            string
	Area            string
	Type            string
	Price           int64
	Nights          int
	Rating          float64
	ImageURL        string
	IsGuestFavorite bool
	Description     string
	Address         string
	Country         string
	Bedrooms        int
	Bathrooms       int
	MaxGuests       int
	PetsAllowed     bool
	CheckInTime     string
	CheckOutTime    string
	Images          []string
	Amenities       []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id PropertyID) (*Property, error)
	Search(ctx context.Context, params SearchParams) ([]*Property, error)
	// Save inserts properties with a zero ID, assigning one, and updates the rest.
	Save(ctx context.Context, property *Property) error
}

// CreateParams mirrors the create payload. Nil pointers mean the field was omitted.
type CreateParams struct {
	Name            string
	City            string
	Area            string
	Type            string
	ImageURL        string
	Price           *int64
	Rating          *float64
	Nights          *int
	IsGuestFavorite bool
	Description     string
	Address         string
	Country         string
	Bedrooms        int
	Bathrooms       int
	MaxGuests       int
	PetsAllowed     bool
	CheckInTime     string
	CheckOutTime    string
	Amenities       []string
	Now             time.Time
}

func NewProperty(params CreateParams) (*Property, error) {
	required := []struct {
		value string
		code  string
		field string
	}{
		{params.Name, CodeInvalidName, "Name"},
		{params.City, CodeInvalidCity, "City"},
		{params.Area, CodeInvalidArea, "Area"},
		{params.Type, CodeInvalidType, "Type"},
		{params.ImageURL, CodeInvalidImageURL, "Image URL"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, Invalid(r.code, r.field+" is required and must be a non-empty string")
		}
	}
	if params.Price == nil {
		return nil, Invalid(CodeMissingPrice, "Price is required")
	}
	if *params.Price <= 0 {
		return nil, Invalid(CodeInvalidPrice, "Price must be a positive integer")
	}
	if params.Rating == nil {
		return nil, Invalid(CodeMissingRating, "Rating is required")
	}
	if *params.Rating < 0 || *params.Rating > 5 {
		return nil, Invalid(CodeInvalidRating, "Rating must be a number between 0 and 5")
	}
	nights := DefaultNights
	if params.Nights != nil {
		if *params.Nights <= 0 {
			return nil, Invalid(CodeInvalidNights, "Nights must be a positive integer")
		}
		nights = *params.Nights
	}

	now := params.Now.UTC()
	p := &Property{
		Name:            strings.TrimSpace(params.Name),
		City:            strings.TrimSpace(params.City),
		Area:            strings.TrimSpace(params.Area),
		Type:            strings.TrimSpace(params.Type),
		Price:           *params.Price,
		Nights:          nights,
		Rating:          *params.Rating,
		ImageURL:        strings.TrimSpace(params.ImageURL),
		IsGuestFavorite: params.IsGuestFavorite,
		Description:     strings.TrimSpace(params.Description),
		Address:         strings.TrimSpace(params.Address),
		Country:         strings.TrimSpace(params.Country),
		Bedrooms:        params.Bedrooms,
		Bathrooms:       params.Bathrooms,
		MaxGuests:       params.MaxGuests,
		PetsAllowed:     params.PetsAllowed,
		CheckInTime:     strings.TrimSpace(params.CheckInTime),
		CheckOutTime:    strings.TrimSpace(params.CheckOutTime),
		Amenities:       append([]string(nil), params.Amenities...),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return p, nil
}

// MarkCreated records the creation event once the repository has assigned an ID.
func (p *Property) MarkCreated() {
	p.Record(PropertyCreated{PropertyID: p.ID, City: p.City, At: p.CreatedAt})
}

func (p *Property) ToggleFavorite(now time.Time) {
	p.IsGuestFavorite = !p.IsGuestFavorite
	p.UpdatedAt = now.UTC()
	p.Record(PropertyFavoriteToggled{PropertyID: p.ID, Favorite: p.IsGuestFavorite, At: p.UpdatedAt})
}

func (p *Property) AddImage(url string, now time.Time) {
	url = strings.TrimSpace(url)
	if url == "" {
		return
	}
	p.Images = append(p.Images, url)
	if p.ImageURL == "" {
		p.ImageURL = url
	}
	p.UpdatedAt = now.UTC()
	p.Record(PropertyImageAdded{PropertyID: p.ID, URL: url, At: p.UpdatedAt})
}

// InIndonesia reports whether the property is located in Indonesia.
func (p *Property) InIndonesia() bool {
	return strings.EqualFold(strings.TrimSpace(p.Country), "indonesia")
}
