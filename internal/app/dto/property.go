package dto

import (
	"time"

	domainpricing "staysia/internal/domain/pricing"
	domainproperties "staysia/internal/domain/properties"
	domainreviews "staysia/internal/domain/reviews"
	"staysia/internal/domain/shared/daterange"
)

type Property struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	City            string    `json:"city"`
	Area            string    `json:"area"`
	Type            string    `json:"type"`
	Price           int64     `json:"price"`
	Nights          int       `json:"nights"`
	Rating          float64   `json:"rating"`
	ImageURL        string    `json:"image_url"`
	IsGuestFavorite bool      `json:"is_guest_favorite"`
	Description     string    `json:"description,omitempty"`
	Address         string    `json:"address,omitempty"`
	Country         string    `json:"country,omitempty"`
	Bedrooms        int       `json:"bedrooms,omitempty"`
	Bathrooms       int       `json:"bathrooms,omitempty"`
	MaxGuests       int       `json:"max_guests,omitempty"`
	PetsAllowed     bool      `json:"pets_allowed"`
	CheckInTime     string    `json:"check_in_time,omitempty"`
	CheckOutTime    string    `json:"check_out_time,omitempty"`
	Images          []string  `json:"images,omitempty"`
	Amenities       []string  `json:"amenities,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Room struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Type          string         `json:"type"`
	PricePerNight int64          `json:"price_per_night"`
	MaxGuests     int            `json:"max_guests"`
	Beds          map[string]int `json:"beds"`
	BedsSummary   string         `json:"beds_summary"`
	Size          int            `json:"size"`
	Amenities     []string       `json:"amenities"`
	Available     bool           `json:"available"`
}

type Review struct {
	ID            int64     `json:"id"`
	UserName      string    `json:"user_name"`
	UserAvatar    string    `json:"user_avatar,omitempty"`
	Rating        float64   `json:"rating"`
	Comment       string    `json:"comment"`
	Cleanliness   float64   `json:"cleanliness"`
	Accuracy      float64   `json:"accuracy"`
	Communication float64   `json:"communication"`
	Location      float64   `json:"location"`
	Value         float64   `json:"value"`
	CreatedAt     time.Time `json:"created_at"`
}

type PricingEntry struct {
	Date   string `json:"date"`
	Price  int64  `json:"price"`
	Status string `json:"status"`
}

type PropertyDetails struct {
	Property Property       `json:"property"`
	Rooms    []Room         `json:"rooms"`
	Reviews  []Review       `json:"reviews"`
	Pricing  []PricingEntry `json:"pricing"`
}

type Section struct {
	Title      string     `json:"title"`
	Properties []Property `json:"properties"`
}

func MapProperty(p *domainproperties.Property) Property {
	if p == nil {
		return Property{}
	}
	return Property{
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
		Images:          append([]string(nil), p.Images...),
		Amenities:       append([]string(nil), p.Amenities...),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func MapProperties(items []*domainproperties.Property) []Property {
	out := make([]Property, 0, len(items))
	for _, p := range items {
		out = append(out, MapProperty(p))
	}
	return out
}

func MapRooms(rooms []domainproperties.Room) []Room {
	out := make([]Room, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, Room{
			ID:            r.ID,
			Name:          r.Name,
			Type:          r.Type,
			PricePerNight: r.PricePerNight,
			MaxGuests:     r.MaxGuests,
			Beds:          r.Beds,
			BedsSummary:   r.BedsSummary(),
			Size:          r.Size,
			Amenities:     append([]string(nil), r.Amenities...),
			Available:     r.Available,
		})
	}
	return out
}

func MapReviews(list []domainreviews.Review) []Review {
	out := make([]Review, 0, len(list))
	for _, r := range list {
		out = append(out, Review{
			ID:            r.ID,
			UserName:      r.UserName,
			UserAvatar:    r.UserAvatar,
			Rating:        r.Rating,
			Comment:       r.Comment,
			Cleanliness:   r.Cleanliness,
			Accuracy:      r.Accuracy,
			Communication: r.Communication,
			Location:      r.Location,
			Value:         r.Value,
			CreatedAt:     r.CreatedAt,
		})
	}
	return out
}

func MapPricing(entries []domainpricing.Entry) []PricingEntry {
	out := make([]PricingEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, PricingEntry{Date: daterange.FormatDay(e.Date), Price: e.Price, Status: string(e.Status)})
	}
	return out
}

func MapSections(sections []domainproperties.Section) []Section {
	out := make([]Section, 0, len(sections))
	for _, s := range sections {
		out = append(out, Section{Title: s.Title, Properties: MapProperties(s.Properties)})
	}
	return out
}
