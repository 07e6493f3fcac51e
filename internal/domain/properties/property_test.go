package properties

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func validParams() CreateParams {
	return CreateParams{
		Name:     "Villa Ubud",
		City:     "Bali",
		Area:     "Ubud",
		Type:     "Villa",
		ImageURL: "https://img.example/ubud.jpg",
		Price:    ptr(int64(1_400_000)),
		Rating:   ptr(4.8),
		Now:      time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewPropertyDefaultsNights(t *testing.T) {
	p, err := NewProperty(validParams())
	require.NoError(t, err)
	assert.Equal(t, DefaultNights, p.Nights)
	assert.Equal(t, "Villa Ubud", p.Name)
}

func TestNewPropertyValidationCodes(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateParams)
		code   string
	}{
		{"blank name", func(p *CreateParams) { p.Name = "  " }, CodeInvalidName},
		{"blank city", func(p *CreateParams) { p.City = "" }, CodeInvalidCity},
		{"blank area", func(p *CreateParams) { p.Area = "" }, CodeInvalidArea},
		{"blank type", func(p *CreateParams) { p.Type = "" }, CodeInvalidType},
		{"blank image", func(p *CreateParams) { p.ImageURL = "" }, CodeInvalidImageURL},
		{"missing price", func(p *CreateParams) { p.Price = nil }, CodeMissingPrice},
		{"zero price", func(p *CreateParams) { p.Price = ptr(int64(0)) }, CodeInvalidPrice},
		{"missing rating", func(p *CreateParams) { p.Rating = nil }, CodeMissingRating},
		{"rating above five", func(p *CreateParams) { p.Rating = ptr(5.1) }, CodeInvalidRating},
		{"negative nights", func(p *CreateParams) { p.Nights = ptr(-1) }, CodeInvalidNights},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := validParams()
			tc.mutate(&params)

			_, err := NewProperty(params)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)

			var coded *CodedError
			require.True(t, errors.As(err, &coded))
			assert.Equal(t, tc.code, coded.Code)
		})
	}
}

func TestToggleFavoriteRecordsEvent(t *testing.T) {
	p, err := NewProperty(validParams())
	require.NoError(t, err)
	p.ID = 7

	later := p.CreatedAt.Add(time.Hour)
	p.ToggleFavorite(later)
	assert.True(t, p.IsGuestFavorite)
	assert.Equal(t, later, p.UpdatedAt)

	events := p.PendingEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "property.favorite_toggled", events[0].EventName())
	assert.Equal(t, "7", events[0].AggregateID())
}

func TestParseID(t *testing.T) {
	id, err := ParseID("83")
	require.NoError(t, err)
	assert.Equal(t, PropertyID(83), id)

	for _, raw := range []string{"", "abc", "0", "-4"} {
		_, err := ParseID(raw)
		assert.ErrorIs(t, err, ErrInvalidID, raw)
	}
}

func TestSearchParamsNormalized(t *testing.T) {
	n := SearchParams{City: " Bali ", Limit: 500, Offset: -3, Sort: "bogus"}.Normalized()
	assert.Equal(t, "bali", n.City)
	assert.Equal(t, MaxSearchLimit, n.Limit)
	assert.Equal(t, 0, n.Offset)
	assert.Equal(t, SortDefault, n.Sort)

	assert.Equal(t, DefaultSearchLimit, SearchParams{}.Normalized().Limit)
}

func TestSortByRatingPrefersIndonesiaOnTies(t *testing.T) {
	items := []*Property{
		{ID: 1, Rating: 4.7, Country: "Thailand"},
		{ID: 2, Rating: 4.9, Country: "Japan"},
		{ID: 3, Rating: 4.7, Country: "Indonesia"},
	}
	SortProperties(items, SortByRating)
	assert.Equal(t, []PropertyID{2, 3, 1}, []PropertyID{items[0].ID, items[1].ID, items[2].ID})
}

func TestBuildSections(t *testing.T) {
	var items []*Property
	add := func(id int64, city, typ string, rating float64) {
		items = append(items, &Property{ID: PropertyID(id), City: city, Type: typ, Rating: rating})
	}
	add(1, "Bali", "Villa", 4.9)
	add(2, "Jakarta", "Apartment", 4.1)
	add(3, "Bali", "Villa", 4.2)
	add(4, "Bandung", "Guesthouse", 4.6)
	add(5, "Jakarta", "Hotel", 4.0)
	add(6, "Bali", "Hotel", 4.3)

	sections := BuildSections(items)
	require.Len(t, sections, 3)
	assert.Equal(t, "Stays in Bali", sections[0].Title)
	assert.Len(t, sections[0].Properties, 3)
	assert.Equal(t, "Available homes in Jakarta", sections[1].Title)
	assert.Equal(t, "Places to stay in Bandung", sections[2].Title)
}

func TestBuildSectionsSingleCityFallsBack(t *testing.T) {
	items := []*Property{
		{ID: 1, City: "Bali", Type: "Villa", Rating: 4.9},
		{ID: 2, City: "Bali", Type: "Villa", Rating: 3.9},
		{ID: 3, City: "Bali", Type: "Hotel", Rating: 4.0, IsGuestFavorite: true},
	}
	sections := BuildSections(items)
	require.Len(t, sections, 3)
	assert.Equal(t, "Villas", sections[1].Title)
	assert.Equal(t, "Guest favorites", sections[2].Title)
	assert.Len(t, sections[2].Properties, 2)

	assert.Empty(t, BuildSections(nil))
}

func TestRoomBedsSummary(t *testing.T) {
	r := Room{Beds: map[string]int{"single": 2, "king": 1, "sofa": 0}}
	assert.Equal(t, "1 king, 2 single", r.BedsSummary())
}
