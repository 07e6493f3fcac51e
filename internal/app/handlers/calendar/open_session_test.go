package calendar_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcalendar "staysia/internal/app/handlers/calendar"
	domainpricing "staysia/internal/domain/pricing"
	domainproperties "staysia/internal/domain/properties"
	"staysia/internal/infra/storage/memory"
)

var openNow = time.Date(2025, 10, 20, 8, 0, 0, 0, time.UTC)

type failingSource struct {
	calls int
}

func (s *failingSource) FetchPricing(context.Context, int64, time.Time, time.Time) ([]domainpricing.Entry, error) {
	s.calls++
	return nil, errors.New("pricing upstream: status 502")
}

type fixedSource struct {
	entries  []domainpricing.Entry
	from, to time.Time
}

func (s *fixedSource) FetchPricing(_ context.Context, _ int64, from, to time.Time) ([]domainpricing.Entry, error) {
	s.from, s.to = from, to
	return s.entries, nil
}

func seedProperty(t *testing.T, factory memory.Factory, price int64) int64 {
	t.Helper()
	rating := 4.8
	property, err := domainproperties.NewProperty(domainproperties.CreateParams{
		Name: "Villa Sawah", City: "Ubud", Area: "Tegallalang", Type: "villa",
		ImageURL: "https://img.example/sawah.jpg", Price: &price, Rating: &rating,
		Country: "Indonesia", Now: openNow,
	})
	require.NoError(t, err)
	require.NoError(t, factory.PropertiesRepo.Save(context.Background(), property))
	return int64(property.ID)
}

func TestOpenSessionDegradesWhenPricingFails(t *testing.T) {
	factory := memory.NewFactory()
	propertyID := seedProperty(t, factory, 800_000)
	sessions := memory.NewSessionStore(time.Hour)
	source := &failingSource{}
	handler := &appcalendar.OpenSessionHandler{
		UoWFactory: factory,
		Sessions:   sessions,
		Pricing:    source,
		Now:        func() time.Time { return openNow },
		NewID:      func() string { return "s-degraded" },
	}

	out, err := handler.Handle(context.Background(), appcalendar.OpenSessionCommand{PropertyID: propertyID})
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, "s-degraded", out.ID)
	assert.Zero(t, out.PricedDays)

	session, err := sessions.Get(context.Background(), out.ID)
	require.NoError(t, err)
	for _, offset := range []int{0, 1, 45, 89} {
		quote := session.Index().Lookup(openNow.AddDate(0, 0, offset))
		assert.Equal(t, domainpricing.Quote{Price: 800_000, Status: domainpricing.StatusAvailable}, quote)
	}
}

func TestOpenSessionFetchesHorizon(t *testing.T) {
	factory := memory.NewFactory()
	propertyID := seedProperty(t, factory, 800_000)
	peak := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	source := &fixedSource{entries: []domainpricing.Entry{{Date: peak, Price: 1_000_000, Status: domainpricing.StatusPeakSeason}}}
	sessions := memory.NewSessionStore(time.Hour)
	handler := &appcalendar.OpenSessionHandler{
		UoWFactory: factory,
		Sessions:   sessions,
		Pricing:    source,
		Now:        func() time.Time { return openNow },
	}

	out, err := handler.Handle(context.Background(), appcalendar.OpenSessionCommand{PropertyID: propertyID})
	require.NoError(t, err)
	assert.Equal(t, 1, out.PricedDays)
	assert.Equal(t, peak, source.from)
	assert.Equal(t, peak.AddDate(0, 0, 90), source.to)

	session, err := sessions.Get(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, domainpricing.StatusPeakSeason, session.Index().Lookup(peak).Status)
	assert.Equal(t, int64(800_000), session.Index().Lookup(peak.AddDate(0, 0, 1)).Price)
}

func TestOpenSessionUnknownProperty(t *testing.T) {
	handler := &appcalendar.OpenSessionHandler{
		UoWFactory: memory.NewFactory(),
		Sessions:   memory.NewSessionStore(time.Hour),
		Now:        func() time.Time { return openNow },
	}
	_, err := handler.Handle(context.Background(), appcalendar.OpenSessionCommand{PropertyID: 404})
	assert.ErrorIs(t, err, domainproperties.ErrNotFound)
}
