package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainbooking "staysia/internal/domain/booking"
	domaincalendar "staysia/internal/domain/calendar"
	domainpricing "staysia/internal/domain/pricing"
	domainproperties "staysia/internal/domain/properties"
	"staysia/internal/domain/shared/money"
)

var ctx = context.Background()

func day(d int) time.Time {
	return time.Date(2025, time.October, d, 0, 0, 0, 0, time.UTC)
}

func TestPropertySearchSortsRatingTiesIndonesiaFirst(t *testing.T) {
	repo := NewPropertyRepository()
	for _, p := range []*domainproperties.Property{
		{Name: "Kyoto Machiya", City: "Kyoto", Country: "Japan", Rating: 4.9, Price: 1_500_000},
		{Name: "Ubud Villa", City: "Bali", Country: "Indonesia", Rating: 4.9, Price: 900_000},
		{Name: "Seminyak Loft", City: "Bali", Country: "Indonesia", Rating: 4.5, Price: 700_000},
	} {
		require.NoError(t, repo.Save(ctx, p))
	}

	got, err := repo.Search(ctx, domainproperties.SearchParams{Sort: domainproperties.SortByRating})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Ubud Villa", got[0].Name)
	assert.Equal(t, "Kyoto Machiya", got[1].Name)

	bali, err := repo.Search(ctx, domainproperties.SearchParams{City: "BALI", Sort: domainproperties.SortPriceAsc, Limit: 1})
	require.NoError(t, err)
	require.Len(t, bali, 1)
	assert.Equal(t, "Seminyak Loft", bali[0].Name)
}

func TestPropertyRepositoryReturnsCopies(t *testing.T) {
	repo := NewPropertyRepository()
	p := &domainproperties.Property{Name: "Ubud Villa", Images: []string{"a.jpg"}}
	require.NoError(t, repo.Save(ctx, p))
	assert.Equal(t, domainproperties.PropertyID(1), p.ID)

	loaded, err := repo.ByID(ctx, p.ID)
	require.NoError(t, err)
	loaded.Images[0] = "changed.jpg"

	again, err := repo.ByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", again.Images[0])

	_, err = repo.ByID(ctx, 99)
	assert.ErrorIs(t, err, domainproperties.ErrNotFound)
}

func TestPricingRangeIsInclusiveAndSorted(t *testing.T) {
	repo := NewPricingRepository()
	require.NoError(t, repo.Upsert(ctx, 83, []domainpricing.Entry{
		{Date: day(22), Price: 700_000, Status: domainpricing.StatusBestDeal},
		{Date: day(20), Price: 1_000_000, Status: domainpricing.StatusPeakSeason},
		{Date: day(25), Price: 800_000, Status: domainpricing.StatusAvailable},
	}))
	require.NoError(t, repo.Upsert(ctx, 83, []domainpricing.Entry{
		{Date: day(22), Price: 750_000, Status: domainpricing.StatusSoldOut},
	}))

	got, err := repo.Range(ctx, 83, day(20), day(22))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, day(20), got[0].Date)
	assert.Equal(t, domainpricing.StatusSoldOut, got[1].Status)
}

func TestBookingRepositoryVersioning(t *testing.T) {
	repo := NewBookingRepository()
	b := &domainbooking.Booking{ID: "b1", GuestID: "g1"}
	require.NoError(t, repo.Save(ctx, b))
	assert.Equal(t, int64(1), b.Version)

	stale := &domainbooking.Booking{ID: "b1", GuestID: "g1"}
	assert.ErrorIs(t, repo.Save(ctx, stale), ErrConcurrentUpdate)

	list, err := repo.ListByGuest(ctx, "g1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSessionStoreSerializesUpdates(t *testing.T) {
	store := NewSessionStore(time.Hour)
	session := domaincalendar.NewSession("s1", 83, "Ubud Villa", 800_000, nil, money.DefaultPreferences(), day(1))
	require.NoError(t, store.Create(ctx, session))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(ctx, "s1", func(s *domaincalendar.Session) error {
				s.BasePrice++
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(800_020), got.BasePrice)
}

func TestSessionStoreReadsDuringSelection(t *testing.T) {
	store := NewSessionStore(time.Hour)
	require.NoError(t, store.Create(ctx, domaincalendar.NewSession("s1", 83, "Ubud Villa", 800_000, nil, money.DefaultPreferences(), day(1))))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := store.Update(ctx, "s1", func(s *domaincalendar.Session) error {
				s.SelectDate(day(2+i%5), day(1))
				return nil
			})
			assert.NoError(t, err)
		}(i)
		go func() {
			defer wg.Done()
			_, err := store.Get(ctx, "s1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	_, err := store.Get(ctx, "s1")
	require.NoError(t, err)
}

func TestSessionStoreExpires(t *testing.T) {
	now := day(1)
	store := NewSessionStore(time.Minute)
	store.now = func() time.Time { return now }
	require.NoError(t, store.Create(ctx, domaincalendar.NewSession("s1", 83, "Ubud Villa", 800_000, nil, money.DefaultPreferences(), now)))

	now = now.Add(2 * time.Minute)
	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, domaincalendar.ErrSessionNotFound)
	_, err = store.Get(ctx, " ")
	assert.ErrorIs(t, err, domaincalendar.ErrInvalidSessionID)
}

func TestInboxSeen(t *testing.T) {
	in := NewInbox()
	seen, err := in.Seen(ctx, "e1")
	require.NoError(t, err)
	assert.False(t, seen)
	seen, _ = in.Seen(ctx, "e1")
	assert.True(t, seen)
}
