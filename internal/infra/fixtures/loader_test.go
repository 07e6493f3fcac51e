package fixtures

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainproperties "staysia/internal/domain/properties"
	"staysia/internal/infra/storage/memory"
)

const sample = `[
  {
    "name": "Villa Sawah",
    "city": "Ubud",
    "area": "Tegallalang",
    "type": "villa",
    "price": 1500000,
    "rating": 4.8,
    "image_url": "https://img.example/sawah.jpg",
    "country": "Indonesia",
    "max_guests": 4,
    "rooms": [{"name": "Garden room", "type": "double", "price_per_night": 900000, "max_guests": 2, "beds": {"queen": 1}}],
    "reviews": [{"user_name": "Rina", "rating": 5, "comment": "Lovely"}]
  },
  {
    "name": "",
    "city": "Bangkok",
    "area": "Sukhumvit",
    "type": "apartment",
    "price": 800000,
    "rating": 4.1,
    "image_url": "https://img.example/bkk.jpg"
  }
]`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "properties.json")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	return path
}

func TestLoadImportsValidPropertiesWithPricing(t *testing.T) {
	factory := memory.NewFactory()
	now := time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC)
	loader := Loader{UoWFactory: factory, Seed: 7, Now: func() time.Time { return now }}

	stats, err := loader.Load(context.Background(), writeSample(t))
	require.NoError(t, err)
	assert.Equal(t, Stats{Properties: 1, Rooms: 1, Reviews: 1, PriceDays: 90}, stats)

	props, err := factory.PropertiesRepo.Search(context.Background(), domainproperties.SearchParams{})
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, "Villa Sawah", props[0].Name)

	rooms, err := factory.RoomsRepo.ListByProperty(context.Background(), props[0].ID)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.True(t, rooms[0].Available)

	entries, err := factory.PricingRepo.Range(context.Background(), int64(props[0].ID), now, now.AddDate(0, 0, 89))
	require.NoError(t, err)
	assert.Len(t, entries, 90)
}

func TestLoadSkipsPopulatedCatalog(t *testing.T) {
	factory := memory.NewFactory()
	loader := Loader{UoWFactory: factory}
	path := writeSample(t)

	_, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	stats, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Zero(t, stats.Properties)
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	loader := Loader{UoWFactory: memory.NewFactory()}
	stats, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Zero(t, stats)
}
