package autocomplete

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGeocoder struct {
	calls   atomic.Int32
	mu      sync.Mutex
	queries []string
}

func (g *stubGeocoder) Search(_ context.Context, query string) ([]Place, error) {
	g.calls.Add(1)
	g.mu.Lock()
	g.queries = append(g.queries, query)
	g.mu.Unlock()
	return []Place{{PlaceID: "1", Name: query}}, nil
}

func TestDebouncerShortQuerySkipsUpstream(t *testing.T) {
	geo := &stubGeocoder{}
	d := NewDebouncer(geo, WithDelay(time.Millisecond))

	places, err := d.Search(context.Background(), "c1", " b ")
	require.NoError(t, err)
	assert.Empty(t, places)
	assert.Zero(t, geo.calls.Load())
}

func TestDebouncerReturnsLatestOnly(t *testing.T) {
	geo := &stubGeocoder{}
	d := NewDebouncer(geo, WithDelay(100*time.Millisecond))

	firstErr := make(chan error, 1)
	go func() {
		_, err := d.Search(context.Background(), "c1", "Ba")
		firstErr <- err
	}()
	time.Sleep(20 * time.Millisecond)

	places, err := d.Search(context.Background(), "c1", "Bali")
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "Bali", places[0].Name)

	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(time.Second):
		t.Fatal("superseded search did not return")
	}
	assert.Equal(t, int32(1), geo.calls.Load())
	assert.Equal(t, []string{"Bali"}, geo.queries)
}

func TestDebouncerKeysAreIndependent(t *testing.T) {
	geo := &stubGeocoder{}
	d := NewDebouncer(geo, WithDelay(10*time.Millisecond))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, key := range []string{"a", "b"} {
		wg.Add(1)
		go func(i int, key string) {
			defer wg.Done()
			_, errs[i] = d.Search(context.Background(), key, "Jakarta")
		}(i, key)
	}
	wg.Wait()

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
	assert.Equal(t, int32(2), geo.calls.Load())
}

func TestDebouncerHonoursCallerCancel(t *testing.T) {
	geo := &stubGeocoder{}
	d := NewDebouncer(geo, WithDelay(time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := d.Search(ctx, "c1", "Ubud")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, geo.calls.Load())
}
