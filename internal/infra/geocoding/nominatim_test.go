package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominatimSearchMapsPlaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Ubud", r.URL.Query().Get("q"))
		assert.Equal(t, "8", r.URL.Query().Get("limit"))
		assert.Equal(t, "staysia-test", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`[{"place_id":123,"display_name":"Ubud, Gianyar, Bali, Indonesia","lat":"-8.5","lon":"115.2","type":"town"}]`))
	}))
	defer srv.Close()

	n := &Nominatim{Client: srv.Client(), BaseURL: srv.URL, UserAgent: "staysia-test"}
	places, err := n.Search(context.Background(), "Ubud")
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "123", places[0].PlaceID)
	assert.Equal(t, "Ubud", places[0].Name)
	assert.Equal(t, "Ubud, Gianyar, Bali", places[0].DisplayName)
	assert.Equal(t, "town", places[0].Type)
}

func TestNominatimSearchFailsOnStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	n := &Nominatim{Client: srv.Client(), BaseURL: srv.URL}
	_, err := n.Search(context.Background(), "Ubud")
	assert.ErrorContains(t, err, "429")
}
