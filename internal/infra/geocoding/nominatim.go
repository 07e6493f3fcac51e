package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"staysia/internal/app/autocomplete"
)

const DefaultLimit = 8

// Nominatim queries an OpenStreetMap Nominatim instance.
type Nominatim struct {
	Client    *http.Client
	BaseURL   string
	UserAgent string
	Limit     int
}

type nominatimPlace struct {
	PlaceID     json.Number `json:"place_id"`
	DisplayName string      `json:"display_name"`
	Lat         string      `json:"lat"`
	Lon         string      `json:"lon"`
	Type        string      `json:"type"`
}

func (n *Nominatim) Search(ctx context.Context, query string) ([]autocomplete.Place, error) {
	if n == nil || n.Client == nil {
		return nil, errors.New("geocoding: http client not configured")
	}
	limit := n.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("addressdetails", "1")
	q.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(n.BaseURL, "/")+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if n.UserAgent != "" {
		req.Header.Set("User-Agent", n.UserAgent)
	}

	resp, err := n.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("geocoding: status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var raw []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("geocoding: decode: %w", err)
	}
	out := make([]autocomplete.Place, 0, len(raw))
	for _, p := range raw {
		out = append(out, toPlace(p))
	}
	return out, nil
}

// toPlace keeps the first comma segment as the name and the first three as the display name.
func toPlace(p nominatimPlace) autocomplete.Place {
	parts := strings.Split(p.DisplayName, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	display := parts
	if len(display) > 3 {
		display = display[:3]
	}
	return autocomplete.Place{
		PlaceID:     p.PlaceID.String(),
		Name:        parts[0],
		DisplayName: strings.Join(display, ", "),
		Lat:         p.Lat,
		Lon:         p.Lon,
		Type:        p.Type,
	}
}

var _ autocomplete.Geocoder = (*Nominatim)(nil)
