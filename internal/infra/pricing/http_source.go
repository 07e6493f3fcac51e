package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"staysia/internal/app/policies"
	domainpricing "staysia/internal/domain/pricing"
	"staysia/internal/domain/shared/daterange"
)

// HTTPSource fetches daily pricing from a remote pricing service:
// GET {Endpoint}/properties/{id}/pricing?from=YYYY-MM-DD&to=YYYY-MM-DD.
type HTTPSource struct {
	Client   *http.Client
	Endpoint string
	Logger   *slog.Logger
}

type pricingRow struct {
	Date   string `json:"date"`
	Price  int64  `json:"price"`
	Status string `json:"status"`
}

func (s *HTTPSource) FetchPricing(ctx context.Context, propertyID int64, from, to time.Time) ([]domainpricing.Entry, error) {
	if s == nil || s.Client == nil {
		return nil, errors.New("pricing: http client not configured")
	}
	if strings.TrimSpace(s.Endpoint) == "" {
		return nil, errors.New("pricing: endpoint not configured")
	}

	q := url.Values{}
	q.Set("from", daterange.FormatDay(from))
	q.Set("to", daterange.FormatDay(to))
	target := fmt.Sprintf("%s/properties/%s/pricing?%s", strings.TrimRight(s.Endpoint, "/"), strconv.FormatInt(propertyID, 10), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pricing: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("pricing: service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var rows []pricingRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("pricing: decode response: %w", err)
	}

	entries := make([]domainpricing.Entry, 0, len(rows))
	for _, row := range rows {
		entry, err := domainpricing.ParseEntry(row.Date, row.Price, row.Status)
		if err != nil {
			if s.Logger != nil {
				s.Logger.Warn("pricing row rejected", "property_id", propertyID, "date", row.Date, "error", err)
			}
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

var _ policies.PricingSource = (*HTTPSource)(nil)
