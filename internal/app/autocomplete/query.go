package autocomplete

import (
	"context"

	"staysia/internal/app/queries"
)

const searchLocationsKey = "locations.search"

type SearchLocationsQuery struct {
	Client string
	Query  string
}

func (q SearchLocationsQuery) Key() string { return searchLocationsKey }

type SearchLocationsHandler struct {
	Debouncer *Debouncer
}

func (h *SearchLocationsHandler) Handle(ctx context.Context, q SearchLocationsQuery) ([]Place, error) {
	return h.Debouncer.Search(ctx, q.Client, q.Query)
}

var _ queries.Handler[SearchLocationsQuery, []Place] = (*SearchLocationsHandler)(nil)
