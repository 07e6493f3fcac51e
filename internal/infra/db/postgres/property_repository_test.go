package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainproperties "staysia/internal/domain/properties"
)

func TestBuildSearchQueryFilters(t *testing.T) {
	pets := true
	query, args := buildSearchQuery(domainproperties.SearchParams{
		City:   " Bali ",
		Guests: 4,
		Pets:   &pets,
		Sort:   domainproperties.SortByRating,
	}.Normalized())

	assert.Contains(t, query, "WHERE lower(city) = $1 AND (max_guests = 0 OR max_guests >= $2) AND pets_allowed = $3")
	assert.Contains(t, query, "ORDER BY rating DESC, CASE WHEN lower(country) = 'indonesia' THEN 0 ELSE 1 END, id ASC")
	assert.Contains(t, query, "LIMIT $4 OFFSET $5")
	assert.Equal(t, []any{"bali", 4, true, domainproperties.DefaultSearchLimit, 0}, args)
}

func TestBuildSearchQueryWithoutFilters(t *testing.T) {
	query, args := buildSearchQuery(domainproperties.SearchParams{Limit: 500, Offset: 10, Sort: domainproperties.SortPriceDesc}.Normalized())

	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "ORDER BY price DESC, id ASC LIMIT $1 OFFSET $2")
	assert.Equal(t, []any{domainproperties.MaxSearchLimit, 10}, args)
}
