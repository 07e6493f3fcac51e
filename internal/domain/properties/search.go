package properties

import (
	"sort"
	"strings"
)

type CatalogSort string

const (
	SortDefault   CatalogSort = ""
	SortByRating  CatalogSort = "rating"
	SortPriceAsc  CatalogSort = "price_asc"
	SortPriceDesc CatalogSort = "price_desc"
	SortNewest    CatalogSort = "newest"

	DefaultSearchLimit = 50
	MaxSearchLimit     = 100
)

// SearchParams describe catalog filters and paging options.
type SearchParams struct {
	City   string
	Type   string
	Guests int
	Pets   *bool
	Sort   CatalogSort
	Limit  int
	Offset int
}

func (p SearchParams) Normalized() SearchParams {
	n := p
	n.City = strings.TrimSpace(strings.ToLower(n.City))
	n.Type = strings.TrimSpace(strings.ToLower(n.Type))
	if n.Guests < 0 {
		n.Guests = 0
	}
	if n.Limit <= 0 {
		n.Limit = DefaultSearchLimit
	}
	if n.Limit > MaxSearchLimit {
		n.Limit = MaxSearchLimit
	}
	if n.Offset < 0 {
		n.Offset = 0
	}
	switch n.Sort {
	case SortByRating, SortPriceAsc, SortPriceDesc, SortNewest:
	case "rating_desc":
		n.Sort = SortByRating
	default:
		n.Sort = SortDefault
	}
	return n
}

// Matches applies the filters of normalized params.
func (p SearchParams) Matches(prop *Property) bool {
	if p.City != "" && strings.ToLower(prop.City) != p.City {
		return false
	}
	if p.Type != "" && strings.ToLower(prop.Type) != p.Type {
		return false
	}
	if p.Guests > 0 && prop.MaxGuests > 0 && prop.MaxGuests < p.Guests {
		return false
	}
	if p.Pets != nil && *p.Pets && !prop.PetsAllowed {
		return false
	}
	return true
}

// SortProperties orders in place. Rating ties put properties in Indonesia first.
func SortProperties(items []*Property, order CatalogSort) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch order {
		case SortByRating:
			if a.Rating != b.Rating {
				return a.Rating > b.Rating
			}
			if a.InIndonesia() != b.InIndonesia() {
				return a.InIndonesia()
			}
			return a.ID < b.ID
		case SortPriceAsc:
			if a.Price != b.Price {
				return a.Price < b.Price
			}
		case SortPriceDesc:
			if a.Price != b.Price {
				return a.Price > b.Price
			}
		case SortNewest:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		}
		return a.ID < b.ID
	})
}
