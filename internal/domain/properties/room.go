package properties

import (
	"context"
	"sort"
	"strconv"
	"strings"
)

type Room struct {
	ID            int64
	PropertyID    PropertyID
	Name          string
	Type          string
	PricePerNight int64
	MaxGuests     int
	Beds          map[string]int
	Size          int
	Amenities     []string
	Available     bool
}

type RoomRepository interface {
	ListByProperty(ctx context.Context, id PropertyID) ([]Room, error)
	Add(ctx context.Context, room Room) error
}

// BedsSummary renders beds as "1 king, 2 single" ordered by bed type.
func (r Room) BedsSummary() string {
	kinds := make([]string, 0, len(r.Beds))
	for kind := range r.Beds {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	parts := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		if r.Beds[kind] <= 0 {
			continue
		}
		parts = append(parts, strconv.Itoa(r.Beds[kind])+" "+kind)
	}
	return strings.Join(parts, ", ")
}
