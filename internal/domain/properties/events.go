package properties

import (
	"strconv"
	"time"
)

type PropertyCreated struct {
	PropertyID PropertyID
	City       string
	At         time.Time
}

func (e PropertyCreated) EventName() string     { return "property.created" }
func (e PropertyCreated) AggregateID() string   { return e.PropertyID.String() }
func (e PropertyCreated) OccurredAt() time.Time { return e.At }

type PropertyFavoriteToggled struct {
	PropertyID PropertyID
	Favorite   bool
	At         time.Time
}

func (e PropertyFavoriteToggled) EventName() string     { return "property.favorite_toggled" }
func (e PropertyFavoriteToggled) AggregateID() string   { return e.PropertyID.String() }
func (e PropertyFavoriteToggled) OccurredAt() time.Time { return e.At }

type PropertyImageAdded struct {
	PropertyID PropertyID
	URL        string
	At         time.Time
}

func (e PropertyImageAdded) EventName() string     { return "property.image_added" }
func (e PropertyImageAdded) AggregateID() string   { return e.PropertyID.String() }
func (e PropertyImageAdded) OccurredAt() time.Time { return e.At }

func (id PropertyID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseID accepts positive decimal ids.
func ParseID(raw string) (PropertyID, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, ErrInvalidID
	}
	return PropertyID(n), nil
}
