package reviews

import (
	"context"
	"errors"
	"sort"
	"time"

	"staysia/internal/domain/properties"
)

var ErrInvalidRating = errors.New("reviews: rating must be between 1 and 5")

// Review is a guest review with per-category scores.
type Review struct {
	ID            int64
	PropertyID    properties.PropertyID
	UserName      string
	UserAvatar    string
	Rating        float64
	Comment       string
	Cleanliness   float64
	Accuracy      float64
	Communication float64
	Location      float64
	Value         float64
	CreatedAt     time.Time
}

type Repository interface {
	// ListByProperty returns reviews newest first.
	ListByProperty(ctx context.Context, id properties.PropertyID) ([]Review, error)
	Add(ctx context.Context, review Review) error
}

func (r Review) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}

// AverageRating returns the mean review rating, or fallback when there are no reviews.
func AverageRating(list []Review, fallback float64) float64 {
	if len(list) == 0 {
		return fallback
	}
	var sum float64
	for _, r := range list {
		sum += r.Rating
	}
	return sum / float64(len(list))
}

func SortNewestFirst(list []Review) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
}
