package reviews

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 4.2, AverageRating(nil, 4.2))
	assert.InDelta(t, 4.5, AverageRating([]Review{{Rating: 5}, {Rating: 4}}, 1), 0.0001)
}

func TestSortNewestFirst(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	list := []Review{
		{ID: 1, CreatedAt: base},
		{ID: 2, CreatedAt: base.Add(48 * time.Hour)},
		{ID: 3, CreatedAt: base.Add(24 * time.Hour)},
	}
	SortNewestFirst(list)
	assert.Equal(t, []int64{2, 3, 1}, []int64{list[0].ID, list[1].ID, list[2].ID})
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Review{Rating: 3}.Validate())
	assert.ErrorIs(t, Review{Rating: 0}.Validate(), ErrInvalidRating)
	assert.ErrorIs(t, Review{Rating: 6}.Validate(), ErrInvalidRating)
}
