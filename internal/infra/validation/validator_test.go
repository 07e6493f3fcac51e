package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type openSession struct {
	PropertyID int64  `json:"property_id" validate:"gt=0"`
	Currency   string `json:"currency" validate:"omitempty,len=3"`
	Secret     string `json:"-" validate:"required"`
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(context.Background(), openSession{Currency: "EURO", Secret: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))

	var fields FieldErrors
	require.True(t, errors.As(err, &fields))
	assert.Equal(t, "must be greater than 0", fields["property_id"])
	assert.Equal(t, "must have length 3", fields["currency"])
	assert.Equal(t, "validation: currency: must have length 3; property_id: must be greater than 0", err.Error())
}

func TestValidateAcceptsValidMessage(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(context.Background(), &openSession{PropertyID: 4, Secret: "x"}))
}

func TestValidateIgnoresNonStructs(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(context.Background(), nil))
	assert.NoError(t, v.Validate(context.Background(), "calendar.sessions.open"))
}
