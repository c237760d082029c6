package validation

import (
	"errors"
	"testing"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Hotel(t *testing.T) {
	v := New()

	ok := domain.Hotel{Name: "Riverside Inn", Location: "Chicago, IL", PriceCents: 19999, Rating: 4, TotalRooms: 10}
	assert.NoError(t, v.Struct(ok))

	bad := domain.Hotel{ImageURL: "not a url", PriceCents: -1, Rating: 6}
	err := v.Struct(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var verrs Errors
	require.True(t, errors.As(err, &verrs))
	fields := map[string]string{}
	for _, fe := range verrs {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, "is required", fields["name"])
	assert.Equal(t, "is required", fields["location"])
	assert.Equal(t, "must be a valid URL", fields["image_url"])
	assert.Contains(t, fields, "price_cents")
	assert.Equal(t, "must be less than or equal to 5", fields["rating"])
	assert.Contains(t, fields, "total_rooms")
}
