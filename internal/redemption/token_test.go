package redemption

import (
	"testing"
	"time"

	"campusms/internal/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "redemption-test-secret"

func testBooking(from, to time.Time) *booking.Booking {
	return &booking.Booking{
		ID:       42,
		UserID:   7,
		DateFrom: from,
		DateTo:   to,
		Lunch:    true,
		Dinner:   true,
	}
}

func TestEncodeDecodePayload(t *testing.T) {
	from := time.Now().Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, 2)
	b := testBooking(from, to)

	payload, err := EncodePayload(b, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, payload)

	claims, err := DecodePayload(payload, testSecret)
	require.NoError(t, err)

	assert.Equal(t, 42, claims.BookingID)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, from.Format("2006-01-02"), claims.DateFrom)
	assert.Equal(t, to.Format("2006-01-02"), claims.DateTo)
	assert.Equal(t, "lunch, dinner", claims.Meals)
	assert.NotEmpty(t, claims.ID)
}

func TestDecodePayload_WrongSecret(t *testing.T) {
	from := time.Now().Truncate(24 * time.Hour)
	b := testBooking(from, from.AddDate(0, 0, 1))

	payload, err := EncodePayload(b, testSecret)
	require.NoError(t, err)

	_, err = DecodePayload(payload, "some-other-secret")
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestDecodePayload_Garbage(t *testing.T) {
	_, err := DecodePayload("not-a-token", testSecret)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestDecodePayload_ExpiredAfterBookingEnds(t *testing.T) {
	// Booking ended two days ago, so the token expired yesterday.
	to := time.Now().AddDate(0, 0, -2)
	b := testBooking(to.AddDate(0, 0, -1), to)

	payload, err := EncodePayload(b, testSecret)
	require.NoError(t, err)

	_, err = DecodePayload(payload, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestEncodePayload_EmptySecret(t *testing.T) {
	from := time.Now()
	_, err := EncodePayload(testBooking(from, from), "")
	assert.Error(t, err)
}

func TestEncodePayload_UniqueTokenIDs(t *testing.T) {
	from := time.Now().Truncate(24 * time.Hour)
	b := testBooking(from, from.AddDate(0, 0, 1))

	first, err := EncodePayload(b, testSecret)
	require.NoError(t, err)
	second, err := EncodePayload(b, testSecret)
	require.NoError(t, err)

	firstClaims, err := DecodePayload(first, testSecret)
	require.NoError(t, err)
	secondClaims, err := DecodePayload(second, testSecret)
	require.NoError(t, err)

	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}
