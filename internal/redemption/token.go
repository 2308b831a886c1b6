package redemption

import (
	"errors"
	"time"

	"campusms/internal/booking"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "campusms-api"
	tokenAudience = "campusms-redemption"
)

var (
	ErrTokenExpired   = errors.New("redemption token expired")
	ErrMalformedToken = errors.New("malformed redemption token")
)

// PayloadClaims is what a redemption token carries. It is validated
// server-side on every presentation; possession alone authorizes nothing.
type PayloadClaims struct {
	BookingID int    `json:"booking_id"`
	UserID    int    `json:"user_id"`
	DateFrom  string `json:"date_from"`
	DateTo    string `json:"date_to"`
	Meals     string `json:"meals"`
	jwt.RegisteredClaims
}

// EncodePayload signs a token for the booking. It expires at the end of the
// booking's last day, after which the entitlement is gone anyway.
func EncodePayload(b *booking.Booking, secret string) (string, error) {
	if secret == "" {
		return "", errors.New("redemption secret cannot be empty")
	}

	now := time.Now()
	expiresAt := b.DateTo.AddDate(0, 0, 1)

	claims := &PayloadClaims{
		BookingID: b.ID,
		UserID:    b.UserID,
		DateFrom:  b.DateFrom.Format("2006-01-02"),
		DateTo:    b.DateTo.Format("2006-01-02"),
		Meals:     b.MealsLabel(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			Audience:  []string{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// DecodePayload verifies the signature and standard claims and returns the
// embedded booking details.
func DecodePayload(payload, secret string) (*PayloadClaims, error) {
	token, err := jwt.ParseWithClaims(
		payload,
		&PayloadClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrMalformedToken
			}
			return []byte(secret), nil
		},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrMalformedToken
	}

	claims, ok := token.Claims.(*PayloadClaims)
	if !ok || !token.Valid {
		return nil, ErrMalformedToken
	}

	return claims, nil
}
