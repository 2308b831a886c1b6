package redemption

import (
	"context"
	"errors"

	"campusms/internal/booking"
	"campusms/internal/logger"
	"campusms/internal/metrics"
)

var (
	// ErrInvalidToken covers every rejection staff see: malformed payload,
	// expired token, unknown booking, or a token presented twice. The
	// specific reason stays in the logs.
	ErrInvalidToken = errors.New("invalid or expired token")

	ErrNotBookingOwner = errors.New("booking belongs to a different user")
	ErrAlreadyConsumed = errors.New("redemption token already consumed")
	ErrBookingNotFound = errors.New("booking not found")
)

type Service interface {
	IssueToken(ctx context.Context, userID, bookingID int) (*Token, error)
	VerifyAndConsume(ctx context.Context, payload string) (*booking.Booking, error)
}

type service struct {
	repo     Repository
	bookings booking.Service
	secret   string
}

func NewService(repo Repository, bookings booking.Service, secret string) Service {
	return &service{repo: repo, bookings: bookings, secret: secret}
}

// IssueToken mints the redemption token for a booking the caller owns.
// Re-issuing while the token is unconsumed returns the existing token;
// a consumed booking can never get a second one.
func (s *service) IssueToken(ctx context.Context, userID, bookingID int) (*Token, error) {
	b, err := s.bookings.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	if b.UserID != userID {
		return nil, ErrNotBookingOwner
	}

	existing, err := s.repo.GetByBookingID(ctx, bookingID)
	if err == nil {
		if existing.Consumed {
			return nil, ErrAlreadyConsumed
		}
		return existing, nil
	}
	if !errors.Is(err, ErrTokenNotFound) {
		return nil, err
	}

	payload, err := EncodePayload(b, s.secret)
	if err != nil {
		return nil, err
	}

	token, err := s.repo.Issue(ctx, bookingID, payload)
	if err != nil {
		return nil, err
	}
	if token.Consumed {
		return nil, ErrAlreadyConsumed
	}

	metrics.RecordRedemption("issued")
	return token, nil
}

// VerifyAndConsume validates a presented payload and atomically marks the
// token consumed. A second presentation of the same token fails.
func (s *service) VerifyAndConsume(ctx context.Context, payload string) (*booking.Booking, error) {
	claims, err := DecodePayload(payload, s.secret)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			logger.Warnf("Rejected expired redemption token")
			metrics.RecordRedemption("expired")
		} else {
			logger.Warnf("Rejected malformed redemption token")
			metrics.RecordRedemption("malformed")
		}
		return nil, ErrInvalidToken
	}

	ok, err := s.repo.Consume(ctx, claims.BookingID)
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.Warnf("Rejected redemption for booking %d: already consumed or unknown", claims.BookingID)
		metrics.RecordRedemption("already_consumed")
		return nil, ErrInvalidToken
	}

	b, err := s.bookings.GetBookingByID(ctx, claims.BookingID)
	if err != nil {
		return nil, err
	}

	metrics.RecordRedemption("consumed")
	logger.Infof("Redeemed booking %d for user %d", b.ID, b.UserID)
	return b, nil
}
