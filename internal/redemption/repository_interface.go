package redemption

import "context"

type Repository interface {
	// Issue stores a token for the booking. If a token already exists the
	// existing row is returned unchanged; two concurrent issues for the
	// same booking must produce exactly one row.
	Issue(ctx context.Context, bookingID int, payload string) (*Token, error)

	GetByBookingID(ctx context.Context, bookingID int) (*Token, error)

	// Consume atomically flips the consumed flag. Returns false when the
	// token was already consumed or does not exist.
	Consume(ctx context.Context, bookingID int) (bool, error)
}
