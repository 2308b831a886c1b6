package booking

import (
	"context"
	"time"
)

type Repository interface {
	CreateBooking(ctx context.Context, userID int, dateFrom, dateTo time.Time, breakfast, lunch, dinner bool) (*Booking, error)
	GetBookingByID(ctx context.Context, id int) (*Booking, error)
	GetUserBookings(ctx context.Context, userID int) ([]Booking, error)
}
