package booking

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBooking(ctx context.Context, userID int, dateFrom, dateTo time.Time, breakfast, lunch, dinner bool) (*Booking, error) {
	query := `
		INSERT INTO bookings (user_id, date_from, date_to, breakfast, lunch, dinner)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, date_from, date_to, breakfast, lunch, dinner, created_at
	`

	var booking Booking
	err := r.db.GetContext(ctx, &booking, query, userID, dateFrom, dateTo, breakfast, lunch, dinner)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *repository) GetBookingByID(ctx context.Context, id int) (*Booking, error) {
	query := `
		SELECT id, user_id, date_from, date_to, breakfast, lunch, dinner, created_at
		FROM bookings
		WHERE id = $1
	`

	var booking Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID int) ([]Booking, error) {
	query := `
		SELECT id, user_id, date_from, date_to, breakfast, lunch, dinner, created_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, userID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}
