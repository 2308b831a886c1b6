package redemption

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrTokenNotFound = errors.New("redemption token not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Issue(ctx context.Context, bookingID int, payload string) (*Token, error) {
	query := `
		INSERT INTO redemption_tokens (booking_id, payload)
		VALUES ($1, $2)
		ON CONFLICT (booking_id) DO NOTHING
		RETURNING id, booking_id, payload, consumed, consumed_at, created_at
	`

	var token Token
	err := r.db.GetContext(ctx, &token, query, bookingID, payload)
	if err == nil {
		return &token, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// Lost the insert race; the winner's row is authoritative.
	return r.GetByBookingID(ctx, bookingID)
}

func (r *repository) GetByBookingID(ctx context.Context, bookingID int) (*Token, error) {
	query := `
		SELECT id, booking_id, payload, consumed, consumed_at, created_at
		FROM redemption_tokens
		WHERE booking_id = $1
	`

	var token Token
	err := r.db.GetContext(ctx, &token, query, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	return &token, nil
}

func (r *repository) Consume(ctx context.Context, bookingID int) (bool, error) {
	query := `
		UPDATE redemption_tokens
		SET consumed = TRUE, consumed_at = NOW()
		WHERE booking_id = $1 AND consumed = FALSE
	`

	res, err := r.db.ExecContext(ctx, query, bookingID)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected == 1, nil
}
