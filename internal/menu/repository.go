package menu

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateItem(ctx context.Context, day time.Time, mealType, description string, priceCents int64) (*Item, error) {
	query := `
		INSERT INTO cafeteria_menus (day, meal_type, description, price_cents)
		VALUES ($1, $2, $3, $4)
		RETURNING id, day, meal_type, description, price_cents, created_at
	`

	var item Item
	err := r.db.GetContext(ctx, &item, query, day, mealType, description, priceCents)
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *repository) ListRange(ctx context.Context, from, to time.Time) ([]Item, error) {
	query := `
		SELECT id, day, meal_type, description, price_cents, created_at
		FROM cafeteria_menus
		WHERE day BETWEEN $1 AND $2
		ORDER BY day ASC, meal_type ASC
	`

	var items []Item
	err := r.db.SelectContext(ctx, &items, query, from, to)
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *repository) DeleteItem(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cafeteria_menus WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected == 1, nil
}

func (r *repository) PriceForRange(ctx context.Context, from, to time.Time, mealTypes []string) (int64, int, error) {
	query := `
		SELECT COALESCE(SUM(price_cents), 0) AS total, COUNT(*) AS count
		FROM cafeteria_menus
		WHERE day BETWEEN $1 AND $2 AND meal_type = ANY($3)
	`

	var result struct {
		Total int64 `db:"total"`
		Count int   `db:"count"`
	}
	err := r.db.GetContext(ctx, &result, query, from, to, pq.Array(mealTypes))
	if err != nil {
		return 0, 0, err
	}

	return result.Total, result.Count, nil
}
