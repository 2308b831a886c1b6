package menu

import (
	"context"
	"time"
)

type Repository interface {
	CreateItem(ctx context.Context, day time.Time, mealType, description string, priceCents int64) (*Item, error)
	DeleteItem(ctx context.Context, id int) (bool, error)
	ListRange(ctx context.Context, from, to time.Time) ([]Item, error)
	PriceForRange(ctx context.Context, from, to time.Time, mealTypes []string) (totalCents int64, itemCount int, err error)
}
