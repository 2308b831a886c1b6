package menu

import "time"

const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnacks    = "snacks"
)

func ValidMealType(s string) bool {
	switch s {
	case MealBreakfast, MealLunch, MealDinner, MealSnacks:
		return true
	}
	return false
}

// Item is one published cafeteria menu entry: what is served on a given day
// for a given meal, and what it costs.
type Item struct {
	ID          int       `db:"id" json:"id"`
	Day         time.Time `db:"day" json:"day"`
	MealType    string    `db:"meal_type" json:"meal_type"`
	Description string    `db:"description" json:"description"`
	PriceCents  int64     `db:"price_cents" json:"price_cents"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type CreateItemRequest struct {
	Day         string `json:"day" binding:"required,isodate"`
	MealType    string `json:"meal_type" binding:"required,mealtype"`
	Description string `json:"description" binding:"required"`
	PriceCents  int64  `json:"price_cents" binding:"required,gt=0"`
}
