package booking

import (
	"strings"
	"time"
)

// Booking is a reserved meal entitlement for a date range and a subset of
// the day's meals.
type Booking struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	DateFrom  time.Time `db:"date_from" json:"date_from"`
	DateTo    time.Time `db:"date_to" json:"date_to"`
	Breakfast bool      `db:"breakfast" json:"breakfast"`
	Lunch     bool      `db:"lunch" json:"lunch"`
	Dinner    bool      `db:"dinner" json:"dinner"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (b *Booking) Meals() []string {
	var meals []string
	if b.Breakfast {
		meals = append(meals, "breakfast")
	}
	if b.Lunch {
		meals = append(meals, "lunch")
	}
	if b.Dinner {
		meals = append(meals, "dinner")
	}
	return meals
}

func (b *Booking) MealsLabel() string {
	return strings.Join(b.Meals(), ", ")
}

func (b *Booking) TotalDays() int {
	return int(b.DateTo.Sub(b.DateFrom).Hours()/24) + 1
}

type CreateBookingRequest struct {
	DateFrom  string `json:"date_from" binding:"required,isodate"`
	DateTo    string `json:"date_to" binding:"required,isodate"`
	Breakfast bool   `json:"breakfast"`
	Lunch     bool   `json:"lunch"`
	Dinner    bool   `json:"dinner"`
}

type CreateBookingResponse struct {
	Booking         *Booking `json:"booking"`
	AmountCents     int64    `json:"amount_cents"`
	NewBalanceCents int64    `json:"new_balance_cents"`
}
