package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campusms/internal/logger"
	"campusms/internal/menu"
	"campusms/internal/metrics"
	"campusms/internal/wallet"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
	ErrInvalidDateRange  = errors.New("date_to must not be before date_from")
	ErrNoMealsSelected   = errors.New("at least one meal must be selected")
	ErrNoMenuForRange    = errors.New("no menu published for part of the requested range")
)

// Notifier receives the booking-confirmed event after payment has committed.
type Notifier interface {
	BookingConfirmed(ctx context.Context, userID int, dateFrom, dateTo time.Time, meals string, amountCents int64) error
}

type Service interface {
	CreateBooking(ctx context.Context, userID int, dateFrom, dateTo time.Time, breakfast, lunch, dinner bool) (*Booking, int64, int64, error)
	GetUserBookings(ctx context.Context, userID int) ([]Booking, error)
	GetBookingByID(ctx context.Context, id int) (*Booking, error)
}

type service struct {
	bookingRepo Repository
	menuRepo    menu.Repository
	wallets     wallet.Service
	notifier    Notifier
}

func NewService(bookingRepo Repository, menuRepo menu.Repository, wallets wallet.Service, notifier Notifier) Service {
	return &service{
		bookingRepo: bookingRepo,
		menuRepo:    menuRepo,
		wallets:     wallets,
		notifier:    notifier,
	}
}

// CreateBooking prices the requested meals off the published menu, debits
// the wallet, and only then records the booking. Returns the booking, the
// charged amount, and the new wallet balance.
func (s *service) CreateBooking(ctx context.Context, userID int, dateFrom, dateTo time.Time, breakfast, lunch, dinner bool) (*Booking, int64, int64, error) {
	if dateTo.Before(dateFrom) {
		return nil, 0, 0, ErrInvalidDateRange
	}

	probe := Booking{DateFrom: dateFrom, DateTo: dateTo, Breakfast: breakfast, Lunch: lunch, Dinner: dinner}
	meals := probe.Meals()
	if len(meals) == 0 {
		return nil, 0, 0, ErrNoMealsSelected
	}

	totalCents, itemCount, err := s.menuRepo.PriceForRange(ctx, dateFrom, dateTo, meals)
	if err != nil {
		return nil, 0, 0, err
	}

	// Every booked day must have a published menu row for every selected
	// meal, otherwise the price would silently undercount.
	if itemCount != probe.TotalDays()*len(meals) {
		return nil, 0, 0, ErrNoMenuForRange
	}

	description := fmt.Sprintf("Meal Booking %s to %s (%s)",
		dateFrom.Format("2006-01-02"), dateTo.Format("2006-01-02"), probe.MealsLabel())

	newBalance, err := s.wallets.DebitForMeal(ctx, userID, totalCents, description)
	if err != nil {
		if errors.Is(err, wallet.ErrInsufficientFunds) {
			metrics.RecordBooking("insufficient_funds")
			return nil, 0, 0, ErrInsufficientFunds
		}
		metrics.RecordBooking("error")
		return nil, 0, 0, err
	}

	booking, err := s.bookingRepo.CreateBooking(ctx, userID, dateFrom, dateTo, breakfast, lunch, dinner)
	if err != nil {
		// Payment went through but the booking row did not; put the money
		// back so the ledger stays honest.
		if _, refundErr := s.wallets.Credit(ctx, userID, totalCents, "Refund: "+description); refundErr != nil {
			logger.Errorf("Failed to refund user %d after booking insert failure: %v", userID, refundErr)
		}
		metrics.RecordBooking("error")
		return nil, 0, 0, err
	}

	metrics.RecordBooking("confirmed")

	if s.notifier != nil {
		if err := s.notifier.BookingConfirmed(context.Background(), userID, dateFrom, dateTo, probe.MealsLabel(), totalCents); err != nil {
			logger.Errorf("Failed to queue booking notification for user %d: %v", userID, err)
		}
	}

	return booking, totalCents, newBalance, nil
}

func (s *service) GetUserBookings(ctx context.Context, userID int) ([]Booking, error) {
	return s.bookingRepo.GetUserBookings(ctx, userID)
}

func (s *service) GetBookingByID(ctx context.Context, id int) (*Booking, error) {
	booking, err := s.bookingRepo.GetBookingByID(ctx, id)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}
