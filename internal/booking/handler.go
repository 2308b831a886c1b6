package booking

import (
	"errors"
	"net/http"
	"time"

	"campusms/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// BookMeals godoc
// @Summary      Book cafeteria meals
// @Description  Reserves meals for a date range and charges the wallet.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateBookingRequest  true  "Booking data"
// @Success      201      {object}  CreateBookingResponse
// @Failure      400      {object}  gin.H
// @Failure      402      {object}  gin.H
// @Router       /bookings [post]
func (h *Handler) BookMeals(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dateFrom, err := time.Parse("2006-01-02", req.DateFrom)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date_from must be YYYY-MM-DD"})
		return
	}
	dateTo, err := time.Parse("2006-01-02", req.DateTo)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date_to must be YYYY-MM-DD"})
		return
	}

	booking, amount, newBalance, err := h.service.CreateBooking(
		c.Request.Context(), userID, dateFrom, dateTo, req.Breakfast, req.Lunch, req.Dinner)
	if err != nil {
		switch {
		case errors.Is(err, ErrInsufficientFunds):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "insufficient wallet balance"})
		case errors.Is(err, ErrInvalidDateRange), errors.Is(err, ErrNoMealsSelected), errors.Is(err, ErrNoMenuForRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
		}
		return
	}

	c.JSON(http.StatusCreated, CreateBookingResponse{
		Booking:         booking,
		AmountCents:     amount,
		NewBalanceCents: newBalance,
	})
}

// ListMyBookings godoc
// @Summary      List own meal bookings
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} Booking
// @Router       /bookings [get]
func (h *Handler) ListMyBookings(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bookings, err := h.service.GetUserBookings(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}
