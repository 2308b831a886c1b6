package redemption

import (
	"errors"
	"net/http"
	"strconv"

	"campusms/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// @Summary      Issue a redemption token for a booking
// @Tags         redemption
// @Security     BearerAuth
// @Produce      json
// @Success      201 {object} Token
// @Router       /bookings/{id}/token [post]
func (h *Handler) IssueToken(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	token, err := h.svc.IssueToken(c.Request.Context(), userID, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		case errors.Is(err, ErrNotBookingOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "booking belongs to a different user"})
		case errors.Is(err, ErrAlreadyConsumed):
			c.JSON(http.StatusConflict, gin.H{"error": "booking already redeemed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		}
		return
	}

	c.JSON(http.StatusCreated, token)
}

// @Summary      Verify and consume a presented redemption token
// @Tags         redemption
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Success      200 {object} booking.Booking
// @Router       /staff/redeem [post]
func (h *Handler) Redeem(c *gin.Context) {
	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.svc.VerifyAndConsume(c.Request.Context(), req.Payload)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid or expired token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to redeem token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "redeemed",
		"booking": b,
	})
}
