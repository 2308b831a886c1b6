package payment

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"campusms/internal/auth"
	"campusms/internal/logger"
	"campusms/internal/wallet"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const callbackTokenHeader = "X-Gateway-Token"

type Handler struct {
	wallets       wallet.Service
	checkoutURL   string
	callbackToken string
}

func NewHandler(wallets wallet.Service, checkoutURL, callbackToken string) *Handler {
	return &Handler{
		wallets:       wallets,
		checkoutURL:   checkoutURL,
		callbackToken: callbackToken,
	}
}

// @Summary      Start a wallet top-up checkout
// @Tags         payment
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Success      200 {object} InitiateTopUpResponse
// @Router       /wallet/topup [post]
func (h *Handler) InitiateTopUp(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req InitiateTopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The wallet must exist before the gateway can call back for it.
	if _, err := h.wallets.EnsureWallet(c.Request.Context(), userID); err != nil {
		if errors.Is(err, wallet.ErrIdentityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown user"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to prepare wallet"})
		return
	}

	ref := uuid.NewString()
	checkout := fmt.Sprintf("%s?ref=%s&amount=%d&user=%d",
		h.checkoutURL, url.QueryEscape(ref), req.AmountCents, userID)

	logger.Infof("Top-up initiated: user=%d ref=%s amount=%d", userID, ref, req.AmountCents)

	c.JSON(http.StatusOK, InitiateTopUpResponse{
		PaymentRef:  ref,
		CheckoutURL: checkout,
		AmountCents: req.AmountCents,
	})
}

// HandleCallback credits the wallet for a successful gateway checkout.
// The gateway retries on timeouts, so the credit is keyed by the gateway
// transaction id and a repeat delivery is a no-op.
// @Summary      Payment gateway success callback
// @Tags         payment
// @Accept       json
// @Produce      json
// @Success      200 {object} CallbackResponse
// @Router       /payments/gateway/callback [post]
func (h *Handler) HandleCallback(c *gin.Context) {
	if h.callbackToken == "" || c.GetHeader(callbackTokenHeader) != h.callbackToken {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid gateway token"})
		return
	}

	var cb GatewayCallback
	if err := c.ShouldBindJSON(&cb); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if cb.Status != "success" {
		logger.Infof("Ignoring gateway callback with status %q: tx=%s", cb.Status, cb.TransactionID)
		c.JSON(http.StatusOK, gin.H{"message": "ignored"})
		return
	}

	description := fmt.Sprintf("Wallet Top-up (gateway tx %s)", cb.TransactionID)
	newBalance, err := h.wallets.CreditOnce(c.Request.Context(), cb.UserID, cb.TransactionID, cb.AmountCents, description)
	if err != nil {
		if errors.Is(err, wallet.ErrIdentityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown user"})
			return
		}
		logger.Errorf("Gateway credit failed: tx=%s user=%d: %v", cb.TransactionID, cb.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to credit wallet"})
		return
	}

	c.JSON(http.StatusOK, CallbackResponse{NewBalanceCents: newBalance})
}
