package report

import (
	"fmt"
	"net/http"

	"campusms/internal/auth"
	"campusms/internal/wallet"

	"github.com/gin-gonic/gin"
)

const statementLimit = 1000

type Handler struct {
	wallets wallet.Service
}

func NewHandler(wallets wallet.Service) *Handler {
	return &Handler{wallets: wallets}
}

// @Summary      Download wallet statement as CSV
// @Tags         wallet
// @Security     BearerAuth
// @Produce      text/csv
// @Router       /wallet/statement [get]
func (h *Handler) DownloadStatement(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	txs, err := h.wallets.Transactions(c.Request.Context(), userID, statementLimit, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load transactions"})
		return
	}

	totalSpent, err := h.wallets.TotalSpent(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load totals"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", FileName(userID)))
	c.Status(http.StatusOK)

	if err := WriteStatement(c.Writer, txs, totalSpent); err != nil {
		// Headers are already out; nothing useful left to send.
		_ = c.Error(err)
	}
}
