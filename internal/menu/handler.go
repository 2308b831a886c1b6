package menu

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// @Summary      Weekly cafeteria menu
// @Tags         cafeteria
// @Produce      json
// @Success      200 {array} Item
// @Router       /cafeteria [get]
func (h *Handler) ListWeek(c *gin.Context) {
	from := time.Now().Truncate(24 * time.Hour)
	if q := c.Query("from"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
			return
		}
		from = parsed
	}
	to := from.AddDate(0, 0, 6)

	items, err := h.repo.ListRange(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load menu"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// @Summary      Publish a menu item
// @Tags         cafeteria
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Success      201 {object} Item
// @Router       /admin/menus [post]
func (h *Handler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	day, err := time.Parse("2006-01-02", req.Day)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day must be YYYY-MM-DD"})
		return
	}

	if !ValidMealType(req.MealType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown meal type"})
		return
	}

	item, err := h.repo.CreateItem(c.Request.Context(), day, req.MealType, req.Description, req.PriceCents)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create menu item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// @Summary      Remove a menu item
// @Tags         cafeteria
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} api.MessageResponse
// @Router       /admin/menus/{id} [delete]
func (h *Handler) DeleteItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id"})
		return
	}

	ok, err := h.repo.DeleteItem(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete menu item"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
