package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type datedRequest struct {
	Day string `json:"day" binding:"required,isodate"`
}

type mealRequest struct {
	MealType string `json:"meal_type" binding:"required,mealtype"`
}

func bindingRouter(path string, bind func(c *gin.Context) error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST(path, func(c *gin.Context) {
		if err := bind(c); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func post(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIsodateValidator(t *testing.T) {
	RegisterValidators()
	router := bindingRouter("/dated", func(c *gin.Context) error {
		var req datedRequest
		return c.ShouldBindJSON(&req)
	})

	assert.Equal(t, http.StatusOK, post(router, "/dated", `{"day":"2025-11-03"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(router, "/dated", `{"day":"03/11/2025"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(router, "/dated", `{"day":"not-a-date"}`).Code)
}

func TestMealtypeValidator(t *testing.T) {
	RegisterValidators()
	router := bindingRouter("/meal", func(c *gin.Context) error {
		var req mealRequest
		return c.ShouldBindJSON(&req)
	})

	assert.Equal(t, http.StatusOK, post(router, "/meal", `{"meal_type":"lunch"}`).Code)
	assert.Equal(t, http.StatusOK, post(router, "/meal", `{"meal_type":"snacks"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(router, "/meal", `{"meal_type":"brunch"}`).Code)
}
