package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(secret string, requiredRole Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	group := r.Group("/protected")
	group.Use(AuthMiddleware(secret))
	if requiredRole != "" {
		group.Use(RequireRole(requiredRole))
	}
	group.GET("/resource", func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})

	return r
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("Missing header", func(t *testing.T) {
		r := setupRouter(testSecret, "")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected/resource", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Malformed header", func(t *testing.T) {
		r := setupRouter(testSecret, "")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected/resource", nil)
		req.Header.Set("Authorization", "Token abc")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Valid token passes", func(t *testing.T) {
		r := setupRouter(testSecret, "")

		token, err := GenerateAccessToken(3, "student@campus.edu", RoleStudent, testSecret)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected/resource", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":3`)
	})

	t.Run("Refresh token rejected on access routes", func(t *testing.T) {
		r := setupRouter(testSecret, "")

		token, err := GenerateRefreshToken(3, "student@campus.edu", RoleStudent, testSecret)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected/resource", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	t.Run("Staff role allowed", func(t *testing.T) {
		r := setupRouter(testSecret, RoleStaff)

		token, err := GenerateAccessToken(9, "staff@campus.edu", RoleStaff, testSecret)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected/resource", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Student blocked from staff route", func(t *testing.T) {
		r := setupRouter(testSecret, RoleStaff)

		token, err := GenerateAccessToken(9, "student@campus.edu", RoleStudent, testSecret)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected/resource", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
