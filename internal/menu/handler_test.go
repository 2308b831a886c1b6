package menu

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"campusms/internal/api"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	api.RegisterValidators()
	os.Exit(m.Run())
}

type MockMenuRepo struct{ mock.Mock }

func (m *MockMenuRepo) CreateItem(ctx context.Context, day time.Time, mealType, description string, priceCents int64) (*Item, error) {
	args := m.Called(ctx, day, mealType, description, priceCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Item), args.Error(1)
}

func (m *MockMenuRepo) DeleteItem(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockMenuRepo) ListRange(ctx context.Context, from, to time.Time) ([]Item, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Item), args.Error(1)
}

func (m *MockMenuRepo) PriceForRange(ctx context.Context, from, to time.Time, mealTypes []string) (int64, int, error) {
	args := m.Called(ctx, from, to, mealTypes)
	return args.Get(0).(int64), args.Int(1), args.Error(2)
}

func menuRouter(repo Repository) *gin.Engine {
	h := NewHandler(repo)

	r := gin.New()
	r.GET("/cafeteria", h.ListWeek)
	r.POST("/admin/menus", h.CreateItem)
	r.DELETE("/admin/menus/:id", h.DeleteItem)
	return r
}

func TestListWeek(t *testing.T) {
	repo := new(MockMenuRepo)

	from := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
	repo.On("ListRange", mock.Anything, from, from.AddDate(0, 0, 6)).
		Return([]Item{{ID: 1, Day: from, MealType: MealLunch, Description: "Chicken curry with rice", PriceCents: 12000}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/cafeteria?from=2025-11-03", nil)
	w := httptest.NewRecorder()
	menuRouter(repo).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var items []Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, MealLunch, items[0].MealType)
}

func TestListWeek_BadFromDate(t *testing.T) {
	repo := new(MockMenuRepo)

	req := httptest.NewRequest(http.MethodGet, "/cafeteria?from=tomorrow", nil)
	w := httptest.NewRecorder()
	menuRouter(repo).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateItemEndpoint(t *testing.T) {
	repo := new(MockMenuRepo)

	day := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
	repo.On("CreateItem", mock.Anything, day, "lunch", "Chicken curry with rice", int64(12000)).
		Return(&Item{ID: 1, Day: day, MealType: MealLunch, Description: "Chicken curry with rice", PriceCents: 12000}, nil)

	body, _ := json.Marshal(CreateItemRequest{
		Day:         "2025-11-03",
		MealType:    "lunch",
		Description: "Chicken curry with rice",
		PriceCents:  12000,
	})

	req := httptest.NewRequest(http.MethodPost, "/admin/menus", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	menuRouter(repo).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestDeleteItem(t *testing.T) {
	repo := new(MockMenuRepo)
	repo.On("DeleteItem", mock.Anything, 1).Return(true, nil)

	req := httptest.NewRequest(http.MethodDelete, "/admin/menus/1", nil)
	w := httptest.NewRecorder()
	menuRouter(repo).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteItem_NotFound(t *testing.T) {
	repo := new(MockMenuRepo)
	repo.On("DeleteItem", mock.Anything, 99).Return(false, nil)

	req := httptest.NewRequest(http.MethodDelete, "/admin/menus/99", nil)
	w := httptest.NewRecorder()
	menuRouter(repo).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateItem_RejectsUnknownMealType(t *testing.T) {
	repo := new(MockMenuRepo)

	body, _ := json.Marshal(CreateItemRequest{
		Day:         "2025-11-03",
		MealType:    "brunch",
		Description: "Does not exist",
		PriceCents:  12000,
	})

	req := httptest.NewRequest(http.MethodPost, "/admin/menus", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	menuRouter(repo).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "CreateItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
