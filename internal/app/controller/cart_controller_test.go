package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/flamingdiva/flamingdiva-backend/internal/app/model"
	"github.com/flamingdiva/flamingdiva-backend/internal/app/repository"
	"github.com/flamingdiva/flamingdiva-backend/internal/app/service"
	"github.com/flamingdiva/flamingdiva-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartControllerTest(t *testing.T) (*CartController, *gin.Engine, *gorm.DB, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	cartService := service.NewCartService(cartRepo, productRepo, service.NewProductService(productRepo))
	cartController := NewCartController(cartService)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hash",
		FirstName:    "Test",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	product := &model.Product{
		Name:       "Third Eye Patched Leather",
		PriceCents: 129500,
		PriceText:  "$1,295 USD",
		Category:   model.CategoryLeather,
		Collection: model.CollectionInferno,
		IsActive:   true,
		Sizes:      pq.StringArray{"S", "M", "L", "XL"},
	}
	testDB.Create(product)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return cartController, router, testDB, user, product
}

// Helper function to set user ID in context
func setUserIDInContext(c *gin.Context, userID uint) {
	c.Set("user_id", userID)
}

func TestCartController_GetCart_Success(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Size:      "M",
		Quantity:  2,
	})

	router.GET("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.GetCart(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, float64(2), response["count"])
	assert.Equal(t, float64(259000), response["total_cents"]) // 129500 * 2
	assert.Equal(t, "$2,590 USD", response["total"])
}

func TestCartController_GetCart_Empty(t *testing.T) {
	controller, router, _, user, _ := setupCartControllerTest(t)

	router.GET("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.GetCart(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, float64(0), response["count"])
	assert.Equal(t, float64(0), response["total_cents"])
}

func TestCartController_AddToCart_Success(t *testing.T) {
	controller, router, _, user, product := setupCartControllerTest(t)

	router.POST("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToCart(c)
	})

	payload, _ := json.Marshal(map[string]interface{}{
		"product_id": product.ID,
		"size":       "M",
		"quantity":   1,
	})

	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	item := response["cart_item"].(map[string]interface{})
	assert.Equal(t, "M", item["size"])
	assert.Equal(t, float64(1), item["quantity"])
}

func TestCartController_AddToCart_InvalidSize(t *testing.T) {
	controller, router, _, user, product := setupCartControllerTest(t)

	router.POST("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToCart(c)
	})

	payload, _ := json.Marshal(map[string]interface{}{
		"product_id": product.ID,
		"size":       "XXL",
		"quantity":   1,
	})

	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartController_AddToCart_ProductNotFound(t *testing.T) {
	controller, router, _, user, _ := setupCartControllerTest(t)

	router.POST("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToCart(c)
	})

	payload, _ := json.Marshal(map[string]interface{}{
		"product_id": 99999,
		"size":       "M",
		"quantity":   1,
	})

	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartController_UpdateCartItem_Success(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	item := &model.CartItem{UserID: user.ID, ProductID: product.ID, Size: "M", Quantity: 1}
	testDB.Create(item)

	router.PUT("/cart/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.UpdateCartItem(c)
	})

	payload, _ := json.Marshal(map[string]interface{}{"quantity": 3})

	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/cart/%d", item.ID), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var updated model.CartItem
	require.NoError(t, testDB.First(&updated, item.ID).Error)
	assert.Equal(t, 3, updated.Quantity)
}

func TestCartController_UpdateCartItem_OtherUsersItem(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	other := &model.User{Email: "other@example.com", PasswordHash: "hash", Role: model.RoleUser}
	testDB.Create(other)
	item := &model.CartItem{UserID: other.ID, ProductID: product.ID, Size: "M", Quantity: 1}
	testDB.Create(item)

	router.PUT("/cart/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.UpdateCartItem(c)
	})

	payload, _ := json.Marshal(map[string]interface{}{"quantity": 3})

	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/cart/%d", item.ID), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Another user's line is indistinguishable from a missing one
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartController_RemoveFromCart_Success(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	item := &model.CartItem{UserID: user.ID, ProductID: product.ID, Size: "M", Quantity: 1}
	testDB.Create(item)

	router.DELETE("/cart/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.RemoveFromCart(c)
	})

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/cart/%d", item.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	testDB.Model(&model.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(t, count)
}

func TestCartController_ClearCart_Success(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	testDB.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Size: "M", Quantity: 1})
	testDB.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Size: "L", Quantity: 2})

	router.DELETE("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.ClearCart(c)
	})

	req := httptest.NewRequest(http.MethodDelete, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	testDB.Model(&model.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(t, count)
}
