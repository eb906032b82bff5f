package controller

import (
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

func setupProductControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	productRepo := repository.NewProductRepository(testDB)
	productService := service.NewProductService(productRepo)
	productController := NewProductController(productService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/products", productController.ListProducts)
	router.GET("/products/:id", productController.GetProduct)
	router.GET("/collections/:name", productController.GetCollection)

	sizes := pq.StringArray{"S", "M", "L", "XL"}
	products := []model.Product{
		{Name: "Third Eye Patched Leather", PriceCents: 129500, PriceText: "$1,295 USD", Category: model.CategoryLeather, Collection: model.CollectionInferno, IsActive: true, Sizes: sizes},
		{Name: "Hip-Hop Legends Bomber", PriceCents: 89500, PriceText: "$895 USD", Category: model.CategoryBomber, Collection: model.CollectionInferno, IsActive: true, Sizes: sizes},
		{Name: "Zen Master Coach", PriceCents: 39500, PriceText: "$395 USD", Category: model.CategoryCoach, Collection: model.CollectionEssentials, IsActive: true, Sizes: sizes},
		{Name: "Retired Jacket", PriceCents: 50000, PriceText: "$500 USD", Category: model.CategoryDenim, Collection: model.CollectionEssentials, IsActive: false, Sizes: sizes},
	}
	for i := range products {
		require.NoError(t, testDB.Create(&products[i]).Error)
	}

	return router, testDB
}

func getJSON(t *testing.T, router *gin.Engine, path string) (int, map[string]interface{}) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w.Code, response
}

func TestProductController_ListProducts_ActiveOnly(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	code, response := getJSON(t, router, "/products")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(3), response["count"])
}

func TestProductController_ListProducts_CategoryFilter(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	code, response := getJSON(t, router, "/products?category=leather,bomber")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), response["count"])
}

func TestProductController_ListProducts_PriceAndSort(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	code, response := getJSON(t, router, "/products?price=over1000")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), response["count"])

	code, response = getJSON(t, router, "/products?sort=price-asc")
	assert.Equal(t, http.StatusOK, code)
	products := response["products"].([]interface{})
	first := products[0].(map[string]interface{})
	assert.Equal(t, "Zen Master Coach", first["name"])
}

func TestProductController_ListProducts_Search(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	code, response := getJSON(t, router, "/products?q=bomber")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), response["count"])

	// Searching a collection name finds its products
	code, response = getJSON(t, router, "/products?q=inferno")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), response["count"])
}

func TestProductController_ListProducts_QueryTooShort(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	code, response := getJSON(t, router, "/products?q=b")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(0), response["count"])
	assert.Equal(t, true, response["query_too_short"])
	assert.Empty(t, response["products"])
}

func TestProductController_GetProduct(t *testing.T) {
	router, testDB := setupProductControllerTest(t)

	var product model.Product
	require.NoError(t, testDB.Where("name = ?", "Zen Master Coach").First(&product).Error)

	code, response := getJSON(t, router, fmt.Sprintf("/products/%d", product.ID))
	assert.Equal(t, http.StatusOK, code)
	body := response["product"].(map[string]interface{})
	assert.Equal(t, "Zen Master Coach", body["name"])
	assert.Equal(t, float64(39500), body["price_cents"])
}

func TestProductController_GetProduct_NotFound(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	code, _ := getJSON(t, router, "/products/99999")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestProductController_GetProduct_RetiredHidden(t *testing.T) {
	router, testDB := setupProductControllerTest(t)

	var product model.Product
	require.NoError(t, testDB.Where("name = ?", "Retired Jacket").First(&product).Error)

	code, _ := getJSON(t, router, fmt.Sprintf("/products/%d", product.ID))
	assert.Equal(t, http.StatusNotFound, code)
}

func TestProductController_GetCollection(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	code, response := getJSON(t, router, "/collections/inferno")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "inferno", response["collection"])
	assert.Equal(t, float64(2), response["count"])
}
