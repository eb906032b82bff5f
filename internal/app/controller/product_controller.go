package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/flamingdiva/flamingdiva-backend/internal/app/model"
	"github.com/flamingdiva/flamingdiva-backend/internal/app/service"
	"github.com/flamingdiva/flamingdiva-backend/internal/cart"
	"github.com/flamingdiva/flamingdiva-backend/internal/catalog"
	apperrors "github.com/flamingdiva/flamingdiva-backend/internal/errors"
	"github.com/flamingdiva/flamingdiva-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// ListProducts returns the catalog filtered by the query parameters.
// Categories and collections accept comma-separated values; a search query
// of at least two characters overrides the facet filters.
// GET /api/v1/products?category=leather,bomber&collection=inferno&price=under500&q=...&sort=price-asc
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	query := service.ProductQuery{
		PriceRange: catalog.ParsePriceRange(c.Query("price")),
		Search:     c.Query("q"),
		Sort:       catalog.ParseSortKey(c.Query("sort")),
	}
	for _, v := range splitParam(c.Query("category")) {
		query.Categories = append(query.Categories, model.ProductCategory(v))
	}
	for _, v := range splitParam(c.Query("collection")) {
		query.Collections = append(query.Collections, model.ProductCollection(v))
	}

	result, err := ctrl.productService.ListProducts(query)
	if err != nil {
		log.Error("Failed to list products", err)
		apperrors.InternalError(c, "Failed to load the catalog")
		return
	}

	if result.QueryTooShort {
		// Distinct from zero matches: the storefront prompts for more input
		c.JSON(http.StatusOK, gin.H{
			"products":        []model.Product{},
			"count":           0,
			"query_too_short": true,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": result.Products,
		"count":    result.Count,
	})
}

// GetProduct returns one product by id
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product id")
		return
	}

	product, err := ctrl.productService.GetProduct(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) || errors.Is(err, service.ErrProductInactive) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// GetCollection returns the active products of one collection
// GET /api/v1/collections/:name
func (ctrl *ProductController) GetCollection(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	name := model.ProductCollection(c.Param("name"))
	products, err := ctrl.productService.GetCollection(name)
	if err != nil {
		log.Error("Failed to fetch collection", err, map[string]interface{}{
			"collection": name,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"collection": name,
		"products":   products,
		"count":      len(products),
	})
}

type CreateProductRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	PriceCents    int64    `json:"price_cents" binding:"required,gt=0"`
	Category      string   `json:"category" binding:"required"`
	Collection    string   `json:"collection"`
	ImageURL      string   `json:"image_url"`
	HoverImageURL string   `json:"hover_image_url"`
	IsNew         bool     `json:"is_new"`
	Sizes         []string `json:"sizes"`
}

type UpdateProductRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	PriceCents    int64    `json:"price_cents"`
	Category      string   `json:"category"`
	Collection    string   `json:"collection"`
	ImageURL      string   `json:"image_url"`
	HoverImageURL string   `json:"hover_image_url"`
	IsNew         *bool    `json:"is_new"`
	IsActive      *bool    `json:"is_active"`
	Sizes         []string `json:"sizes"`
}

// CreateProduct adds a catalog entry (admin only)
// POST /api/v1/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
		return
	}

	sizes := req.Sizes
	if len(sizes) == 0 {
		sizes = []string{"S", "M", "L", "XL"}
	}

	product := &model.Product{
		Name:          req.Name,
		Description:   req.Description,
		PriceCents:    req.PriceCents,
		PriceText:     cart.FormatPrice(req.PriceCents),
		Category:      model.ProductCategory(req.Category),
		Collection:    model.ProductCollection(req.Collection),
		ImageURL:      req.ImageURL,
		HoverImageURL: req.HoverImageURL,
		IsNew:         req.IsNew,
		IsActive:      true,
		Sizes:         pq.StringArray(sizes),
	}

	if err := ctrl.productService.CreateProduct(product); err != nil {
		log.Error("Failed to create product", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.ParseAndRespond(c, err, "create product")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created",
		"product": product,
	})
}

// UpdateProduct edits a catalog entry (admin only)
// PUT /api/v1/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product id")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
		return
	}

	product, err := ctrl.productService.GetProduct(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		if !errors.Is(err, service.ErrProductInactive) {
			apperrors.InternalError(c, "")
			return
		}
		// Retired products stay editable so they can be relisted
		product, err = ctrl.productService.GetProductAny(uint(id))
		if err != nil {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.PriceCents > 0 {
		product.PriceCents = req.PriceCents
		product.PriceText = cart.FormatPrice(req.PriceCents)
	}
	if req.Category != "" {
		product.Category = model.ProductCategory(req.Category)
	}
	if req.Collection != "" {
		product.Collection = model.ProductCollection(req.Collection)
	}
	if req.ImageURL != "" {
		product.ImageURL = req.ImageURL
	}
	if req.HoverImageURL != "" {
		product.HoverImageURL = req.HoverImageURL
	}
	if req.IsNew != nil {
		product.IsNew = *req.IsNew
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if len(req.Sizes) > 0 {
		product.Sizes = pq.StringArray(req.Sizes)
	}

	if err := ctrl.productService.UpdateProduct(product); err != nil {
		log.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.ParseAndRespond(c, err, "update product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated",
		"product": product,
	})
}

// DeleteProduct retires a catalog entry (admin only)
// DELETE /api/v1/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product id")
		return
	}

	if err := ctrl.productService.DeleteProduct(uint(id)); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.ParseAndRespond(c, err, "delete product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted",
	})
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
