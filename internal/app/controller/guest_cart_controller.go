package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/flamingdiva/flamingdiva-backend/internal/cart"
	apperrors "github.com/flamingdiva/flamingdiva-backend/internal/errors"
	"github.com/flamingdiva/flamingdiva-backend/internal/middleware"
	"github.com/redis/go-redis/v9"
)

// CartTokenHeader carries the opaque guest cart token. The server issues one
// on first contact; the storefront sends it back on every cart request.
const CartTokenHeader = "X-Cart-Token"

// GuestCartController serves carts for visitors without an account. Each
// token maps to a snapshot in Redis; concurrent writers to the same token
// are last-writer-wins.
type GuestCartController struct {
	redisClient *redis.Client
}

func NewGuestCartController(redisClient *redis.Client) *GuestCartController {
	return &GuestCartController{
		redisClient: redisClient,
	}
}

type GuestAddItemRequest struct {
	Name     string `json:"name" binding:"required"`
	Price    string `json:"price" binding:"required"`
	Size     string `json:"size" binding:"required"`
	Quantity int    `json:"quantity"`
	Image    string `json:"image"`
}

type GuestUpdateItemRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// storeForRequest loads the cart for the request's token, minting a fresh
// token when none is presented. The token is echoed on every response.
func (ctrl *GuestCartController) storeForRequest(c *gin.Context) (*cart.Store, string) {
	token := c.GetHeader(CartTokenHeader)
	if token == "" {
		token = uuid.NewString()
	}
	c.Header(CartTokenHeader, token)

	storage := cart.NewRedisStorage(ctrl.redisClient, token)
	return cart.NewStore(storage), token
}

func cartResponse(store *cart.Store, token string) gin.H {
	return gin.H{
		"cart_token": token,
		"items":      store.Items(),
		"count":      store.Count(),
		"total":      store.Total(),
	}
}

// GetCart returns the guest cart for the presented token
// GET /api/v1/guest-cart
func (ctrl *GuestCartController) GetCart(c *gin.Context) {
	store, token := ctrl.storeForRequest(c)
	c.JSON(http.StatusOK, cartResponse(store, token))
}

// AddItem adds a line to the guest cart, merging on (name, size)
// POST /api/v1/guest-cart/items
func (ctrl *GuestCartController) AddItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req GuestAddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid guest cart add request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	store, token := ctrl.storeForRequest(c)
	item := store.AddItem(req.Name, req.Price, req.Size, req.Image, req.Quantity)

	log.Info("Guest cart item added", map[string]interface{}{
		"item_id": item.ID,
		"name":    item.Name,
		"size":    item.Size,
	})

	response := cartResponse(store, token)
	response["cart_item"] = item
	c.JSON(http.StatusCreated, response)
}

// UpdateItem applies a quantity delta to one line. A quantity that drops to
// zero or below removes the line.
// PUT /api/v1/guest-cart/items/:id
func (ctrl *GuestCartController) UpdateItem(c *gin.Context) {
	var req GuestUpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	store, token := ctrl.storeForRequest(c)
	if !store.UpdateQuantity(c.Param("id"), req.Delta) {
		apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
		return
	}

	c.JSON(http.StatusOK, cartResponse(store, token))
}

// RemoveItem deletes one line from the guest cart
// DELETE /api/v1/guest-cart/items/:id
func (ctrl *GuestCartController) RemoveItem(c *gin.Context) {
	store, token := ctrl.storeForRequest(c)
	if !store.RemoveItem(c.Param("id")) {
		apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
		return
	}

	c.JSON(http.StatusOK, cartResponse(store, token))
}

// ClearCart empties the guest cart
// DELETE /api/v1/guest-cart
func (ctrl *GuestCartController) ClearCart(c *gin.Context) {
	store, token := ctrl.storeForRequest(c)
	store.Clear()
	c.JSON(http.StatusOK, cartResponse(store, token))
}
