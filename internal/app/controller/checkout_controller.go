package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/flamingdiva/flamingdiva-backend/internal/app/service"
	apperrors "github.com/flamingdiva/flamingdiva-backend/internal/errors"
	"github.com/flamingdiva/flamingdiva-backend/internal/middleware"
	"github.com/flamingdiva/flamingdiva-backend/pkg/payment/stripe"
)

type CheckoutController struct {
	checkoutService service.CheckoutService
	cartService     service.CartService
}

func NewCheckoutController(checkoutService service.CheckoutService, cartService service.CartService) *CheckoutController {
	return &CheckoutController{
		checkoutService: checkoutService,
		cartService:     cartService,
	}
}

type CreateCheckoutSessionRequest struct {
	Items         []service.CheckoutItem `json:"items"`
	CustomerEmail string                 `json:"customerEmail"`
	UserID        string                 `json:"userId"`
}

// CreateCheckoutSession hands the submitted cart to the payment provider.
// Response and error shapes are part of the storefront contract; the body is
// {"sessionId": ..., "url": ...} on success and {"error": ...} otherwise.
// POST /api/create-checkout-session
func (ctrl *CheckoutController) CreateCheckoutSession(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateCheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid checkout request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{"error": "No items in cart"})
		return
	}

	session, err := ctrl.checkoutService.CreateSession(c.Request.Context(), req.Items, req.CustomerEmail, req.UserID)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No items in cart"})
			return
		}
		log.Error("Checkout session creation failed", err, map[string]interface{}{
			"user_id": req.UserID,
		})
		status := http.StatusInternalServerError
		if errors.Is(err, stripe.ErrInvalidRequest) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{
			"error":   "Failed to create checkout session",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId": session.ID,
		"url":       session.URL,
	})
}

// CheckoutFromCart builds a payment session from the signed-in user's
// server-side cart, so the client never submits prices.
// POST /api/v1/checkout
func (ctrl *CheckoutController) CheckoutFromCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	cartItems, err := ctrl.cartService.GetUserCart(userID)
	if err != nil {
		log.Error("Failed to load cart for checkout", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to load cart")
		return
	}

	items := make([]service.CheckoutItem, 0, len(cartItems))
	for _, ci := range cartItems {
		items = append(items, service.CheckoutItem{
			Name:       ci.Product.Name,
			PriceCents: ci.Product.PriceCents,
			Size:       ci.Size,
			Quantity:   ci.Quantity,
			Image:      ci.Product.ImageURL,
		})
	}

	if len(items) == 0 {
		apperrors.BadRequest(c, apperrors.CheckoutEmptyCart, "Your cart is empty")
		return
	}

	email, _ := middleware.GetUserEmail(c)
	session, err := ctrl.checkoutService.CreateSession(c.Request.Context(), items, email, strconv.FormatUint(uint64(userID), 10))
	if err != nil {
		log.Error("Checkout session creation failed", err, map[string]interface{}{
			"user_id": userID,
		})
		if errors.Is(err, stripe.ErrInvalidRequest) {
			apperrors.BadRequest(c, apperrors.CheckoutSessionFailed, "The payment provider rejected the checkout")
			return
		}
		apperrors.RespondWithError(c, http.StatusBadGateway, apperrors.CheckoutUnavailable, "Checkout is temporarily unavailable")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId": session.ID,
		"url":       session.URL,
	})
}
