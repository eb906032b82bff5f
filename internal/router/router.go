package router

import (
	"github.com/gin-gonic/gin"
	"github.com/flamingdiva/flamingdiva-backend/config"
	"github.com/flamingdiva/flamingdiva-backend/internal/app/controller"
	"github.com/flamingdiva/flamingdiva-backend/internal/middleware"
)

type Router struct {
	authController      *controller.AuthController
	productController   *controller.ProductController
	cartController      *controller.CartController
	guestCartController *controller.GuestCartController
	checkoutController  *controller.CheckoutController
	webhookController   *controller.WebhookController
	orderController     *controller.OrderController
	uploadController    *controller.UploadController
	authMiddleware      *middleware.AuthMiddleware
	config              *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	cartController *controller.CartController,
	guestCartController *controller.GuestCartController,
	checkoutController *controller.CheckoutController,
	webhookController *controller.WebhookController,
	orderController *controller.OrderController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		productController:   productController,
		cartController:      cartController,
		guestCartController: guestCartController,
		checkoutController:  checkoutController,
		webhookController:   webhookController,
		orderController:     orderController,
		uploadController:    uploadController,
		authMiddleware:      authMiddleware,
		config:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "FLAMING DIVA API is running",
		})
	})

	// The storefront calls these two endpoints directly from the browser, so
	// they keep their original paths and answer CORS preflights from any origin.
	api := router.Group("/api")
	api.Use(storefrontCORSMiddleware())
	{
		api.POST("/create-checkout-session", r.checkoutController.CreateCheckoutSession)
		api.POST("/webhook", r.webhookController.HandleStripeWebhook)
	}

	v1 := router.Group("/api/v1")
	v1.Use(corsMiddleware(r.config.CORS.AllowedOrigins))
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/:id", r.productController.GetProduct)

			products.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.productController.CreateProduct,
			)
			products.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.productController.UpdateProduct,
			)
			products.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.productController.DeleteProduct,
			)
		}

		v1.GET("/collections/:name", r.productController.GetCollection)

		guestCart := v1.Group("/guest-cart")
		{
			guestCart.GET("", r.guestCartController.GetCart)
			guestCart.POST("/items", r.guestCartController.AddItem)
			guestCart.PUT("/items/:id", r.guestCartController.UpdateItem)
			guestCart.DELETE("/items/:id", r.guestCartController.RemoveItem)
			guestCart.DELETE("", r.guestCartController.ClearCart)
		}

		v1.POST("/checkout", r.authMiddleware.Authenticate(), r.checkoutController.CheckoutFromCart)

		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.PUT("/:id", r.cartController.UpdateCartItem)
			cart.DELETE("/:id", r.cartController.RemoveFromCart)
			cart.DELETE("", r.cartController.ClearCart)
		}

		orders := v1.Group("/orders")
		{
			// Success page lookup works for guest orders too, so no auth here
			orders.GET("/session/:session_id", r.orderController.GetOrderBySession)

			orders.GET("", r.authMiddleware.Authenticate(), r.orderController.ListOrders)
			orders.GET("/:id", r.authMiddleware.Authenticate(), r.orderController.GetOrder)
			orders.PUT("/:id/status",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.orderController.UpdateOrderStatus,
			)
		}

		upload := v1.Group("/upload")
		upload.Use(r.authMiddleware.Authenticate())
		upload.Use(r.authMiddleware.RequireRole("admin"))
		{
			upload.POST("/presigned-url", r.uploadController.GeneratePresignedURL)
		}
	}

	return router
}

// storefrontCORSMiddleware answers preflights for the public checkout and
// webhook endpoints. These accept requests from any origin because the static
// storefront can be served from anywhere.
func storefrontCORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Stripe-Signature")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Cart-Token")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
