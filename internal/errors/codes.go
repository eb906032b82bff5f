package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The storefront maps these codes to user-facing copy.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed token
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // token blacklisted
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // duplicate email

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN" // no access
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY"
	AuthzOwnerOnly = "AUTHZ_OWNER_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationTooShort      = "VALIDATION_TOO_SHORT"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Products (PRODUCT_) ====================
	ProductNotFound        = "PRODUCT_NOT_FOUND"
	ProductInactive        = "PRODUCT_INACTIVE"        // delisted from catalog
	ProductInvalidCategory = "PRODUCT_INVALID_CATEGORY"
	ProductInvalidSize     = "PRODUCT_INVALID_SIZE" // size not offered for the product

	// ==================== Cart (CART_) ====================
	CartItemNotFound   = "CART_ITEM_NOT_FOUND"
	CartEmpty          = "CART_EMPTY"
	CartInvalidToken   = "CART_INVALID_TOKEN"   // missing or malformed guest cart token
	CartInvalidQuantity = "CART_INVALID_QUANTITY"

	// ==================== Checkout (CHECKOUT_) ====================
	CheckoutEmptyCart     = "CHECKOUT_EMPTY_CART"     // no items submitted
	CheckoutSessionFailed = "CHECKOUT_SESSION_FAILED" // payment provider rejected the session
	CheckoutUnavailable   = "CHECKOUT_UNAVAILABLE"    // provider unreachable

	// ==================== Orders (ORDER_) ====================
	OrderNotFound = "ORDER_NOT_FOUND"

	// ==================== Webhook (WEBHOOK_) ====================
	WebhookInvalidSignature = "WEBHOOK_INVALID_SIGNATURE"
	WebhookInvalidPayload   = "WEBHOOK_INVALID_PAYLOAD"

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"
)
