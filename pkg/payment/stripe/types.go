package stripe

import "encoding/json"

// LineItem describes one purchasable line in a checkout session request.
// UnitAmount is in minor currency units (cents).
type LineItem struct {
	Name        string
	Description string
	ImageURL    string
	UnitAmount  int64
	Quantity    int
}

// ShippingOption describes a fixed-amount shipping rate offered at checkout
type ShippingOption struct {
	DisplayName string
	AmountCents int64
	MinDays     int
	MaxDays     int
}

// CheckoutSessionParams represents the request parameters for session creation
type CheckoutSessionParams struct {
	LineItems        []LineItem
	CustomerEmail    string
	ClientUserID     string // stored in metadata under "userId"
	AllowedCountries []string
	ShippingOptions  []ShippingOption
	SuccessURL       string // overrides config default when set
	CancelURL        string // overrides config default when set
}

// Address represents a postal address attached to a session
type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// CustomerDetails carries the customer information collected at checkout
type CustomerDetails struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ShippingDetails carries the shipping recipient collected at checkout
type ShippingDetails struct {
	Name    string   `json:"name"`
	Address *Address `json:"address"`
}

// TotalDetails breaks the session total into its components (cents)
type TotalDetails struct {
	AmountShipping int64 `json:"amount_shipping"`
	AmountTax      int64 `json:"amount_tax"`
	AmountDiscount int64 `json:"amount_discount"`
}

// CheckoutSession represents a Stripe checkout session object
type CheckoutSession struct {
	ID              string            `json:"id"`
	URL             string            `json:"url"`
	PaymentIntent   string            `json:"payment_intent"`
	PaymentStatus   string            `json:"payment_status"`
	AmountSubtotal  int64             `json:"amount_subtotal"`
	AmountTotal     int64             `json:"amount_total"`
	Currency        string            `json:"currency"`
	CustomerEmail   string            `json:"customer_email"`
	CustomerDetails *CustomerDetails  `json:"customer_details"`
	ShippingDetails *ShippingDetails  `json:"shipping_details"`
	TotalDetails    *TotalDetails     `json:"total_details"`
	Metadata        map[string]string `json:"metadata"`
}

// SessionLineItem represents one purchased line as reported by Stripe.
// Description carries the product name from the original price_data.
type SessionLineItem struct {
	ID             string `json:"id"`
	Description    string `json:"description"`
	AmountSubtotal int64  `json:"amount_subtotal"`
	AmountTotal    int64  `json:"amount_total"`
	Quantity       int    `json:"quantity"`
	Price          struct {
		UnitAmount int64 `json:"unit_amount"`
	} `json:"price"`
}

// LineItemList is the list envelope returned by the line-items endpoint
type LineItemList struct {
	Object  string            `json:"object"`
	Data    []SessionLineItem `json:"data"`
	HasMore bool              `json:"has_more"`
}

// Event represents a signed webhook event delivered by Stripe
type Event struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Created int64  `json:"created"`
	Data    struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// Well-known event types handled by this integration
const (
	EventCheckoutSessionCompleted = "checkout.session.completed"
	EventPaymentIntentSucceeded   = "payment_intent.succeeded"
	EventPaymentIntentFailed      = "payment_intent.payment_failed"
)

// ErrorResponse is the error envelope returned by the Stripe API
type ErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
