package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPaid      OrderStatus = "paid"      // payment captured, awaiting fulfillment
	OrderStatusShipped   OrderStatus = "shipped"   // handed to carrier
	OrderStatusDelivered OrderStatus = "delivered" // delivery confirmed
	OrderStatusCancelled OrderStatus = "cancelled" // cancelled/refunded
)

// Order is created only by the webhook consumer after a verified
// checkout-completion event. All monetary amounts are in cents. UserID is
// NULL for guest checkouts. StripeEventID is the idempotency key: a
// redelivered event maps to the same order instead of inserting a duplicate.
type Order struct {
	ID                      uint           `gorm:"primarykey" json:"id"`
	OrderNumber             string         `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID                  *uint          `gorm:"index" json:"user_id,omitempty"`
	Status                  OrderStatus    `gorm:"type:varchar(20);default:'paid'" json:"status"`
	SubtotalCents           int64          `gorm:"not null" json:"subtotal_cents"`
	TaxCents                int64          `gorm:"not null" json:"tax_cents"`
	ShippingCents           int64          `gorm:"not null" json:"shipping_cents"`
	TotalCents              int64          `gorm:"not null" json:"total_cents"`
	Currency                string         `gorm:"type:varchar(3)" json:"currency"`
	ShippingName            string         `json:"shipping_name,omitempty"`
	ShippingEmail           string         `json:"shipping_email,omitempty"`
	ShippingAddressLine1    string         `json:"shipping_address_line1,omitempty"`
	ShippingAddressLine2    string         `json:"shipping_address_line2,omitempty"`
	ShippingCity            string         `json:"shipping_city,omitempty"`
	ShippingState           string         `json:"shipping_state,omitempty"`
	ShippingPostalCode      string         `json:"shipping_postal_code,omitempty"`
	ShippingCountry         string         `json:"shipping_country,omitempty"`
	StripeCheckoutSessionID string         `gorm:"type:varchar(255);index" json:"stripe_checkout_session_id,omitempty"`
	StripePaymentIntentID   string         `gorm:"type:varchar(255)" json:"stripe_payment_intent_id,omitempty"`
	StripeEventID           string         `gorm:"type:varchar(255);uniqueIndex" json:"-"`
	CreatedAt               time.Time      `json:"created_at"`
	UpdatedAt               time.Time      `json:"updated_at"`
	DeletedAt               gorm.DeletedAt `gorm:"index" json:"-"`

	User       *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is a denormalized snapshot of one purchased line; product name
// and unit price are copied at finalization time, not referenced.
type OrderItem struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	OrderID        uint           `gorm:"not null;index" json:"order_id"`
	ProductName    string         `gorm:"not null" json:"product_name"`
	UnitPriceCents int64          `gorm:"not null" json:"unit_price_cents"`
	Quantity       int            `gorm:"not null" json:"quantity"`
	Size           string         `gorm:"type:varchar(10)" json:"size,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
