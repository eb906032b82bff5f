package service

import (
	"context"
	"errors"
	"strings"

	"github.com/flamingdiva/flamingdiva-backend/pkg/logger"
	"github.com/flamingdiva/flamingdiva-backend/pkg/payment/stripe"
)

var (
	ErrEmptyCart             = errors.New("no items in cart")
	ErrCheckoutSessionFailed = errors.New("failed to create checkout session")
)

// GuestUserID is recorded in session metadata when no account is signed in
const GuestUserID = "guest"

// Shipping offered at checkout: complimentary ground or flat-rate express.
var shippingOptions = []stripe.ShippingOption{
	{DisplayName: "Complimentary Shipping", AmountCents: 0, MinDays: 5, MaxDays: 7},
	{DisplayName: "Express Shipping", AmountCents: 2500, MinDays: 2, MaxDays: 3},
}

// allowedShippingCountries are the markets the storefront ships to
var allowedShippingCountries = []string{"US", "CA", "GB", "AU", "VN"}

// CheckoutItem is one cart line submitted for checkout. PriceCents is the
// unit price in minor currency units; zero is a valid price for promotional
// lines, so only negative amounts are rejected.
type CheckoutItem struct {
	Name       string `json:"name" binding:"required"`
	PriceCents int64  `json:"price" binding:"gte=0"`
	Size       string `json:"size"`
	Quantity   int    `json:"quantity"`
	Image      string `json:"image"`
}

type CheckoutService interface {
	CreateSession(ctx context.Context, items []CheckoutItem, customerEmail, userID string) (*stripe.CheckoutSession, error)
}

type checkoutService struct {
	client *stripe.Client
	domain string
}

// NewCheckoutService creates a checkout service. domain is the public
// storefront origin used to absolutize relative image paths.
func NewCheckoutService(client *stripe.Client, domain string) CheckoutService {
	return &checkoutService{
		client: client,
		domain: strings.TrimSuffix(domain, "/"),
	}
}

// CreateSession hands the submitted cart to the payment provider and returns
// the hosted session. The cart itself is not touched; it is cleared only
// after the completion event arrives on the webhook.
func (s *checkoutService) CreateSession(ctx context.Context, items []CheckoutItem, customerEmail, userID string) (*stripe.CheckoutSession, error) {
	if len(items) == 0 {
		logger.Warn("Checkout rejected: empty cart", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyCart
	}

	if userID == "" {
		userID = GuestUserID
	}

	logger.Info("Creating checkout session", map[string]interface{}{
		"items":   len(items),
		"user_id": userID,
	})

	lineItems := make([]stripe.LineItem, 0, len(items))
	for _, item := range items {
		line := stripe.LineItem{
			Name:       item.Name,
			UnitAmount: item.PriceCents,
			Quantity:   item.Quantity,
		}
		if item.Size != "" {
			line.Description = "Size: " + item.Size
		}
		if item.Image != "" {
			line.ImageURL = s.absoluteImageURL(item.Image)
		}
		lineItems = append(lineItems, line)
	}

	session, err := s.client.CreateCheckoutSession(ctx, stripe.CheckoutSessionParams{
		LineItems:        lineItems,
		CustomerEmail:    customerEmail,
		ClientUserID:     userID,
		AllowedCountries: allowedShippingCountries,
		ShippingOptions:  shippingOptions,
	})
	if err != nil {
		logger.Error("Failed to create checkout session", err, map[string]interface{}{
			"user_id": userID,
			"items":   len(items),
		})
		return nil, err
	}

	logger.Info("Checkout session created", map[string]interface{}{
		"session_id": session.ID,
		"user_id":    userID,
	})
	return session, nil
}

func (s *checkoutService) absoluteImageURL(image string) string {
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	return s.domain + "/" + strings.TrimPrefix(image, "/")
}
