package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/flamingdiva/flamingdiva-backend/internal/app/model"
	"github.com/flamingdiva/flamingdiva-backend/internal/app/repository"
	"github.com/flamingdiva/flamingdiva-backend/pkg/logger"
	"github.com/flamingdiva/flamingdiva-backend/pkg/payment/stripe"
	"github.com/flamingdiva/flamingdiva-backend/pkg/util"
	"gorm.io/gorm"
)

var ErrInvalidWebhookSignature = errors.New("invalid webhook signature")

// SessionLineItemLister fetches the purchased lines for a completed session.
// Satisfied by *stripe.Client.
type SessionLineItemLister interface {
	ListLineItems(ctx context.Context, sessionID string) (*stripe.LineItemList, error)
}

type WebhookService interface {
	ProcessEvent(ctx context.Context, payload []byte, signatureHeader string) error
}

type webhookService struct {
	orderRepo     repository.OrderRepository
	cartRepo      repository.CartRepository
	lineItems     SessionLineItemLister
	webhookSecret string
}

func NewWebhookService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	lineItems SessionLineItemLister,
	webhookSecret string,
) WebhookService {
	return &webhookService{
		orderRepo:     orderRepo,
		cartRepo:      cartRepo,
		lineItems:     lineItems,
		webhookSecret: webhookSecret,
	}
}

// ProcessEvent verifies the event signature and dispatches by type. Only a
// verification failure is returned to the caller; domain failures after
// verification are logged and swallowed so the provider receives a 200 and
// does not retry a payload we cannot use.
func (s *webhookService) ProcessEvent(ctx context.Context, payload []byte, signatureHeader string) error {
	event, err := stripe.ConstructEvent(payload, signatureHeader, s.webhookSecret)
	if err != nil {
		logger.Warn("Webhook signature verification failed", map[string]interface{}{
			"error": err.Error(),
		})
		return ErrInvalidWebhookSignature
	}

	logger.Info("Webhook event received", map[string]interface{}{
		"event_id":   event.ID,
		"event_type": event.Type,
	})

	switch event.Type {
	case stripe.EventCheckoutSessionCompleted:
		if err := s.handleCheckoutCompleted(ctx, &event); err != nil {
			logger.Error("Failed to finalize order from checkout event", err, map[string]interface{}{
				"event_id": event.ID,
			})
		}
	case stripe.EventPaymentIntentSucceeded:
		logger.Info("Payment succeeded", map[string]interface{}{
			"event_id": event.ID,
		})
	case stripe.EventPaymentIntentFailed:
		logger.Warn("Payment failed", map[string]interface{}{
			"event_id": event.ID,
		})
	default:
		logger.Debug("Unhandled webhook event type", map[string]interface{}{
			"event_type": event.Type,
		})
	}

	return nil
}

// handleCheckoutCompleted turns a completed checkout session into an order.
// The event id is the idempotency key: a redelivered event finds the existing
// order and stops.
func (s *webhookService) handleCheckoutCompleted(ctx context.Context, event *stripe.Event) error {
	if _, err := s.orderRepo.FindByEventID(event.ID); err == nil {
		logger.Info("Webhook event already processed, skipping", map[string]interface{}{
			"event_id": event.ID,
		})
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Object, &session); err != nil {
		return err
	}

	order := s.buildOrder(event.ID, &session)

	lineItems, err := s.lineItems.ListLineItems(ctx, session.ID)
	if err != nil {
		return err
	}
	for _, item := range lineItems.Data {
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		order.OrderItems = append(order.OrderItems, model.OrderItem{
			ProductName:    item.Description,
			UnitPriceCents: item.AmountTotal / int64(quantity),
			Quantity:       quantity,
		})
	}

	if err := s.orderRepo.Create(order); err != nil {
		// A concurrent delivery of the same event can win the insert race;
		// the unique index on the event id turns that into a duplicate error
		errLower := strings.ToLower(err.Error())
		if strings.Contains(errLower, "duplicate") || strings.Contains(errLower, "unique") {
			logger.Info("Order already created by concurrent delivery", map[string]interface{}{
				"event_id": event.ID,
			})
			return nil
		}
		return err
	}

	logger.Info("Order created from checkout session", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"session_id":   session.ID,
		"total_cents":  order.TotalCents,
	})

	// Clear the signed-in user's server-side cart; guest carts expire on
	// their own
	if order.UserID != nil {
		if err := s.cartRepo.DeleteByUserID(*order.UserID); err != nil {
			logger.Error("Failed to clear cart after order", err, map[string]interface{}{
				"user_id":  *order.UserID,
				"order_id": order.ID,
			})
		}
	}

	return nil
}

func (s *webhookService) buildOrder(eventID string, session *stripe.CheckoutSession) *model.Order {
	order := &model.Order{
		OrderNumber:             util.GenerateOrderNumber(time.Now()),
		Status:                  model.OrderStatusPaid,
		SubtotalCents:           session.AmountSubtotal,
		TotalCents:              session.AmountTotal,
		Currency:                strings.ToUpper(session.Currency),
		StripeCheckoutSessionID: session.ID,
		StripePaymentIntentID:   session.PaymentIntent,
		StripeEventID:           eventID,
	}

	if userID := session.Metadata["userId"]; userID != "" && userID != GuestUserID {
		if id, err := strconv.ParseUint(userID, 10, 64); err == nil {
			uid := uint(id)
			order.UserID = &uid
		} else {
			logger.Warn("Unparseable user id in session metadata", map[string]interface{}{
				"user_id": userID,
			})
		}
	}

	if session.TotalDetails != nil {
		order.ShippingCents = session.TotalDetails.AmountShipping
		order.TaxCents = session.TotalDetails.AmountTax
	}

	email := session.CustomerEmail
	if email == "" && session.CustomerDetails != nil {
		email = session.CustomerDetails.Email
	}
	order.ShippingEmail = email

	if sd := session.ShippingDetails; sd != nil {
		order.ShippingName = sd.Name
		if addr := sd.Address; addr != nil {
			order.ShippingAddressLine1 = addr.Line1
			order.ShippingAddressLine2 = addr.Line2
			order.ShippingCity = addr.City
			order.ShippingState = addr.State
			order.ShippingPostalCode = addr.PostalCode
			order.ShippingCountry = addr.Country
		}
	}

	return order
}
