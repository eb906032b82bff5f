package service

import (
	"errors"

	"github.com/flamingdiva/flamingdiva-backend/internal/app/model"
	"github.com/flamingdiva/flamingdiva-backend/internal/app/repository"
	"github.com/flamingdiva/flamingdiva-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderService interface {
	GetUserOrders(userID uint) ([]model.Order, error)
	GetOrder(userID, orderID uint) (*model.Order, error)
	GetOrderBySessionID(sessionID string) (*model.Order, error)
	UpdateStatus(orderID uint, status model.OrderStatus) error
}

type orderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	orders, err := s.orderRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user orders", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return orders, nil
}

// GetOrder returns the order only when it belongs to the requesting user
func (s *orderService) GetOrder(userID, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if order.UserID == nil || *order.UserID != userID {
		logger.Warn("Order ownership mismatch", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
		return nil, ErrOrderNotFound
	}

	return order, nil
}

// GetOrderBySessionID resolves the order created for a checkout session.
// Used by the storefront success page to show the confirmation.
func (s *orderService) GetOrderBySessionID(sessionID string) (*model.Order, error) {
	order, err := s.orderRepo.FindBySessionID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) UpdateStatus(orderID uint, status model.OrderStatus) error {
	if _, err := s.orderRepo.FindByID(orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	return s.orderRepo.UpdateStatus(orderID, status)
}
