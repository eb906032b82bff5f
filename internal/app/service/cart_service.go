package service

import (
	"errors"

	"github.com/flamingdiva/flamingdiva-backend/internal/app/model"
	"github.com/flamingdiva/flamingdiva-backend/internal/app/repository"
	"github.com/flamingdiva/flamingdiva-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
)

type CartService interface {
	GetUserCart(userID uint) ([]model.CartItem, error)
	AddToCart(userID, productID uint, size string, quantity int) (*model.CartItem, error)
	UpdateCartItem(userID, cartItemID uint, quantity int) error
	RemoveFromCart(userID, cartItemID uint) error
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	productSvc  ProductService
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	productSvc ProductService,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		productSvc:  productSvc,
	}
}

func (s *cartService) GetUserCart(userID uint) ([]model.CartItem, error) {
	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return cartItems, nil
}

// AddToCart merges into an existing (product, size) line when one exists,
// otherwise creates a new line. Quantity defaults to 1 when not positive.
func (s *cartService) AddToCart(userID, productID uint, size string, quantity int) (*model.CartItem, error) {
	if quantity <= 0 {
		quantity = 1
	}

	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"size":       size,
		"quantity":   quantity,
	})

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	if !product.IsActive {
		return nil, ErrProductInactive
	}
	if err := s.productSvc.ValidateSize(product, size); err != nil {
		return nil, err
	}

	existing, err := s.cartRepo.FindByUserProductSize(userID, productID, size)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing cart line", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	if existing != nil {
		existing.Quantity += quantity
		if err := s.cartRepo.Update(existing); err != nil {
			return nil, err
		}
		logger.Info("Cart line quantity merged", map[string]interface{}{
			"cart_item_id": existing.ID,
			"quantity":     existing.Quantity,
		})
		return existing, nil
	}

	cartItem := &model.CartItem{
		UserID:    userID,
		ProductID: productID,
		Size:      size,
		Quantity:  quantity,
	}
	if err := s.cartRepo.Create(cartItem); err != nil {
		return nil, err
	}
	return cartItem, nil
}

// UpdateCartItem sets an absolute quantity. Zero or less removes the line.
func (s *cartService) UpdateCartItem(userID, cartItemID uint, quantity int) error {
	cartItem, err := s.cartRepo.FindByID(cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}

	if cartItem.UserID != userID {
		logger.Warn("Cart item ownership mismatch", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": cartItemID,
		})
		return ErrCartItemNotFound
	}

	if quantity <= 0 {
		return s.cartRepo.Delete(cartItemID)
	}

	cartItem.Quantity = quantity
	return s.cartRepo.Update(cartItem)
}

func (s *cartService) RemoveFromCart(userID, cartItemID uint) error {
	cartItem, err := s.cartRepo.FindByID(cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}

	if cartItem.UserID != userID {
		return ErrCartItemNotFound
	}

	return s.cartRepo.Delete(cartItemID)
}

func (s *cartService) ClearCart(userID uint) error {
	logger.Info("Clearing user cart", map[string]interface{}{
		"user_id": userID,
	})
	return s.cartRepo.DeleteByUserID(userID)
}
