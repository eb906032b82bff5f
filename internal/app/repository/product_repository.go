package repository

import (
	"github.com/flamingdiva/flamingdiva-backend/internal/app/model"
	"github.com/flamingdiva/flamingdiva-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindByID(id uint) (*model.Product, error)
	FindAllActive() ([]model.Product, error)
	FindByCollection(collection model.ProductCollection) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":     product.Name,
		"category": product.Category,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}
	return nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, id).Error
	if err != nil {
		logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return &product, nil
}

// FindAllActive returns the catalog in curated order, oldest id first.
// Delisted products are excluded.
func (r *productRepository) FindAllActive() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("is_active = ?", true).
		Order("id ASC").
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to find active products in database", err)
		return nil, err
	}

	logger.Debug("Active products found in database", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindByCollection(collection model.ProductCollection) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("is_active = ? AND collection = ?", true, collection).
		Order("id ASC").
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to find products by collection in database", err, map[string]interface{}{
			"collection": collection,
		})
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Update(product *model.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Product{}, id).Error; err != nil {
		logger.Error("Failed to delete product in database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}
