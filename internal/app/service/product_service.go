package service

import (
	"errors"

	"github.com/flamingdiva/flamingdiva-backend/internal/app/model"
	"github.com/flamingdiva/flamingdiva-backend/internal/app/repository"
	"github.com/flamingdiva/flamingdiva-backend/internal/catalog"
	"github.com/flamingdiva/flamingdiva-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductInactive = errors.New("product is not available")
	ErrInvalidSize     = errors.New("size is not offered for this product")
)

// ProductQuery carries the storefront's filter, search, and sort parameters.
type ProductQuery struct {
	Categories  []model.ProductCategory
	Collections []model.ProductCollection
	PriceRange  catalog.PriceRange
	Search      string
	Sort        catalog.SortKey
}

type ProductService interface {
	ListProducts(query ProductQuery) (catalog.Result, error)
	GetProduct(id uint) (*model.Product, error)
	GetProductAny(id uint) (*model.Product, error)
	GetCollection(collection model.ProductCollection) ([]model.Product, error)
	ValidateSize(product *model.Product, size string) error
	CreateProduct(product *model.Product) error
	UpdateProduct(product *model.Product) error
	DeleteProduct(id uint) error
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

// ListProducts loads the active catalog and applies the query in memory.
// The catalog is small and curated; filtering stays out of SQL so the facet
// semantics live in one place.
func (s *productService) ListProducts(query ProductQuery) (catalog.Result, error) {
	products, err := s.productRepo.FindAllActive()
	if err != nil {
		logger.Error("Failed to load catalog", err)
		return catalog.Result{}, err
	}

	state := catalog.FilterState{
		Categories:  query.Categories,
		Collections: query.Collections,
		PriceRange:  query.PriceRange,
	}

	result := catalog.Apply(products, state, query.Search, query.Sort)

	logger.Debug("Catalog query applied", map[string]interface{}{
		"total":           len(products),
		"matched":         result.Count,
		"query_too_short": result.QueryTooShort,
	})
	return result, nil
}

func (s *productService) GetProduct(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, ErrProductInactive
	}
	return product, nil
}

// GetProductAny returns a product regardless of its active flag. Admin
// tooling uses this to edit and relist retired entries.
func (s *productService) GetProductAny(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) GetCollection(collection model.ProductCollection) ([]model.Product, error) {
	return s.productRepo.FindByCollection(collection)
}

// ValidateSize checks the requested size against the product's size run.
// Products with no size run accept any size.
func (s *productService) ValidateSize(product *model.Product, size string) error {
	if len(product.Sizes) == 0 {
		return nil
	}
	for _, offered := range product.Sizes {
		if offered == size {
			return nil
		}
	}
	return ErrInvalidSize
}

func (s *productService) CreateProduct(product *model.Product) error {
	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

func (s *productService) UpdateProduct(product *model.Product) error {
	if _, err := s.productRepo.FindByID(product.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return s.productRepo.Update(product)
}

// DeleteProduct soft-deletes a product. Existing order snapshots are
// unaffected since order items copy name and price at finalization.
func (s *productService) DeleteProduct(id uint) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return s.productRepo.Delete(id)
}
