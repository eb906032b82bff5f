package db

import (
	"github.com/lib/pq"

	"github.com/flamingdiva/flamingdiva-backend/internal/app/model"
	"github.com/flamingdiva/flamingdiva-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedInitialData()
}

func seedInitialData() error {
	logger.Info("Seeding initial data...")

	if err := seedProducts(); err != nil {
		logger.Error("Failed to seed products", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

var defaultSizes = pq.StringArray{"S", "M", "L", "XL"}

// DefaultCatalog is the launch storefront catalog. Seeded only into an empty
// products table; live catalogs are managed through the seed command.
var DefaultCatalog = []model.Product{
	{Name: "Third Eye Patched Leather", PriceCents: 129500, PriceText: "$1,295 USD", Category: model.CategoryLeather, Collection: model.CollectionInferno, ImageURL: "images/product-1.jpg", HoverImageURL: "images/product-1-hover.jpg", IsNew: true, IsActive: true, Sizes: defaultSizes},
	{Name: "Hip-Hop Legends Bomber", PriceCents: 89500, PriceText: "$895 USD", Category: model.CategoryBomber, Collection: model.CollectionInferno, ImageURL: "images/product-2.jpg", HoverImageURL: "images/product-2-hover.jpg", IsNew: true, IsActive: true, Sizes: defaultSizes},
	{Name: "Rock Icons Varsity", PriceCents: 69500, PriceText: "$695 USD", Category: model.CategoryVarsity, Collection: model.CollectionInferno, ImageURL: "images/product-3.jpg", HoverImageURL: "images/product-3-hover.jpg", IsNew: true, IsActive: true, Sizes: defaultSizes},
	{Name: "Cosmic Visions Trucker", PriceCents: 99500, PriceText: "$995 USD", Category: model.CategoryTrucker, Collection: model.CollectionInferno, ImageURL: "images/product-4.jpg", HoverImageURL: "images/product-4-hover.jpg", IsNew: true, IsActive: true, Sizes: defaultSizes},
	{Name: "Snake & Skull Denim", PriceCents: 59500, PriceText: "$595 USD", Category: model.CategoryDenim, Collection: model.CollectionEssentials, ImageURL: "images/essential-1.jpg", HoverImageURL: "images/essential-1.jpg", IsActive: true, Sizes: defaultSizes},
	{Name: "Grateful Spirit Canvas", PriceCents: 49500, PriceText: "$495 USD", Category: model.CategoryCanvas, Collection: model.CollectionEssentials, ImageURL: "images/essential-2.jpg", HoverImageURL: "images/essential-2.jpg", IsActive: true, Sizes: defaultSizes},
	{Name: "Zen Master Coach", PriceCents: 39500, PriceText: "$395 USD", Category: model.CategoryCoach, Collection: model.CollectionEssentials, ImageURL: "images/essential-3.jpg", HoverImageURL: "images/essential-3.jpg", IsActive: true, Sizes: defaultSizes},
	{Name: "Acid Trip Field Jacket", PriceCents: 45000, PriceText: "$450 USD", Category: model.CategoryField, Collection: model.CollectionEssentials, ImageURL: "images/essential-4.jpg", HoverImageURL: "images/essential-4.jpg", IsActive: true, Sizes: defaultSizes},
	{Name: "Mystic Eye Patched Leather", PriceCents: 119500, PriceText: "$1,195 USD", Category: model.CategoryLeather, Collection: model.CollectionInferno, ImageURL: "images/look-1.jpg", HoverImageURL: "images/look-1.jpg", IsActive: true, Sizes: defaultSizes},
	{Name: "Psychedelic Dreams Bomber", PriceCents: 94500, PriceText: "$945 USD", Category: model.CategoryBomber, Collection: model.CollectionPhoenix, ImageURL: "images/look-2.jpg", HoverImageURL: "images/look-2.jpg", IsActive: true, Sizes: defaultSizes},
	{Name: "Rock Legend Varsity", PriceCents: 79500, PriceText: "$795 USD", Category: model.CategoryVarsity, Collection: model.CollectionPhoenix, ImageURL: "images/look-3.jpg", HoverImageURL: "images/look-3.jpg", IsActive: true, Sizes: defaultSizes},
}

// seedProducts loads the launch catalog when the products table is empty
func seedProducts() error {
	var count int64
	if err := DB.Model(&model.Product{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Products already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding launch catalog...")

	totalInserted := 0
	for _, product := range DefaultCatalog {
		if err := DB.Create(&product).Error; err != nil {
			logger.Error("Failed to create product", err, map[string]interface{}{
				"product": product.Name,
			})
			return err
		}
		totalInserted++
	}

	logger.Info("Products seeded successfully", map[string]interface{}{
		"total_products": totalInserted,
	})

	return nil
}
