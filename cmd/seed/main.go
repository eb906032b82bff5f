package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/lib/pq"
	"github.com/xuri/excelize/v2"

	"github.com/flamingdiva/flamingdiva-backend/config"
	"github.com/flamingdiva/flamingdiva-backend/internal/app/model"
	"github.com/flamingdiva/flamingdiva-backend/internal/app/repository"
	"github.com/flamingdiva/flamingdiva-backend/internal/cart"
	"github.com/flamingdiva/flamingdiva-backend/internal/db"
)

// Seeds the product catalog from an XLSX sheet. Without a file argument the
// curated launch catalog is loaded instead.
//
// Expected columns: name, description, price, category, collection,
// image_url, hover_image_url, is_new, sizes (comma separated).
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	productRepo := repository.NewProductRepository(db.GetDB())

	var products []model.Product
	if len(os.Args) < 2 {
		fmt.Println("No XLSX file given, seeding the launch catalog")
		products = db.DefaultCatalog
	} else {
		filePath := os.Args[1]
		fmt.Printf("Reading XLSX file: %s\n", filePath)
		products, err = readProductsFromXLSX(filePath)
		if err != nil {
			log.Fatal("Failed to read XLSX:", err)
		}
	}

	fmt.Printf("Total products to import: %d\n", len(products))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	imported := 0
	for i := range products {
		if err := productRepo.Create(&products[i]); err != nil {
			log.Fatalf("Failed to create product %q: %v", products[i].Name, err)
		}
		imported++
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", imported)
}

func readProductsFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var products []model.Product
	seenNames := make(map[string]bool)
	skippedCount := 0

	// First row is the header
	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 5 {
			skippedCount++
			continue
		}

		name := strings.TrimSpace(cell(row, 0))
		description := strings.TrimSpace(cell(row, 1))
		priceText := strings.TrimSpace(cell(row, 2))
		category := strings.ToLower(strings.TrimSpace(cell(row, 3)))
		collection := strings.ToLower(strings.TrimSpace(cell(row, 4)))
		imageURL := strings.TrimSpace(cell(row, 5))
		hoverImageURL := strings.TrimSpace(cell(row, 6))
		isNew := parseBool(cell(row, 7))
		sizes := parseSizes(cell(row, 8))

		if name == "" || priceText == "" || category == "" {
			skippedCount++
			continue
		}

		priceCents := cart.ParsePriceCents(priceText)
		if priceCents <= 0 {
			skippedCount++
			continue
		}

		// Duplicate names collapse to the first row seen
		key := strings.ToLower(name)
		if seenNames[key] {
			skippedCount++
			continue
		}
		seenNames[key] = true

		products = append(products, model.Product{
			Name:          name,
			Description:   description,
			PriceCents:    priceCents,
			PriceText:     cart.FormatPrice(priceCents),
			Category:      model.ProductCategory(category),
			Collection:    model.ProductCollection(collection),
			ImageURL:      imageURL,
			HoverImageURL: hoverImageURL,
			IsNew:         isNew,
			IsActive:      true,
			Sizes:         sizes,
		})
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid products: %d\n", len(products))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)

	return products, nil
}

// cell returns the value at index or empty when the row is short. Excelize
// trims trailing empty cells, so optional columns may be missing.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1":
		return true
	}
	return false
}

func parseSizes(s string) pq.StringArray {
	s = strings.TrimSpace(s)
	if s == "" {
		return pq.StringArray{"S", "M", "L", "XL"}
	}

	parts := strings.Split(s, ",")
	sizes := make(pq.StringArray, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.ToUpper(strings.TrimSpace(p)); trimmed != "" {
			sizes = append(sizes, trimmed)
		}
	}
	return sizes
}
