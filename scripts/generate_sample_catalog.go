package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"catalog-admin/internal/model"

	"github.com/shopspring/decimal"
)

// generateSampleCatalog writes a local product snapshot usable as
// source.path or source.fallback:
//
//	go run scripts/generate_sample_catalog.go
//	CATALOG_SOURCE_FALLBACK=data/products.json.gz go run ./cmd/catalog
func main() {
	dataDir := "data"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	categories := []string{"men's clothing", "women's clothing", "jewelery", "electronics"}
	titles := map[string][]string{
		"men's clothing":   {"Slim Fit T-Shirt", "Cotton Jacket", "Casual Shirt", "Wool Hat", "Denim Jeans"},
		"women's clothing": {"Rain Jacket", "Short Sleeve Top", "Snowboard Jacket", "Moto Biker Jacket", "Boat Neck Tee"},
		"jewelery":         {"Gold Bracelet", "Silver Ring", "Rose Gold Earrings", "Princess Ring", "Pearl Necklace"},
		"electronics":      {"Portable Hard Drive", "Internal SSD", "Gaming Monitor", "USB Flash Drive", "Wireless Mouse"},
	}

	var products []model.Product
	id := 1
	for i, category := range categories {
		for j, title := range titles[category] {
			price := decimal.NewFromInt(int64(15 + (i*5+j)*37%480)).Add(decimal.RequireFromString("0.99"))
			products = append(products, model.Product{
				ID:          id,
				Title:       title,
				Price:       price,
				Description: fmt.Sprintf("Sample %s item number %d.", category, j+1),
				Category:    category,
				Image:       fmt.Sprintf("https://picsum.photos/seed/catalog-%d/320/320", id),
				Rating: model.Rating{
					Rate:  float64(25+(id*7)%25) / 10,
					Count: 40 + (id*53)%400,
				},
			})
			id++
		}
	}

	filePath := filepath.Join(dataDir, "products.json.gz")
	if err := writeSnapshot(filePath, products); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d products\n", filePath, len(products))
}

func writeSnapshot(filePath string, products []model.Product) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)

	encoder := json.NewEncoder(gzipWriter)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(products); err != nil {
		return fmt.Errorf("failed to write products: %w", err)
	}

	return gzipWriter.Close()
}
