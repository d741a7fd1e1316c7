package db

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/nutshop/internal/models"
)

func strPtr(s string) *string { return &s }

func DefaultCatalog() []models.Product {
	return []models.Product{
		{Name: "Грецкий орех", Price: decimal.NewFromInt(250), ImageURL: strPtr("/images/walnut.jpg")},
		{Name: "Миндаль", Price: decimal.NewFromInt(320), ImageURL: strPtr("/images/almond.jpg")},
		{Name: "Фундук", Price: decimal.NewFromInt(280), ImageURL: strPtr("/images/hazelnut.jpg")},
	}
}

// Seed inserts the default catalog when the products table is empty and
// returns the inserted rows. It returns nil when the catalog already has data.
func Seed(ctx context.Context, db *gorm.DB) ([]models.Product, error) {
	var seeded []models.Product
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Product{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		products := DefaultCatalog()
		if err := tx.Create(&products).Error; err != nil {
			return err
		}
		seeded = products
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	return seeded, nil
}
