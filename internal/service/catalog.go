package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/nutshop/internal/events"
	"github.com/Skotchmaster/nutshop/internal/logging"
	"github.com/Skotchmaster/nutshop/internal/models"
	"github.com/Skotchmaster/nutshop/internal/repo"
)

// ProductIndex is an optional full-text index over the catalog.
type ProductIndex interface {
	Index(ctx context.Context, p models.Product) error
	Search(ctx context.Context, query string) ([]uint, error)
	Count(ctx context.Context) (int64, error)
}

type CatalogService struct {
	Repo   *repo.GormRepo
	Index  ProductIndex
	Events events.Publisher
}

func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

// Search matches query as a case-insensitive substring of product names.
func (s *CatalogService) Search(ctx context.Context, query string) ([]models.Product, error) {
	if blank(query) {
		return nil, validation("Параметр query не должен быть пустым")
	}

	if s.Index != nil {
		products, err := s.searchIndex(ctx, query)
		if err == nil {
			return products, nil
		}
		logging.FromContext(ctx).Warn("search_index_failed", "error", err)
	}

	all, err := s.Repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return filterByName(all, query), nil
}

var errStaleIndex = errors.New("search index is out of sync with the store")

// searchIndex answers from the index only while it holds every stored product.
// Hits are checked against the stored names.
func (s *CatalogService) searchIndex(ctx context.Context, query string) ([]models.Product, error) {
	indexed, err := s.Index.Count(ctx)
	if err != nil {
		return nil, err
	}
	stored, err := s.Repo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}
	if indexed != stored {
		return nil, fmt.Errorf("%w: %d indexed, %d stored", errStaleIndex, indexed, stored)
	}

	ids, err := s.Index.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	products, err := s.Repo.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return filterByName(products, query), nil
}

func filterByName(products []models.Product, query string) []models.Product {
	q := strings.ToLower(query)
	out := make([]models.Product, 0)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}

func (s *CatalogService) Add(ctx context.Context, userID uint, name string, price decimal.Decimal, imageURL *string) (*models.Product, error) {
	if blank(name) {
		return nil, validation("Название товара не может быть пустым")
	}
	if !price.IsPositive() {
		return nil, validation("Цена должна быть > 0")
	}
	if err := checkMoney(price, "Цена"); err != nil {
		return nil, err
	}
	if imageURL != nil && blank(*imageURL) {
		imageURL = nil
	}

	p := &models.Product{Name: name, Price: price, ImageURL: imageURL}
	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	s.IndexProducts(ctx, *p)
	publish(ctx, s.Events, events.ProductAdded, userID, map[string]any{
		"product_id": p.ID,
		"name":       p.Name,
		"price":      p.Price.String(),
	})
	return p, nil
}

// Reindex pushes the whole stored catalog to the index.
func (s *CatalogService) Reindex(ctx context.Context) error {
	if s.Index == nil {
		return nil
	}
	products, err := s.Repo.ListProducts(ctx)
	if err != nil {
		return err
	}
	s.IndexProducts(ctx, products...)
	return nil
}

// IndexProducts pushes products to the search index if one is configured.
func (s *CatalogService) IndexProducts(ctx context.Context, products ...models.Product) {
	if s.Index == nil {
		return
	}
	for _, p := range products {
		if err := s.Index.Index(ctx, p); err != nil {
			logging.FromContext(ctx).Warn("index_product_failed", "product_id", p.ID, "error", err)
		}
	}
}
