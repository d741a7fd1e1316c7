package service

import (
	"context"

	"github.com/Skotchmaster/nutshop/internal/models"
	"github.com/Skotchmaster/nutshop/internal/repo"
)

type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) Cart(ctx context.Context, userID uint) ([]repo.CartLine, error) {
	return s.Repo.CartLines(ctx, userID)
}

// Add creates the line or increments an existing one.
func (s *CartService) Add(ctx context.Context, userID, productID uint, quantity int) (*models.Product, error) {
	if quantity <= 0 {
		return nil, validation("Количество должно быть > 0")
	}

	if _, err := s.Repo.AddToCart(ctx, userID, productID, quantity); err != nil {
		if isNotFound(err) {
			return nil, notFound("Товар не найден")
		}
		return nil, err
	}

	product, err := s.Repo.ProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Remove decrements the line and reports whether it was deleted.
func (s *CartService) Remove(ctx context.Context, userID, productID uint, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, validation("Количество должно быть > 0")
	}

	deleted, _, err := s.Repo.RemoveFromCart(ctx, userID, productID, quantity)
	if err != nil {
		if isNotFound(err) {
			return false, notFound("Товара нет в корзине")
		}
		return false, err
	}
	return deleted, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID uint, quantity int) (bool, error) {
	if quantity < 0 {
		return false, validation("Количество не может быть меньше 0")
	}

	deleted, err := s.Repo.SetCartQuantity(ctx, userID, productID, quantity)
	if err != nil {
		if isNotFound(err) {
			return false, notFound("Товар не найден в корзине")
		}
		return false, err
	}
	return deleted, nil
}

func (s *CartService) Clear(ctx context.Context, userID uint) error {
	return s.Repo.ClearCart(ctx, userID)
}
