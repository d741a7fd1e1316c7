package service

import (
	"context"
	"errors"

	"github.com/Skotchmaster/nutshop/internal/models"
	"github.com/Skotchmaster/nutshop/internal/repo"
)

type WishlistService struct {
	Repo *repo.GormRepo
}

func (s *WishlistService) Wishlist(ctx context.Context, userID uint) ([]models.Product, error) {
	return s.Repo.Wishlist(ctx, userID)
}

// Add refuses duplicates instead of ignoring them.
func (s *WishlistService) Add(ctx context.Context, userID, productID uint) (*models.Product, error) {
	err := s.Repo.AddToWishlist(ctx, userID, productID)
	switch {
	case err == nil:
	case isNotFound(err):
		return nil, notFound("Товар не найден")
	case errors.Is(err, repo.ErrAlreadyExists):
		return nil, conflict("Товар уже в списке желаемого")
	default:
		return nil, err
	}

	return s.Repo.ProductByID(ctx, productID)
}

func (s *WishlistService) Remove(ctx context.Context, userID, productID uint) error {
	if err := s.Repo.RemoveFromWishlist(ctx, userID, productID); err != nil {
		if isNotFound(err) {
			return notFound("Товара нет в списке желаемого")
		}
		return err
	}
	return nil
}
