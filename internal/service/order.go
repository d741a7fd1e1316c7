package service

import (
	"context"
	"errors"

	"github.com/Skotchmaster/nutshop/internal/events"
	"github.com/Skotchmaster/nutshop/internal/repo"
)

type OrderService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func (s *OrderService) Checkout(ctx context.Context, userID uint, comment *string) (*repo.OrderWithItems, error) {
	if comment != nil && blank(*comment) {
		comment = nil
	}

	res, err := s.Repo.Checkout(ctx, userID, comment)
	switch {
	case err == nil:
	case errors.Is(err, repo.ErrEmptyCart):
		return nil, validation("Корзина пуста")
	case errors.Is(err, repo.ErrInsufficientFunds):
		return nil, conflict("Недостаточно средств на балансе")
	case isNotFound(err):
		return nil, newErr(ErrUnauthorized, "unauthorized")
	default:
		return nil, err
	}

	publish(ctx, s.Events, events.OrderPlaced, userID, map[string]any{
		"order_id":    res.Order.ID,
		"total_price": res.Order.TotalPrice.String(),
		"items":       len(res.Items),
	})
	return res, nil
}

func (s *OrderService) History(ctx context.Context, userID uint) ([]repo.OrderWithItems, error) {
	return s.Repo.OrderHistory(ctx, userID)
}
