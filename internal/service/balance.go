package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/nutshop/internal/events"
	"github.com/Skotchmaster/nutshop/internal/repo"
)

type BalanceService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func (s *BalanceService) Balance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	user, err := s.Repo.UserByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return decimal.Zero, newErr(ErrUnauthorized, "unauthorized")
		}
		return decimal.Zero, err
	}
	return user.Balance, nil
}

func (s *BalanceService) TopUp(ctx context.Context, userID uint, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, validation("Сумма должна быть больше 0")
	}
	if err := checkMoney(amount, "Сумма"); err != nil {
		return decimal.Zero, err
	}

	balance, err := s.Repo.TopUp(ctx, userID, amount)
	if err != nil {
		if errors.Is(err, repo.ErrBalanceLimit) {
			return decimal.Zero, validation("Баланс слишком велик")
		}
		return decimal.Zero, err
	}

	publish(ctx, s.Events, events.BalanceToppedUp, userID, map[string]any{
		"amount":  amount.String(),
		"balance": balance.String(),
	})
	return balance, nil
}
