package service

import (
	"context"
	"errors"

	"github.com/Skotchmaster/nutshop/internal/repo"
)

type ProfileService struct {
	Repo *repo.GormRepo
}

func (s *ProfileService) ChangeUsername(ctx context.Context, userID uint, newUsername string) error {
	if blank(newUsername) {
		return validation("Новое имя не может быть пустым")
	}
	taken, err := s.Repo.UsernameTaken(ctx, newUsername, userID)
	if err != nil {
		return err
	}
	if taken {
		return conflict("Данное имя пользователя уже занято")
	}
	return s.update(ctx, userID, "username", newUsername, "Данное имя пользователя уже занято")
}

func (s *ProfileService) ChangeEmail(ctx context.Context, userID uint, newEmail string) error {
	if blank(newEmail) {
		return validation("Новый email не может быть пустым")
	}
	taken, err := s.Repo.EmailTaken(ctx, newEmail, userID)
	if err != nil {
		return err
	}
	if taken {
		return conflict("Данный email уже используется")
	}
	return s.update(ctx, userID, "email", newEmail, "Данный email уже используется")
}

func (s *ProfileService) ChangeAvatar(ctx context.Context, userID uint, url string) error {
	if blank(url) {
		return validation("URL аватара не может быть пустым")
	}
	return s.update(ctx, userID, "avatar_url", url, "")
}

func (s *ProfileService) ChooseAddress(ctx context.Context, userID uint, address string) error {
	if blank(address) {
		return validation("Адрес доставки не может быть пустым")
	}
	return s.update(ctx, userID, "shipping_address", address, "")
}

func (s *ProfileService) ChoosePayment(ctx context.Context, userID uint, method string) error {
	if blank(method) {
		return validation("Способ оплаты не может быть пустым")
	}
	return s.update(ctx, userID, "payment_method", method, "")
}

func (s *ProfileService) update(ctx context.Context, userID uint, column, value, dupMsg string) error {
	err := s.Repo.UpdateUser(ctx, userID, map[string]any{column: value})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrAlreadyExists) && dupMsg != "":
		return conflict(dupMsg)
	case isNotFound(err):
		return newErr(ErrUnauthorized, "unauthorized")
	default:
		return err
	}
}
