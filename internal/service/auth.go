package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Skotchmaster/nutshop/internal/events"
	"github.com/Skotchmaster/nutshop/internal/hash"
	"github.com/Skotchmaster/nutshop/internal/models"
	"github.com/Skotchmaster/nutshop/internal/repo"
	"github.com/Skotchmaster/nutshop/internal/token"
)

const (
	msgInvalidCredentials = "Неверное имя пользователя или пароль"
	msgPasswordTooLong    = "Пароль не может быть длиннее 72 байт"
)

type AuthService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func (s *AuthService) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	if blank(username) || blank(password) || blank(email) {
		return nil, validation("Username, password и email обязательны")
	}

	exists, err := s.Repo.UserExists(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, conflict("Пользователь с таким именем или email уже существует")
	}

	passwordHash, err := hash.Password(password)
	if err != nil {
		if errors.Is(err, hash.ErrPasswordTooLong) {
			return nil, validation(msgPasswordTooLong)
		}
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Token:        token.New(),
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil, conflict("Пользователь с таким именем или email уже существует")
		}
		return nil, err
	}

	publish(ctx, s.Events, events.UserRegistered, user.ID, map[string]any{"username": user.Username})
	return user, nil
}

// Login verifies the credentials and rotates the user's token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if blank(username) || blank(password) {
		return "", validation(msgInvalidCredentials)
	}

	user, err := s.Repo.UserByUsername(ctx, username)
	if err != nil {
		if isNotFound(err) {
			return "", validation(msgInvalidCredentials)
		}
		return "", err
	}
	if !hash.Matches(user.PasswordHash, password) {
		return "", validation(msgInvalidCredentials)
	}

	tok := token.New()
	if err := s.Repo.UpdateUser(ctx, user.ID, map[string]any{"token": tok}); err != nil {
		return "", err
	}

	publish(ctx, s.Events, events.UserLoggedIn, user.ID, nil)
	return tok, nil
}

// Authenticate resolves a bearer token to its user.
func (s *AuthService) Authenticate(ctx context.Context, tok string) (*models.User, error) {
	if tok == "" {
		return nil, newErr(ErrUnauthorized, "unauthorized")
	}
	user, err := s.Repo.UserByToken(ctx, tok)
	if err != nil {
		if isNotFound(err) {
			return nil, newErr(ErrUnauthorized, "unauthorized")
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword stores a new hash and issues a new token, ending every other session.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, newPassword string) (string, error) {
	if blank(newPassword) {
		return "", validation("Новый пароль не может быть пустым")
	}

	passwordHash, err := hash.Password(newPassword)
	if err != nil {
		if errors.Is(err, hash.ErrPasswordTooLong) {
			return "", validation(msgPasswordTooLong)
		}
		return "", err
	}

	tok := token.New()
	if err := s.Repo.UpdateUser(ctx, userID, map[string]any{
		"password_hash": passwordHash,
		"token":         tok,
	}); err != nil {
		return "", err
	}

	publish(ctx, s.Events, events.PasswordChanged, userID, nil)
	return tok, nil
}
