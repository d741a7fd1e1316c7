package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/nutshop/internal/models"
	"github.com/Skotchmaster/nutshop/internal/service"
)

type fakeAuth struct {
	users map[string]*models.User
	err   error
	got   string
}

func (f *fakeAuth) Authenticate(_ context.Context, tok string) (*models.User, error) {
	f.got = tok
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.users[tok]; ok {
		return u, nil
	}
	return nil, &service.Error{Kind: service.ErrUnauthorized, Msg: "unauthorized"}
}

func serve(t *testing.T, a Authenticator, header string) (*httptest.ResponseRecorder, *models.User) {
	t.Helper()
	var seen *models.User

	e := echo.New()
	e.GET("/api/personal", func(c echo.Context) error {
		u, ok := User(c)
		require.True(t, ok)
		seen = u
		return c.NoContent(http.StatusOK)
	}, RequireUser(a))

	req := httptest.NewRequest(http.MethodGet, "/api/personal", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func TestRequireUser(t *testing.T) {
	alice := &models.User{ID: 7, Username: "alice"}
	a := &fakeAuth{users: map[string]*models.User{"abc": alice}}

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer abc", http.StatusOK},
		{"case insensitive scheme", "bearer   abc ", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"unknown token", "Bearer nope", http.StatusUnauthorized},
		{"wrong scheme", "Token abc", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, seen := serve(t, a, tt.header)
			require.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, alice, seen)
			} else {
				assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
			}
		})
	}
}

func TestRequireUser_StoreFailure(t *testing.T) {
	a := &fakeAuth{err: errors.New("db down")}
	rec, _ := serve(t, a, "Bearer abc")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}
