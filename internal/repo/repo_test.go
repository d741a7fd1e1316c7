package repo_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/nutshop/internal/db/dbtest"
	"github.com/Skotchmaster/nutshop/internal/models"
	"github.com/Skotchmaster/nutshop/internal/repo"
	"github.com/Skotchmaster/nutshop/internal/token"
)

func newRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	return &repo.GormRepo{DB: dbtest.NewSeeded(t)}
}

func createUser(t *testing.T, r *repo.GormRepo, name string, balance int64) *models.User {
	t.Helper()
	u := &models.User{
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: "hash",
		Token:        token.New(),
		Balance:      decimal.NewFromInt(balance),
	}
	require.NoError(t, r.CreateUser(context.Background(), u))
	return u
}

func TestUsers_LookupsAndUniqueness(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	u := createUser(t, r, "alice", 0)

	byTok, err := r.UserByToken(ctx, u.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, byTok.ID)

	_, err = r.UserByToken(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	exists, err := r.UserExists(ctx, "other", "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	taken, err := r.UsernameTaken(ctx, "alice", u.ID)
	require.NoError(t, err)
	assert.False(t, taken, "own username is not taken")

	dup := &models.User{Username: "alice", Email: "x@example.com", PasswordHash: "h", Token: token.New()}
	assert.ErrorIs(t, r.CreateUser(ctx, dup), repo.ErrAlreadyExists)

	require.NoError(t, r.UpdateUser(ctx, u.ID, map[string]any{"email": "new@example.com"}))
	got, err := r.UserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", got.Email)
}

func TestTopUp(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	u := createUser(t, r, "bob", 10)

	bal, err := r.TopUp(ctx, u.ID, decimal.RequireFromString("5.50"))
	require.NoError(t, err)
	assert.True(t, bal.Equal(decimal.RequireFromString("15.5")))

	got, err := r.UserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(bal))
}

func TestCart_AddRemoveUpdate(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	u := createUser(t, r, "carol", 0)

	_, err := r.AddToCart(ctx, u.ID, 999, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	item, err := r.AddToCart(ctx, u.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	item, err = r.AddToCart(ctx, u.ID, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	deleted, item, err := r.RemoveFromCart(ctx, u.ID, 1, 1)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 4, item.Quantity)

	deleted, _, err = r.RemoveFromCart(ctx, u.ID, 1, 10)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, _, err = r.RemoveFromCart(ctx, u.ID, 1, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = r.AddToCart(ctx, u.ID, 2, 1)
	require.NoError(t, err)
	deleted, err = r.SetCartQuantity(ctx, u.ID, 2, 7)
	require.NoError(t, err)
	assert.False(t, deleted)

	lines, err := r.CartLines(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 7, lines[0].Item.Quantity)
	assert.Equal(t, "Миндаль", lines[0].Product.Name)

	deleted, err = r.SetCartQuantity(ctx, u.ID, 2, 0)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = r.SetCartQuantity(ctx, u.ID, 3, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAddToCart_ReplaysLostInsertRace(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	u := createUser(t, r, "lena", 0)

	// The first insert fails the way a concurrent first add does on postgres.
	inserts := 0
	require.NoError(t, r.DB.Callback().Create().Before("gorm:create").Register("cart:lost_race", func(d *gorm.DB) {
		if _, ok := d.Statement.Model.(*models.CartItem); !ok {
			return
		}
		inserts++
		if inserts == 1 {
			_ = d.AddError(gorm.ErrDuplicatedKey)
		}
	}))

	item, err := r.AddToCart(ctx, u.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 2, inserts)
}

func TestAddToCart_ConcurrentAddsAccumulate(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	u := createUser(t, r, "mila", 0)

	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.AddToCart(ctx, u.ID, 1, 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	lines, err := r.CartLines(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Item.Quantity)
}

func TestTopUp_BalanceLimit(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	u := createUser(t, r, "nina", 9_000_000_000_000_000)

	_, err := r.TopUp(ctx, u.ID, decimal.NewFromInt(1_000_000_000_000_000))
	assert.ErrorIs(t, err, repo.ErrBalanceLimit)

	got, err := r.UserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(9_000_000_000_000_000)), got.Balance.String())
}

func TestCountProducts(t *testing.T) {
	n, err := newRepo(t).CountProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestCartLines_SkipsMissingProducts(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	u := createUser(t, r, "dave", 0)

	require.NoError(t, r.DB.Create(&models.CartItem{UserID: u.ID, ProductID: 404, Quantity: 1}).Error)
	_, err := r.AddToCart(ctx, u.ID, 3, 1)
	require.NoError(t, err)

	lines, err := r.CartLines(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, uint(3), lines[0].Product.ID)
}

func TestWishlist(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	u := createUser(t, r, "erin", 0)

	require.NoError(t, r.AddToWishlist(ctx, u.ID, 2))
	assert.ErrorIs(t, r.AddToWishlist(ctx, u.ID, 2), repo.ErrAlreadyExists)
	assert.ErrorIs(t, r.AddToWishlist(ctx, u.ID, 999), gorm.ErrRecordNotFound)

	products, err := r.Wishlist(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Миндаль", products[0].Name)

	require.NoError(t, r.RemoveFromWishlist(ctx, u.ID, 2))
	assert.ErrorIs(t, r.RemoveFromWishlist(ctx, u.ID, 2), gorm.ErrRecordNotFound)
}

func TestCheckout_Success(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	u := createUser(t, r, "frank", 1000)

	_, err := r.AddToCart(ctx, u.ID, 1, 2) // 250 x 2
	require.NoError(t, err)
	_, err = r.AddToCart(ctx, u.ID, 3, 1) // 280
	require.NoError(t, err)

	comment := "ring twice"
	res, err := r.Checkout(ctx, u.ID, &comment)
	require.NoError(t, err)
	assert.True(t, res.Order.TotalPrice.Equal(decimal.NewFromInt(780)))
	require.Len(t, res.Items, 2)

	sum := decimal.Zero
	for _, it := range res.Items {
		sum = sum.Add(it.PriceAtPurchase.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	assert.True(t, sum.Equal(res.Order.TotalPrice))

	got, err := r.UserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(220)))

	lines, err := r.CartLines(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	// later price changes must not rewrite history
	require.NoError(t, r.DB.Model(&models.Product{}).Where("id = ?", 1).Update("price", decimal.NewFromInt(999)).Error)

	history, err := r.OrderHistory(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "ring twice", *history[0].Order.Comment)
	require.Len(t, history[0].Items, 2)
	assert.True(t, history[0].Items[0].PriceAtPurchase.Equal(decimal.NewFromInt(250)))
}

func TestCheckout_InsufficientFundsLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	u := createUser(t, r, "gina", 100)

	_, err := r.AddToCart(ctx, u.ID, 2, 1) // 320
	require.NoError(t, err)

	_, err = r.Checkout(ctx, u.ID, nil)
	assert.ErrorIs(t, err, repo.ErrInsufficientFunds)

	got, err := r.UserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(100)))

	lines, err := r.CartLines(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	history, err := r.OrderHistory(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestCheckout_EmptyCart(t *testing.T) {
	r := newRepo(t)
	u := createUser(t, r, "hank", 100)

	_, err := r.Checkout(context.Background(), u.ID, nil)
	assert.ErrorIs(t, err, repo.ErrEmptyCart)
}

func TestCheckout_ConcurrentCallsDoNotDoubleSpend(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	u := createUser(t, r, "ivan", 250)

	_, err := r.AddToCart(ctx, u.ID, 1, 1) // 250
	require.NoError(t, err)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ok  int
		bad []error
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Checkout(ctx, u.ID, nil)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
				return
			}
			if !errors.Is(err, repo.ErrEmptyCart) {
				bad = append(bad, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Empty(t, bad)

	got, err := r.UserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.IsZero())
}

func TestRequestHistory_ScopedPerUser(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	a := createUser(t, r, "jane", 0)
	b := createUser(t, r, "karl", 0)

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, r.AppendRequest(ctx, a.ID, "GET /cart", base))
	require.NoError(t, r.AppendRequest(ctx, a.ID, "POST /cart/add", base.Add(time.Second)))
	require.NoError(t, r.AppendRequest(ctx, b.ID, "GET /wishlist", base))

	entries, err := r.RequestHistory(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "POST /cart/add", entries[0].Endpoint)

	n, err := r.ClearRequestHistory(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	entries, err = r.RequestHistory(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = r.RequestHistory(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
