package repo

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/nutshop/internal/models"
)

type OrderWithItems struct {
	Order models.Order
	Items []models.OrderItem
}

// Checkout turns the user's cart into an order in one transaction: the user
// row is locked, the total is priced from the current catalog, the balance is
// debited, the order and its lines are written and the cart is emptied.
func (r *GormRepo) Checkout(ctx context.Context, userID uint, comment *string) (*OrderWithItems, error) {
	var out OrderWithItems

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := r.forUpdate(tx).Where("id = ?", userID).First(&user).Error; err != nil {
			return err
		}

		lines, err := cartLines(tx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(lines))
		for _, l := range lines {
			total = total.Add(l.Product.Price.Mul(decimal.NewFromInt(int64(l.Item.Quantity))))
			items = append(items, models.OrderItem{
				ProductID:       l.Product.ID,
				Quantity:        l.Item.Quantity,
				PriceAtPurchase: l.Product.Price,
			})
		}

		if user.Balance.LessThan(total) {
			return ErrInsufficientFunds
		}

		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Update("balance", user.Balance.Sub(total)).Error; err != nil {
			return err
		}

		order := models.Order{
			UserID:     userID,
			CreatedAt:  time.Now().UTC(),
			TotalPrice: total,
			Comment:    comment,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		out = OrderWithItems{Order: order, Items: items}
		return nil
	}, r.txOptions()...)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// OrderHistory lists the user's orders newest first with their lines.
func (r *GormRepo) OrderHistory(ctx context.Context, userID uint) ([]OrderWithItems, error) {
	db := r.DB.WithContext(ctx)

	var orders []models.Order
	if err := db.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []OrderWithItems{}, nil
	}

	ids := make([]uint, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	var items []models.OrderItem
	if err := db.Where("order_id IN ?", ids).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	byOrder := make(map[uint][]models.OrderItem, len(orders))
	for _, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}

	out := make([]OrderWithItems, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderWithItems{Order: o, Items: byOrder[o.ID]})
	}
	return out, nil
}
