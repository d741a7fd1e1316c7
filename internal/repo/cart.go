package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/nutshop/internal/models"
)

// CartLine is a cart item joined with its product.
type CartLine struct {
	Item    models.CartItem
	Product models.Product
}

// AddToCart increments the user's line for productID or creates it.
// A concurrent first add loses the insert race on the unique index; the
// transaction is then replayed once and takes the increment path.
func (r *GormRepo) AddToCart(ctx context.Context, userID, productID uint, quantity int) (*models.CartItem, error) {
	item, err := r.addToCart(ctx, userID, productID, quantity)
	if isDuplicate(err) {
		item, err = r.addToCart(ctx, userID, productID, quantity)
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *GormRepo) addToCart(ctx context.Context, userID, productID uint, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").Where("id = ?", productID).First(&models.Product{}).Error; err != nil {
			return err
		}

		res := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
		}

		item = models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
		return tx.Create(&item).Error
	}, r.txOptions()...)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveFromCart decrements a line by quantity and deletes it once it reaches zero.
func (r *GormRepo) RemoveFromCart(ctx context.Context, userID, productID uint, quantity int) (bool, *models.CartItem, error) {
	var item models.CartItem
	deleted := false

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.forUpdate(tx).Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error; err != nil {
			return err
		}

		if item.Quantity-quantity <= 0 {
			deleted = true
			return tx.Delete(&item).Error
		}

		item.Quantity -= quantity
		return tx.Model(&item).Update("quantity", item.Quantity).Error
	}, r.txOptions()...)
	if err != nil {
		return false, nil, err
	}
	return deleted, &item, nil
}

// SetCartQuantity sets an absolute quantity; zero deletes the line.
func (r *GormRepo) SetCartQuantity(ctx context.Context, userID, productID uint, quantity int) (bool, error) {
	deleted := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.CartItem
		if err := r.forUpdate(tx).Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error; err != nil {
			return err
		}

		if quantity == 0 {
			deleted = true
			return tx.Delete(&item).Error
		}
		return tx.Model(&item).Update("quantity", quantity).Error
	}, r.txOptions()...)
	return deleted, err
}

func (r *GormRepo) ClearCart(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

func (r *GormRepo) CartLines(ctx context.Context, userID uint) ([]CartLine, error) {
	return cartLines(r.DB.WithContext(ctx), userID)
}

// cartLines skips items whose product no longer resolves.
func cartLines(tx *gorm.DB, userID uint) ([]CartLine, error) {
	var items []models.CartItem
	if err := tx.Where("user_id = ?", userID).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	var products []models.Product
	if err := tx.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]CartLine, 0, len(items))
	for _, it := range items {
		p, ok := byID[it.ProductID]
		if !ok {
			continue
		}
		lines = append(lines, CartLine{Item: it, Product: p})
	}
	return lines, nil
}
