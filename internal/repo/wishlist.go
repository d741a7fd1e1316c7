package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/nutshop/internal/models"
)

func (r *GormRepo) AddToWishlist(ctx context.Context, userID, productID uint) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").Where("id = ?", productID).First(&models.Product{}).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.WishlistItem{}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyExists
		}

		return tx.Create(&models.WishlistItem{UserID: userID, ProductID: productID}).Error
	}, r.txOptions()...)
	if isDuplicate(err) {
		return ErrAlreadyExists
	}
	return err
}

func (r *GormRepo) RemoveFromWishlist(ctx context.Context, userID, productID uint) error {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Wishlist returns the wished products in insertion order, skipping deleted ones.
func (r *GormRepo) Wishlist(ctx context.Context, userID uint) ([]models.Product, error) {
	var items []models.WishlistItem
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	found, err := r.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	products := make([]models.Product, 0, len(items))
	for _, it := range items {
		if p, ok := byID[it.ProductID]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}
