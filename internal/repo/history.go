package repo

import (
	"context"
	"time"

	"github.com/Skotchmaster/nutshop/internal/models"
)

func (r *GormRepo) AppendRequest(ctx context.Context, userID uint, endpoint string, at time.Time) error {
	return r.DB.WithContext(ctx).Create(&models.RequestHistory{
		UserID:    userID,
		Endpoint:  endpoint,
		Timestamp: at.UTC(),
	}).Error
}

func (r *GormRepo) RequestHistory(ctx context.Context, userID uint) ([]models.RequestHistory, error) {
	var entries []models.RequestHistory
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(`"timestamp" DESC, id DESC`).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *GormRepo) ClearRequestHistory(ctx context.Context, userID uint) (int64, error) {
	res := r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.RequestHistory{})
	return res.RowsAffected, res.Error
}
