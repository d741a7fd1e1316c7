package repo

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/nutshop/internal/models"
)

func (r *GormRepo) UserExists(ctx context.Context, username, email string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) UsernameTaken(ctx context.Context, username string, exceptID uint) (bool, error) {
	return r.taken(ctx, "username", username, exceptID)
}

func (r *GormRepo) EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	return r.taken(ctx, "email", email, exceptID)
}

func (r *GormRepo) taken(ctx context.Context, column, value string, exceptID uint) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).
		Where(column+" = ? AND id <> ?", value, exceptID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	err := r.DB.WithContext(ctx).Create(u).Error
	if isDuplicate(err) {
		return ErrAlreadyExists
	}
	return err
}

func (r *GormRepo) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) UserByToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("token = ?", token).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser writes the given columns of one user row.
func (r *GormRepo) UpdateUser(ctx context.Context, id uint, fields map[string]any) error {
	res := r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return ErrAlreadyExists
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// TopUp adds amount to the user's balance and returns the new balance.
func (r *GormRepo) TopUp(ctx context.Context, userID uint, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := r.forUpdate(tx).Where("id = ?", userID).First(&user).Error; err != nil {
			return err
		}
		balance = user.Balance.Add(amount)
		if balance.GreaterThanOrEqual(models.MaxMoney) {
			return ErrBalanceLimit
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).Update("balance", balance).Error
	}, r.txOptions()...)
	if err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}
