package repo

import (
	"database/sql"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrAlreadyExists     = errors.New("already exists")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrBalanceLimit      = errors.New("balance limit exceeded")
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) isPostgres() bool {
	return r.DB.Dialector.Name() == "postgres"
}

// txOptions makes multi-step writes serializable where the engine supports it.
// sqlite already serializes writers on its database lock.
func (r *GormRepo) txOptions() []*sql.TxOptions {
	if r.isPostgres() {
		return []*sql.TxOptions{{Isolation: sql.LevelSerializable}}
	}
	return nil
}

func (r *GormRepo) forUpdate(tx *gorm.DB) *gorm.DB {
	if r.isPostgres() {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// isDuplicate reports a unique constraint violation. The sqlite driver may
// return it untranslated.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}
