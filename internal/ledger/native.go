package ledger

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/craftiax/smartContract/internal/models"
	"github.com/craftiax/smartContract/internal/storage"
)

// Native is the gorm-backed native-asset ledger.
type Native struct {
	db *gorm.DB
}

func NewNative(db *gorm.DB) *Native {
	return &Native{db: db}
}

func (n *Native) BalanceOf(ctx context.Context, addr string) (decimal.Decimal, error) {
	tx := storage.DB(ctx, n.db)

	var acct models.NativeAccount
	if err := tx.First(&acct, "address = ?", addr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return acct.Balance, nil
}

func (n *Native) Transfer(ctx context.Context, from, to string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	if amount.IsZero() {
		return nil
	}
	tx := storage.DB(ctx, n.db)

	var src models.NativeAccount
	if err := tx.First(&src, "address = ?", from).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInsufficientBalance
		}
		return err
	}
	if src.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}

	src.Balance = src.Balance.Sub(amount)
	if err := tx.Save(&src).Error; err != nil {
		return err
	}
	return creditNative(tx, to, amount)
}

// Credit mints native balance onto an address. Deposits arrive from
// outside the system boundary; this is that boundary.
func (n *Native) Credit(ctx context.Context, addr string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	return creditNative(storage.DB(ctx, n.db), addr, amount)
}

func creditNative(tx *gorm.DB, addr string, amount decimal.Decimal) error {
	var dst models.NativeAccount
	err := tx.First(&dst, "address = ?", addr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&models.NativeAccount{Address: addr, Balance: amount}).Error
	}
	if err != nil {
		return err
	}
	dst.Balance = dst.Balance.Add(amount)
	return tx.Save(&dst).Error
}
