package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/craftiax/smartContract/internal/models"
	"github.com/craftiax/smartContract/internal/storage"
)

// StableToken is the gorm-backed stable-coin ledger. The token's decimals
// are read once from its metadata row when the ledger is constructed.
type StableToken struct {
	db       *gorm.DB
	decimals int32
}

func NewStableToken(db *gorm.DB) (*StableToken, error) {
	var meta models.TokenMetadata
	if err := db.First(&meta).Error; err != nil {
		return nil, fmt.Errorf("reading token metadata: %w", err)
	}
	return &StableToken{db: db, decimals: meta.Decimals}, nil
}

func (t *StableToken) Decimals() int32 {
	return t.decimals
}

func (t *StableToken) BalanceOf(ctx context.Context, addr string) (decimal.Decimal, error) {
	tx := storage.DB(ctx, t.db)

	var acct models.TokenAccount
	if err := tx.First(&acct, "address = ?", addr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return acct.Balance, nil
}

func (t *StableToken) Allowance(ctx context.Context, owner, spender string) (decimal.Decimal, error) {
	tx := storage.DB(ctx, t.db)

	var allowance models.TokenAllowance
	err := tx.First(&allowance, "owner = ? AND spender = ?", owner, spender).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return allowance.Amount, nil
}

// Approve sets (not adds to) the amount spender may pull from owner.
func (t *StableToken) Approve(ctx context.Context, owner, spender string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	tx := storage.DB(ctx, t.db)

	var allowance models.TokenAllowance
	err := tx.First(&allowance, "owner = ? AND spender = ?", owner, spender).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&models.TokenAllowance{Owner: owner, Spender: spender, Amount: amount}).Error
	}
	if err != nil {
		return err
	}
	allowance.Amount = amount
	return tx.Save(&allowance).Error
}

func (t *StableToken) Transfer(ctx context.Context, from, to string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	if amount.IsZero() {
		return nil
	}
	return t.move(storage.DB(ctx, t.db), from, to, amount)
}

// TransferFrom pulls amount from `from` into `to`, debiting the allowance
// `from` granted `spender`.
func (t *StableToken) TransferFrom(ctx context.Context, spender, from, to string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	if amount.IsZero() {
		return nil
	}
	tx := storage.DB(ctx, t.db)

	var allowance models.TokenAllowance
	err := tx.First(&allowance, "owner = ? AND spender = ?", from, spender).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && allowance.Amount.LessThan(amount)) {
		return ErrInsufficientAllowance
	}
	if err != nil {
		return err
	}

	if err := t.move(tx, from, to, amount); err != nil {
		return err
	}
	allowance.Amount = allowance.Amount.Sub(amount)
	return tx.Save(&allowance).Error
}

// Credit mints token balance onto an address (the system boundary for
// inbound stable-coin deposits).
func (t *StableToken) Credit(ctx context.Context, addr string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	return creditToken(storage.DB(ctx, t.db), addr, amount)
}

func (t *StableToken) move(tx *gorm.DB, from, to string, amount decimal.Decimal) error {
	var src models.TokenAccount
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
	return creditToken(tx, to, amount)
}

func creditToken(tx *gorm.DB, addr string, amount decimal.Decimal) error {
	var dst models.TokenAccount
	err := tx.First(&dst, "address = ?", addr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&models.TokenAccount{Address: addr, Balance: amount}).Error
	}
	if err != nil {
		return err
	}
	dst.Balance = dst.Balance.Add(amount)
	return tx.Save(&dst).Error
}
