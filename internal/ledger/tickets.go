package ledger

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/craftiax/smartContract/internal/models"
	"github.com/craftiax/smartContract/internal/storage"
)

// Tickets is the gorm-backed token-identity ledger. Ownership is a unit
// balance per (identifier, address); transferability lives with whichever
// collaborator fronts this table, not with the engine.
type Tickets struct {
	db *gorm.DB
}

func NewTickets(db *gorm.DB) *Tickets {
	return &Tickets{db: db}
}

func (l *Tickets) BalanceOf(ctx context.Context, tokenID, owner string) (uint, error) {
	tx := storage.DB(ctx, l.db)

	var bal models.TicketBalance
	err := tx.First(&bal, "token_id = ? AND address = ?", tokenID, owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return bal.Balance, nil
}

func (l *Tickets) Mint(ctx context.Context, tokenID, owner string) error {
	tx := storage.DB(ctx, l.db)

	var bal models.TicketBalance
	err := tx.First(&bal, "token_id = ? AND address = ?", tokenID, owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&models.TicketBalance{TokenID: tokenID, Address: owner, Balance: 1}).Error
	}
	if err != nil {
		return err
	}
	bal.Balance++
	return tx.Save(&bal).Error
}

func (l *Tickets) Burn(ctx context.Context, tokenID, owner string) error {
	tx := storage.DB(ctx, l.db)

	var bal models.TicketBalance
	err := tx.First(&bal, "token_id = ? AND address = ?", tokenID, owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInsufficientBalance
	}
	if err != nil {
		return err
	}
	if bal.Balance == 0 {
		return ErrInsufficientBalance
	}
	bal.Balance--
	return tx.Save(&bal).Error
}
