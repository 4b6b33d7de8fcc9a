package ticketing

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/craftiax/smartContract/internal/models"
	"github.com/craftiax/smartContract/internal/settlement"
	"github.com/craftiax/smartContract/internal/storage"
)

type MintInput struct {
	EventKey  string
	TierKey   string
	Recipient string
	Payer     string
	// Attached is the native value the payer sent with the call; it must
	// match the price exactly on the ETH path and is ignored otherwise.
	Attached decimal.Decimal
}

// MintTicket sells one unit of a tier: validate, charge, settle, issue.
// Capacity and quota are checked before any value moves, and the whole
// call is one transaction, so a failed settlement leaves no incremented
// counter behind. Returns the tier's deterministic ticket identifier.
func (s *Service) MintTicket(ctx context.Context, in MintInput) (string, error) {
	tokenID := TicketTokenID(in.EventKey, in.TierKey)
	err := s.run(ctx, func(ctx context.Context) error {
		cfg, err := s.config(ctx)
		if err != nil {
			return err
		}
		if cfg.Paused {
			return ErrPaused
		}
		if settlement.IsZeroAddress(in.Recipient) {
			return ErrInvalidRecipient
		}

		event, err := s.loadEvent(ctx, in.EventKey)
		if err != nil {
			return err
		}
		if !event.IsActive {
			return ErrEventInactive
		}
		if event.Status != models.EventStatusPublished {
			return ErrEventNotOnSale
		}
		now := s.clock.Now()
		if now.Before(event.SaleStart) {
			return ErrSaleNotStarted
		}
		if now.After(event.SaleEnd) {
			return ErrSaleEnded
		}

		tier, err := s.loadTier(ctx, in.EventKey, in.TierKey)
		if err != nil {
			return err
		}
		if !tier.IsActive {
			return ErrTierInactive
		}
		if tier.SoldCount >= tier.MaxQuantity {
			return ErrSoldOut
		}
		minted, found, err := s.mintCount(ctx, in.EventKey, in.TierKey, in.Recipient)
		if err != nil {
			return err
		}
		if minted.Count >= tier.MaxTicketsPerUser {
			return ErrMintQuotaReached
		}

		// Free tiers skip payment and commission entirely.
		if !tier.Price.IsZero() {
			amount := tier.Price
			if event.Currency == models.CurrencyUSDC {
				amount = settlement.ScaleAmount(tier.Price, s.settle.Token().Decimals())
			}
			if err := s.settle.Collect(ctx, in.Payer, amount, event.Currency, in.Attached); err != nil {
				return err
			}
			if err := s.settle.Distribute(ctx, event.OrganizerAddress, amount, event.Currency, cfg.CommissionRate, cfg.CommissionAddress); err != nil {
				return err
			}
		}

		if err := s.tickets.Mint(ctx, tokenID, in.Recipient); err != nil {
			return err
		}
		tier.SoldCount++
		if err := s.dbSave(ctx, &tier); err != nil {
			return err
		}
		minted.Count++
		if err := s.saveMintCount(ctx, minted, found); err != nil {
			return err
		}

		if err := s.record(ctx, models.RecordTicketMinted, map[string]any{
			"event":     in.EventKey,
			"tier":      in.TierKey,
			"recipient": in.Recipient,
			"price":     tier.Price.String(),
		}); err != nil {
			return err
		}

		s.log.Info().
			Str("event", in.EventKey).
			Str("tier", in.TierKey).
			Str("recipient", in.Recipient).
			Str("token_id", tokenID).
			Msg("ticket minted")
		return nil
	})
	if err != nil {
		return "", err
	}
	return tokenID, nil
}

func (s *Service) mintCount(ctx context.Context, eventKey, tierKey, addr string) (mc models.MintCount, found bool, err error) {
	err = storage.DB(ctx, s.db).
		First(&mc, "event_key = ? AND tier_key = ? AND address = ?", eventKey, tierKey, addr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.MintCount{EventKey: eventKey, TierKey: tierKey, Address: addr}, false, nil
	}
	if err != nil {
		return models.MintCount{}, false, err
	}
	return mc, true, nil
}

// saveMintCount writes the counter row; composite keys are always set, so
// gorm's Save would never insert on its own.
func (s *Service) saveMintCount(ctx context.Context, mc models.MintCount, exists bool) error {
	tx := storage.DB(ctx, s.db)
	if !exists {
		return tx.Create(&mc).Error
	}
	return tx.Model(&models.MintCount{}).
		Where("event_key = ? AND tier_key = ? AND address = ?", mc.EventKey, mc.TierKey, mc.Address).
		Update("count", mc.Count).Error
}
