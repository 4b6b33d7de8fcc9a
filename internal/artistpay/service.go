// Package artistpay is the companion one-shot payment splitter: it
// collects a single payment from a payer and splits it between an artist
// and the platform address, under per-currency payment limits.
package artistpay

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/craftiax/smartContract/internal/models"
	"github.com/craftiax/smartContract/internal/reentry"
	"github.com/craftiax/smartContract/internal/settlement"
	"github.com/craftiax/smartContract/internal/storage"
)

var (
	ErrNotOwner            = errors.New("caller is not the splitter owner")
	ErrReentrantCall       = errors.New("reentrant call rejected")
	ErrInvalidArtist       = errors.New("invalid artist address")
	ErrInvalidAddress      = errors.New("invalid address")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrBelowMinimum        = errors.New("amount below the minimum payment")
	ErrAboveMaximum        = errors.New("amount above the payment ceiling")
	ErrLimitsNotConfigured = errors.New("payment limits not configured for currency")
	ErrInvalidLimits       = errors.New("limits must satisfy 0 < min < max < verified max")
	ErrCommissionRange     = errors.New("commission rate out of range")
	ErrSameAddress         = errors.New("address must differ from current")
)

// MaxCommissionRate is the splitter's absolute ceiling: 20%. Unlike the
// ticketing system there is no per-update delta limit.
const (
	MaxCommissionRate     = 2000
	DefaultCommissionRate = 500
)

type Service struct {
	db     *gorm.DB
	settle *settlement.Engine
	log    zerolog.Logger

	mu sync.Mutex
}

func NewService(db *gorm.DB, settle *settlement.Engine, log zerolog.Logger) *Service {
	return &Service{db: db, settle: settle, log: log}
}

func (s *Service) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if reentry.InCall(ctx) {
		return ErrReentrantCall
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return storage.WithTx(reentry.Mark(ctx), s.db, fn)
}

func (s *Service) config(ctx context.Context) (models.ArtistConfig, error) {
	var cfg models.ArtistConfig
	if err := storage.DB(ctx, s.db).First(&cfg).Error; err != nil {
		return models.ArtistConfig{}, err
	}
	return cfg, nil
}

func (s *Service) record(ctx context.Context, kind string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return storage.DB(ctx, s.db).Create(&models.AuditRecord{Kind: kind, Payload: string(body)}).Error
}

type PayInput struct {
	Artist   string
	Payer    string
	Amount   decimal.Decimal // display units
	Currency models.Currency
	Attached decimal.Decimal
}

// PayArtist collects one payment and splits it between the artist and the
// platform address at the splitter's rate. The amount must sit inside the
// per-currency limits; verified payers get the higher ceiling.
func (s *Service) PayArtist(ctx context.Context, in PayInput) error {
	return s.run(ctx, func(ctx context.Context) error {
		if settlement.IsZeroAddress(in.Artist) {
			return ErrInvalidArtist
		}
		if !in.Amount.IsPositive() {
			return ErrInvalidAmount
		}

		limit, err := s.limits(ctx, in.Currency)
		if err != nil {
			return err
		}
		ceiling := limit.MaxAmount
		verified, err := s.isVerified(ctx, in.Payer)
		if err != nil {
			return err
		}
		if verified {
			ceiling = limit.VerifiedMaxAmount
		}
		if in.Amount.LessThan(limit.MinAmount) {
			return ErrBelowMinimum
		}
		if in.Amount.GreaterThan(ceiling) {
			return ErrAboveMaximum
		}

		cfg, err := s.config(ctx)
		if err != nil {
			return err
		}

		amount := in.Amount
		if in.Currency == models.CurrencyUSDC {
			amount = settlement.ScaleAmount(in.Amount, s.settle.Token().Decimals())
		}
		if err := s.settle.Collect(ctx, in.Payer, amount, in.Currency, in.Attached); err != nil {
			return err
		}
		if err := s.settle.Distribute(ctx, in.Artist, amount, in.Currency, cfg.CommissionRate, cfg.PlatformAddress); err != nil {
			return err
		}

		if err := s.record(ctx, models.RecordArtistPaid, map[string]any{
			"artist":   in.Artist,
			"payer":    in.Payer,
			"amount":   in.Amount.String(),
			"currency": in.Currency,
		}); err != nil {
			return err
		}
		s.log.Info().
			Str("artist", in.Artist).
			Str("payer", in.Payer).
			Str("amount", in.Amount.String()).
			Str("currency", string(in.Currency)).
			Msg("artist paid")
		return nil
	})
}

// UpdateCommissionRate sets the splitter rate, capped at 20%.
func (s *Service) UpdateCommissionRate(ctx context.Context, caller string, rate int64) error {
	return s.run(ctx, func(ctx context.Context) error {
		cfg, err := s.config(ctx)
		if err != nil {
			return err
		}
		if caller != cfg.OwnerAddress {
			return ErrNotOwner
		}
		if rate <= 0 || rate > MaxCommissionRate {
			return ErrCommissionRange
		}

		old := cfg.CommissionRate
		cfg.CommissionRate = rate
		if err := storage.DB(ctx, s.db).Save(&cfg).Error; err != nil {
			return err
		}
		if err := s.record(ctx, models.RecordCommissionUpdated, map[string]any{
			"scope": "artist", "old_rate_bps": old, "new_rate_bps": rate,
		}); err != nil {
			return err
		}
		s.log.Info().Int64("old_bps", old).Int64("new_bps", rate).Msg("artist commission rate updated")
		return nil
	})
}

// UpdatePlatformAddress rotates the platform payee; it must differ from
// the current one.
func (s *Service) UpdatePlatformAddress(ctx context.Context, caller, addr string) error {
	return s.run(ctx, func(ctx context.Context) error {
		cfg, err := s.config(ctx)
		if err != nil {
			return err
		}
		if caller != cfg.OwnerAddress {
			return ErrNotOwner
		}
		if settlement.IsZeroAddress(addr) {
			return ErrInvalidAddress
		}
		if addr == cfg.PlatformAddress {
			return ErrSameAddress
		}

		cfg.PlatformAddress = addr
		if err := storage.DB(ctx, s.db).Save(&cfg).Error; err != nil {
			return err
		}
		return s.record(ctx, models.RecordPlatformAddressUpdated, map[string]any{
			"address": addr,
		})
	})
}

// SetPaymentLimits replaces the per-currency limit triple. Every update is
// re-validated: 0 < min < max < verified max.
func (s *Service) SetPaymentLimits(ctx context.Context, caller string, currency models.Currency, min, max, verifiedMax decimal.Decimal) error {
	return s.run(ctx, func(ctx context.Context) error {
		cfg, err := s.config(ctx)
		if err != nil {
			return err
		}
		if caller != cfg.OwnerAddress {
			return ErrNotOwner
		}
		if !min.IsPositive() || !max.GreaterThan(min) || !verifiedMax.GreaterThan(max) {
			return ErrInvalidLimits
		}

		tx := storage.DB(ctx, s.db)
		var limit models.PaymentLimit
		err = tx.First(&limit, "currency = ?", currency).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&models.PaymentLimit{
				Currency:          currency,
				MinAmount:         min,
				MaxAmount:         max,
				VerifiedMaxAmount: verifiedMax,
			}).Error
		}
		if err != nil {
			return err
		}
		limit.MinAmount = min
		limit.MaxAmount = max
		limit.VerifiedMaxAmount = verifiedMax
		return tx.Save(&limit).Error
	})
}

// SetVerifiedPayer marks or unmarks an address as a verified counterparty.
func (s *Service) SetVerifiedPayer(ctx context.Context, caller, addr string, verified bool) error {
	return s.run(ctx, func(ctx context.Context) error {
		cfg, err := s.config(ctx)
		if err != nil {
			return err
		}
		if caller != cfg.OwnerAddress {
			return ErrNotOwner
		}
		if settlement.IsZeroAddress(addr) {
			return ErrInvalidAddress
		}

		tx := storage.DB(ctx, s.db)
		if verified {
			var existing models.VerifiedPayer
			err := tx.First(&existing, "address = ?", addr).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(&models.VerifiedPayer{Address: addr}).Error
			}
			return err
		}
		return tx.Where("address = ?", addr).Delete(&models.VerifiedPayer{}).Error
	})
}

func (s *Service) limits(ctx context.Context, currency models.Currency) (models.PaymentLimit, error) {
	var limit models.PaymentLimit
	err := storage.DB(ctx, s.db).First(&limit, "currency = ?", currency).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.PaymentLimit{}, ErrLimitsNotConfigured
	}
	if err != nil {
		return models.PaymentLimit{}, err
	}
	return limit, nil
}

func (s *Service) isVerified(ctx context.Context, addr string) (bool, error) {
	var vp models.VerifiedPayer
	err := storage.DB(ctx, s.db).First(&vp, "address = ?", addr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
