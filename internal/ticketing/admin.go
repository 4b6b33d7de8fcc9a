package ticketing

import (
	"context"

	"github.com/craftiax/smartContract/internal/models"
	"github.com/craftiax/smartContract/internal/settlement"
)

func (s *Service) requireOwner(cfg models.PlatformConfig, caller string) error {
	if caller != cfg.OwnerAddress {
		return ErrNotOwner
	}
	return nil
}

// UpdateCommissionRate moves the platform rate. The new rate stays within
// [MinCommissionRate, MaxCommissionRate] and may not move more than
// MaxCommissionChange basis points in one update.
func (s *Service) UpdateCommissionRate(ctx context.Context, caller string, rate int64) error {
	return s.run(ctx, func(ctx context.Context) error {
		cfg, err := s.config(ctx)
		if err != nil {
			return err
		}
		if err := s.requireOwner(cfg, caller); err != nil {
			return err
		}
		if rate < MinCommissionRate || rate > MaxCommissionRate {
			return ErrCommissionRange
		}
		delta := rate - cfg.CommissionRate
		if delta < 0 {
			delta = -delta
		}
		if delta > MaxCommissionChange {
			return ErrCommissionDelta
		}

		old := cfg.CommissionRate
		cfg.CommissionRate = rate
		if err := s.dbSave(ctx, &cfg); err != nil {
			return err
		}
		if err := s.record(ctx, models.RecordCommissionUpdated, map[string]any{
			"old_rate_bps": old, "new_rate_bps": rate,
		}); err != nil {
			return err
		}
		s.log.Info().Int64("old_bps", old).Int64("new_bps", rate).Msg("commission rate updated")
		return nil
	})
}

// UpdateCommissionAddress rotates the commission payee; the new address
// must differ from the current one.
func (s *Service) UpdateCommissionAddress(ctx context.Context, caller, addr string) error {
	return s.run(ctx, func(ctx context.Context) error {
		cfg, err := s.config(ctx)
		if err != nil {
			return err
		}
		if err := s.requireOwner(cfg, caller); err != nil {
			return err
		}
		if settlement.IsZeroAddress(addr) {
			return ErrInvalidAddress
		}
		if addr == cfg.CommissionAddress {
			return ErrSameAddress
		}

		cfg.CommissionAddress = addr
		if err := s.dbSave(ctx, &cfg); err != nil {
			return err
		}
		return s.record(ctx, models.RecordCommissionAddressUpdated, map[string]any{
			"address": addr,
		})
	})
}

// Pause gates minting and burning globally. View and admin operations stay
// available.
func (s *Service) Pause(ctx context.Context, caller string) error {
	return s.setPaused(ctx, caller, true)
}

func (s *Service) Unpause(ctx context.Context, caller string) error {
	return s.setPaused(ctx, caller, false)
}

func (s *Service) setPaused(ctx context.Context, caller string, paused bool) error {
	return s.run(ctx, func(ctx context.Context) error {
		cfg, err := s.config(ctx)
		if err != nil {
			return err
		}
		if err := s.requireOwner(cfg, caller); err != nil {
			return err
		}
		if cfg.Paused == paused {
			if paused {
				return ErrPaused
			}
			return ErrNotPaused
		}
		cfg.Paused = paused
		if err := s.dbSave(ctx, &cfg); err != nil {
			return err
		}
		s.log.Info().Bool("paused", paused).Msg("pause state changed")
		return nil
	})
}

// WithdrawFees sweeps the full custodial balance in both currencies to the
// chosen recipient. Payouts settle synchronously, so nothing but platform
// residue is ever in custody between calls.
func (s *Service) WithdrawFees(ctx context.Context, caller, recipient string) error {
	return s.run(ctx, func(ctx context.Context) error {
		cfg, err := s.config(ctx)
		if err != nil {
			return err
		}
		if err := s.requireOwner(cfg, caller); err != nil {
			return err
		}
		if settlement.IsZeroAddress(recipient) {
			return ErrInvalidAddress
		}

		native, token, err := s.settle.Sweep(ctx, recipient)
		if err != nil {
			return err
		}
		if err := s.record(ctx, models.RecordFeesWithdrawn, map[string]any{
			"recipient": recipient,
			"native":    native.String(),
			"token":     token.String(),
		}); err != nil {
			return err
		}
		s.log.Info().
			Str("recipient", recipient).
			Str("native", native.String()).
			Str("token", token.String()).
			Msg("fees withdrawn")
		return nil
	})
}
