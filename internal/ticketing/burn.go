package ticketing

import (
	"context"

	"github.com/craftiax/smartContract/internal/models"
)

// BurnTicket destroys one ticket held by the caller and reverses the
// inventory counters. No refund moves; burn is an inventory and ownership
// correction, not a purchase reversal.
func (s *Service) BurnTicket(ctx context.Context, caller, eventKey, tierKey string) error {
	return s.run(ctx, func(ctx context.Context) error {
		cfg, err := s.config(ctx)
		if err != nil {
			return err
		}
		if cfg.Paused {
			return ErrPaused
		}

		if _, err := s.loadEvent(ctx, eventKey); err != nil {
			return err
		}
		tier, err := s.loadTier(ctx, eventKey, tierKey)
		if err != nil {
			return err
		}

		tokenID := TicketTokenID(eventKey, tierKey)
		held, err := s.tickets.BalanceOf(ctx, tokenID, caller)
		if err != nil {
			return err
		}
		if held == 0 {
			return ErrNothingToBurn
		}

		// The counters move down by exactly one each; an underflow means
		// the registry and the token ledger disagree and must not wrap.
		if tier.SoldCount == 0 {
			return ErrCounterUnderflow
		}
		minted, found, err := s.mintCount(ctx, eventKey, tierKey, caller)
		if err != nil {
			return err
		}
		if !found || minted.Count == 0 {
			return ErrCounterUnderflow
		}

		if err := s.tickets.Burn(ctx, tokenID, caller); err != nil {
			return err
		}
		tier.SoldCount--
		if err := s.dbSave(ctx, &tier); err != nil {
			return err
		}
		minted.Count--
		if err := s.saveMintCount(ctx, minted, true); err != nil {
			return err
		}

		if err := s.record(ctx, models.RecordTicketBurned, map[string]any{
			"event": eventKey,
			"tier":  tierKey,
			"owner": caller,
		}); err != nil {
			return err
		}

		s.log.Info().
			Str("event", eventKey).
			Str("tier", tierKey).
			Str("owner", caller).
			Msg("ticket burned")
		return nil
	})
}
