package ticketing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/craftiax/smartContract/internal/models"
	"github.com/craftiax/smartContract/internal/settlement"
)

type TierInput struct {
	Key               string
	Price             decimal.Decimal
	MaxQuantity       uint
	MaxTicketsPerUser uint
}

type CreateEventInput struct {
	Key         string
	Name        string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	SaleEnd     time.Time
	Currency    models.Currency
	Tiers       []TierInput
}

// CreateEvent registers a new event under a caller-chosen key. The caller
// becomes the organizer, irrevocably; the sale opens immediately and the
// event is published and active from the start.
func (s *Service) CreateEvent(ctx context.Context, organizer string, in CreateEventInput) (models.Event, error) {
	var created models.Event
	err := s.run(ctx, func(ctx context.Context) error {
		if settlement.IsZeroAddress(organizer) {
			return ErrInvalidAddress
		}
		if in.Key == "" || in.Name == "" {
			return ErrEmptyKey
		}
		if in.Currency != models.CurrencyETH && in.Currency != models.CurrencyUSDC {
			return settlement.ErrUnsupportedCurrency
		}

		now := s.clock.Now()
		if !in.SaleEnd.After(now) {
			return ErrSaleEndPast
		}
		if !in.EndTime.After(in.StartTime) {
			return ErrInvalidTimeRange
		}

		if len(in.Tiers) < 1 || len(in.Tiers) > MaxTiersPerEvent {
			return ErrTierCount
		}
		seen := make(map[string]bool, len(in.Tiers))
		tiers := make([]models.Tier, 0, len(in.Tiers))
		for i, t := range in.Tiers {
			if t.Key == "" {
				return ErrEmptyKey
			}
			if seen[t.Key] {
				return ErrDuplicateTier
			}
			seen[t.Key] = true
			if t.Price.LessThan(MinTicketPrice) || t.Price.GreaterThan(MaxTicketPrice) {
				return ErrPriceOutOfRange
			}
			if t.MaxQuantity == 0 {
				return ErrZeroSupply
			}
			if t.MaxTicketsPerUser == 0 || t.MaxTicketsPerUser > t.MaxQuantity {
				return ErrUserCapRange
			}
			tiers = append(tiers, models.Tier{
				EventKey:          in.Key,
				Key:               t.Key,
				Position:          i,
				Price:             t.Price,
				MaxQuantity:       t.MaxQuantity,
				MaxTicketsPerUser: t.MaxTicketsPerUser,
				IsActive:          true,
			})
		}

		if _, err := s.loadEvent(ctx, in.Key); err == nil {
			return ErrEventExists
		} else if err != ErrEventNotFound {
			return err
		}

		event := models.Event{
			Key:              in.Key,
			Name:             in.Name,
			Description:      in.Description,
			StartTime:        in.StartTime,
			EndTime:          in.EndTime,
			SaleStart:        now,
			SaleEnd:          in.SaleEnd,
			OrganizerAddress: organizer,
			Status:           models.EventStatusPublished,
			Currency:         in.Currency,
			IsActive:         true,
			IsRefundable:     false,
			Tiers:            tiers,
		}
		if err := s.dbCreate(ctx, &event); err != nil {
			return err
		}

		if err := s.record(ctx, models.RecordEventCreated, map[string]any{
			"event":     event.Key,
			"organizer": organizer,
			"currency":  event.Currency,
			"tiers":     len(tiers),
		}); err != nil {
			return err
		}

		s.log.Info().Str("event", event.Key).Str("organizer", organizer).Msg("event created")
		created = event
		return nil
	})
	return created, err
}

// SetEventOrganizerUsername updates the organizer's display name. The
// organizer is re-checked against the registry on every call.
func (s *Service) SetEventOrganizerUsername(ctx context.Context, caller, eventKey, username string) error {
	return s.run(ctx, func(ctx context.Context) error {
		event, err := s.loadEvent(ctx, eventKey)
		if err != nil {
			return err
		}
		if event.OrganizerAddress != caller {
			return ErrNotOrganizer
		}
		event.OrganizerUsername = username
		return s.dbSave(ctx, &event)
	})
}

// UpdateTierPrice overwrites a tier's price. Both the event and the tier
// must still be active. Price bounds are not re-checked on update.
func (s *Service) UpdateTierPrice(ctx context.Context, caller, eventKey, tierKey string, price decimal.Decimal) error {
	return s.run(ctx, func(ctx context.Context) error {
		event, err := s.loadEvent(ctx, eventKey)
		if err != nil {
			return err
		}
		if event.OrganizerAddress != caller {
			return ErrNotOrganizer
		}
		if !event.IsActive {
			return ErrEventInactive
		}
		tier, err := s.loadTier(ctx, eventKey, tierKey)
		if err != nil {
			return err
		}
		if !tier.IsActive {
			return ErrTierInactive
		}
		tier.Price = price
		return s.dbSave(ctx, &tier)
	})
}

// DeactivateEvent flips an event inactive. Callable by the organizer or
// the contract owner; no exposed operation reverses it.
func (s *Service) DeactivateEvent(ctx context.Context, caller, eventKey string) error {
	return s.run(ctx, func(ctx context.Context) error {
		event, err := s.loadEvent(ctx, eventKey)
		if err != nil {
			return err
		}
		cfg, err := s.config(ctx)
		if err != nil {
			return err
		}
		if caller != event.OrganizerAddress && caller != cfg.OwnerAddress {
			return ErrNotOrganizer
		}
		if !event.IsActive {
			return ErrEventInactive
		}
		event.IsActive = false
		if err := s.dbSave(ctx, &event); err != nil {
			return err
		}
		if err := s.record(ctx, models.RecordEventDeactivated, map[string]any{
			"event": eventKey, "by": caller,
		}); err != nil {
			return err
		}
		s.log.Info().Str("event", eventKey).Str("by", caller).Msg("event deactivated")
		return nil
	})
}
