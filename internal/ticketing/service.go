// Package ticketing is the event/tier/ticket lifecycle and settlement
// engine. Every mutating entry point is serialized, guarded against
// re-entrant invocation, and executed inside one database transaction, so
// registry counters, ledger balances and audit records commit or roll back
// together.
package ticketing

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/craftiax/smartContract/internal/clock"
	"github.com/craftiax/smartContract/internal/ledger"
	"github.com/craftiax/smartContract/internal/models"
	"github.com/craftiax/smartContract/internal/reentry"
	"github.com/craftiax/smartContract/internal/settlement"
	"github.com/craftiax/smartContract/internal/storage"
)

type Service struct {
	db      *gorm.DB
	settle  *settlement.Engine
	tickets ledger.TicketLedger
	clock   clock.Clock
	log     zerolog.Logger

	mu sync.Mutex
}

func NewService(db *gorm.DB, settle *settlement.Engine, tickets ledger.TicketLedger, clk clock.Clock, log zerolog.Logger) *Service {
	return &Service{
		db:      db,
		settle:  settle,
		tickets: tickets,
		clock:   clk,
		log:     log,
	}
}

// run is the single mutation boundary: reject re-entry, serialize, open
// one transaction.
func (s *Service) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if reentry.InCall(ctx) {
		return ErrReentrantCall
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return storage.WithTx(reentry.Mark(ctx), s.db, fn)
}

func (s *Service) config(ctx context.Context) (models.PlatformConfig, error) {
	var cfg models.PlatformConfig
	if err := storage.DB(ctx, s.db).First(&cfg).Error; err != nil {
		return models.PlatformConfig{}, err
	}
	return cfg, nil
}

// record appends one emitted record inside the caller's transaction.
func (s *Service) record(ctx context.Context, kind string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return storage.DB(ctx, s.db).Create(&models.AuditRecord{Kind: kind, Payload: string(body)}).Error
}

func (s *Service) dbCreate(ctx context.Context, value any) error {
	return storage.DB(ctx, s.db).Create(value).Error
}

func (s *Service) dbSave(ctx context.Context, value any) error {
	return storage.DB(ctx, s.db).Save(value).Error
}

func (s *Service) loadEvent(ctx context.Context, key string) (models.Event, error) {
	var event models.Event
	err := storage.DB(ctx, s.db).First(&event, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Event{}, ErrEventNotFound
	}
	if err != nil {
		return models.Event{}, err
	}
	return event, nil
}

func (s *Service) loadTier(ctx context.Context, eventKey, tierKey string) (models.Tier, error) {
	var tier models.Tier
	err := storage.DB(ctx, s.db).First(&tier, "event_key = ? AND key = ?", eventKey, tierKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Tier{}, ErrTierNotFound
	}
	if err != nil {
		return models.Tier{}, err
	}
	return tier, nil
}

// GetEvent returns one event with its tiers in display order.
func (s *Service) GetEvent(ctx context.Context, key string) (models.Event, error) {
	var event models.Event
	err := storage.DB(ctx, s.db).
		Preload("Tiers", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&event, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Event{}, ErrEventNotFound
	}
	if err != nil {
		return models.Event{}, err
	}
	return event, nil
}

// ListEvents walks the discovery index in creation order.
func (s *Service) ListEvents(ctx context.Context, offset, limit int) ([]models.Event, int64, error) {
	tx := storage.DB(ctx, s.db)

	var total int64
	if err := tx.Model(&models.Event{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []models.Event
	err := tx.
		Preload("Tiers", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Order("created_at").Order("key").
		Offset(offset).Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// TicketBalance reports how many tickets of a tier an address holds on the
// token-identity ledger.
func (s *Service) TicketBalance(ctx context.Context, eventKey, tierKey, owner string) (uint, error) {
	return s.tickets.BalanceOf(ctx, TicketTokenID(eventKey, tierKey), owner)
}
