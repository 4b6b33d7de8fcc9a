package ticketing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/craftiax/smartContract/internal/models"
	"github.com/craftiax/smartContract/internal/settlement"
)

func TestCreateEvent(t *testing.T) {
	env := newTestEnv(t)
	event := env.mustCreateEvent(t, defaultEventInput())

	if event.Status != models.EventStatusPublished {
		t.Errorf("status = %s, want PUBLISHED", event.Status)
	}
	if !event.IsActive {
		t.Error("event not active")
	}
	if event.IsRefundable {
		t.Error("event refundable by default")
	}
	if !event.SaleStart.Equal(baseTime) {
		t.Errorf("sale start = %s, want creation time %s", event.SaleStart, baseTime)
	}
	if event.OrganizerAddress != organizerAddr {
		t.Errorf("organizer = %s, want %s", event.OrganizerAddress, organizerAddr)
	}
	if n := env.auditCount(t, models.RecordEventCreated); n != 1 {
		t.Errorf("event_created records = %d, want 1", n)
	}
}

func TestCreateEventValidation(t *testing.T) {
	manyTiers := make([]TierInput, MaxTiersPerEvent+1)
	for i := range manyTiers {
		manyTiers[i] = TierInput{Key: string(rune('a' + i)), Price: dec("1"), MaxQuantity: 1, MaxTicketsPerUser: 1}
	}

	tests := []struct {
		name    string
		mutate  func(*CreateEventInput)
		wantErr error
	}{
		{"empty key", func(in *CreateEventInput) { in.Key = "" }, ErrEmptyKey},
		{"empty name", func(in *CreateEventInput) { in.Name = "" }, ErrEmptyKey},
		{"unknown currency", func(in *CreateEventInput) { in.Currency = "DOGE" }, settlement.ErrUnsupportedCurrency},
		{"sale end in past", func(in *CreateEventInput) { in.SaleEnd = baseTime.Add(-time.Hour) }, ErrSaleEndPast},
		{"end before start", func(in *CreateEventInput) { in.EndTime = in.StartTime.Add(-time.Hour) }, ErrInvalidTimeRange},
		{"no tiers", func(in *CreateEventInput) { in.Tiers = nil }, ErrTierCount},
		{"too many tiers", func(in *CreateEventInput) { in.Tiers = manyTiers }, ErrTierCount},
		{"empty tier key", func(in *CreateEventInput) { in.Tiers[0].Key = "" }, ErrEmptyKey},
		{"duplicate tier key", func(in *CreateEventInput) {
			in.Tiers = append(in.Tiers, in.Tiers[0])
		}, ErrDuplicateTier},
		{"negative price", func(in *CreateEventInput) { in.Tiers[0].Price = dec("-1") }, ErrPriceOutOfRange},
		{"price above ceiling", func(in *CreateEventInput) { in.Tiers[0].Price = dec("1000001") }, ErrPriceOutOfRange},
		{"zero supply", func(in *CreateEventInput) { in.Tiers[0].MaxQuantity = 0 }, ErrZeroSupply},
		{"zero user cap", func(in *CreateEventInput) { in.Tiers[0].MaxTicketsPerUser = 0 }, ErrUserCapRange},
		{"user cap above supply", func(in *CreateEventInput) {
			in.Tiers[0].MaxQuantity = 2
			in.Tiers[0].MaxTicketsPerUser = 3
		}, ErrUserCapRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			in := defaultEventInput()
			tt.mutate(&in)
			if _, err := env.svc.CreateEvent(context.Background(), organizerAddr, in); !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateEventRejectsZeroOrganizer(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.CreateEvent(context.Background(), "", defaultEventInput())
	if !errors.Is(err, ErrInvalidAddress) {
		t.Fatalf("err = %v, want ErrInvalidAddress", err)
	}
}

func TestCreateEventDuplicateKey(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateEvent(t, defaultEventInput())

	_, err := env.svc.CreateEvent(context.Background(), strangerAddr, defaultEventInput())
	if !errors.Is(err, ErrEventExists) {
		t.Fatalf("err = %v, want ErrEventExists", err)
	}

	// The first event is untouched by the rejected attempt.
	got, err := env.svc.GetEvent(context.Background(), defaultEventInput().Key)
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if got.OrganizerAddress != organizerAddr {
		t.Errorf("organizer = %s, want %s", got.OrganizerAddress, organizerAddr)
	}
}

func TestSetEventOrganizerUsername(t *testing.T) {
	env := newTestEnv(t)
	event := env.mustCreateEvent(t, defaultEventInput())
	ctx := context.Background()

	err := env.svc.SetEventOrganizerUsername(ctx, strangerAddr, event.Key, "mallory")
	if !errors.Is(err, ErrNotOrganizer) {
		t.Fatalf("stranger: err = %v, want ErrNotOrganizer", err)
	}

	if err := env.svc.SetEventOrganizerUsername(ctx, organizerAddr, event.Key, "dj-spring"); err != nil {
		t.Fatalf("SetEventOrganizerUsername: %v", err)
	}
	got, err := env.svc.GetEvent(ctx, event.Key)
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if got.OrganizerUsername != "dj-spring" {
		t.Errorf("username = %q, want dj-spring", got.OrganizerUsername)
	}
}

func TestUpdateTierPrice(t *testing.T) {
	env := newTestEnv(t)
	event := env.mustCreateEvent(t, defaultEventInput())
	ctx := context.Background()

	err := env.svc.UpdateTierPrice(ctx, strangerAddr, event.Key, "ga", dec("50"))
	if !errors.Is(err, ErrNotOrganizer) {
		t.Fatalf("stranger: err = %v, want ErrNotOrganizer", err)
	}

	if err := env.svc.UpdateTierPrice(ctx, organizerAddr, event.Key, "ga", dec("150")); err != nil {
		t.Fatalf("UpdateTierPrice: %v", err)
	}
	if got := env.tier(t, event.Key, "ga").Price; !got.Equal(dec("150")) {
		t.Errorf("price = %s, want 150", got)
	}

	// Creation-time bounds do not apply to updates.
	if err := env.svc.UpdateTierPrice(ctx, organizerAddr, event.Key, "ga", dec("2000000")); err != nil {
		t.Fatalf("UpdateTierPrice above creation ceiling: %v", err)
	}

	err = env.svc.UpdateTierPrice(ctx, organizerAddr, event.Key, "missing", decimal.Zero)
	if !errors.Is(err, ErrTierNotFound) {
		t.Fatalf("missing tier: err = %v, want ErrTierNotFound", err)
	}
}

func TestUpdateTierPriceInactiveEvent(t *testing.T) {
	env := newTestEnv(t)
	event := env.mustCreateEvent(t, defaultEventInput())
	ctx := context.Background()

	if err := env.svc.DeactivateEvent(ctx, organizerAddr, event.Key); err != nil {
		t.Fatalf("DeactivateEvent: %v", err)
	}
	err := env.svc.UpdateTierPrice(ctx, organizerAddr, event.Key, "ga", dec("50"))
	if !errors.Is(err, ErrEventInactive) {
		t.Fatalf("err = %v, want ErrEventInactive", err)
	}
}

func TestDeactivateEvent(t *testing.T) {
	env := newTestEnv(t)
	event := env.mustCreateEvent(t, defaultEventInput())
	ctx := context.Background()

	err := env.svc.DeactivateEvent(ctx, strangerAddr, event.Key)
	if !errors.Is(err, ErrNotOrganizer) {
		t.Fatalf("stranger: err = %v, want ErrNotOrganizer", err)
	}

	if err := env.svc.DeactivateEvent(ctx, organizerAddr, event.Key); err != nil {
		t.Fatalf("DeactivateEvent: %v", err)
	}
	got, err := env.svc.GetEvent(ctx, event.Key)
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if got.IsActive {
		t.Error("event still active")
	}

	err = env.svc.DeactivateEvent(ctx, organizerAddr, event.Key)
	if !errors.Is(err, ErrEventInactive) {
		t.Fatalf("second deactivation: err = %v, want ErrEventInactive", err)
	}
}

func TestDeactivateEventByOwner(t *testing.T) {
	env := newTestEnv(t)
	event := env.mustCreateEvent(t, defaultEventInput())

	if err := env.svc.DeactivateEvent(context.Background(), ownerAddr, event.Key); err != nil {
		t.Fatalf("owner deactivation: %v", err)
	}
	if n := env.auditCount(t, models.RecordEventDeactivated); n != 1 {
		t.Errorf("event_deactivated records = %d, want 1", n)
	}
}
