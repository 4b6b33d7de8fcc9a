package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Record kinds, one per emitted contract event.
const (
	RecordEventCreated             = "event_created"
	RecordEventDeactivated         = "event_deactivated"
	RecordTicketMinted             = "ticket_minted"
	RecordTicketBurned             = "ticket_burned"
	RecordCommissionUpdated        = "commission_updated"
	RecordCommissionAddressUpdated = "commission_address_updated"
	RecordPlatformAddressUpdated   = "platform_address_updated"
	RecordFeesWithdrawn            = "fees_withdrawn"
	RecordArtistPaid               = "artist_paid"
)

// AuditRecord is the append-only trail of emitted records, ordered by the
// auto-incremented sequence. Rows are written inside the same transaction
// as the mutation they describe.
type AuditRecord struct {
	Seq       uint      `gorm:"primaryKey;autoIncrement"`
	RecordID  uuid.UUID `gorm:"type:uuid;not null"`
	Kind      string    `gorm:"size:40;not null;index"`
	Payload   string    `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (r *AuditRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if r.RecordID == uuid.Nil {
		r.RecordID = uuid.New()
	}
	return
}
