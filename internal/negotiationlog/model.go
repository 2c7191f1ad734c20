package negotiationlog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SystemUser is recorded as the actor when no user is supplied.
const SystemUser = "system"

// Entry type tags.
const (
	TypeStatusChange      = "status_change"
	TypeQuoteCreated      = "quote_created"
	TypeQuoteStatusChange = "quote_status_change"
	TypeDeadlineWarning   = "deadline_warning"
)

// NegotiationLog is an immutable audit entry for a negotiation. Entries are
// only ever appended; nothing in the API updates or deletes them.
type NegotiationLog struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	NegotiationID uint      `gorm:"not null;index" json:"negotiationId"`
	MatchID       *uint     `json:"matchId,omitempty"` // legacy cross-reference
	Date          time.Time `gorm:"not null;index" json:"date"`
	Type          string    `gorm:"size:50;not null" json:"type"`
	Content       string    `gorm:"type:text" json:"content"`
	User          string    `gorm:"size:100" json:"user"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (l *NegotiationLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Date.IsZero() {
		l.Date = time.Now()
	}
	if l.User == "" {
		l.User = SystemUser
	}
	return nil
}

// Migrate creates the table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&NegotiationLog{})
}
