package negotiation

import (
	"time"

	"github.com/encorebooking/api-agency/internal/negotiationlog"
	"github.com/encorebooking/api-agency/internal/quote"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Negotiation status values. The progression pending → in-progress →
// final-quote → completed is a convention, not an enforced table: any valid
// status may replace any other, and the audit log keeps the trail.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusFinalQuote = "final-quote"
	StatusCancelled  = "cancelled"
	StatusCompleted  = "completed"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusFinalQuote, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Negotiation is one negotiation session between a customer and a singer.
type Negotiation struct {
	ID        uint      `gorm:"primaryKey" json:"negotiationId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	CustomerID uint `gorm:"not null;index" json:"customerId"`
	SingerID   uint `gorm:"not null;index" json:"singerId"`

	Status string `gorm:"size:50;not null;default:'pending';index" json:"status"`

	Title         string `json:"title"`
	Description   string `json:"description"`
	EventLocation string `json:"eventLocation"`
	EventType     string `json:"eventType"`
	EventDuration string `json:"eventDuration"`
	Requirements  string `json:"requirements"`
	Notes         string `json:"notes"`
	AssignedTo    string `gorm:"size:100" json:"assignedTo"`

	InitialAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"initialAmount"`
	FinalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"finalAmount"`

	EventDate *time.Time `json:"eventDate,omitempty"`
	Deadline  *time.Time `json:"deadline,omitempty"`
	IsUrgent  bool       `gorm:"default:false" json:"isUrgent"`

	Quotes []quote.Quote                   `gorm:"foreignKey:NegotiationID" json:"quotes"`
	Logs   []negotiationlog.NegotiationLog `gorm:"foreignKey:NegotiationID" json:"logs"`
}

// Migrate creates the table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Negotiation{})
}
