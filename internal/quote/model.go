package quote

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Quote status values.
const (
	StatusDraft    = "draft"
	StatusSent     = "sent"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
	StatusRevised  = "revised"
	StatusFinal    = "final"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusSent, StatusAccepted, StatusRejected, StatusRevised, StatusFinal:
		return true
	}
	return false
}

// Item is one line of a quote. Stored wholesale as JSONB; updates replace the
// whole list rather than merging.
type Item struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// ItemsJSON renders an item list as the items column stores it. Map-based
// partial updates bypass the field serializer, so the value must arrive
// pre-serialized.
func ItemsJSON(items []Item) string {
	b, _ := json.Marshal(items)
	return string(b)
}

// Quote is one proposed price/terms document under a negotiation.
type Quote struct {
	ID        uint      `gorm:"primaryKey" json:"quoteId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	NegotiationID uint `gorm:"not null;index" json:"negotiationId"`

	Amount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"amount"`
	Status string          `gorm:"size:50;not null;default:'draft';index" json:"status"`

	Description    string          `json:"description"`
	ValidUntil     *time.Time      `json:"validUntil,omitempty"`
	Items          []Item          `gorm:"type:jsonb;serializer:json" json:"items"`
	Tax            decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"tax"`
	Discount       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`
	DiscountReason string          `json:"discountReason"`
	Terms          string          `json:"terms"`
	Notes          string          `json:"notes"`
	CreatedBy      string          `gorm:"size:100" json:"createdBy"`
	UpdatedBy      string          `gorm:"size:100" json:"updatedBy"`
	IsFinal        bool            `gorm:"default:false" json:"isFinal"`
}

// Migrate creates the table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Quote{})
}
