package singer

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Singer is the performing party referenced by negotiations.
type Singer struct {
	ID        uint      `gorm:"primaryKey" json:"singerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name      string          `gorm:"size:100;not null" json:"name"`
	StageName string          `gorm:"size:100" json:"stageName"`
	Genre     string          `gorm:"size:50" json:"genre"`
	Email     string          `gorm:"size:100" json:"email"`
	Phone     string          `gorm:"size:30" json:"phone"`
	BaseFee   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"baseFee"`
	Bio       string          `json:"bio"`
	IsActive  bool            `gorm:"default:true" json:"isActive"`
}

// Migrate creates the table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Singer{})
}
