package customer

import (
	"time"

	"github.com/encorebooking/api-agency/internal/negotiation"
	"gorm.io/gorm"
)

// Customer is the hiring party. Negotiations reference it by id; the
// negotiation core never re-validates the reference.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"customerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Email   string `gorm:"size:100" json:"email"`
	Phone   string `gorm:"size:30" json:"phone"`
	Company string `gorm:"size:100" json:"company"`
	Notes   string `json:"notes"`

	Negotiations []negotiation.Negotiation `gorm:"foreignKey:CustomerID" json:"negotiations"`
}

// Migrate creates the table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Customer{})
}
