package staff

import (
	"time"

	"gorm.io/gorm"
)

// Staff is an agency account. Its name is the actor recorded on log entries.
type Staff struct {
	ID        uint      `gorm:"primaryKey" json:"staffId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
	IsAdmin  bool   `gorm:"default:false" json:"isAdmin"`
}

// Migrate creates the table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Staff{})
}
