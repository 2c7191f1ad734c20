package negotiation

import (
	"time"

	"gorm.io/gorm"
)

// Filter narrows List results. Zero-valued fields are ignored.
type Filter struct {
	Status     string
	CustomerID uint
	SingerID   uint
}

type Repository interface {
	Create(db *gorm.DB, n *Negotiation) error
	FindByID(db *gorm.DB, id uint) (*Negotiation, error)
	FindByIDWithDetail(db *gorm.DB, id uint) (*Negotiation, error)
	List(db *gorm.DB, f Filter) ([]Negotiation, error)
	ListDeadlineWithin(db *gorm.DB, from, to time.Time) ([]Negotiation, error)
	Update(db *gorm.DB, id uint, fields map[string]interface{}) error
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, n *Negotiation) error {
	return db.Create(n).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Negotiation, error) {
	var n Negotiation
	if err := db.First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// FindByIDWithDetail loads the negotiation with its quotes (newest created
// first) and logs (newest first).
func (r *repositoryImpl) FindByIDWithDetail(db *gorm.DB, id uint) (*Negotiation, error) {
	var n Negotiation
	err := db.
		Preload("Quotes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Logs", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC").Order("created_at DESC")
		}).
		First(&n, id).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *repositoryImpl) List(db *gorm.DB, f Filter) ([]Negotiation, error) {
	q := db.Model(&Negotiation{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.CustomerID != 0 {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.SingerID != 0 {
		q = q.Where("singer_id = ?", f.SingerID)
	}
	var list []Negotiation
	err := q.Order("id").Find(&list).Error
	return list, err
}

// ListDeadlineWithin returns unfinished negotiations whose deadline falls in
// [from, to]. Used by the deadline sweep.
func (r *repositoryImpl) ListDeadlineWithin(db *gorm.DB, from, to time.Time) ([]Negotiation, error) {
	var list []Negotiation
	err := db.
		Where("deadline IS NOT NULL AND deadline BETWEEN ? AND ?", from, to).
		Where("status NOT IN ?", []string{StatusCompleted, StatusCancelled}).
		Find(&list).Error
	return list, err
}

// Update merges only the provided columns onto the stored negotiation.
func (r *repositoryImpl) Update(db *gorm.DB, id uint, fields map[string]interface{}) error {
	var existing Negotiation
	if err := db.First(&existing, id).Error; err != nil {
		return err
	}
	return db.Model(&existing).Updates(fields).Error
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	var existing Negotiation
	if err := db.First(&existing, id).Error; err != nil {
		return err
	}
	return db.Delete(&existing).Error
}
