package quote

import "gorm.io/gorm"

type Repository interface {
	Create(db *gorm.DB, q *Quote) error
	FindByID(db *gorm.DB, id uint) (*Quote, error)
	ListByNegotiation(db *gorm.DB, negotiationID uint) ([]Quote, error)
	Update(db *gorm.DB, id uint, fields map[string]interface{}) error
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, q *Quote) error {
	return db.Create(q).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Quote, error) {
	var q Quote
	if err := db.First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// ListByNegotiation returns all quotes for a negotiation, newest created first.
func (r *repositoryImpl) ListByNegotiation(db *gorm.DB, negotiationID uint) ([]Quote, error) {
	var list []Quote
	err := db.
		Where("negotiation_id = ?", negotiationID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// Update merges only the provided columns onto the stored quote.
func (r *repositoryImpl) Update(db *gorm.DB, id uint, fields map[string]interface{}) error {
	var existing Quote
	if err := db.First(&existing, id).Error; err != nil {
		return err
	}
	return db.Model(&existing).Updates(fields).Error
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	var existing Quote
	if err := db.First(&existing, id).Error; err != nil {
		return err
	}
	return db.Delete(&existing).Error
}
