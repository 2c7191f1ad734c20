package negotiationlog

import "gorm.io/gorm"

type Repository interface {
	Append(db *gorm.DB, l *NegotiationLog) error
	ListByNegotiation(db *gorm.DB, negotiationID uint) ([]NegotiationLog, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Append(db *gorm.DB, l *NegotiationLog) error {
	return db.Create(l).Error
}

// ListByNegotiation returns all entries for a negotiation, newest first.
func (r *repositoryImpl) ListByNegotiation(db *gorm.DB, negotiationID uint) ([]NegotiationLog, error) {
	var list []NegotiationLog
	err := db.
		Where("negotiation_id = ?", negotiationID).
		Order("date DESC").
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}
