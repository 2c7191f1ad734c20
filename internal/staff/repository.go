package staff

import "gorm.io/gorm"

type Repository interface {
	Create(db *gorm.DB, s *Staff) error
	FindByEmail(db *gorm.DB, email string) (*Staff, error)
	FindByID(db *gorm.DB, id uint) (*Staff, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, s *Staff) error {
	return db.Create(s).Error
}

func (r *repositoryImpl) FindByEmail(db *gorm.DB, email string) (*Staff, error) {
	var s Staff
	if err := db.Where("email = ?", email).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Staff, error) {
	var s Staff
	if err := db.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
