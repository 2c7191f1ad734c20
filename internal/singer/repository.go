package singer

import "gorm.io/gorm"

type Repository interface {
	Create(db *gorm.DB, s *Singer) error
	FindByID(db *gorm.DB, id uint) (*Singer, error)
	ListAll(db *gorm.DB) ([]Singer, error)
	Update(db *gorm.DB, id uint, updated *Singer) error
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, s *Singer) error {
	return db.Create(s).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Singer, error) {
	var s Singer
	if err := db.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repositoryImpl) ListAll(db *gorm.DB) ([]Singer, error) {
	var list []Singer
	err := db.Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Update(db *gorm.DB, id uint, updated *Singer) error {
	var existing Singer
	if err := db.First(&existing, id).Error; err != nil {
		return err
	}
	existing.Name = updated.Name
	existing.StageName = updated.StageName
	existing.Genre = updated.Genre
	existing.Email = updated.Email
	existing.Phone = updated.Phone
	existing.BaseFee = updated.BaseFee
	existing.Bio = updated.Bio
	existing.IsActive = updated.IsActive
	return db.Save(&existing).Error
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	var existing Singer
	if err := db.First(&existing, id).Error; err != nil {
		return err
	}
	return db.Delete(&existing).Error
}
