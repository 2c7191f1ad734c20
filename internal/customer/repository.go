package customer

import "gorm.io/gorm"

type Repository interface {
	Create(db *gorm.DB, c *Customer) error
	FindByID(db *gorm.DB, id uint) (*Customer, error)
	ListAll(db *gorm.DB) ([]Customer, error)
	Update(db *gorm.DB, id uint, updated *Customer) error
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, c *Customer) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Customer, error) {
	var c Customer
	if err := db.Preload("Negotiations").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) ListAll(db *gorm.DB) ([]Customer, error) {
	var list []Customer
	err := db.Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Update(db *gorm.DB, id uint, updated *Customer) error {
	var existing Customer
	if err := db.First(&existing, id).Error; err != nil {
		return err
	}
	existing.Name = updated.Name
	existing.Email = updated.Email
	existing.Phone = updated.Phone
	existing.Company = updated.Company
	existing.Notes = updated.Notes
	return db.Save(&existing).Error
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	var existing Customer
	if err := db.First(&existing, id).Error; err != nil {
		return err
	}
	return db.Delete(&existing).Error
}
