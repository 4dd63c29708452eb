package repository

import (
	"github.com/habitfam/family-habits-api/internal/models"
	"gorm.io/gorm"
)

// GormFamilyRepository is a GORM implementation of FamilyRepository
type GormFamilyRepository struct {
	db *gorm.DB
}

// NewFamilyRepository creates a new FamilyRepository
func NewFamilyRepository(db *gorm.DB) FamilyRepository {
	return &GormFamilyRepository{db: db}
}

// Create creates a new family
func (r *GormFamilyRepository) Create(family *models.Family) error {
	return r.db.Create(family).Error
}

// FindByID finds a family by ID
func (r *GormFamilyRepository) FindByID(id uint64) (*models.Family, error) {
	var family models.Family
	if err := r.db.First(&family, id).Error; err != nil {
		return nil, err
	}
	return &family, nil
}

// Update saves changes to a family
func (r *GormFamilyRepository) Update(family *models.Family) error {
	return r.db.Save(family).Error
}

// DeleteWithMembers clears every member's family link and role, then deletes
// the family. Members themselves are kept.
func (r *GormFamilyRepository) DeleteWithMembers(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("family_id = ?", id).
			Updates(map[string]interface{}{"family_id": nil, "role": nil}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Family{}, id).Error
	})
}
