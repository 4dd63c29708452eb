package repository

import (
	"github.com/habitfam/family-habits-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindBySubject finds a user by the identity provider's subject identifier
func (r *GormUserRepository) FindBySubject(subjectID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("subject_id = ?", subjectID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update saves changes to a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// ListByFamily lists all members of a family
func (r *GormUserRepository) ListByFamily(familyID uint64) ([]models.User, error) {
	var members []models.User
	if err := r.db.Where("family_id = ?", familyID).Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListChildrenByFamily lists the family members with the child role
func (r *GormUserRepository) ListChildrenByFamily(familyID uint64) ([]models.User, error) {
	var children []models.User
	if err := r.db.Where("family_id = ? AND role = ?", familyID, models.RoleChild).
		Find(&children).Error; err != nil {
		return nil, err
	}
	return children, nil
}
