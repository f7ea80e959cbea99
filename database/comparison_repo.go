package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sitesmith/sitesmith-backend/models"
	"gorm.io/gorm"
)

type ComparisonRepo struct {
	db *gorm.DB
}

func NewComparisonRepo(db *gorm.DB) *ComparisonRepo {
	return &ComparisonRepo{db}
}

// Add inserts a new comparison record into the database
func (r *ComparisonRepo) Add(comparison *models.Comparison) error {
	return r.db.Create(comparison).Error
}

// FindByID returns a comparison by its ID, or nil when no such record exists.
func (r *ComparisonRepo) FindByID(id uuid.UUID) (*models.Comparison, error) {
	var comparison models.Comparison
	err := r.db.First(&comparison, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comparison, nil
}
