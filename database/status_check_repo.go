package database

import (
	"github.com/sitesmith/sitesmith-backend/models"
	"gorm.io/gorm"
)

type StatusCheckRepo struct {
	db *gorm.DB
}

func NewStatusCheckRepo(db *gorm.DB) *StatusCheckRepo {
	return &StatusCheckRepo{db}
}

// Add inserts a new status check into the database
func (r *StatusCheckRepo) Add(check *models.StatusCheck) error {
	return r.db.Create(check).Error
}

// FindRecent returns the most recent status checks, newest first.
func (r *StatusCheckRepo) FindRecent(limit int) ([]*models.StatusCheck, error) {
	var checks []*models.StatusCheck
	err := r.db.Order("timestamp DESC").Limit(limit).Find(&checks).Error
	return checks, err
}
