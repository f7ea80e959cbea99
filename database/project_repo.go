package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/sitesmith/sitesmith-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindPage returns one page of projects, newest first, optionally scoped to
// a user, along with the total count for the query.
func (r *ProjectRepo) FindPage(page, perPage int, userID *string) ([]*models.Project, int64, error) {
	query := r.db.Model(&models.Project{})
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []*models.Project
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&projects).Error
	return projects, total, err
}

// FindByID returns a project by its ID, or nil when no such project exists.
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// UpdateFields applies a partial update to a project, leaving every column
// not named in updates untouched.
func (r *ProjectRepo) UpdateFields(id uuid.UUID, updates map[string]any) error {
	return r.db.Model(&models.Project{}).Where("id = ?", id).Updates(updates).Error
}

// Delete removes a project by id and reports whether a row was deleted.
func (r *ProjectRepo) Delete(id uuid.UUID) (bool, error) {
	result := r.db.Delete(&models.Project{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

// FindRelated returns the projects whose prompt embeddings sit closest to the
// given vector, excluding the project the search started from.
func (r *ProjectRepo) FindRelated(embedding pgvector.Vector, excludeID uuid.UUID, limit int) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.
		Where("embedding IS NOT NULL AND id <> ?", excludeID).
		Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{embedding}},
		}).
		Limit(limit).
		Find(&projects).Error
	return projects, err
}
