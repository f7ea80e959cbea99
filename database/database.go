package database

import (
	"gorm.io/gorm"
)

type Database struct {
	projectRepo     *ProjectRepo
	comparisonRepo  *ComparisonRepo
	statusCheckRepo *StatusCheckRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:     NewProjectRepo(db),
		comparisonRepo:  NewComparisonRepo(db),
		statusCheckRepo: NewStatusCheckRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ComparisonRepo() *ComparisonRepo {
	return d.comparisonRepo
}

func (d Database) StatusCheckRepo() *StatusCheckRepo {
	return d.statusCheckRepo
}
