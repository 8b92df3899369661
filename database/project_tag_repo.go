package database

import (
	"context"

	"github.com/psharishgithub/open-space-platform-pro/models"
	"gorm.io/gorm"
)

type ProjectTagRepo struct {
	db *gorm.DB
}

func NewProjectTagRepo(db *gorm.DB) *ProjectTagRepo {
	return &ProjectTagRepo{db}
}

// Add inserts a new project tag into the database
func (r *ProjectTagRepo) Add(ctx context.Context, projectTag *models.ProjectTag) error {
	return r.db.WithContext(ctx).Create(projectTag).Error
}
