package database

import (
	"context"

	"github.com/psharishgithub/open-space-platform-pro/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns all projects with their team members
func (r *ProjectRepo) FindAll(ctx context.Context) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).
		Preload("Users.User").
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID with every owned association loaded
func (r *ProjectRepo) FindByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Users.User").
		Preload("PendingUsers").
		Preload("Resources").
		Preload("Images").
		Preload("Tags.Curator").
		First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Exists reports whether a project with the given ID exists
func (r *ProjectRepo) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Add inserts the project row only; children are written by their own repos
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
}

// AddResources inserts resources for a project
func (r *ProjectRepo) AddResources(ctx context.Context, projectID string, resources []models.Resource) error {
	if len(resources) == 0 {
		return nil
	}
	for i := range resources {
		resources[i].ProjectID = projectID
	}
	return r.db.WithContext(ctx).Create(&resources).Error
}

// AddImage inserts an uploaded project image
func (r *ProjectRepo) AddImage(ctx context.Context, image *models.ProjectImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}
