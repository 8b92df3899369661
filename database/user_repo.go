package database

import (
	"context"

	"github.com/psharishgithub/open-space-platform-pro/models"
	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// FindByEmail returns the user with the given email or gorm.ErrRecordNotFound
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmailWithProjects also loads the user's memberships and their projects
func (r *UserRepo) FindByEmailWithProjects(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Projects.Project").
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByGithubUsernames returns the users whose githubUsername is in names
func (r *UserRepo) FindByGithubUsernames(ctx context.Context, names []string) ([]models.User, error) {
	var users []models.User
	if len(names) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).Where("github_username IN ?", names).Find(&users).Error
	return users, err
}

// Add inserts a new user
func (r *UserRepo) Add(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// UpdateProfile sets name and bio of the user with the given email
func (r *UserRepo) UpdateProfile(ctx context.Context, email, name, bio string) error {
	return r.updateByEmail(ctx, email, map[string]any{"name": name, "bio": bio})
}

// UpdateRole sets the role of the user with the given email
func (r *UserRepo) UpdateRole(ctx context.Context, email string, role models.UserRole) error {
	return r.updateByEmail(ctx, email, map[string]any{"role": role})
}

// LinkGithub stores the GitHub identity on the user with the given email
func (r *UserRepo) LinkGithub(ctx context.Context, email string, identity models.GithubIdentity) error {
	return r.updateByEmail(ctx, email, map[string]any{
		"github_username":     identity.Username,
		"github_profile_url":  identity.ProfileURL,
		"github_avatar_url":   identity.AvatarURL,
		"github_access_token": identity.AccessToken,
	})
}

func (r *UserRepo) updateByEmail(ctx context.Context, email string, values map[string]any) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
