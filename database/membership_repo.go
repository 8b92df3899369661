package database

import (
	"context"

	"github.com/psharishgithub/open-space-platform-pro/models"
	"gorm.io/gorm"
)

type MembershipRepo struct {
	db *gorm.DB
}

func NewMembershipRepo(db *gorm.DB) *MembershipRepo {
	return &MembershipRepo{db}
}

// AddRefs writes each reference as a ProjectUser or PendingProjectUser row.
func (r *MembershipRepo) AddRefs(ctx context.Context, projectID string, refs []models.MemberRef) error {
	for _, ref := range refs {
		if err := r.db.WithContext(ctx).Create(ref.Row(projectID)).Error; err != nil {
			return err
		}
	}
	return nil
}

// PendingByUsername returns pending memberships for an exact, case-sensitive username match.
func (r *MembershipRepo) PendingByUsername(ctx context.Context, githubUsername string) ([]models.PendingProjectUser, error) {
	var pending []models.PendingProjectUser
	err := r.db.WithContext(ctx).
		Where("github_username = ?", githubUsername).
		Order("created_at").
		Find(&pending).Error
	return pending, err
}

// Resolve replaces a pending membership with a real membership of userID. When
// userID already belongs to the project the pending row folds into that
// membership, which keeps the stronger of the two roles.
func (r *MembershipRepo) Resolve(ctx context.Context, pending models.PendingProjectUser, userID string) error {
	var existing []models.ProjectUser
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", pending.ProjectID, userID).
		Limit(1).
		Find(&existing).Error
	if err != nil {
		return err
	}

	switch {
	case len(existing) == 0:
		member := pending.Resolve(userID)
		if err := r.db.WithContext(ctx).Create(&member).Error; err != nil {
			return err
		}
	case pending.Role == models.ProjectRoleOwner && existing[0].Role != models.ProjectRoleOwner:
		err := r.db.WithContext(ctx).Model(&models.ProjectUser{}).
			Where("id = ?", existing[0].ID).
			Update("role", models.ProjectRoleOwner).Error
		if err != nil {
			return err
		}
	}
	return r.db.WithContext(ctx).Delete(&models.PendingProjectUser{}, "id = ?", pending.ID).Error
}

// IsMember reports whether userID belongs to the project's team.
func (r *MembershipRepo) IsMember(ctx context.Context, projectID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProjectUser{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

// CountPending returns the number of pending memberships for githubUsername.
func (r *MembershipRepo) CountPending(ctx context.Context, githubUsername string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PendingProjectUser{}).
		Where("github_username = ?", githubUsername).
		Count(&count).Error
	return count, err
}
