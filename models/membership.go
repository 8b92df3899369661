package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectUser links a registered user to a project.
type ProjectUser struct {
	ID        string      `json:"id" gorm:"type:varchar(36);primaryKey"`
	ProjectID string      `json:"projectId" gorm:"type:varchar(36);not null;uniqueIndex:idx_project_user"`
	UserID    string      `json:"userId" gorm:"type:varchar(36);not null;uniqueIndex:idx_project_user;index"`
	Role      ProjectRole `json:"role" gorm:"type:varchar(20);not null"`
	CreatedAt time.Time   `json:"createdAt"`

	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;references:ID"`
}

func (m *ProjectUser) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// PendingProjectUser holds a team member referenced by a GitHub username that no
// registered user has linked yet.
type PendingProjectUser struct {
	ID             string      `json:"id" gorm:"type:varchar(36);primaryKey"`
	ProjectID      string      `json:"projectId" gorm:"type:varchar(36);not null;uniqueIndex:idx_pending_project_user"`
	GithubUsername string      `json:"githubUsername" gorm:"type:varchar(255);not null;uniqueIndex:idx_pending_project_user;index"`
	Role           ProjectRole `json:"role" gorm:"type:varchar(20);not null"`
	CreatedAt      time.Time   `json:"createdAt"`
}

func (m *PendingProjectUser) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Resolve converts the pending reference into a membership of userID, keeping project and role.
func (m PendingProjectUser) Resolve(userID string) ProjectUser {
	return ProjectUser{ProjectID: m.ProjectID, UserID: userID, Role: m.Role}
}

// MemberRef is a team member reference that is either resolved to a user id or
// pending on a GitHub username.
type MemberRef struct {
	Role           ProjectRole
	UserID         string
	GithubUsername string
}

func ResolvedMember(userID string, role ProjectRole) MemberRef {
	return MemberRef{Role: role, UserID: userID}
}

func PendingMember(githubUsername string, role ProjectRole) MemberRef {
	return MemberRef{Role: role, GithubUsername: githubUsername}
}

func (m MemberRef) IsPending() bool {
	return m.UserID == ""
}

// Row returns the database row backing the reference: a *ProjectUser when resolved,
// a *PendingProjectUser otherwise.
func (m MemberRef) Row(projectID string) any {
	if m.IsPending() {
		return &PendingProjectUser{ProjectID: projectID, GithubUsername: m.GithubUsername, Role: m.Role}
	}
	return &ProjectUser{ProjectID: projectID, UserID: m.UserID, Role: m.Role}
}
