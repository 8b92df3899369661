package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlaceholderPrefix marks a githubUsername that was generated before the user linked GitHub.
const PlaceholderPrefix = "temp_"

// User is a registered account. GithubUsername always holds a unique value, either the
// linked GitHub login or a placeholder.
type User struct {
	ID                string     `json:"id" gorm:"type:varchar(36);primaryKey"`
	Email             string     `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	GoogleID          *string    `json:"googleId,omitempty" gorm:"type:varchar(255)"`
	Name              string     `json:"name" gorm:"type:varchar(255);not null;default:''"`
	Bio               string     `json:"bio" gorm:"type:text"`
	Role              UserRole   `json:"role" gorm:"type:varchar(20);not null;default:'INDIVIDUAL'"`
	GithubUsername    string     `json:"githubUsername" gorm:"type:varchar(255);not null;uniqueIndex"`
	GithubProfileURL  *string    `json:"githubProfileUrl,omitempty" gorm:"type:text"`
	GithubAvatarURL   *string    `json:"githubAvatarUrl,omitempty" gorm:"type:text"`
	GithubAccessToken *string    `json:"-" gorm:"type:text"`
	JoinDate          time.Time  `json:"joinDate" gorm:"autoCreateTime"`
	UpdatedAt         time.Time  `json:"updatedAt"`

	Projects []ProjectUser `json:"projects,omitempty" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleIndividual
	}
	return nil
}

// HasLinkedGithub reports whether the username is a real GitHub login.
func (u *User) HasLinkedGithub() bool {
	return u.GithubUsername != "" && !strings.HasPrefix(u.GithubUsername, PlaceholderPrefix)
}

// PlaceholderUsername builds the temporary githubUsername for a user that has not linked GitHub.
func PlaceholderUsername(providerID string) string {
	if providerID == "" {
		providerID = uuid.NewString()
	}
	return PlaceholderPrefix + providerID
}

// GithubIdentity is the profile returned by GitHub after a successful OAuth exchange.
type GithubIdentity struct {
	Username    string
	ProfileURL  string
	AvatarURL   string
	AccessToken string
}
