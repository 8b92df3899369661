package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project is a showcased student project together with its owned child rows.
type Project struct {
	ID               string                      `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name             string                      `json:"name" gorm:"type:varchar(255);not null"`
	Description      string                      `json:"description" gorm:"type:text"`
	GithubURL        *string                     `json:"githubUrl" gorm:"type:varchar(512);uniqueIndex"`
	DemoURL          *string                     `json:"demoUrl,omitempty" gorm:"type:text"`
	ImageURL         *string                     `json:"imageUrl,omitempty" gorm:"type:text"`
	TechStack        datatypes.JSONSlice[string] `json:"techStack"`
	ProblemStatement string                      `json:"problemStatement" gorm:"type:text"`
	Status           string                      `json:"status" gorm:"type:varchar(64)"`
	ProjectType      string                      `json:"projectType" gorm:"type:varchar(64)"`
	KeyFeatures      datatypes.JSONSlice[string] `json:"keyFeatures"`
	CreatedAt        time.Time                   `json:"createdAt"`
	UpdatedAt        time.Time                   `json:"updatedAt"`

	Users        []ProjectUser        `json:"users,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	PendingUsers []PendingProjectUser `json:"pendingUsers,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Resources    []Resource           `json:"resources,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Images       []ProjectImage       `json:"projectImages,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Tags         []ProjectTag         `json:"tags,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Votes        []Vote               `json:"votes,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Language is the display language of a project: the first tech stack entry.
func (p *Project) Language() string {
	if len(p.TechStack) == 0 || p.TechStack[0] == "" {
		return "Unknown"
	}
	return p.TechStack[0]
}

// Resource is a link attached to a project. It cannot exist without its project.
type Resource struct {
	ID          string       `json:"id" gorm:"type:varchar(36);primaryKey"`
	ProjectID   string       `json:"projectId" gorm:"type:varchar(36);not null;index"`
	URL         string       `json:"url" gorm:"type:text;not null"`
	Title       string       `json:"title" gorm:"type:varchar(255);not null"`
	Type        ResourceType `json:"type" gorm:"type:varchar(20);not null;default:'other'"`
	Description string       `json:"description" gorm:"type:text"`
}

func (r *Resource) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// ProjectImage is an uploaded screenshot stored in the object store.
type ProjectImage struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	ProjectID string    `json:"projectId" gorm:"type:varchar(36);not null;index"`
	URL       string    `json:"url" gorm:"type:text;not null"`
	ObjectKey string    `json:"objectKey" gorm:"type:varchar(512);not null"`
	Caption   string    `json:"caption" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt"`
}

func (i *ProjectImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
