package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectTag is an academic-recognition annotation authored by a curator.
type ProjectTag struct {
	ID          string     `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name        string     `json:"name" gorm:"type:varchar(255);not null"`
	Title       *string    `json:"title" gorm:"type:varchar(255)"`
	Status      TagStatus  `json:"status" gorm:"type:varchar(20);not null"`
	Conference  *string    `json:"conference" gorm:"type:varchar(255)"`
	Date        *time.Time `json:"date"`
	Competition *string    `json:"competition" gorm:"type:varchar(255)"`
	ProjectID   string     `json:"projectId" gorm:"type:varchar(36);not null;index:idx_project_tag_project_id"`
	CuratorID   string     `json:"curatorId" gorm:"type:varchar(36);not null;index"`
	CreatedAt   time.Time  `json:"createdAt"`

	Curator *User `json:"curator,omitempty" gorm:"foreignKey:CuratorID;references:ID"`
}

func (t *ProjectTag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
