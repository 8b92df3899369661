package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VotingStatusID is the primary key of the single voting window row.
const VotingStatusID = "voting_status"

// Vote is a single ballot. The unique index on UserEmail allows one vote per email
// across all projects.
type Vote struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	ProjectID string    `json:"projectId" gorm:"type:varchar(36);not null;index"`
	UserEmail string    `json:"userEmail" gorm:"type:varchar(255);not null;uniqueIndex:idx_vote_user_email"`
	CreatedAt time.Time `json:"createdAt"`
}

func (v *Vote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// VotingStatus is the admin-controlled voting window.
type VotingStatus struct {
	ID        string     `json:"id" gorm:"type:varchar(36);primaryKey"`
	IsOpen    bool       `json:"isOpen" gorm:"not null"`
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// ClosedVotingStatus is the window reported when no row has been written yet.
func ClosedVotingStatus() VotingStatus {
	return VotingStatus{ID: VotingStatusID}
}

// Expired reports whether an open window has passed its end time.
func (s VotingStatus) Expired(now time.Time) bool {
	return s.IsOpen && s.EndTime != nil && !now.Before(*s.EndTime)
}
