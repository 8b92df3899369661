package database

import (
	"context"
	"errors"
	"time"

	"github.com/psharishgithub/open-space-platform-pro/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VotingStatusRepo struct {
	db *gorm.DB
}

func NewVotingStatusRepo(db *gorm.DB) *VotingStatusRepo {
	return &VotingStatusRepo{db}
}

// Get returns the voting window; a missing row reads as closed.
func (r *VotingStatusRepo) Get(ctx context.Context) (models.VotingStatus, error) {
	var status models.VotingStatus
	err := r.db.WithContext(ctx).First(&status, "id = ?", models.VotingStatusID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ClosedVotingStatus(), nil
	}
	if err != nil {
		return models.VotingStatus{}, err
	}
	return status, nil
}

// Save upserts the singleton row. Concurrent writers are last-write-wins.
func (r *VotingStatusRepo) Save(ctx context.Context, status *models.VotingStatus) error {
	status.ID = models.VotingStatusID
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_open", "start_time", "end_time", "updated_at"}),
		}).
		Create(status).Error
}

// CloseIfExpired closes an open window whose end time is at or before now.
func (r *VotingStatusRepo) CloseIfExpired(ctx context.Context, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.VotingStatus{}).
		Where("id = ? AND is_open = ? AND end_time IS NOT NULL AND end_time <= ?", models.VotingStatusID, true, now).
		Updates(map[string]any{"is_open": false})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
