package database

import (
	"context"
	"sort"
	"time"

	"github.com/psharishgithub/open-space-platform-pro/models"
	"gorm.io/gorm"
)

type VoteRepo struct {
	db *gorm.DB
}

func NewVoteRepo(db *gorm.DB) *VoteRepo {
	return &VoteRepo{db}
}

// Add inserts a vote. The unique index on user_email rejects a second vote by the same email.
func (r *VoteRepo) Add(ctx context.Context, vote *models.Vote) error {
	return r.db.WithContext(ctx).Create(vote).Error
}

// FindByEmail returns the vote cast by email or gorm.ErrRecordNotFound
func (r *VoteRepo) FindByEmail(ctx context.Context, email string) (*models.Vote, error) {
	var vote models.Vote
	if err := r.db.WithContext(ctx).Where("user_email = ?", email).First(&vote).Error; err != nil {
		return nil, err
	}
	return &vote, nil
}

// CountByEmail returns how many votes exist for email (at most one).
func (r *VoteRepo) CountByEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Vote{}).Where("user_email = ?", email).Count(&count).Error
	return count, err
}

type projectCount struct {
	ProjectID string
	Votes     int64
}

// CountByProject computes live vote counts keyed by project id.
func (r *VoteRepo) CountByProject(ctx context.Context) (map[string]int64, error) {
	var rows []projectCount
	err := r.db.WithContext(ctx).Model(&models.Vote{}).
		Select("project_id, COUNT(*) AS votes").
		Group("project_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.ProjectID] = row.Votes
	}
	return counts, nil
}

// CountForProject computes the live vote count of one project.
func (r *VoteRepo) CountForProject(ctx context.Context, projectID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Vote{}).Where("project_id = ?", projectID).Count(&count).Error
	return count, err
}

// VoteEntry is a ballot as shown in the admin tally.
type VoteEntry struct {
	ID        string    `json:"id"`
	UserEmail string    `json:"userEmail"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProjectTally is a project with the votes it received.
type ProjectTally struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Votes []VoteEntry `json:"votes"`
}

// Tally returns every project with its votes (newest first), most voted project first.
func (r *VoteRepo) Tally(ctx context.Context) ([]ProjectTally, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Select("id", "name", "created_at").
		Preload("Votes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Order("created_at").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}

	tally := make([]ProjectTally, 0, len(projects))
	for _, p := range projects {
		entries := make([]VoteEntry, 0, len(p.Votes))
		for _, v := range p.Votes {
			entries = append(entries, VoteEntry{ID: v.ID, UserEmail: v.UserEmail, CreatedAt: v.CreatedAt})
		}
		tally = append(tally, ProjectTally{ID: p.ID, Name: p.Name, Votes: entries})
	}
	sort.SliceStable(tally, func(i, j int) bool {
		return len(tally[i].Votes) > len(tally[j].Votes)
	})
	return tally, nil
}
