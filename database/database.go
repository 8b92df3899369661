package database

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type Database struct {
	db               *gorm.DB
	userRepo         *UserRepo
	projectRepo      *ProjectRepo
	projectTagRepo   *ProjectTagRepo
	membershipRepo   *MembershipRepo
	voteRepo         *VoteRepo
	votingStatusRepo *VotingStatusRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:               db,
		userRepo:         NewUserRepo(db),
		projectRepo:      NewProjectRepo(db),
		projectTagRepo:   NewProjectTagRepo(db),
		membershipRepo:   NewMembershipRepo(db),
		voteRepo:         NewVoteRepo(db),
		votingStatusRepo: NewVotingStatusRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ProjectTagRepo() *ProjectTagRepo {
	return d.projectTagRepo
}

func (d Database) MembershipRepo() *MembershipRepo {
	return d.membershipRepo
}

func (d Database) VoteRepo() *VoteRepo {
	return d.voteRepo
}

func (d Database) VotingStatusRepo() *VotingStatusRepo {
	return d.votingStatusRepo
}

// GetDB returns the underlying database connection
func (d Database) GetDB() *gorm.DB {
	return d.db
}

// Transaction runs fn with repositories bound to a single transaction. The
// transaction commits only if fn returns nil.
func (d Database) Transaction(ctx context.Context, fn func(tx Database) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// Primary returns repositories that always read from the primary, for reads that
// must observe a write made moments earlier.
func (d Database) Primary() Database {
	return New(d.db.Clauses(dbresolver.Write).Session(&gorm.Session{}))
}

// Ping checks that the connection pool can reach the database.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
