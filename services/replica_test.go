package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/psharishgithub/open-space-platform-pro/database"
	"github.com/psharishgithub/open-space-platform-pro/database/dbtest"
	"github.com/psharishgithub/open-space-platform-pro/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// laggingReplica registers a read replica that never receives the primary's
// writes and returns a handle for seeding it directly.
func laggingReplica(t *testing.T, db database.Database) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "replica.db") + "?_foreign_keys=on"
	replica, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open replica: %v", err)
	}
	sqlDB, err := replica.DB()
	if err != nil {
		t.Fatalf("replica sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := models.Migrate(replica); err != nil {
		t.Fatalf("migrate replica: %v", err)
	}

	err = db.GetDB().Use(dbresolver.Register(dbresolver.Config{
		Replicas: []gorm.Dialector{sqlite.Open(dsn)},
	}))
	if err != nil {
		t.Fatalf("register replica: %v", err)
	}
	return replica
}

func TestCreateProject_ReturnsProjectDespiteReplicaLag(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	creator := seedUser(t, db, "carol@example.com", "carol", models.RoleIndividual)
	replica := laggingReplica(t, db)
	if err := replica.Create(creator).Error; err != nil {
		t.Fatalf("seed replica user: %v", err)
	}

	detail, err := newProjectService(db, nil).Create(ctx, "carol@example.com", NewProject{Name: "Fresh"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if detail.Name != "Fresh" || len(detail.Users) != 1 {
		t.Fatalf("unexpected detail %+v", detail)
	}
}

func TestCast_ReadsWindowFromPrimary(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	project := seedProject(t, db, "P")
	laggingReplica(t, db)
	openVoting(t, db, nil)

	if _, err := NewVotingService(db, NewAuthorizer(db), nil).Cast(ctx, "v@example.com", project.ID); err != nil {
		t.Fatalf("vote against the primary's open window: %v", err)
	}
}
