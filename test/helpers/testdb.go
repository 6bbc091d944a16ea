package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"deployhub_backend/database"
	"deployhub_backend/internal/models"
	"deployhub_backend/internal/repositories"
)

// NewTestDB opens a fresh in-memory SQLite database with the full schema
// migrated. The pool is pinned to one connection so every query sees the
// same in-memory database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, database.AutoMigrate(db), "failed to migrate test database")

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// CreateUser inserts a user through the repository and fails the test on error.
func CreateUser(t *testing.T, db *gorm.DB, username string, plan models.Plan) *models.User {
	t.Helper()

	user := &models.User{Username: username, Plan: plan}
	repo := repositories.NewUserRepository(db)
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

// CreateApp inserts an app through the repository and fails the test on error.
func CreateApp(t *testing.T, db *gorm.DB, ownerID string, active bool) *models.DeployedApp {
	t.Helper()

	repo := repositories.NewAppRepository(db)
	app, err := repo.Create(context.Background(), ownerID, active)
	require.NoError(t, err)
	return app
}

// SetCreatedAt pins a record's creation time so ordering assertions are
// deterministic even when rows are inserted within the same clock tick.
func SetCreatedAt(t *testing.T, db *gorm.DB, record interface{}, at time.Time) {
	t.Helper()
	require.NoError(t, db.Model(record).Update("created_at", at).Error)
}
