package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deployhub_backend/internal/models"
	"deployhub_backend/internal/repositories"
	"deployhub_backend/test/helpers"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "alice"}
	require.NoError(t, repo.Create(ctx, user))

	assert.Regexp(t, `^u_[A-Za-z0-9]{16}$`, user.ID)
	assert.Equal(t, models.PlanHobby, user.Plan, "plan defaults to HOBBY")
	assert.False(t, user.CreatedAt.IsZero())

	found, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewUserRepository(db)

	_, err := repo.GetByID(context.Background(), "u_doesnotexist1234")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewUserRepository(db)
	ctx := context.Background()

	first := &models.User{Username: "bob"}
	require.NoError(t, repo.Create(ctx, first))

	second := &models.User{Username: "bob"}
	err := repo.Create(ctx, second)
	assert.ErrorIs(t, err, repositories.ErrUsernameTaken)

	// the first record is untouched
	found, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", found.Username)
}

func TestUserRepository_List_NewestFirst(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewUserRepository(db)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	older := helpers.CreateUser(t, db, "older", models.PlanHobby)
	newer := helpers.CreateUser(t, db, "newer", models.PlanHobby)
	helpers.SetCreatedAt(t, db, older, base)
	helpers.SetCreatedAt(t, db, newer, base.Add(time.Hour))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "newer", users[0].Username)
	assert.Equal(t, "older", users[1].Username)
}

func TestUserRepository_GetByIDs(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewUserRepository(db)

	u1 := helpers.CreateUser(t, db, "ids_one", models.PlanHobby)
	u2 := helpers.CreateUser(t, db, "ids_two", models.PlanPro)

	users, err := repo.GetByIDs(context.Background(), []string{u1.ID, u2.ID, "u_missing123456789"})
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserRepository_UpdatePlan(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewUserRepository(db)
	ctx := context.Background()

	user := helpers.CreateUser(t, db, "upgrader", models.PlanHobby)

	updated, err := repo.UpdatePlan(ctx, user.ID, models.PlanPro)
	require.NoError(t, err)
	assert.Equal(t, models.PlanPro, updated.Plan)

	found, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PlanPro, found.Plan)
}

func TestUserRepository_UpdatePlan_NotFound(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewUserRepository(db)

	_, err := repo.UpdatePlan(context.Background(), "u_doesnotexist1234", models.PlanPro)
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}

func TestUserRepository_Delete_CascadesToApps(t *testing.T) {
	db := helpers.NewTestDB(t)
	userRepo := repositories.NewUserRepository(db)
	appRepo := repositories.NewAppRepository(db)
	ctx := context.Background()

	victim := helpers.CreateUser(t, db, "victim", models.PlanHobby)
	bystander := helpers.CreateUser(t, db, "bystander", models.PlanHobby)
	helpers.CreateApp(t, db, victim.ID, true)
	helpers.CreateApp(t, db, victim.ID, false)
	kept := helpers.CreateApp(t, db, bystander.ID, true)

	require.NoError(t, userRepo.Delete(ctx, victim.ID))

	_, err := userRepo.GetByID(ctx, victim.ID)
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)

	orphans, err := appRepo.ListByOwner(ctx, victim.ID)
	require.NoError(t, err)
	assert.Empty(t, orphans, "victim's apps must be gone")

	// the other user's app survives
	_, err = appRepo.GetByID(ctx, kept.ID)
	assert.NoError(t, err)
}

func TestUserRepository_Delete_NotFound(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewUserRepository(db)

	err := repo.Delete(context.Background(), "u_doesnotexist1234")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}
