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

func TestAppRepository_Create(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewAppRepository(db)
	ctx := context.Background()

	owner := helpers.CreateUser(t, db, "app_owner", models.PlanHobby)

	app, err := repo.Create(ctx, owner.ID, true)
	require.NoError(t, err)
	assert.Regexp(t, `^app_[A-Za-z0-9]{16}$`, app.ID)
	assert.True(t, app.Active)
	assert.Equal(t, owner.ID, app.OwnerID)

	inactive, err := repo.Create(ctx, owner.ID, false)
	require.NoError(t, err)
	assert.False(t, inactive.Active)
}

func TestAppRepository_Create_OwnerMissing(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewAppRepository(db)

	_, err := repo.Create(context.Background(), "u_doesnotexist1234", true)
	assert.ErrorIs(t, err, repositories.ErrOwnerNotFound)
}

func TestAppRepository_GetByID_PreloadsOwner(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewAppRepository(db)
	ctx := context.Background()

	owner := helpers.CreateUser(t, db, "preload_owner", models.PlanPro)
	created := helpers.CreateApp(t, db, owner.ID, true)

	app, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, app.Owner)
	assert.Equal(t, "preload_owner", app.Owner.Username)
}

func TestAppRepository_GetByID_NotFound(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewAppRepository(db)

	_, err := repo.GetByID(context.Background(), "app_doesnotexist12")
	assert.ErrorIs(t, err, repositories.ErrAppNotFound)
}

func TestAppRepository_List_NewestFirst(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewAppRepository(db)

	owner := helpers.CreateUser(t, db, "list_owner", models.PlanHobby)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	older := helpers.CreateApp(t, db, owner.ID, true)
	newer := helpers.CreateApp(t, db, owner.ID, false)
	helpers.SetCreatedAt(t, db, older, base)
	helpers.SetCreatedAt(t, db, newer, base.Add(time.Hour))

	apps, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, newer.ID, apps[0].ID)
	assert.Equal(t, older.ID, apps[1].ID)
}

func TestAppRepository_ListByOwner(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewAppRepository(db)
	ctx := context.Background()

	owner := helpers.CreateUser(t, db, "by_owner", models.PlanHobby)
	other := helpers.CreateUser(t, db, "other_owner", models.PlanHobby)
	helpers.CreateApp(t, db, owner.ID, true)
	helpers.CreateApp(t, db, owner.ID, false)
	helpers.CreateApp(t, db, other.ID, true)

	apps, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, apps, 2)

	none, err := repo.ListByOwner(ctx, "u_doesnotexist1234")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAppRepository_ListByOwners(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewAppRepository(db)

	u1 := helpers.CreateUser(t, db, "owners_one", models.PlanHobby)
	u2 := helpers.CreateUser(t, db, "owners_two", models.PlanHobby)
	u3 := helpers.CreateUser(t, db, "owners_three", models.PlanHobby)
	helpers.CreateApp(t, db, u1.ID, true)
	helpers.CreateApp(t, db, u1.ID, true)
	helpers.CreateApp(t, db, u3.ID, true)

	apps, err := repo.ListByOwners(context.Background(), []string{u1.ID, u2.ID})
	require.NoError(t, err)
	assert.Len(t, apps, 2, "only apps for the requested owners")
	for _, app := range apps {
		assert.Equal(t, u1.ID, app.OwnerID)
	}
}
