package repositories

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"deployhub_backend/internal/models"
	"deployhub_backend/pkg/apperrors"
)

var (
	ErrAppNotFound   = apperrors.New(apperrors.CodeNotFound, "app", "app not found", http.StatusNotFound)
	ErrOwnerNotFound = apperrors.New(apperrors.CodeNotFound, "app", "owner not found", http.StatusNotFound)
)

type AppRepository interface {
	Create(ctx context.Context, ownerID string, active bool) (*models.DeployedApp, error)
	GetByID(ctx context.Context, id string) (*models.DeployedApp, error)
	List(ctx context.Context) ([]models.DeployedApp, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.DeployedApp, error)
	ListByOwners(ctx context.Context, ownerIDs []string) ([]models.DeployedApp, error)
}

type AppRepositoryImpl struct {
	db *gorm.DB
}

func NewAppRepository(db *gorm.DB) AppRepository {
	return &AppRepositoryImpl{db: db}
}

// Create inserts an app owned by ownerID. Fails when the owner does not exist.
func (r *AppRepositoryImpl) Create(ctx context.Context, ownerID string, active bool) (*models.DeployedApp, error) {
	var owner models.User
	err := r.db.WithContext(ctx).First(&owner, "id = ?", ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}

	app := &models.DeployedApp{
		OwnerID: ownerID,
		Active:  active,
	}
	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return app, nil
}

// GetByID returns the app with its owner preloaded.
func (r *AppRepositoryImpl) GetByID(ctx context.Context, id string) (*models.DeployedApp, error) {
	var app models.DeployedApp
	err := r.db.WithContext(ctx).Preload("Owner").First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}
	return &app, nil
}

// List returns all apps, newest first.
func (r *AppRepositoryImpl) List(ctx context.Context) ([]models.DeployedApp, error) {
	var apps []models.DeployedApp
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&apps).Error
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return apps, nil
}

func (r *AppRepositoryImpl) ListByOwner(ctx context.Context, ownerID string) ([]models.DeployedApp, error) {
	var apps []models.DeployedApp
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&apps).Error
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return apps, nil
}

// ListByOwners returns all apps owned by any of ownerIDs in one query.
// Grouping per owner happens in the loader layer.
func (r *AppRepositoryImpl) ListByOwners(ctx context.Context, ownerIDs []string) ([]models.DeployedApp, error) {
	var apps []models.DeployedApp
	err := r.db.WithContext(ctx).Where("owner_id IN ?", ownerIDs).Order("created_at DESC").Find(&apps).Error
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return apps, nil
}
