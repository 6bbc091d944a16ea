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
	ErrUserNotFound  = apperrors.New(apperrors.CodeNotFound, "user", "user not found", http.StatusNotFound)
	ErrUsernameTaken = apperrors.New(apperrors.CodeAlreadyExists, "user", "username already taken", http.StatusConflict)
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdatePlan(ctx context.Context, id string, plan models.Plan) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create inserts the user. A duplicate username fails the whole operation;
// nothing is written.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *models.User) error {
	var existing models.User
	err := r.db.WithContext(ctx).Where("username = ?", user.Username).First(&existing).Error
	if err == nil {
		return ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.DatabaseError(err)
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		// the unique index is the backstop for races past the pre-check,
		// and the primary key constraint for id collisions
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUsernameTaken
		}
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}
	return &user, nil
}

// GetByIDs returns the users matching ids, in store order. Missing ids are
// simply absent; callers that need per-key results re-map the slice.
func (r *UserRepositoryImpl) GetByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return users, nil
}

// List returns all users, newest first.
func (r *UserRepositoryImpl) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return users, nil
}

// UpdatePlan is a read-modify-write with no version check; concurrent
// conflicting updates are last-write-wins.
func (r *UserRepositoryImpl) UpdatePlan(ctx context.Context, id string, plan models.Plan) (*models.User, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Plan = plan
	if err := r.db.WithContext(ctx).Model(user).Update("plan", plan).Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return user, nil
}

// Delete removes the user and every app it owns in one transaction.
func (r *UserRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", id).Delete(&models.DeployedApp{}).Error; err != nil {
			return apperrors.DatabaseError(err)
		}

		result := tx.Where("id = ?", id).Delete(&models.User{})
		if result.Error != nil {
			return apperrors.DatabaseError(result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}
