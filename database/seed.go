package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"deployhub_backend/internal/logger"
	"deployhub_backend/internal/models"
	"deployhub_backend/internal/repositories"
)

// Seed wipes both tables and recreates the demo fixture set: three hobby
// users with two apps each (first active, second inactive) and three pro
// users with a varying number of active apps.
func Seed(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).Where("1 = 1").Delete(&models.DeployedApp{}).Error; err != nil {
		return fmt.Errorf("failed to clear apps: %w", err)
	}
	if err := db.WithContext(ctx).Where("1 = 1").Delete(&models.User{}).Error; err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}

	userRepo := repositories.NewUserRepository(db)
	appRepo := repositories.NewAppRepository(db)

	var hobbyUsers []*models.User
	for i := 1; i <= 3; i++ {
		user := &models.User{
			Username: fmt.Sprintf("hobby_user_%d", i),
			Plan:     models.PlanHobby,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create %s: %w", user.Username, err)
		}
		hobbyUsers = append(hobbyUsers, user)
		logger.Info("Created hobby user", "username", user.Username, "id", user.ID)
	}

	var proUsers []*models.User
	for i := 1; i <= 3; i++ {
		user := &models.User{
			Username: fmt.Sprintf("pro_user_%d", i),
			Plan:     models.PlanPro,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create %s: %w", user.Username, err)
		}
		proUsers = append(proUsers, user)
		logger.Info("Created pro user", "username", user.Username, "id", user.ID)
	}

	appCount := 0
	for _, user := range hobbyUsers {
		for i := 0; i < 2; i++ {
			// first app active, second inactive
			app, err := appRepo.Create(ctx, user.ID, i == 0)
			if err != nil {
				return fmt.Errorf("failed to create app for %s: %w", user.Username, err)
			}
			appCount++
			logger.Info("Created app", "id", app.ID, "owner", user.Username, "active", app.Active)
		}
	}

	for idx, user := range proUsers {
		numApps := 3 + idx%3
		for i := 0; i < numApps; i++ {
			app, err := appRepo.Create(ctx, user.ID, true)
			if err != nil {
				return fmt.Errorf("failed to create app for %s: %w", user.Username, err)
			}
			appCount++
			logger.Info("Created app", "id", app.ID, "owner", user.Username, "active", app.Active)
		}
	}

	logger.Info("Fixtures created",
		"hobby_users", len(hobbyUsers),
		"pro_users", len(proUsers),
		"apps", appCount,
	)
	return nil
}
