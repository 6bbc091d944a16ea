// Package loaders holds the request-scoped batching loaders. A fresh Loaders
// instance is attached to every incoming request's context and discarded with
// it, so cached results never leak between unrelated callers.
package loaders

import (
	"context"

	"github.com/graph-gophers/dataloader/v7"

	"deployhub_backend/internal/models"
	"deployhub_backend/internal/repositories"
)

type contextKey string

const loadersKey contextKey = "dataloaders"

type Loaders struct {
	UserLoader        *dataloader.Loader[string, *models.User]
	AppsByOwnerLoader *dataloader.Loader[string, []models.DeployedApp]
}

// New builds loaders for one request.
func New(userRepo repositories.UserRepository, appRepo repositories.AppRepository) *Loaders {
	return &Loaders{
		UserLoader:        dataloader.NewBatchedLoader(newUserBatchFn(userRepo)),
		AppsByOwnerLoader: dataloader.NewBatchedLoader(newAppsByOwnerBatchFn(appRepo)),
	}
}

// Attach stores the loaders in the context.
func Attach(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// For extracts the request's loaders, nil if none were attached.
func For(ctx context.Context) *Loaders {
	l, _ := ctx.Value(loadersKey).(*Loaders)
	return l
}

// newUserBatchFn coalesces a batch of user ids into one IN query. Results
// come back in input-key order; a missing id yields nil, not an error.
func newUserBatchFn(repo repositories.UserRepository) dataloader.BatchFunc[string, *models.User] {
	return func(ctx context.Context, keys []string) []*dataloader.Result[*models.User] {
		results := make([]*dataloader.Result[*models.User], 0, len(keys))

		users, err := repo.GetByIDs(ctx, keys)
		if err != nil {
			for range keys {
				results = append(results, &dataloader.Result[*models.User]{Error: err})
			}
			return results
		}

		byID := make(map[string]*models.User, len(users))
		for i := range users {
			byID[users[i].ID] = &users[i]
		}
		for _, key := range keys {
			results = append(results, &dataloader.Result[*models.User]{Data: byID[key]})
		}
		return results
	}
}

// newAppsByOwnerBatchFn fetches all apps for a batch of owner ids in one
// query and groups them per owner. Owners without apps get an empty slice.
// Per-owner ordering follows the store's newest-first default.
func newAppsByOwnerBatchFn(repo repositories.AppRepository) dataloader.BatchFunc[string, []models.DeployedApp] {
	return func(ctx context.Context, keys []string) []*dataloader.Result[[]models.DeployedApp] {
		results := make([]*dataloader.Result[[]models.DeployedApp], 0, len(keys))

		apps, err := repo.ListByOwners(ctx, keys)
		if err != nil {
			for range keys {
				results = append(results, &dataloader.Result[[]models.DeployedApp]{Error: err})
			}
			return results
		}

		byOwner := make(map[string][]models.DeployedApp, len(keys))
		for _, app := range apps {
			byOwner[app.OwnerID] = append(byOwner[app.OwnerID], app)
		}
		for _, key := range keys {
			grouped := byOwner[key]
			if grouped == nil {
				grouped = []models.DeployedApp{}
			}
			results = append(results, &dataloader.Result[[]models.DeployedApp]{Data: grouped})
		}
		return results
	}
}
