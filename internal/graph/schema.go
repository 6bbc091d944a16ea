// Package graph defines the GraphQL schema: User and App types, the
// raw-id node lookup, the users/apps list queries and the plan mutations.
package graph

import (
	"errors"
	"strings"

	"github.com/graphql-go/graphql"

	"deployhub_backend/internal/identifier"
	"deployhub_backend/internal/loaders"
	"deployhub_backend/internal/models"
	"deployhub_backend/internal/repositories"
	"deployhub_backend/internal/services"
)

type Resolver struct {
	userRepo repositories.UserRepository
	appRepo  repositories.AppRepository
	accounts *services.AccountService
}

func NewResolver(userRepo repositories.UserRepository, appRepo repositories.AppRepository, accounts *services.AccountService) *Resolver {
	return &Resolver{
		userRepo: userRepo,
		appRepo:  appRepo,
		accounts: accounts,
	}
}

// NewSchema assembles the executable schema around the resolver.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	planEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "Plan",
		Values: graphql.EnumValueConfigMap{
			"HOBBY": &graphql.EnumValueConfig{Value: string(models.PlanHobby)},
			"PRO":   &graphql.EnumValueConfig{Value: string(models.PlanPro)},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"username": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"plan":     &graphql.Field{Type: graphql.NewNonNull(planEnum)},
		},
	})

	appType := graphql.NewObject(graphql.ObjectConfig{
		Name: "App",
		Fields: graphql.Fields{
			"id":     &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"active": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		},
	})

	// relationship fields are attached after both objects exist to close the
	// User <-> App cycle
	userType.AddFieldConfig("apps", &graphql.Field{
		Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(appType))),
		Resolve: r.resolveUserApps,
	})
	appType.AddFieldConfig("owner", &graphql.Field{
		Type:    graphql.NewNonNull(userType),
		Resolve: r.resolveAppOwner,
	})

	nodeUnion := graphql.NewUnion(graphql.UnionConfig{
		Name:  "Node",
		Types: []*graphql.Object{userType, appType},
		ResolveType: func(p graphql.ResolveTypeParams) *graphql.Object {
			switch p.Value.(type) {
			case *User:
				return userType
			case *App:
				return appType
			}
			return nil
		},
	})

	payloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "MutationPayload",
		Fields: graphql.Fields{
			"user":    &graphql.Field{Type: userType},
			"success": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"node": &graphql.Field{
				Type: nodeUnion,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveNode,
			},
			"users": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
				Resolve: r.resolveUsers,
			},
			"apps": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(appType))),
				Resolve: r.resolveApps,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"upgradeAccount": &graphql.Field{
				Type: graphql.NewNonNull(payloadType),
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveUpgradeAccount,
			},
			"downgradeAccount": &graphql.Field{
				Type: graphql.NewNonNull(payloadType),
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveDowngradeAccount,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// resolveNode dispatches a raw prefixed id to the matching entity. The
// prefix cases are exhaustive for the id scheme; anything else — unknown
// prefix or a well-formed id with no record — resolves to null with no
// error, which is part of the wire contract.
func (r *Resolver) resolveNode(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(string)

	switch {
	case strings.HasPrefix(id, identifier.UserPrefix):
		user, err := r.userRepo.GetByID(p.Context, id)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return newUser(user), nil

	case strings.HasPrefix(id, identifier.AppPrefix):
		app, err := r.appRepo.GetByID(p.Context, id)
		if err != nil {
			if errors.Is(err, repositories.ErrAppNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return newApp(app), nil

	default:
		return nil, nil
	}
}

func (r *Resolver) resolveUsers(p graphql.ResolveParams) (interface{}, error) {
	users, err := r.userRepo.List(p.Context)
	if err != nil {
		return nil, err
	}

	out := make([]*User, 0, len(users))
	for i := range users {
		out = append(out, newUser(&users[i]))
	}
	return out, nil
}

func (r *Resolver) resolveApps(p graphql.ResolveParams) (interface{}, error) {
	apps, err := r.appRepo.List(p.Context)
	if err != nil {
		return nil, err
	}

	out := make([]*App, 0, len(apps))
	for i := range apps {
		out = append(out, newApp(&apps[i]))
	}
	return out, nil
}

// resolveUserApps goes through the request's owner-batch loader when one is
// attached, returning a thunk so sibling lookups coalesce into one query.
func (r *Resolver) resolveUserApps(p graphql.ResolveParams) (interface{}, error) {
	user, ok := p.Source.(*User)
	if !ok {
		return nil, nil
	}

	l := loaders.For(p.Context)
	if l == nil {
		// schema executed without a transport-attached loader set
		apps, err := r.appRepo.ListByOwner(p.Context, user.ID)
		if err != nil {
			return nil, err
		}
		return appsToDTO(apps), nil
	}

	thunk := l.AppsByOwnerLoader.Load(p.Context, user.ID)
	return func() (interface{}, error) {
		apps, err := thunk()
		if err != nil {
			return nil, err
		}
		return appsToDTO(apps), nil
	}, nil
}

// resolveAppOwner is a direct per-app lookup, deliberately unbatched.
func (r *Resolver) resolveAppOwner(p graphql.ResolveParams) (interface{}, error) {
	app, ok := p.Source.(*App)
	if !ok {
		return nil, nil
	}

	owner, err := r.userRepo.GetByID(p.Context, app.ownerID)
	if err != nil {
		return nil, err
	}
	return newUser(owner), nil
}

func (r *Resolver) resolveUpgradeAccount(p graphql.ResolveParams) (interface{}, error) {
	userID, _ := p.Args["userId"].(string)

	result, err := r.accounts.Upgrade(p.Context, userID)
	if err != nil {
		return nil, err
	}
	return planChangeToPayload(result), nil
}

func (r *Resolver) resolveDowngradeAccount(p graphql.ResolveParams) (interface{}, error) {
	userID, _ := p.Args["userId"].(string)

	result, err := r.accounts.Downgrade(p.Context, userID)
	if err != nil {
		return nil, err
	}
	return planChangeToPayload(result), nil
}

func appsToDTO(apps []models.DeployedApp) []*App {
	out := make([]*App, 0, len(apps))
	for i := range apps {
		out = append(out, newApp(&apps[i]))
	}
	return out
}

func planChangeToPayload(result *services.PlanChangeResult) *accountPayload {
	payload := &accountPayload{
		Success: result.Success,
		Message: result.Message,
	}
	if result.User != nil {
		payload.User = newUser(result.User)
	}
	return payload
}
