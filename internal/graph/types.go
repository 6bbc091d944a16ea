package graph

import "deployhub_backend/internal/models"

// User is the GraphQL view of a user. The id is the raw prefixed store id,
// exposed through the ID scalar without any wrapping.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Plan     string `json:"plan"`
}

// App is the GraphQL view of a deployed app. ownerID is not a schema field;
// it backs the owner resolver.
type App struct {
	ID      string `json:"id"`
	Active  bool   `json:"active"`
	ownerID string
}

func newUser(m *models.User) *User {
	return &User{
		ID:       m.ID,
		Username: m.Username,
		Plan:     string(m.Plan),
	}
}

func newApp(m *models.DeployedApp) *App {
	return &App{
		ID:      m.ID,
		Active:  m.Active,
		ownerID: m.OwnerID,
	}
}

// accountPayload mirrors the mutation result: business-rule failures are
// carried as success=false data, never as GraphQL errors.
type accountPayload struct {
	User    *User  `json:"user"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}
