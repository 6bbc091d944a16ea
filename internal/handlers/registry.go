package handlers

// AppHandlers groups every HTTP handler for route registration.
type AppHandlers struct {
	GraphQLHandler *GraphQLHandler
	HealthHandler  *HealthHandler
}
