package routes

import (
	"github.com/gin-gonic/gin"

	"deployhub_backend/internal/handlers"
)

// RegisterRoutes wires every HTTP route onto the router.
func RegisterRoutes(router *gin.Engine, appHandlers *handlers.AppHandlers) {
	appHandlers.HealthHandler.RegisterRoutes(router)
	appHandlers.GraphQLHandler.RegisterRoutes(router)
}
