package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
)

// GraphQLHandler serves the single GraphQL endpoint. POST executes queries
// and mutations; GET serves GraphiQL when enabled.
type GraphQLHandler struct {
	handler *handler.Handler
}

func NewGraphQLHandler(schema *graphql.Schema, graphiql, pretty bool) *GraphQLHandler {
	h := handler.New(&handler.Config{
		Schema:   schema,
		Pretty:   pretty,
		GraphiQL: graphiql,
	})
	return &GraphQLHandler{handler: h}
}

func (h *GraphQLHandler) RegisterRoutes(r gin.IRoutes) {
	wrapped := gin.WrapH(h.handler)
	r.POST("/graphql", wrapped)
	r.GET("/graphql", wrapped)
}
