package helpers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"deployhub_backend/internal/app"
	"deployhub_backend/internal/config"
)

// TestServer runs the real router over an in-memory database.
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
}

func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := NewTestDB(t)

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.GraphQL.Pretty = true

	router := app.SetupRouter(cfg, db)
	server := httptest.NewServer(router)

	t.Cleanup(server.Close)
	return &TestServer{Server: server, DB: db}
}

// GraphQLResponse is the generic wire shape of a GraphQL response.
type GraphQLResponse struct {
	Data   map[string]interface{}   `json:"data"`
	Errors []map[string]interface{} `json:"errors"`
}

// SendGraphQL posts a query with optional variables to /graphql and decodes
// the response.
func (ts *TestServer) SendGraphQL(t *testing.T, query string, variables map[string]interface{}) (*http.Response, *GraphQLResponse) {
	t.Helper()

	body := map[string]interface{}{"query": query}
	if variables != nil {
		body["variables"] = variables
	}
	jsonBody, err := json.Marshal(body)
	require.NoError(t, err)

	res, err := ts.Server.Client().Post(
		ts.Server.URL+"/graphql",
		"application/json",
		bytes.NewReader(jsonBody),
	)
	require.NoError(t, err)
	defer res.Body.Close()

	var decoded GraphQLResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&decoded))
	return res, &decoded
}
