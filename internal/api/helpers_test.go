package api_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/plateshare/backend/internal/api"
	"github.com/plateshare/backend/internal/database"
	"github.com/plateshare/backend/internal/router"
	"github.com/plateshare/backend/internal/service"
	"github.com/plateshare/backend/internal/testhelpers"
	"github.com/plateshare/backend/internal/types"
)

const testSecret = "api-test-secret"

type testServer struct {
	engine   *gin.Engine
	db       *gorm.DB
	verifier *service.JWTVerifier
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	verifier := service.NewJWTVerifier(testSecret)

	users := service.NewUserService(db)
	recipes := service.NewRecipeService(db)
	likes := service.NewLikeService(db)
	social := service.NewSocialService(db)
	sessions := service.NewSessionService(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)

	engine := router.Setup(router.Deps{
		Verifier:      verifier,
		Sessions:      sessions,
		UserHandler:   api.NewUserHandler(verifier, users, social, likes, recipes, nil),
		RecipeHandler: api.NewRecipeHandler(recipes, likes),
		HealthHandler: api.NewHealthHandler(&database.DB{Gorm: db, SQL: sqlDB}, nil),
	})

	return &testServer{engine: engine, db: db, verifier: verifier}
}

// token mints a credential the way the identity provider would.
func (s *testServer) token(t *testing.T, subjectID string) string {
	t.Helper()
	token, err := s.verifier.Issue(subjectID, time.Hour)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) types.Response {
	t.Helper()
	var resp types.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func validRecipeBody() gin.H {
	return gin.H{
		"title":             "Carbonara",
		"ingredients":       []string{"spaghetti", "guanciale", "egg"},
		"instructions":      []string{"boil", "fry", "toss"},
		"cuisine_type":      "Italian",
		"categories":        []string{"Dinner"},
		"prep_time_minutes": 25,
	}
}
