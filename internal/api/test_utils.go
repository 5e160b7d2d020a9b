package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/connexo-app/backend/internal/database"
	"github.com/connexo-app/backend/internal/service"
	"github.com/connexo-app/backend/internal/store"
	"github.com/connexo-app/backend/internal/types"
)

type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	profiles *store.Store
	auth     *service.AuthService
}

// setupTestAPI wires the full route table against an in-memory database,
// mirroring the production wiring minus Redis and S3.
func setupTestAPI(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	pages := gocache.New(time.Minute, time.Minute)
	profiles := store.New(database.NewDocumentStore(db),
		store.WithOnChange(func(uuid.UUID, types.ProfileDocument) {
			pages.Flush()
		}))

	auth := service.NewAuthService(db, profiles, "test-secret")

	router := gin.New()
	SetupAPI(router, Deps{
		Profiles:  profiles,
		Auth:      auth,
		Account:   service.NewAccountService(db, profiles),
		Images:    service.NewImageService(nil),
		Analytics: service.NewAnalyticsService(),
		PageCache: pages,
	})

	return &testEnv{router: router, db: db, profiles: profiles, auth: auth}
}

// do performs a JSON request against the router. token may be empty for
// anonymous requests; payload may be nil for bodyless requests.
func (e *testEnv) do(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// register creates an account through the HTTP surface and returns the
// session token.
func (e *testEnv) register(t *testing.T, name, email, username string) string {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/v1/auth/register", "", types.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "testpassword123",
		Username: username,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeDocument(t *testing.T, w *httptest.ResponseRecorder) types.ProfileDocument {
	t.Helper()
	var doc types.ProfileDocument
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	return doc
}
