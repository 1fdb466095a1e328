package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/kkh1902/promptsave-sub001/internal/media"
	"github.com/kkh1902/promptsave-sub001/internal/middleware"
	"github.com/kkh1902/promptsave-sub001/internal/models"
	"github.com/kkh1902/promptsave-sub001/internal/repositories"
	"github.com/kkh1902/promptsave-sub001/internal/services"
	"github.com/kkh1902/promptsave-sub001/pkg/config"
	"github.com/kkh1902/promptsave-sub001/pkg/logger"
	"github.com/kkh1902/promptsave-sub001/pkg/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testSecret         = "handler-test-secret-0123"
	testUploadMaxBytes = 5 << 20
)

type testServer struct {
	e        *echo.Echo
	db       *gorm.DB
	gallery  *MockGalleryRepository
	identity *MockIdentityDeleter
	verifier *fakeVerifier
	storage  *fakeStorage
	auth     *AuthHandler
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := config.OpenRelational("sqlite::memory:", false)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repositories.AutoMigrate(db))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func discardLogger() logger.Logger {
	return logger.NewWriterLogger(io.Discard, config.LogLevelDebug)
}

// newTestServer wires the handlers the same way the router does, on SQLite and in-memory fakes
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	s := &testServer{
		db:       setupTestDB(t),
		gallery:  new(MockGalleryRepository),
		identity: new(MockIdentityDeleter),
		verifier: &fakeVerifier{tokens: map[string]*auth.Token{}},
		storage:  newFakeStorage(),
	}
	log := discardLogger()

	profileRepo := repositories.NewPostgresProfileRepository(s.db)
	followRepo := repositories.NewPostgresFollowRepository(s.db)
	commentRepo := repositories.NewPostgresCommentRepository(s.db)
	probeRepo := repositories.NewPostgresProbeRepository(s.db)
	accountRepo := repositories.NewPostgresAccountRepository(s.db)

	galleryService := services.NewGalleryService(s.gallery, log)
	followService := services.NewFollowService(followRepo, log)
	accountService := services.NewAccountService(accountRepo, s.gallery, s.identity, log)

	imageHosts, err := media.ParseRemotePatterns([]string{"storage.googleapis.com/"})
	require.NoError(t, err)

	s.auth = NewAuthHandler(s.verifier, profileRepo, testSecret, time.Hour, false, log)
	galleryHandler := NewGalleryHandler(galleryService, imageHosts, log)
	commentHandler := NewCommentHandler(commentRepo, s.gallery, log)
	userHandler := NewUserHandler(profileRepo, followService, accountService, false, log)
	followHandler := NewFollowHandler(followService, profileRepo, log)
	uploadHandler := NewUploadHandler(s.storage, testUploadMaxBytes, log)
	debugHandler := NewDebugHandler(probeRepo)

	e := echo.New()
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	public := e.Group("/api", middleware.OptionalSessionAuth(testSecret))
	s.auth.RegisterAuthRoutes(public)
	galleryHandler.RegisterPublicGalleryRoutes(public)
	commentHandler.RegisterPublicCommentRoutes(public)
	userHandler.RegisterPublicUserRoutes(public)
	followHandler.RegisterPublicFollowRoutes(public)
	galleryHandler.RegisterImageRoutes(e.Group("", middleware.OptionalSessionAuth(testSecret)))

	api := e.Group("/api", middleware.SessionAuth(testSecret))
	galleryHandler.RegisterGalleryRoutes(api)
	commentHandler.RegisterCommentRoutes(api)
	userHandler.RegisterUserRoutes(api)
	followHandler.RegisterFollowRoutes(api)
	uploadHandler.RegisterUploadRoutes(api)

	debugHandler.RegisterDebugRoutes(e.Group("/api"))

	s.e = e
	return s
}

func (s *testServer) seedProfile(t *testing.T, uid, username string) {
	t.Helper()
	require.NoError(t, s.db.Create(&models.Profile{ID: uid, Username: username, Email: username + "@example.com"}).Error)
}

// do sends body as JSON, authenticated as uid unless uid is empty
func (s *testServer) do(t *testing.T, method, path string, body interface{}, uid string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if uid != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.sessionFor(t, uid))
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) sessionFor(t *testing.T, uid string) string {
	t.Helper()
	token, err := s.auth.generateSessionToken(uid, uid+"@example.com")
	require.NoError(t, err)
	return token
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func errorBody(message string) string {
	payload, _ := json.Marshal(map[string]string{"error": message})
	return string(payload)
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	return nil
}
