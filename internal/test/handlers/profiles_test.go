package handlers_test

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"raceshot-backend/internal/config"
	"raceshot-backend/internal/handlers"
	"raceshot-backend/internal/middleware"
	"raceshot-backend/internal/models"
)

type fakeProfileStore struct {
	profile    *models.Profile
	getErr     error
	created    *models.Profile
	gotName    string
	gotEmail   string
	createErr  error
	createdFor uuid.UUID
}

func (f *fakeProfileStore) GetProfile(userID uuid.UUID) (*models.Profile, error) {
	return f.profile, f.getErr
}

func (f *fakeProfileStore) CreateProfile(userID uuid.UUID, username, email string) (*models.Profile, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createdFor = userID
	f.gotName = username
	f.gotEmail = email
	f.created = &models.Profile{ID: userID, Username: username, StripeAccountStatus: models.AccountStatusPending}
	return f.created, nil
}

func profilesRouter(store *fakeProfileStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewProfilesHandler(store)

	router := gin.New()
	auth := router.Group("/api/v1")
	auth.Use(middleware.AuthMiddleware(&config.Config{SupabaseJWTSecret: jwtSecret}))
	auth.GET("/profiles/me", handler.GetMyProfile)
	return router
}

func getProfile(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", "/api/v1/profiles/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetMyProfile_NoToken(t *testing.T) {
	router := profilesRouter(&fakeProfileStore{})

	w := getProfile(router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetMyProfile_Existing(t *testing.T) {
	userID := uuid.New()
	store := &fakeProfileStore{
		profile: &models.Profile{
			ID:                  userID,
			Username:            "fastshutter",
			StripeAccountID:     sql.NullString{String: "acct_9", Valid: true},
			StripeAccountStatus: models.AccountStatusActive,
		},
	}
	router := profilesRouter(store)

	w := getProfile(router, signedToken(t, userID.String()))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fastshutter")
	assert.Contains(t, w.Body.String(), "acct_9")
	assert.Contains(t, w.Body.String(), "active")
	assert.Nil(t, store.created)
}

func TestGetMyProfile_CreatedOnFirstAccess(t *testing.T) {
	userID := uuid.New()
	store := &fakeProfileStore{getErr: sql.ErrNoRows}
	router := profilesRouter(store)

	w := getProfile(router, signedToken(t, userID.String()))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, store.createdFor)
	// Username derives from the email local part in the token.
	assert.Equal(t, "racer", store.gotName)
	assert.Equal(t, "racer@example.com", store.gotEmail)
	assert.Contains(t, w.Body.String(), `"username":"racer"`)
}

func TestGetMyProfile_StoreFailure(t *testing.T) {
	store := &fakeProfileStore{getErr: assert.AnError}
	router := profilesRouter(store)

	w := getProfile(router, signedToken(t, uuid.New().String()))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
