package handlers_test

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"raceshot-backend/internal/config"
	"raceshot-backend/internal/handlers"
	"raceshot-backend/internal/middleware"
	"raceshot-backend/internal/models"
)

type fakeConnectStore struct {
	profile     *models.Profile
	profileErr  error
	setAccounts map[uuid.UUID]string
}

func (f *fakeConnectStore) GetProfile(userID uuid.UUID) (*models.Profile, error) {
	return f.profile, f.profileErr
}

func (f *fakeConnectStore) SetStripeAccount(userID uuid.UUID, accountID string) error {
	if f.setAccounts == nil {
		f.setAccounts = map[uuid.UUID]string{}
	}
	f.setAccounts[userID] = accountID
	return nil
}

type fakeAccountProvisioner struct {
	accountID   string
	createErr   error
	linkURL     string
	linkErr     error
	created     int
	gotEmail    string
	gotUserID   string
	linkedAccts []string
}

func (f *fakeAccountProvisioner) CreateExpressAccount(email, userID string) (string, error) {
	f.created++
	f.gotEmail = email
	f.gotUserID = userID
	return f.accountID, f.createErr
}

func (f *fakeAccountProvisioner) OnboardingLink(accountID string) (string, error) {
	f.linkedAccts = append(f.linkedAccts, accountID)
	return f.linkURL, f.linkErr
}

func connectRouter(store *fakeConnectStore, provisioner *fakeAccountProvisioner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewConnectHandler(store, provisioner)

	router := gin.New()
	auth := router.Group("/api/v1")
	auth.Use(middleware.AuthMiddleware(&config.Config{SupabaseJWTSecret: jwtSecret}))
	auth.POST("/connect/account", handler.CreateAccount)
	return router
}

func postConnect(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", "/api/v1/connect/account", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateAccount_NoToken(t *testing.T) {
	store := &fakeConnectStore{}
	provisioner := &fakeAccountProvisioner{}
	router := connectRouter(store, provisioner)

	w := postConnect(router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, provisioner.created)
}

func TestCreateAccount_FirstTime_CreatesAndPersists(t *testing.T) {
	userID := uuid.New()
	store := &fakeConnectStore{
		profile: &models.Profile{ID: userID},
	}
	provisioner := &fakeAccountProvisioner{
		accountID: "acct_new",
		linkURL:   "https://connect.stripe.com/setup/s/abc",
	}
	router := connectRouter(store, provisioner)

	w := postConnect(router, signedToken(t, userID.String()))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://connect.stripe.com/setup/s/abc")

	assert.Equal(t, 1, provisioner.created)
	assert.Equal(t, "racer@example.com", provisioner.gotEmail)
	assert.Equal(t, userID.String(), provisioner.gotUserID)
	assert.Equal(t, "acct_new", store.setAccounts[userID])
	require.Equal(t, []string{"acct_new"}, provisioner.linkedAccts)
}

func TestCreateAccount_ExistingAccountReused(t *testing.T) {
	userID := uuid.New()
	store := &fakeConnectStore{
		profile: &models.Profile{
			ID:              userID,
			StripeAccountID: sql.NullString{String: "acct_existing", Valid: true},
		},
	}
	provisioner := &fakeAccountProvisioner{
		linkURL: "https://connect.stripe.com/setup/s/again",
	}
	router := connectRouter(store, provisioner)

	w := postConnect(router, signedToken(t, userID.String()))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, provisioner.created)
	assert.Empty(t, store.setAccounts)
	require.Equal(t, []string{"acct_existing"}, provisioner.linkedAccts)
}

func TestCreateAccount_ProfileMissing(t *testing.T) {
	store := &fakeConnectStore{profileErr: sql.ErrNoRows}
	provisioner := &fakeAccountProvisioner{}
	router := connectRouter(store, provisioner)

	w := postConnect(router, signedToken(t, uuid.New().String()))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Profile not found")
	assert.Zero(t, provisioner.created)
}

func TestCreateAccount_StripeFailure(t *testing.T) {
	userID := uuid.New()
	store := &fakeConnectStore{profile: &models.Profile{ID: userID}}
	provisioner := &fakeAccountProvisioner{createErr: assert.AnError}
	router := connectRouter(store, provisioner)

	w := postConnect(router, signedToken(t, userID.String()))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to create connect account")
	assert.Empty(t, store.setAccounts)
}
