package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"raceshot-backend/internal/middleware"
	"raceshot-backend/internal/models"
)

type connectStore interface {
	GetProfile(userID uuid.UUID) (*models.Profile, error)
	SetStripeAccount(userID uuid.UUID, accountID string) error
}

type accountProvisioner interface {
	CreateExpressAccount(email, userID string) (string, error)
	OnboardingLink(accountID string) (string, error)
}

type ConnectHandler struct {
	store    connectStore
	payments accountProvisioner
}

func NewConnectHandler(store connectStore, payments accountProvisioner) *ConnectHandler {
	return &ConnectHandler{
		store:    store,
		payments: payments,
	}
}

// CreateAccount godoc
// @Summary     Provision a Stripe Connect account
// @Description Idempotently ensures the photographer has a connected Express account and returns a fresh onboarding link. An existing account id is always reused.
// @Tags        connect
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.ConnectAccountResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /connect/account [post]
func (h *ConnectHandler) CreateAccount(c *gin.Context) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	profile, err := h.store.GetProfile(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Profile not found"})
		return
	}

	accountID := ""
	if profile.StripeAccountID.Valid && profile.StripeAccountID.String != "" {
		accountID = profile.StripeAccountID.String
	} else {
		email := ""
		if v, ok := c.Get(middleware.UserEmailKey); ok {
			email = v.(string)
		}

		accountID, err = h.payments.CreateExpressAccount(email, userID.String())
		if err != nil {
			log.Printf("connect account creation failed for user %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create connect account"})
			return
		}

		// Persist immediately: an unrecorded account id would orphan the
		// Stripe-side account. account.updated webhooks re-affirm the id as
		// a recovery path if this write is lost.
		if err := h.store.SetStripeAccount(userID, accountID); err != nil {
			log.Printf("failed to persist connect account %s for user %s: %v", accountID, userID, err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create connect account"})
			return
		}
	}

	url, err := h.payments.OnboardingLink(accountID)
	if err != nil {
		log.Printf("onboarding link failed for account %s: %v", accountID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create connect account"})
		return
	}

	c.JSON(http.StatusOK, models.ConnectAccountResponse{URL: url})
}
