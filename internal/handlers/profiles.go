package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"raceshot-backend/internal/middleware"
	"raceshot-backend/internal/models"
)

type profileStore interface {
	GetProfile(userID uuid.UUID) (*models.Profile, error)
	CreateProfile(userID uuid.UUID, username, email string) (*models.Profile, error)
}

type ProfilesHandler struct {
	store profileStore
}

func NewProfilesHandler(store profileStore) *ProfilesHandler {
	return &ProfilesHandler{store: store}
}

// GetMyProfile godoc
// @Summary     Get the authenticated user's profile
// @Description Returns the profile for the authenticated user, creating it on first access.
// @Tags        profiles
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.ProfileResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /profiles/me [get]
func (h *ProfilesHandler) GetMyProfile(c *gin.Context) {
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
	if errors.Is(err, sql.ErrNoRows) {
		email := ""
		if v, ok := c.Get(middleware.UserEmailKey); ok {
			email = v.(string)
		}
		profile, err = h.store.CreateProfile(userID, usernameFromEmail(email, userID), email)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, toProfileResponse(profile))
}

func usernameFromEmail(email string, userID uuid.UUID) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return "racer-" + userID.String()[:8]
}

func toProfileResponse(profile *models.Profile) models.ProfileResponse {
	resp := models.ProfileResponse{
		ID:                  profile.ID.String(),
		Username:            profile.Username,
		StripeAccountStatus: string(profile.StripeAccountStatus),
	}
	if profile.StripeAccountID.Valid {
		resp.StripeAccountID = profile.StripeAccountID.String
	}
	return resp
}
