package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"raceshot-backend/internal/config"
	"raceshot-backend/internal/models"
)

type ClientConfigHandler struct {
	config *config.Config
}

func NewClientConfigHandler(cfg *config.Config) *ClientConfigHandler {
	return &ClientConfigHandler{config: cfg}
}

// GetClientConfig godoc
// @Summary     Client configuration
// @Description Returns the publishable keys the web client needs. Never includes secrets.
// @Tags        config
// @Accept      json
// @Produce     json
// @Success     200 {object} models.ClientConfigResponse
// @Router      /config [get]
func (h *ClientConfigHandler) GetClientConfig(c *gin.Context) {
	c.JSON(http.StatusOK, models.ClientConfigResponse{
		StripePublishableKey: h.config.StripePublishableKey,
	})
}
