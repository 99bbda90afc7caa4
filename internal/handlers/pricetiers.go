package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"raceshot-backend/internal/models"
	"raceshot-backend/internal/supabase"
)

type PriceTiersHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewPriceTiersHandler(dbClient *supabase.DatabaseClient) *PriceTiersHandler {
	return &PriceTiersHandler{dbClient: dbClient}
}

// ListPriceTiers godoc
// @Summary     List pricing presets
// @Description Returns the pricing presets photographers can choose from when listing photos.
// @Tags        pricing
// @Accept      json
// @Produce     json
// @Success     200 {array} models.PriceTierResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /price-tiers [get]
func (h *PriceTiersHandler) ListPriceTiers(c *gin.Context) {
	tiers, err := h.dbClient.ListPriceTiers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list price tiers"})
		return
	}

	responses := make([]models.PriceTierResponse, len(tiers))
	for i, tier := range tiers {
		responses[i] = models.PriceTierResponse{
			ID:    tier.ID.String(),
			Name:  tier.Name,
			Price: tier.Price,
		}
		if tier.Description.Valid {
			responses[i].Description = tier.Description.String
		}
	}

	c.JSON(http.StatusOK, responses)
}
