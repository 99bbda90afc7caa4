package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"raceshot-backend/internal/middleware"
	"raceshot-backend/internal/models"
	"raceshot-backend/internal/supabase"
)

type PurchasesHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewPurchasesHandler(dbClient *supabase.DatabaseClient) *PurchasesHandler {
	return &PurchasesHandler{dbClient: dbClient}
}

// ListMyPurchases godoc
// @Summary     List the authenticated user's purchases
// @Description Returns every confirmed purchase for the authenticated buyer, newest first.
// @Tags        purchases
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.PurchaseListResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /purchases [get]
func (h *PurchasesHandler) ListMyPurchases(c *gin.Context) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	buyerID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	purchases, err := h.dbClient.ListPurchasesByBuyer(buyerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list purchases"})
		return
	}

	responses := make([]models.PurchaseResponse, len(purchases))
	for i, p := range purchases {
		responses[i] = models.PurchaseResponse{
			PhotoID:             p.PhotoID.String(),
			Amount:              p.Amount,
			StripePaymentIntent: p.StripePaymentIntent,
			CreatedAt:           p.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, models.PurchaseListResponse{Purchases: responses})
}
