package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"raceshot-backend/internal/middleware"
	"raceshot-backend/internal/models"
	"raceshot-backend/internal/payments"
)

type checkoutStore interface {
	GetPhotosForCheckout(photoIDs []uuid.UUID) ([]models.CheckoutPhoto, error)
}

type sessionCreator interface {
	CreateCheckoutSession(buyerID string, photos []models.CheckoutPhoto) (*payments.CheckoutResult, error)
}

type CheckoutHandler struct {
	store    checkoutStore
	payments sessionCreator
}

func NewCheckoutHandler(store checkoutStore, payments sessionCreator) *CheckoutHandler {
	return &CheckoutHandler{
		store:    store,
		payments: payments,
	}
}

// CreateSession godoc
// @Summary     Create a checkout session
// @Description Creates a Stripe Checkout session for the requested photos and returns the hosted payment page URL. The platform fee is computed on the cart total; funds transfer to the first photo's photographer.
// @Tags        checkout
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CheckoutRequest true "Photo ids to purchase"
// @Success     200 {object} models.CheckoutResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /checkout/session [post]
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Photos) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "no photos in request"})
		return
	}

	photoIDs := make([]uuid.UUID, len(req.Photos))
	for i, item := range req.Photos {
		id, err := uuid.Parse(item.ID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid photo id"})
			return
		}
		photoIDs[i] = id
	}

	photos, err := h.store.GetPhotosForCheckout(photoIDs)
	if err != nil || len(photos) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Failed to fetch photo data"})
		return
	}

	result, err := h.payments.CreateCheckoutSession(userIDStr.(string), photos)
	if err != nil {
		log.Printf("checkout session creation failed for user %s: %v", userIDStr, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create checkout session"})
		return
	}

	c.JSON(http.StatusOK, models.CheckoutResponse{
		SessionID: result.SessionID,
		URL:       result.URL,
	})
}
