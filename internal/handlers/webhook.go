package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79/webhook"
	"raceshot-backend/internal/config"
	"raceshot-backend/internal/models"
	"raceshot-backend/internal/payments"
	"raceshot-backend/internal/supabase"
)

const maxWebhookBodyBytes = int64(65536)

type reconcileStore interface {
	HasPurchasesForPaymentIntent(paymentIntent string) (bool, error)
	InsertPurchases(purchases []models.Purchase) error
	UpdateStripeAccountStatus(userID uuid.UUID, accountID string, status models.AccountStatus) error
}

type WebhookHandler struct {
	config   *config.Config
	store    reconcileStore
	realtime *supabase.RealtimeClient
}

func NewWebhookHandler(cfg *config.Config, store reconcileStore, realtime *supabase.RealtimeClient) *WebhookHandler {
	return &WebhookHandler{
		config:   cfg,
		store:    store,
		realtime: realtime,
	}
}

// HandleStripeWebhook godoc
// @Summary     Stripe webhook endpoint
// @Description Receives Stripe events. The signature is verified against the webhook secret before any parsing; purchases are recorded on checkout.session.completed and connected-account status on account.updated. Unhandled event kinds are acknowledged and ignored.
// @Tags        webhooks
// @Accept      json
// @Produce     json
// @Param       Stripe-Signature header string true "Stripe signature header"
// @Success     200 {object} models.WebhookResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /webhooks/stripe [post]
func (h *WebhookHandler) HandleStripeWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Webhook error"})
		return
	}

	// Verification comes before any parsing. A bad signature must never
	// reach the store.
	stripeEvent, err := webhook.ConstructEventWithOptions(
		body,
		c.GetHeader("Stripe-Signature"),
		h.config.StripeWebhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		log.Printf("stripe webhook signature verification failed: %v", err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Webhook error"})
		return
	}

	event, err := payments.ParseEvent(stripeEvent)
	if err != nil {
		log.Printf("stripe webhook parse failed: %v", err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Webhook error"})
		return
	}

	switch ev := event.(type) {
	case payments.CheckoutCompleted:
		if err := h.handleCheckoutCompleted(ev); err != nil {
			log.Printf("stripe webhook reconciliation failed for session %s: %v", ev.SessionID, err)
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Webhook error"})
			return
		}

	case payments.AccountUpdated:
		if err := h.handleAccountUpdated(ev); err != nil {
			log.Printf("stripe webhook account update failed for %s: %v", ev.AccountID, err)
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Webhook error"})
			return
		}

	case payments.Ignored:
		// Acknowledged so Stripe stops redelivering.
	}

	c.JSON(http.StatusOK, models.WebhookResponse{Received: true})
}

func (h *WebhookHandler) handleCheckoutCompleted(ev payments.CheckoutCompleted) error {
	buyerID, err := uuid.Parse(ev.BuyerID)
	if err != nil {
		return err
	}

	// Stripe redelivers events; an already-reconciled payment intent means
	// this session was processed.
	if ev.PaymentIntent != "" {
		exists, err := h.store.HasPurchasesForPaymentIntent(ev.PaymentIntent)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
	}

	amount := payments.PerPhotoAmount(ev.AmountTotal, len(ev.PhotoIDs))
	purchases := make([]models.Purchase, 0, len(ev.PhotoIDs))
	for _, photoIDStr := range ev.PhotoIDs {
		photoID, err := uuid.Parse(photoIDStr)
		if err != nil {
			return err
		}
		purchases = append(purchases, models.Purchase{
			PhotoID:             photoID,
			BuyerID:             buyerID,
			Amount:              amount,
			StripePaymentIntent: ev.PaymentIntent,
		})
	}

	if err := h.store.InsertPurchases(purchases); err != nil {
		return err
	}

	if h.realtime != nil {
		_ = h.realtime.PublishBuyerEvent(buyerID, "purchases.completed",
			supabase.PurchasesCompletedPayload(ev.PaymentIntent, len(purchases)))
	}

	return nil
}

func (h *WebhookHandler) handleAccountUpdated(ev payments.AccountUpdated) error {
	if ev.UserID == "" {
		// Account not provisioned through this platform; nothing to map.
		return nil
	}

	userID, err := uuid.Parse(ev.UserID)
	if err != nil {
		return err
	}

	status := models.AccountStatusPending
	if ev.ChargesEnabled {
		status = models.AccountStatusActive
	}

	if err := h.store.UpdateStripeAccountStatus(userID, ev.AccountID, status); err != nil {
		return err
	}

	if h.realtime != nil {
		_ = h.realtime.PublishPhotographerEvent(userID, "account.status",
			supabase.AccountStatusPayload(ev.AccountID, string(status)))
	}

	return nil
}
