package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(client *supabase.Client) *RealtimeClient {
	return &RealtimeClient{
		client: client,
	}
}

func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// The Go client has no direct Realtime publish; clients subscribe to
	// postgres_changes on purchases and profiles instead, so the database
	// writes themselves fan out. Kept as an explicit hook for when the
	// Realtime REST API is wired in.
	return nil
}

func (r *RealtimeClient) PublishBuyerEvent(buyerID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("buyer:%s", buyerID.String())
	return r.PublishEvent(channel, event, payload)
}

func (r *RealtimeClient) PublishPhotographerEvent(photographerID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("photographer:%s", photographerID.String())
	return r.PublishEvent(channel, event, payload)
}

// Event payloads
func PurchasesCompletedPayload(paymentIntent string, photoCount int) map[string]interface{} {
	return map[string]interface{}{
		"payment_intent": paymentIntent,
		"photo_count":    photoCount,
		"status":         "completed",
	}
}

func AccountStatusPayload(accountID, status string) map[string]interface{} {
	return map[string]interface{}{
		"stripe_account_id": accountID,
		"status":            status,
	}
}
