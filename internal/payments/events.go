package payments

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v79"
)

// Event is the closed set of webhook notifications the reconciler acts on.
// Anything Stripe sends outside this set parses to Ignored so the handler
// can acknowledge it without retries piling up.
type Event interface {
	webhookEvent()
}

type CheckoutCompleted struct {
	SessionID     string
	PaymentIntent string
	BuyerID       string
	PhotoIDs      []string
	AmountTotal   int64
}

type AccountUpdated struct {
	AccountID      string
	UserID         string
	ChargesEnabled bool
}

type Ignored struct {
	Type string
}

func (CheckoutCompleted) webhookEvent() {}
func (AccountUpdated) webhookEvent()    {}
func (Ignored) webhookEvent()           {}

// ParseEvent maps a signature-verified Stripe event onto the typed variant
// set. Callers must only pass events that came out of webhook verification.
func ParseEvent(event stripe.Event) (Event, error) {
	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("failed to parse checkout session: %w", err)
		}

		paymentIntent := ""
		if sess.PaymentIntent != nil {
			paymentIntent = sess.PaymentIntent.ID
		}

		return CheckoutCompleted{
			SessionID:     sess.ID,
			PaymentIntent: paymentIntent,
			BuyerID:       sess.Metadata["user_id"],
			PhotoIDs:      splitPhotoIDs(sess.Metadata["photo_ids"]),
			AmountTotal:   sess.AmountTotal,
		}, nil

	case "account.updated":
		var account stripe.Account
		if err := json.Unmarshal(event.Data.Raw, &account); err != nil {
			return nil, fmt.Errorf("failed to parse account: %w", err)
		}

		return AccountUpdated{
			AccountID:      account.ID,
			UserID:         account.Metadata["user_id"],
			ChargesEnabled: account.ChargesEnabled,
		}, nil

	default:
		return Ignored{Type: string(event.Type)}, nil
	}
}

func splitPhotoIDs(joined string) []string {
	if joined == "" {
		return nil
	}

	parts := strings.Split(joined, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
