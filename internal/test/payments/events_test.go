package payments_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
	"raceshot-backend/internal/payments"
)

func stripeEvent(t *testing.T, eventType string, object string) stripe.Event {
	t.Helper()
	return stripe.Event{
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{
			Raw: json.RawMessage(object),
		},
	}
}

func TestParseEvent_CheckoutCompleted(t *testing.T) {
	event := stripeEvent(t, "checkout.session.completed", `{
		"id": "cs_test_1",
		"payment_intent": "pi_123",
		"amount_total": 1500,
		"metadata": {
			"user_id": "u1",
			"photo_ids": "p1,p2"
		}
	}`)

	parsed, err := payments.ParseEvent(event)
	require.NoError(t, err)

	completed, ok := parsed.(payments.CheckoutCompleted)
	require.True(t, ok)
	assert.Equal(t, "cs_test_1", completed.SessionID)
	assert.Equal(t, "pi_123", completed.PaymentIntent)
	assert.Equal(t, "u1", completed.BuyerID)
	assert.Equal(t, []string{"p1", "p2"}, completed.PhotoIDs)
	assert.Equal(t, int64(1500), completed.AmountTotal)
}

func TestParseEvent_CheckoutCompleted_MalformedPayload(t *testing.T) {
	event := stripeEvent(t, "checkout.session.completed", `{"amount_total": "not-a-number"}`)

	_, err := payments.ParseEvent(event)
	assert.Error(t, err)
}

func TestParseEvent_AccountUpdated(t *testing.T) {
	event := stripeEvent(t, "account.updated", `{
		"id": "acct_1",
		"charges_enabled": true,
		"metadata": {"user_id": "u1"}
	}`)

	parsed, err := payments.ParseEvent(event)
	require.NoError(t, err)

	updated, ok := parsed.(payments.AccountUpdated)
	require.True(t, ok)
	assert.Equal(t, "acct_1", updated.AccountID)
	assert.Equal(t, "u1", updated.UserID)
	assert.True(t, updated.ChargesEnabled)
}

func TestParseEvent_AccountUpdated_NoUserMetadata(t *testing.T) {
	event := stripeEvent(t, "account.updated", `{
		"id": "acct_1",
		"charges_enabled": false
	}`)

	parsed, err := payments.ParseEvent(event)
	require.NoError(t, err)

	updated, ok := parsed.(payments.AccountUpdated)
	require.True(t, ok)
	assert.Empty(t, updated.UserID)
	assert.False(t, updated.ChargesEnabled)
}

func TestParseEvent_UnknownKind(t *testing.T) {
	event := stripeEvent(t, "invoice.paid", `{"id": "in_1"}`)

	parsed, err := payments.ParseEvent(event)
	require.NoError(t, err)

	ignored, ok := parsed.(payments.Ignored)
	require.True(t, ok)
	assert.Equal(t, "invoice.paid", ignored.Type)
}
