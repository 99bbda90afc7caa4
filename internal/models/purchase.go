package models

import (
	"time"

	"github.com/google/uuid"
)

// Purchase records one paid photo. Rows are written only from a verified
// checkout.session.completed webhook, never at session creation, and are
// immutable afterwards.
type Purchase struct {
	ID                  uuid.UUID
	PhotoID             uuid.UUID
	BuyerID             uuid.UUID
	Amount              float64
	StripePaymentIntent string
	CreatedAt           time.Time
}
