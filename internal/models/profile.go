package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// AccountStatus tracks the onboarding state of a photographer's connected
// Stripe account. An account starts pending and becomes active once Stripe
// reports charges_enabled.
type AccountStatus string

const (
	AccountStatusPending AccountStatus = "pending"
	AccountStatusActive  AccountStatus = "active"
)

type Profile struct {
	ID                  uuid.UUID
	Username            string
	Email               sql.NullString
	StripeAccountID     sql.NullString
	StripeAccountStatus AccountStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
