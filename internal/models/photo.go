package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Photo struct {
	ID             uuid.UUID
	PhotographerID uuid.UUID
	EventName      sql.NullString
	Price          float64
	BibNumbers     []string
	OriginalPath   string
	WatermarkPath  string
	PreviewURL     string
	CreatedAt      time.Time
}

// CheckoutPhoto is the slice of a photo row the checkout flow needs:
// price, owner, and the owner's connected Stripe account.
type CheckoutPhoto struct {
	ID              uuid.UUID
	Price           float64
	PhotographerID  uuid.UUID
	StripeAccountID sql.NullString
}

type PriceTier struct {
	ID          uuid.UUID
	Name        string
	Price       float64
	Description sql.NullString
}
