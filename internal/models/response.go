package models

import "time"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ClientConfigResponse struct {
	StripePublishableKey string `json:"stripe_publishable_key"`
}

type CheckoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

type ConnectAccountResponse struct {
	URL string `json:"url"`
}

type WebhookResponse struct {
	Received bool `json:"received"`
}

type ProfileResponse struct {
	ID                  string `json:"id"`
	Username            string `json:"username"`
	StripeAccountID     string `json:"stripe_account_id,omitempty"`
	StripeAccountStatus string `json:"stripe_account_status"`
}

type PhotoResponse struct {
	ID             string    `json:"id"`
	PhotographerID string    `json:"photographer_id"`
	EventName      string    `json:"event_name,omitempty"`
	Price          float64   `json:"price"`
	BibNumbers     []string  `json:"bib_numbers"`
	PreviewURL     string    `json:"preview_url"`
	CreatedAt      time.Time `json:"created_at"`
}

type PhotoListResponse struct {
	Photos []PhotoResponse `json:"photos"`
}

type UploadPhotoResponse struct {
	Photo      PhotoResponse `json:"photo"`
	BibNumbers []string      `json:"bib_numbers"`
}

type PurchaseResponse struct {
	PhotoID             string    `json:"photo_id"`
	Amount              float64   `json:"amount"`
	StripePaymentIntent string    `json:"stripe_payment_intent"`
	CreatedAt           time.Time `json:"created_at"`
}

type PurchaseListResponse struct {
	Purchases []PurchaseResponse `json:"purchases"`
}

type PriceTierResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}
