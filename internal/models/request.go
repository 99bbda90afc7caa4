package models

type CheckoutItem struct {
	ID string `json:"id"`
}

type CheckoutRequest struct {
	Photos []CheckoutItem `json:"photos"`
}
