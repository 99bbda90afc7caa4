package payments

import (
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"raceshot-backend/internal/models"
)

// Service wraps the Stripe API client for checkout, Connect account
// provisioning, and onboarding links. It is constructed once at startup
// and injected into handlers.
type Service struct {
	api     *client.API
	baseURL string
}

func NewService(secretKey, baseURL string) *Service {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &Service{
		api:     api,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type LineItem struct {
	PhotoID    string
	Name       string
	UnitAmount int64
	// Fee is the per-item platform share, kept for bookkeeping and logs.
	// It is never sent to Stripe; the aggregate fee on the payment intent
	// is authoritative.
	Fee int64
}

type CheckoutResult struct {
	SessionID string
	URL       string
}

// BuildLineItems converts photo rows into Stripe line items: one unit per
// photo, priced in minor units.
func BuildLineItems(photos []models.CheckoutPhoto) []LineItem {
	items := make([]LineItem, len(photos))
	for i, photo := range photos {
		items[i] = LineItem{
			PhotoID:    photo.ID.String(),
			Name:       fmt.Sprintf("Race Photo #%s", photo.ID),
			UnitAmount: MinorUnits(photo.Price),
			Fee:        PlatformFeeMinor(photo.Price),
		}
	}
	return items
}

// BuildCheckoutParams assembles the full checkout session request. Funds
// are routed to the connected account of the first photo's photographer;
// carts spanning several photographers still transfer to the first one.
func BuildCheckoutParams(buyerID string, photos []models.CheckoutPhoto, baseURL string) (*stripe.CheckoutSessionParams, error) {
	if len(photos) == 0 {
		return nil, fmt.Errorf("no photos to check out")
	}

	destination := photos[0].StripeAccountID
	if !destination.Valid || destination.String == "" {
		return nil, fmt.Errorf("photographer %s has no connected account", photos[0].PhotographerID)
	}

	items := BuildLineItems(photos)
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, len(items))
	for i, item := range items {
		lineItems[i] = &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyUSD)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(item.UnitAmount),
			},
			Quantity: stripe.Int64(1),
		}
	}

	prices := make([]float64, len(photos))
	photoIDs := make([]string, len(photos))
	for i, photo := range photos {
		prices[i] = photo.Price
		photoIDs[i] = photo.ID.String()
	}

	baseURL = strings.TrimRight(baseURL, "/")
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(baseURL + "/profile?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:          stripe.String(baseURL + "/gallery"),
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			ApplicationFeeAmount: stripe.Int64(AggregateFeeMinor(prices)),
			TransferData: &stripe.CheckoutSessionPaymentIntentDataTransferDataParams{
				Destination: stripe.String(destination.String),
			},
		},
	}
	params.AddMetadata("user_id", buyerID)
	// Photo ids are UUIDs, so the comma join is unambiguous.
	params.AddMetadata("photo_ids", strings.Join(photoIDs, ","))

	return params, nil
}

func (s *Service) CreateCheckoutSession(buyerID string, photos []models.CheckoutPhoto) (*CheckoutResult, error) {
	params, err := BuildCheckoutParams(buyerID, photos, s.baseURL)
	if err != nil {
		return nil, err
	}

	sess, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return &CheckoutResult{
		SessionID: sess.ID,
		URL:       sess.URL,
	}, nil
}
