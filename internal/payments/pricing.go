package payments

import "math"

// Prices are stored in major currency units (dollars); Stripe wants minor
// units (cents). The platform keeps a flat 10% of every sale.

func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// PlatformFeeMinor is the platform's cut for a single photo, in minor
// units, computed from the major-unit price (10% of price*100).
func PlatformFeeMinor(price float64) int64 {
	return int64(math.Round(price * 10))
}

// AggregateFeeMinor is the authoritative application fee attached to the
// payment intent: 10% of the cart total, rounded once on the sum rather
// than summed per item. This is the only fee figure sent to Stripe.
func AggregateFeeMinor(prices []float64) int64 {
	var sum float64
	for _, price := range prices {
		sum += price
	}
	return int64(math.Round(sum * 10))
}

// PerPhotoAmount distributes a session's amount_total evenly across the
// purchased photos, converting minor to major units. The webhook payload
// carries only photo ids, so an even split is the only distribution
// computable at reconciliation time.
func PerPhotoAmount(amountTotal int64, photoCount int) float64 {
	if photoCount <= 0 {
		return 0
	}
	return float64(amountTotal) / 100.0 / float64(photoCount)
}
