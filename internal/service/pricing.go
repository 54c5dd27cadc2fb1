package service

import (
	"fmt"

	"delicassy/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	baseShipping         = decimal.RequireFromString("9.00")
	shippingPerFragility = decimal.RequireFromString("2.50")
	insuranceBaseRate    = decimal.RequireFromString("0.02")
	insuranceStepRate    = decimal.RequireFromString("0.02")
	premiumPackagingFee  = decimal.RequireFromString("14.00")
)

// PricedLine is a cart line joined with the product's price and fragility
type PricedLine struct {
	Price     decimal.Decimal
	Quantity  int
	Fragility int
}

// Quote is the breakdown of an order total. Every amount except the
// subtotal is rounded to cents, half away from zero.
type Quote struct {
	Subtotal     decimal.Decimal
	AvgFragility decimal.Decimal
	Insurance    decimal.Decimal
	PackagingFee decimal.Decimal
	Shipping     decimal.Decimal
	Total        decimal.Decimal
}

// PriceLines computes the order amounts. Fragility is averaged per line,
// not per unit. An empty line set is priced at the base rates.
func PriceLines(lines []PricedLine, shipping domain.ShippingOption) Quote {
	one := decimal.NewFromInt(1)

	subtotal := decimal.Zero
	fragilitySum := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		fragilitySum = fragilitySum.Add(decimal.NewFromInt(int64(line.Fragility)))
	}

	avg := one
	if len(lines) > 0 {
		avg = fragilitySum.Div(decimal.NewFromInt(int64(len(lines))))
	}

	insurance := decimal.Zero
	if shipping.Insured {
		rate := insuranceBaseRate.Add(insuranceStepRate.Mul(avg.Sub(one)))
		insurance = subtotal.Mul(rate).Round(2)
	}

	fee := decimal.Zero
	if shipping.PremiumPackaging {
		fee = premiumPackagingFee
	}

	shippingCost := baseShipping.Add(avg.Sub(one).Mul(shippingPerFragility)).Round(2)

	return Quote{
		Subtotal:     subtotal,
		AvgFragility: avg,
		Insurance:    insurance,
		PackagingFee: fee,
		Shipping:     shippingCost,
		Total:        subtotal.Add(shippingCost).Add(insurance).Add(fee).Round(2),
	}
}

// EstimateDelivery gives the delivery window in business days. More
// fragile parcels travel on slower, gentler routes.
func EstimateDelivery(avgFragility decimal.Decimal) string {
	switch {
	case avgFragility.LessThanOrEqual(decimal.NewFromInt(2)):
		return deliveryWindow(3, 5)
	case avgFragility.LessThanOrEqual(decimal.NewFromInt(4)):
		return deliveryWindow(5, 7)
	default:
		return deliveryWindow(7, 10)
	}
}

func deliveryWindow(from, to int) string {
	return fmt.Sprintf("%d-%d business days", from, to)
}
