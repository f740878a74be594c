// Package checkout orchestrates the payment lifecycle: building a payment
// intent from an order or cart, sending the buyer through approval, and
// executing plus persisting the outcome on return.
package checkout

import (
	"strings"

	"github.com/goliatone/go-paypal-plus/core"
)

const (
	// DiscountSKU identifies the synthetic negative line carrying the
	// order discount through the processor's item list.
	DiscountSKU = "discount"

	defaultDiscountName = "Discount"
)

// IntentBuilder assembles a create-payment intent from a normalized
// checkout view. The builder carries the static gateway settings so the
// per-request inputs stay minimal.
type IntentBuilder struct {
	Currency            string
	ExperienceProfileID string
	Redirects           core.RedirectURLs
	DiscountName        string
}

// Build derives the intent amounts and line items. Per-line unit price and
// tax divide the line totals by quantity, rounded to two decimals half-up;
// a positive discount adds one quantity-one item at the negated amount.
func (b IntentBuilder) Build(buyer core.BuyerInfo, view core.CheckoutView) (core.PaymentIntent, error) {
	currency := strings.TrimSpace(b.Currency)
	if currency == "" {
		return core.PaymentIntent{}, core.BadInputError("checkout: intent builder requires a currency")
	}
	if len(view.Items) == 0 {
		return core.PaymentIntent{}, core.BadInputError("checkout: checkout view has no items")
	}

	items := make([]core.LineItem, 0, len(view.Items)+1)
	for _, line := range view.Items {
		quantity := line.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		items = append(items, core.LineItem{
			SKU:        line.SKU,
			Name:       line.Name,
			Quantity:   quantity,
			UnitPrice:  core.UnitPrice(line.LineSubtotal, quantity),
			Currency:   currency,
			ProductURL: line.ProductURL,
			Tax:        core.UnitPrice(line.LineTax, quantity),
		})
	}

	if view.Discount.IsPositive() {
		name := strings.TrimSpace(b.DiscountName)
		if name == "" {
			name = defaultDiscountName
		}
		items = append(items, core.LineItem{
			SKU:       DiscountSKU,
			Name:      name,
			Quantity:  1,
			UnitPrice: view.Discount.Neg(),
			Currency:  currency,
		})
	}

	address := view.Address
	if name := buyer.RecipientName(); name != "" {
		address.RecipientName = name
	}
	if line1 := strings.TrimSpace(buyer.ShippingLine1); line1 != "" {
		address.Line1 = line1
	}
	if line2 := strings.TrimSpace(buyer.ShippingLine2); line2 != "" {
		address.Line2 = line2
	}

	return core.PaymentIntent{
		Currency:            currency,
		Total:               view.Total,
		Subtotal:            view.Subtotal,
		Shipping:            view.Shipping,
		Tax:                 view.Tax,
		Items:               items,
		ShippingAddress:     address,
		ExperienceProfileID: strings.TrimSpace(b.ExperienceProfileID),
		Redirects:           b.Redirects,
	}, nil
}
