package paypal

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/goliatone/go-paypal-plus/core"
)

// CreatePayment registers a payment intent with the processor and returns
// the payment id plus the approval URL the buyer is redirected to.
func (c *Client) CreatePayment(ctx context.Context, intent core.PaymentIntent) (core.CreatedPayment, error) {
	if len(intent.Items) == 0 {
		return core.CreatedPayment{}, core.BadInputError("paypal: payment intent requires at least one item")
	}
	if strings.TrimSpace(intent.Currency) == "" {
		return core.CreatedPayment{}, core.BadInputError("paypal: payment intent requires a currency")
	}

	endpoint := c.endpoints.Payments()
	res, err := c.authenticatedRequest(ctx, http.MethodPost, endpoint, buildCreatePaymentRequest(intent))
	if err != nil {
		return core.CreatedPayment{}, err
	}
	if res.StatusCode != http.StatusCreated {
		return core.CreatedPayment{}, statusError("create payment", endpoint, res)
	}

	var resource paymentResource
	if err := json.Unmarshal(res.Body, &resource); err != nil {
		return core.CreatedPayment{}, core.UnexpectedStateError(
			"paypal: decode create payment response",
			map[string]any{"endpoint": endpoint, "error": err.Error()},
		)
	}
	if strings.TrimSpace(resource.ID) == "" {
		return core.CreatedPayment{}, core.UnexpectedStateError(
			"paypal: create payment response is missing the payment id",
			map[string]any{"endpoint": endpoint},
		)
	}
	approvalURL, ok := resource.approvalLink()
	if !ok {
		return core.CreatedPayment{}, core.UnexpectedStateError(
			"paypal: create payment response has no approval link",
			map[string]any{"endpoint": endpoint, "payment_id": resource.ID},
		)
	}

	return core.CreatedPayment{
		ID:          strings.TrimSpace(resource.ID),
		ApprovalURL: approvalURL,
	}, nil
}

// ExecutePayment finalizes an approved payment. The returned payment
// carries the first sale of the first transaction; a response without one
// is outside the contract and fails as an unexpected state.
func (c *Client) ExecutePayment(ctx context.Context, paymentID, payerID string) (core.ExecutedPayment, error) {
	paymentID = strings.TrimSpace(paymentID)
	payerID = strings.TrimSpace(payerID)
	if paymentID == "" {
		return core.ExecutedPayment{}, core.BadInputError("paypal: payment id is required")
	}
	if payerID == "" {
		return core.ExecutedPayment{}, core.BadInputError("paypal: payer id is required")
	}

	endpoint := c.endpoints.PaymentExecute(paymentID)
	res, err := c.authenticatedRequest(ctx, http.MethodPost, endpoint, executePaymentRequest{PayerID: payerID})
	if err != nil {
		return core.ExecutedPayment{}, err
	}
	if res.StatusCode != http.StatusOK {
		return core.ExecutedPayment{}, statusError("execute payment", endpoint, res)
	}

	var resource paymentResource
	if err := json.Unmarshal(res.Body, &resource); err != nil {
		return core.ExecutedPayment{}, core.UnexpectedStateError(
			"paypal: decode execute payment response",
			map[string]any{"endpoint": endpoint, "payment_id": paymentID, "error": err.Error()},
		)
	}
	sale, ok := resource.sale()
	if !ok {
		return core.ExecutedPayment{}, core.UnexpectedStateError(
			"paypal: execute payment response has no sale",
			map[string]any{"endpoint": endpoint, "payment_id": paymentID},
		)
	}
	if strings.TrimSpace(sale.State) == "" {
		return core.ExecutedPayment{}, core.UnexpectedStateError(
			"paypal: execute payment sale has no state",
			map[string]any{"endpoint": endpoint, "payment_id": paymentID, "sale_id": sale.ID},
		)
	}

	return resource.toExecutedPayment(sale), nil
}

func buildCreatePaymentRequest(intent core.PaymentIntent) createPaymentRequest {
	items := make([]wireItem, 0, len(intent.Items))
	for _, item := range intent.Items {
		wire := wireItem{
			SKU:      item.SKU,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    core.MoneyString(item.UnitPrice),
			Currency: item.Currency,
			URL:      item.ProductURL,
		}
		if !item.Tax.IsZero() {
			wire.Tax = core.MoneyString(item.Tax)
		}
		items = append(items, wire)
	}

	var address *wireShippingAddress
	if strings.TrimSpace(intent.ShippingAddress.Line1) != "" {
		address = &wireShippingAddress{
			RecipientName: intent.ShippingAddress.RecipientName,
			Line1:         intent.ShippingAddress.Line1,
			Line2:         intent.ShippingAddress.Line2,
			City:          intent.ShippingAddress.City,
			CountryCode:   intent.ShippingAddress.CountryCode,
			PostalCode:    intent.ShippingAddress.PostalCode,
			State:         intent.ShippingAddress.State,
		}
	}

	return createPaymentRequest{
		Intent:              "sale",
		Payer:               payerRequest{PaymentMethod: "paypal"},
		ExperienceProfileID: strings.TrimSpace(intent.ExperienceProfileID),
		Transactions: []wireTransaction{{
			Amount: amount{
				Currency: intent.Currency,
				Total:    core.MoneyString(intent.Total),
				Details: amountDetails{
					Subtotal: core.MoneyString(intent.Subtotal),
					Shipping: core.MoneyString(intent.Shipping),
					Tax:      core.MoneyString(intent.Tax),
				},
			},
			PaymentOptions: paymentOptions{AllowedPaymentMethod: "IMMEDIATE_PAY"},
			ItemList: itemList{
				ShippingAddress: address,
				Items:           items,
			},
		}},
		RedirectURLs: redirectURLs{
			ReturnURL: intent.Redirects.ReturnURL,
			CancelURL: intent.Redirects.CancelURL,
		},
	}
}
