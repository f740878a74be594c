package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func amount(t *testing.T, value string) Amount {
	t.Helper()
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("parse amount %q: %v", value, err)
	}
	return parsed
}

func TestCredentialValidity(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	valid := Credential{AccessToken: "A1", TokenType: "bearer", ExpiresAt: now.Add(time.Minute)}
	if !valid.Valid(now) {
		t.Fatalf("expected credential with future expiry to be valid")
	}

	expired := Credential{AccessToken: "A1", ExpiresAt: now.Add(-time.Second)}
	if expired.Valid(now) {
		t.Fatalf("expected expired credential to be invalid")
	}

	empty := Credential{ExpiresAt: now.Add(time.Minute)}
	if empty.Valid(now) {
		t.Fatalf("expected credential without token to be invalid")
	}

	zeroExpiry := Credential{AccessToken: "A1"}
	if zeroExpiry.Valid(now) {
		t.Fatalf("expected credential without expiry to be invalid")
	}
}

func TestResolveCheckoutSourcePrecedence(t *testing.T) {
	order := OrderSnapshot{ID: "order_1"}
	cart := CartSnapshot{CustomerID: "cust_1"}

	source, err := ResolveCheckoutSource(&order, &cart)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if source.OrderID() != "order_1" {
		t.Fatalf("expected order to win precedence, got order id %q", source.OrderID())
	}

	source, err = ResolveCheckoutSource(&OrderSnapshot{}, &cart)
	if err != nil {
		t.Fatalf("resolve with blank order id: %v", err)
	}
	if source.OrderID() != "" {
		t.Fatalf("expected cart fallback when the order has no id")
	}

	if _, err := ResolveCheckoutSource(nil, nil); err == nil {
		t.Fatalf("expected empty source to fail")
	}
}

func TestOrderViewNormalization(t *testing.T) {
	order := OrderSnapshot{
		ID:          "order_9",
		CustomerID:  " cust_9 ",
		Total:       amount(t, "113.00"),
		Subtotal:    amount(t, "110.00"),
		Discount:    amount(t, "10.00"),
		Shipping:    amount(t, "10.00"),
		ShippingTax: amount(t, "2.00"),
		OrderTax:    amount(t, "1.00"),
		Items:       []CheckoutItem{{SKU: "sku-1", Quantity: 2}},
	}

	view, err := FromOrder(order).View()
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if view.CustomerID != "cust_9" {
		t.Fatalf("expected trimmed customer id, got %q", view.CustomerID)
	}
	if got := MoneyString(view.Subtotal); got != "100.00" {
		t.Fatalf("expected discount-adjusted subtotal 100.00, got %s", got)
	}
	if got := MoneyString(view.Tax); got != "3.00" {
		t.Fatalf("expected shipping tax folded into tax 3.00, got %s", got)
	}
	if len(view.Items) != 1 || view.Items[0].SKU != "sku-1" {
		t.Fatalf("expected items carried over, got %+v", view.Items)
	}
}

func TestCartViewNormalization(t *testing.T) {
	cart := CartSnapshot{
		CustomerID:  "cust_3",
		Total:       amount(t, "58.00"),
		Subtotal:    amount(t, "50.00"),
		Discount:    amount(t, "5.00"),
		Shipping:    amount(t, "10.00"),
		ShippingTax: amount(t, "1.50"),
		Tax:         amount(t, "1.50"),
	}

	view, err := FromCart(cart).View()
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if got := MoneyString(view.Subtotal); got != "45.00" {
		t.Fatalf("expected discount-adjusted subtotal 45.00, got %s", got)
	}
	if got := MoneyString(view.Tax); got != "3.00" {
		t.Fatalf("expected cart tax plus shipping tax 3.00, got %s", got)
	}

	if _, err := (CheckoutSource{}).View(); err == nil {
		t.Fatalf("expected empty source view to fail")
	}
}

func TestExecutionStatusFromSaleState(t *testing.T) {
	cases := []struct {
		state string
		want  ExecutionStatus
	}{
		{"completed", ExecutionCompleted},
		{" Completed ", ExecutionCompleted},
		{"pending", ExecutionPending},
		{"denied", ExecutionDenied},
		{"reversed", ExecutionError},
		{"", ExecutionError},
	}
	for _, tc := range cases {
		if got := ExecutionStatusFromSaleState(tc.state); got != tc.want {
			t.Fatalf("ExecutionStatusFromSaleState(%q) = %q, want %q", tc.state, got, tc.want)
		}
	}
}

func TestBuyerRecipientName(t *testing.T) {
	buyer := BuyerInfo{FirstName: " Maria ", LastName: " Silva "}
	if got := buyer.RecipientName(); got != "Maria Silva" {
		t.Fatalf("expected trimmed recipient name, got %q", got)
	}
	if got := (BuyerInfo{FirstName: "Maria"}).RecipientName(); got != "Maria" {
		t.Fatalf("expected single name without trailing space, got %q", got)
	}
}
