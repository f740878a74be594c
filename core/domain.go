package core

import (
	"fmt"
	"strings"
	"time"
)

// Credential is a short-lived bearer token issued by the processor's
// client-credentials grant. ExpiresAt already has the configured safety
// margin subtracted; a credential is never handed out past that instant.
type Credential struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

func (c Credential) Valid(now time.Time) bool {
	if strings.TrimSpace(c.AccessToken) == "" {
		return false
	}
	if c.ExpiresAt.IsZero() {
		return false
	}
	return c.ExpiresAt.After(now.UTC())
}

// LineItem is one purchasable line sent with a payment intent. A synthetic
// discount line uses SKU "discount", quantity 1, and a negative unit price.
type LineItem struct {
	SKU        string
	Name       string
	Quantity   int
	UnitPrice  Amount
	Currency   string
	ProductURL string
	Tax        Amount
}

type ShippingAddress struct {
	RecipientName string
	Line1         string
	Line2         string
	City          string
	CountryCode   string
	PostalCode    string
	State         string
}

type RedirectURLs struct {
	ReturnURL string
	CancelURL string
}

// PaymentIntent is the fully assembled create-payment request. It is built
// fresh per checkout attempt and immutable once sent.
type PaymentIntent struct {
	Currency            string
	Total               Amount
	Subtotal            Amount
	Shipping            Amount
	Tax                 Amount
	Items               []LineItem
	ShippingAddress     ShippingAddress
	ExperienceProfileID string
	Redirects           RedirectURLs
}

// CreatedPayment is the ephemeral result of intent creation, used only to
// redirect the buyer to the processor's approval page.
type CreatedPayment struct {
	ID          string
	ApprovalURL string
}

type Payer struct {
	Method string
	Status string
}

// Sale is the processor's record of the money movement tied to an
// executed payment.
type Sale struct {
	ID                        string
	State                     string
	PaymentMode               string
	ProtectionEligibility     string
	ProtectionEligibilityType string
	TransactionFee            string
}

// ExecutedPayment is the durable outcome of a payment execution. It is
// created once, persisted onto the order record, and never mutated.
type ExecutedPayment struct {
	ID        string
	Intent    string
	State     string
	Cart      string
	Payer     Payer
	Sale      Sale
	CreatedAt string
}

// ExecutionStatus is the four-way outcome the storefront branches on:
// pending and denied render distinct messaging, error is the hard-failure
// catch-all.
type ExecutionStatus string

const (
	ExecutionCompleted ExecutionStatus = "completed"
	ExecutionPending   ExecutionStatus = "pending"
	ExecutionDenied    ExecutionStatus = "denied"
	ExecutionError     ExecutionStatus = "error"
)

// ExecutionStatusFromSaleState maps a raw processor sale state onto the
// result enum. Unknown states collapse to ExecutionError; callers log the
// raw string before collapsing.
func ExecutionStatusFromSaleState(state string) ExecutionStatus {
	switch strings.TrimSpace(strings.ToLower(state)) {
	case "completed":
		return ExecutionCompleted
	case "pending":
		return ExecutionPending
	case "denied":
		return ExecutionDenied
	default:
		return ExecutionError
	}
}

// ExecutionResult is what the orchestrator returns to the storefront.
// Payment carries the full processor payload only for completed results.
type ExecutionResult struct {
	Status  ExecutionStatus
	Payment *ExecutedPayment
}

// ExperienceProfilePresentation controls branding on the processor-hosted
// checkout page.
type ExperienceProfilePresentation struct {
	BrandName  string
	LocaleCode string
}

type ExperienceProfileInputFields struct {
	NoShipping      bool
	AddressOverride bool
}

// ExperienceProfile is the reusable checkout-presentation profile
// referenced by id in every payment intent.
type ExperienceProfile struct {
	ID           string
	Name         string
	Presentation ExperienceProfilePresentation
	InputFields  ExperienceProfileInputFields
}

// BuyerInfo is the buyer-entered contact data attached to the shipping
// address of a payment intent.
type BuyerInfo struct {
	FirstName     string
	LastName      string
	ShippingLine1 string
	ShippingLine2 string
}

func (b BuyerInfo) RecipientName() string {
	return strings.TrimSpace(strings.TrimSpace(b.FirstName) + " " + strings.TrimSpace(b.LastName))
}

// CheckoutItem is a normalized order/cart line before unit-price
// derivation: LineSubtotal and LineTax cover the whole quantity.
type CheckoutItem struct {
	SKU          string
	Name         string
	Quantity     int
	LineSubtotal Amount
	LineTax      Amount
	ProductURL   string
}

// OrderSnapshot is a read-only view of an already-placed order being
// (re)paid.
type OrderSnapshot struct {
	ID          string
	CustomerID  string
	Total       Amount
	Subtotal    Amount
	Discount    Amount
	Shipping    Amount
	ShippingTax Amount
	OrderTax    Amount
	Items       []CheckoutItem
	Address     ShippingAddress
}

// CartSnapshot is a read-only view of the active cart.
type CartSnapshot struct {
	CustomerID  string
	Total       Amount
	Subtotal    Amount
	Discount    Amount
	Shipping    Amount
	ShippingTax Amount
	Tax         Amount
	Items       []CheckoutItem
	Address     ShippingAddress
}

// CheckoutView is the single normalized shape both checkout sources reduce
// to; the orchestrator never branches on the source again after this.
type CheckoutView struct {
	CustomerID string
	Total      Amount
	Subtotal   Amount
	Discount   Amount
	Shipping   Amount
	Tax        Amount
	Items      []CheckoutItem
	Address    ShippingAddress
}

// CheckoutSource is a single-case union over the two payment data
// sources. Construct with FromOrder or FromCart; ResolveCheckoutSource
// applies the order-first precedence rule.
type CheckoutSource struct {
	order *OrderSnapshot
	cart  *CartSnapshot
}

func FromOrder(order OrderSnapshot) CheckoutSource {
	return CheckoutSource{order: &order}
}

func FromCart(cart CartSnapshot) CheckoutSource {
	return CheckoutSource{cart: &cart}
}

// ResolveCheckoutSource picks the order when one with an id is present,
// otherwise the cart.
func ResolveCheckoutSource(order *OrderSnapshot, cart *CartSnapshot) (CheckoutSource, error) {
	if order != nil && strings.TrimSpace(order.ID) != "" {
		return FromOrder(*order), nil
	}
	if cart != nil {
		return FromCart(*cart), nil
	}
	return CheckoutSource{}, fmt.Errorf("core: checkout source requires an order or a cart")
}

func (s CheckoutSource) IsZero() bool {
	return s.order == nil && s.cart == nil
}

// OrderID returns the order id when the source is an order, empty
// otherwise.
func (s CheckoutSource) OrderID() string {
	if s.order == nil {
		return ""
	}
	return strings.TrimSpace(s.order.ID)
}

// View normalizes the source. Order subtotals already separate discount;
// carts report the subtotal excluding tax with the cart discount alongside,
// and the view's tax folds shipping tax into the order/cart tax the way the
// processor's amount details expect.
func (s CheckoutSource) View() (CheckoutView, error) {
	switch {
	case s.order != nil:
		return CheckoutView{
			CustomerID: strings.TrimSpace(s.order.CustomerID),
			Total:      s.order.Total,
			Subtotal:   s.order.Subtotal.Sub(s.order.Discount),
			Discount:   s.order.Discount,
			Shipping:   s.order.Shipping,
			Tax:        s.order.ShippingTax.Add(s.order.OrderTax),
			Items:      append([]CheckoutItem(nil), s.order.Items...),
			Address:    s.order.Address,
		}, nil
	case s.cart != nil:
		return CheckoutView{
			CustomerID: strings.TrimSpace(s.cart.CustomerID),
			Total:      s.cart.Total,
			Subtotal:   s.cart.Subtotal.Sub(s.cart.Discount),
			Discount:   s.cart.Discount,
			Shipping:   s.cart.Shipping,
			Tax:        s.cart.ShippingTax.Add(s.cart.Tax),
			Items:      append([]CheckoutItem(nil), s.cart.Items...),
			Address:    s.cart.Address,
		}, nil
	default:
		return CheckoutView{}, fmt.Errorf("core: checkout source is empty")
	}
}

// PaymentAnnotation is the fixed attribute set persisted against an order
// record after execution. Last write wins; the store trusts the
// orchestrator's data.
type PaymentAnnotation struct {
	OrderID        string
	PaymentID      string
	SaleID         string
	TransactionFee string
	Status         ExecutionStatus
	Sandbox        bool
	Payment        ExecutedPayment
}

// CreatePaymentRequest begins a checkout attempt.
type CreatePaymentRequest struct {
	Buyer  BuyerInfo
	Source CheckoutSource
}

// ExecutePaymentRequest finalizes a previously approved payment after the
// buyer returns from the redirect.
type ExecutePaymentRequest struct {
	OrderID       string
	CustomerID    string
	PaymentID     string
	PayerID       string
	RememberCards string
}
