package paypal

import (
	"strings"

	"github.com/goliatone/go-paypal-plus/core"
)

// Wire schemas for the processor's v1 payment resources. Responses are
// parsed defensively: a missing nested field surfaces as an
// unexpected-state failure, never a panic.

type payerRequest struct {
	PaymentMethod string `json:"payment_method"`
}

type amountDetails struct {
	Subtotal string `json:"subtotal"`
	Shipping string `json:"shipping"`
	Tax      string `json:"tax"`
}

type amount struct {
	Currency string        `json:"currency"`
	Total    string        `json:"total"`
	Details  amountDetails `json:"details"`
}

type paymentOptions struct {
	AllowedPaymentMethod string `json:"allowed_payment_method"`
}

type wireShippingAddress struct {
	RecipientName string `json:"recipient_name"`
	Line1         string `json:"line1"`
	Line2         string `json:"line2,omitempty"`
	City          string `json:"city"`
	CountryCode   string `json:"country_code"`
	PostalCode    string `json:"postal_code"`
	State         string `json:"state"`
}

type wireItem struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
	Currency string `json:"currency"`
	URL      string `json:"url,omitempty"`
	Tax      string `json:"tax,omitempty"`
}

type itemList struct {
	ShippingAddress *wireShippingAddress `json:"shipping_address,omitempty"`
	Items           []wireItem           `json:"items"`
}

type wireTransaction struct {
	Amount         amount         `json:"amount"`
	PaymentOptions paymentOptions `json:"payment_options"`
	ItemList       itemList       `json:"item_list"`
}

type redirectURLs struct {
	ReturnURL string `json:"return_url"`
	CancelURL string `json:"cancel_url"`
}

type createPaymentRequest struct {
	Intent              string            `json:"intent"`
	Payer               payerRequest      `json:"payer"`
	ExperienceProfileID string            `json:"experience_profile_id,omitempty"`
	Transactions        []wireTransaction `json:"transactions"`
	RedirectURLs        redirectURLs      `json:"redirect_urls"`
}

type link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

type payerInfo struct {
	PaymentMethod string `json:"payment_method"`
	Status        string `json:"status"`
}

type currencyValue struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type saleResource struct {
	ID                        string         `json:"id"`
	State                     string         `json:"state"`
	PaymentMode               string         `json:"payment_mode"`
	ProtectionEligibility     string         `json:"protection_eligibility"`
	ProtectionEligibilityType string         `json:"protection_eligibility_type"`
	TransactionFee            *currencyValue `json:"transaction_fee"`
}

type relatedResource struct {
	Sale *saleResource `json:"sale"`
}

type transactionResource struct {
	RelatedResources []relatedResource `json:"related_resources"`
}

type paymentResource struct {
	ID           string                `json:"id"`
	Intent       string                `json:"intent"`
	State        string                `json:"state"`
	Cart         string                `json:"cart"`
	Payer        payerInfo             `json:"payer"`
	Transactions []transactionResource `json:"transactions"`
	Links        []link                `json:"links"`
	CreateTime   string                `json:"create_time"`
}

type executePaymentRequest struct {
	PayerID string `json:"payer_id"`
}

type profilePresentation struct {
	BrandName  string `json:"brand_name"`
	LocaleCode string `json:"locale_code"`
}

type profileInputFields struct {
	NoShipping      int `json:"no_shipping"`
	AddressOverride int `json:"address_override"`
}

type webProfileRequest struct {
	Name         string              `json:"name"`
	Presentation profilePresentation `json:"presentation"`
	InputFields  profileInputFields  `json:"input_fields"`
}

type webProfileResource struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Presentation profilePresentation `json:"presentation"`
	InputFields  profileInputFields  `json:"input_fields"`
}

// sale walks transactions[0].related_resources[0].sale with presence
// checks at each hop.
func (p paymentResource) sale() (saleResource, bool) {
	if len(p.Transactions) == 0 {
		return saleResource{}, false
	}
	related := p.Transactions[0].RelatedResources
	if len(related) == 0 || related[0].Sale == nil {
		return saleResource{}, false
	}
	return *related[0].Sale, true
}

// approvalLink locates the approval redirect by relation name. The
// processor documents lookup-by-rel; the legacy positional links[1]
// access is kept only as a fallback for responses that omit rel values.
func (p paymentResource) approvalLink() (string, bool) {
	for _, l := range p.Links {
		if strings.EqualFold(strings.TrimSpace(l.Rel), "approval_url") {
			return strings.TrimSpace(l.Href), true
		}
	}
	if len(p.Links) > 1 && strings.TrimSpace(p.Links[1].Rel) == "" {
		href := strings.TrimSpace(p.Links[1].Href)
		if href != "" {
			return href, true
		}
	}
	return "", false
}

func (s saleResource) toDomain() core.Sale {
	fee := ""
	if s.TransactionFee != nil {
		fee = strings.TrimSpace(s.TransactionFee.Value)
	}
	return core.Sale{
		ID:                        strings.TrimSpace(s.ID),
		State:                     strings.TrimSpace(s.State),
		PaymentMode:               strings.TrimSpace(s.PaymentMode),
		ProtectionEligibility:     strings.TrimSpace(s.ProtectionEligibility),
		ProtectionEligibilityType: strings.TrimSpace(s.ProtectionEligibilityType),
		TransactionFee:            fee,
	}
}

func (p paymentResource) toExecutedPayment(sale saleResource) core.ExecutedPayment {
	return core.ExecutedPayment{
		ID:     strings.TrimSpace(p.ID),
		Intent: strings.TrimSpace(p.Intent),
		State:  strings.TrimSpace(p.State),
		Cart:   strings.TrimSpace(p.Cart),
		Payer: core.Payer{
			Method: strings.TrimSpace(p.Payer.PaymentMethod),
			Status: strings.TrimSpace(p.Payer.Status),
		},
		Sale:      sale.toDomain(),
		CreatedAt: strings.TrimSpace(p.CreateTime),
	}
}

func boolToFlag(value bool) int {
	if value {
		return 1
	}
	return 0
}

func flagToBool(value int) bool {
	return value != 0
}
