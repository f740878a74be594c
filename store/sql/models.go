package sqlstore

import (
	"strings"
	"time"

	"github.com/goliatone/go-paypal-plus/core"
	"github.com/uptrace/bun"
)

type annotationPayload struct {
	ID          string `json:"id"`
	Intent      string `json:"intent"`
	State       string `json:"state"`
	Cart        string `json:"cart"`
	PayerMethod string `json:"payer_method"`
	PayerStatus string `json:"payer_status"`
	Sale        struct {
		ID                        string `json:"id"`
		State                     string `json:"state"`
		PaymentMode               string `json:"payment_mode"`
		ProtectionEligibility     string `json:"protection_eligibility"`
		ProtectionEligibilityType string `json:"protection_eligibility_type"`
		TransactionFee            string `json:"transaction_fee"`
	} `json:"sale"`
	CreatedAt string `json:"created_at"`
}

// paymentAnnotationRecord keeps one row per order. Save overwrites the
// fixed attribute set, last write wins.
type paymentAnnotationRecord struct {
	bun.BaseModel `bun:"table:payment_annotations,alias:pa"`

	ID             string            `bun:"id,pk"`
	OrderID        string            `bun:"order_id,notnull"`
	PaymentID      string            `bun:"payment_id,notnull"`
	SaleID         string            `bun:"sale_id,notnull"`
	TransactionFee string            `bun:"transaction_fee"`
	Status         string            `bun:"status,notnull"`
	Sandbox        bool              `bun:"sandbox,notnull"`
	Payload        annotationPayload `bun:"payload,type:jsonb,notnull"`
	CreatedAt      time.Time         `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt      time.Time         `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type buyerPreferenceRecord struct {
	bun.BaseModel `bun:"table:buyer_preferences,alias:bp"`

	ID              string    `bun:"id,pk"`
	CustomerID      string    `bun:"customer_id,notnull"`
	RememberedCards string    `bun:"remembered_cards,notnull"`
	CreatedAt       time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt       time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func toAnnotationPayload(payment core.ExecutedPayment) annotationPayload {
	payload := annotationPayload{
		ID:          payment.ID,
		Intent:      payment.Intent,
		State:       payment.State,
		Cart:        payment.Cart,
		PayerMethod: payment.Payer.Method,
		PayerStatus: payment.Payer.Status,
		CreatedAt:   payment.CreatedAt,
	}
	payload.Sale.ID = payment.Sale.ID
	payload.Sale.State = payment.Sale.State
	payload.Sale.PaymentMode = payment.Sale.PaymentMode
	payload.Sale.ProtectionEligibility = payment.Sale.ProtectionEligibility
	payload.Sale.ProtectionEligibilityType = payment.Sale.ProtectionEligibilityType
	payload.Sale.TransactionFee = payment.Sale.TransactionFee
	return payload
}

func (p annotationPayload) toDomain() core.ExecutedPayment {
	return core.ExecutedPayment{
		ID:     p.ID,
		Intent: p.Intent,
		State:  p.State,
		Cart:   p.Cart,
		Payer: core.Payer{
			Method: p.PayerMethod,
			Status: p.PayerStatus,
		},
		Sale: core.Sale{
			ID:                        p.Sale.ID,
			State:                     p.Sale.State,
			PaymentMode:               p.Sale.PaymentMode,
			ProtectionEligibility:     p.Sale.ProtectionEligibility,
			ProtectionEligibilityType: p.Sale.ProtectionEligibilityType,
			TransactionFee:            p.Sale.TransactionFee,
		},
		CreatedAt: p.CreatedAt,
	}
}

func (r *paymentAnnotationRecord) toDomain() core.PaymentAnnotation {
	if r == nil {
		return core.PaymentAnnotation{}
	}
	return core.PaymentAnnotation{
		OrderID:        strings.TrimSpace(r.OrderID),
		PaymentID:      strings.TrimSpace(r.PaymentID),
		SaleID:         strings.TrimSpace(r.SaleID),
		TransactionFee: strings.TrimSpace(r.TransactionFee),
		Status:         core.ExecutionStatus(strings.TrimSpace(r.Status)),
		Sandbox:        r.Sandbox,
		Payment:        r.Payload.toDomain(),
	}
}
