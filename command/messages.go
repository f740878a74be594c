package command

import (
	"strings"

	"github.com/goliatone/go-paypal-plus/core"
)

const (
	TypeCreatePayment    = "payments.command.payment.create"
	TypeExecutePayment   = "payments.command.payment.execute"
	TypeCreateWebProfile = "payments.command.web_profile.create"
	TypeDeleteWebProfile = "payments.command.web_profile.delete"
)

type CreatePaymentMessage struct {
	Request core.CreatePaymentRequest
}

func (CreatePaymentMessage) Type() string { return TypeCreatePayment }

func (m CreatePaymentMessage) Validate() error {
	if m.Request.Source.IsZero() {
		return commandValidationError("source", "a checkout source is required")
	}
	return nil
}

type ExecutePaymentMessage struct {
	Request core.ExecutePaymentRequest
}

func (ExecutePaymentMessage) Type() string { return TypeExecutePayment }

func (m ExecutePaymentMessage) Validate() error {
	if strings.TrimSpace(m.Request.PaymentID) == "" {
		return commandValidationError("payment_id", "a payment id is required")
	}
	if strings.TrimSpace(m.Request.PayerID) == "" {
		return commandValidationError("payer_id", "a payer id is required")
	}
	return nil
}

type CreateWebProfileMessage struct{}

func (CreateWebProfileMessage) Type() string { return TypeCreateWebProfile }

func (CreateWebProfileMessage) Validate() error { return nil }

type DeleteWebProfileMessage struct {
	ProfileID string
}

func (DeleteWebProfileMessage) Type() string { return TypeDeleteWebProfile }

func (m DeleteWebProfileMessage) Validate() error {
	if strings.TrimSpace(m.ProfileID) == "" {
		return commandValidationError("profile_id", "a profile id is required")
	}
	return nil
}
