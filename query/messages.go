package query

import (
	"fmt"
	"strings"
)

const (
	TypeLoadPaymentAnnotation = "payments.query.annotation.load"
	TypeLoadRememberedCards   = "payments.query.remembered_cards.load"
)

type LoadPaymentAnnotationMessage struct {
	OrderID string
}

func (LoadPaymentAnnotationMessage) Type() string { return TypeLoadPaymentAnnotation }

func (m LoadPaymentAnnotationMessage) Validate() error {
	if strings.TrimSpace(m.OrderID) == "" {
		return fmt.Errorf("query: order id is required")
	}
	return nil
}

type LoadRememberedCardsMessage struct {
	CustomerID string
}

func (LoadRememberedCardsMessage) Type() string { return TypeLoadRememberedCards }

func (m LoadRememberedCardsMessage) Validate() error {
	if strings.TrimSpace(m.CustomerID) == "" {
		return fmt.Errorf("query: customer id is required")
	}
	return nil
}
