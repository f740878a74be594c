// Package query exposes the read side of the gateway as typed go-command
// queries over the annotation and preference stores.
package query

import (
	"context"

	"github.com/goliatone/go-paypal-plus/core"
)

// AnnotationResult pairs the stored annotation with a found flag so
// absence stays distinguishable from a zero row.
type AnnotationResult struct {
	Annotation core.PaymentAnnotation
	Found      bool
}

type RememberedCardsResult struct {
	Value string
	Found bool
}

type LoadPaymentAnnotationQuery struct {
	reader core.AnnotationStore
}

func NewLoadPaymentAnnotationQuery(reader core.AnnotationStore) *LoadPaymentAnnotationQuery {
	return &LoadPaymentAnnotationQuery{reader: reader}
}

func (q *LoadPaymentAnnotationQuery) Query(ctx context.Context, msg LoadPaymentAnnotationMessage) (AnnotationResult, error) {
	if q == nil || q.reader == nil {
		return AnnotationResult{}, queryDependencyError("query: annotation store is required")
	}
	annotation, found, err := q.reader.Load(ctx, msg.OrderID)
	if err != nil {
		return AnnotationResult{}, err
	}
	return AnnotationResult{Annotation: annotation, Found: found}, nil
}

type LoadRememberedCardsQuery struct {
	reader core.PreferenceStore
}

func NewLoadRememberedCardsQuery(reader core.PreferenceStore) *LoadRememberedCardsQuery {
	return &LoadRememberedCardsQuery{reader: reader}
}

func (q *LoadRememberedCardsQuery) Query(ctx context.Context, msg LoadRememberedCardsMessage) (RememberedCardsResult, error) {
	if q == nil || q.reader == nil {
		return RememberedCardsResult{}, queryDependencyError("query: preference store is required")
	}
	value, found, err := q.reader.LoadRememberedCards(ctx, msg.CustomerID)
	if err != nil {
		return RememberedCardsResult{}, err
	}
	return RememberedCardsResult{Value: value, Found: found}, nil
}
