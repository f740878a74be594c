package query

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Querier[LoadPaymentAnnotationMessage, AnnotationResult]    = (*LoadPaymentAnnotationQuery)(nil)
	_ gocmd.Querier[LoadRememberedCardsMessage, RememberedCardsResult] = (*LoadRememberedCardsQuery)(nil)
)
