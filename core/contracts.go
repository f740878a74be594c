package core

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

// TokenSource hands out a valid bearer credential, refreshing through the
// processor's token endpoint only when the cached one has expired.
type TokenSource interface {
	Token(ctx context.Context) (Credential, error)
	Invalidate()
}

type TransportRequest struct {
	Method      string
	URL         string
	Headers     map[string]string
	Query       map[string]string
	Body        []byte
	Metadata    map[string]any
	Timeout     time.Duration
	Idempotency string
}

type TransportResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Metadata   map[string]any
}

type TransportAdapter interface {
	Kind() string
	Do(ctx context.Context, req TransportRequest) (TransportResponse, error)
}

// AnnotationStore persists the processor identifiers and payment state
// against an order record. Save is an idempotent overwrite of the fixed
// attribute set; Load reports absence without error.
type AnnotationStore interface {
	Save(ctx context.Context, annotation PaymentAnnotation) error
	Load(ctx context.Context, orderID string) (PaymentAnnotation, bool, error)
}

// PreferenceStore keeps per-customer gateway preferences, currently the
// remembered-cards flag written after execution for registered customers.
type PreferenceStore interface {
	SaveRememberedCards(ctx context.Context, customerID string, value string) error
	LoadRememberedCards(ctx context.Context, customerID string) (string, bool, error)
}

// CartResetter empties the active cart; the orchestrator invokes it as a
// defensive reset when an execution fails hard.
type CartResetter interface {
	EmptyCart(ctx context.Context) error
}

// StoreProvider is what a repository factory yields after wiring stores to
// a database.
type StoreProvider interface {
	AnnotationStore() AnnotationStore
	PreferenceStore() PreferenceStore
}

type RepositoryStoreFactory interface {
	BuildStores(persistenceClient any) (StoreProvider, error)
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

// JobExecutionMessage is the transport-neutral shape background work is
// enqueued as (token prewarm, profile reconciliation).
type JobExecutionMessage struct {
	JobID          string
	Parameters     map[string]any
	IdempotencyKey string
	DedupPolicy    string
}

type JobNackOptions struct {
	Delay      time.Duration
	Requeue    bool
	DeadLetter bool
	Reason     string
}

type JobDelivery interface {
	Message() *JobExecutionMessage
	Ack(ctx context.Context) error
	Nack(ctx context.Context, opts JobNackOptions) error
}

type JobEnqueuer interface {
	Enqueue(ctx context.Context, msg *JobExecutionMessage) error
}

type JobDequeuer interface {
	Dequeue(ctx context.Context) (JobDelivery, error)
}
