package checkout

import (
	"context"
	"strings"
	"time"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-paypal-plus/core"
)

// PaymentAPI is the slice of the processor client the orchestrator needs.
type PaymentAPI interface {
	CreatePayment(ctx context.Context, intent core.PaymentIntent) (core.CreatedPayment, error)
	ExecutePayment(ctx context.Context, paymentID, payerID string) (core.ExecutedPayment, error)
}

// Orchestrator drives a checkout attempt through its three stages:
// intent creation, buyer approval (out of band), and execution with
// persistence of the outcome.
type Orchestrator struct {
	api         PaymentAPI
	builder     IntentBuilder
	annotations core.AnnotationStore
	preferences core.PreferenceStore
	cart        core.CartResetter
	sandbox     bool
	logger      core.Logger
	metrics     core.MetricsRecorder
	now         func() time.Time
}

type OrchestratorOption func(*Orchestrator)

func WithAnnotationStore(store core.AnnotationStore) OrchestratorOption {
	return func(o *Orchestrator) {
		o.annotations = store
	}
}

func WithPreferenceStore(store core.PreferenceStore) OrchestratorOption {
	return func(o *Orchestrator) {
		o.preferences = store
	}
}

func WithCartResetter(resetter core.CartResetter) OrchestratorOption {
	return func(o *Orchestrator) {
		o.cart = resetter
	}
}

func WithSandbox(sandbox bool) OrchestratorOption {
	return func(o *Orchestrator) {
		o.sandbox = sandbox
	}
}

func WithLogger(logger core.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

func WithMetricsRecorder(metrics core.MetricsRecorder) OrchestratorOption {
	return func(o *Orchestrator) {
		o.metrics = metrics
	}
}

func WithNowFunc(now func() time.Time) OrchestratorOption {
	return func(o *Orchestrator) {
		o.now = now
	}
}

func NewOrchestrator(api PaymentAPI, builder IntentBuilder, options ...OrchestratorOption) (*Orchestrator, error) {
	if api == nil {
		return nil, core.BadInputError("checkout: payment api is required")
	}

	orchestrator := &Orchestrator{
		api:     api,
		builder: builder,
		metrics: core.NopMetricsRecorder{},
		now:     time.Now,
	}
	for _, option := range options {
		option(orchestrator)
	}
	_, orchestrator.logger = glog.Resolve("paypalplus.checkout", nil, orchestrator.logger)
	if orchestrator.metrics == nil {
		orchestrator.metrics = core.NopMetricsRecorder{}
	}
	if orchestrator.now == nil {
		orchestrator.now = time.Now
	}
	return orchestrator, nil
}

// DoPaymentRequest builds the intent from the resolved checkout source and
// registers it with the processor. The returned payment is ephemeral: only
// the approval URL matters until the buyer comes back.
func (o *Orchestrator) DoPaymentRequest(ctx context.Context, req core.CreatePaymentRequest) (core.CreatedPayment, error) {
	started := o.now()

	if req.Source.IsZero() {
		return core.CreatedPayment{}, core.BadInputError("checkout: payment request requires a checkout source")
	}
	view, err := req.Source.View()
	if err != nil {
		return core.CreatedPayment{}, core.BadInputError("checkout: " + err.Error())
	}

	intent, err := o.builder.Build(req.Buyer, view)
	if err != nil {
		return core.CreatedPayment{}, err
	}

	created, err := o.api.CreatePayment(ctx, intent)
	o.observe(ctx, "payments.create", started, err == nil)
	if err != nil {
		o.logger.Error("payment creation failed",
			"order_id", req.Source.OrderID(),
			"error", err.Error(),
		)
		return core.CreatedPayment{}, err
	}

	o.logger.Info("payment created",
		"payment_id", created.ID,
		"order_id", req.Source.OrderID(),
	)
	return created, nil
}

// ProcessPayment executes an approved payment and records the outcome.
// On a processor-accepted execution the annotation is written for every
// state branch; a rejected execution persists nothing, empties the cart,
// and reports the error status to the storefront.
func (o *Orchestrator) ProcessPayment(ctx context.Context, req core.ExecutePaymentRequest) (core.ExecutionResult, error) {
	started := o.now()

	if strings.TrimSpace(req.PaymentID) == "" {
		return core.ExecutionResult{Status: core.ExecutionError}, core.BadInputError("checkout: payment id is required")
	}
	if strings.TrimSpace(req.PayerID) == "" {
		return core.ExecutionResult{Status: core.ExecutionError}, core.BadInputError("checkout: payer id is required")
	}

	payment, err := o.api.ExecutePayment(ctx, req.PaymentID, req.PayerID)
	o.observe(ctx, "payments.execute", started, err == nil)
	if err != nil {
		o.logger.Error("payment execution failed",
			"order_id", req.OrderID,
			"payment_id", req.PaymentID,
			"error", err.Error(),
		)
		o.resetCart(ctx, req.OrderID)
		return core.ExecutionResult{Status: core.ExecutionError}, err
	}

	status := core.ExecutionStatusFromSaleState(payment.Sale.State)
	if status == core.ExecutionError {
		o.logger.Warn("payment executed with unknown sale state",
			"order_id", req.OrderID,
			"payment_id", payment.ID,
			"sale_state", payment.Sale.State,
		)
	} else {
		o.logger.Info("payment executed",
			"order_id", req.OrderID,
			"payment_id", payment.ID,
			"sale_id", payment.Sale.ID,
			"sale_state", payment.Sale.State,
		)
	}

	o.persistOutcome(ctx, req, payment, status)

	// Only a completed sale hands the payload back to the storefront;
	// pending, denied, and unknown states return empty data.
	result := core.ExecutionResult{Status: status}
	if status == core.ExecutionCompleted {
		result.Payment = &payment
	}
	return result, nil
}

// persistOutcome writes the annotation and preference rows. Persistence
// failures are logged and swallowed: the money already moved, the
// storefront result must not flip to an error over a local write.
func (o *Orchestrator) persistOutcome(ctx context.Context, req core.ExecutePaymentRequest, payment core.ExecutedPayment, status core.ExecutionStatus) {
	if o.annotations != nil && strings.TrimSpace(req.OrderID) != "" {
		annotation := core.PaymentAnnotation{
			OrderID:        req.OrderID,
			PaymentID:      payment.ID,
			SaleID:         payment.Sale.ID,
			TransactionFee: payment.Sale.TransactionFee,
			Status:         status,
			Sandbox:        o.sandbox,
			Payment:        payment,
		}
		if err := o.annotations.Save(ctx, annotation); err != nil {
			o.logger.Error("payment annotation write failed",
				"order_id", req.OrderID,
				"payment_id", payment.ID,
				"error", err.Error(),
			)
		}
	}

	if o.preferences != nil && strings.TrimSpace(req.CustomerID) != "" && strings.TrimSpace(req.RememberCards) != "" {
		if err := o.preferences.SaveRememberedCards(ctx, req.CustomerID, req.RememberCards); err != nil {
			o.logger.Error("remembered cards write failed",
				"customer_id", req.CustomerID,
				"error", err.Error(),
			)
		}
	}
}

func (o *Orchestrator) resetCart(ctx context.Context, orderID string) {
	if o.cart == nil {
		return
	}
	if err := o.cart.EmptyCart(ctx); err != nil {
		o.logger.Error("cart reset failed",
			"order_id", orderID,
			"error", err.Error(),
		)
	}
}

func (o *Orchestrator) observe(ctx context.Context, operation string, started time.Time, success bool) {
	tags := map[string]string{"success": "false"}
	if success {
		tags["success"] = "true"
	}
	o.metrics.IncCounter(ctx, operation+".total", 1, tags)
	o.metrics.ObserveHistogram(ctx, operation+".duration_ms", float64(o.now().Sub(started))/float64(time.Millisecond), tags)
}
