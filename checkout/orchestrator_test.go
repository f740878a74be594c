package checkout

import (
	"context"
	"testing"

	"github.com/goliatone/go-paypal-plus/core"
)

type fakePaymentAPI struct {
	created     core.CreatedPayment
	createErr   error
	lastIntent  core.PaymentIntent
	executed    core.ExecutedPayment
	executeErr  error
	lastPayment string
	lastPayer   string
}

func (f *fakePaymentAPI) CreatePayment(ctx context.Context, intent core.PaymentIntent) (core.CreatedPayment, error) {
	f.lastIntent = intent
	if f.createErr != nil {
		return core.CreatedPayment{}, f.createErr
	}
	return f.created, nil
}

func (f *fakePaymentAPI) ExecutePayment(ctx context.Context, paymentID, payerID string) (core.ExecutedPayment, error) {
	f.lastPayment = paymentID
	f.lastPayer = payerID
	if f.executeErr != nil {
		return core.ExecutedPayment{}, f.executeErr
	}
	return f.executed, nil
}

type memoryAnnotationStore struct {
	saved map[string]core.PaymentAnnotation
}

func newMemoryAnnotationStore() *memoryAnnotationStore {
	return &memoryAnnotationStore{saved: map[string]core.PaymentAnnotation{}}
}

func (m *memoryAnnotationStore) Save(ctx context.Context, annotation core.PaymentAnnotation) error {
	m.saved[annotation.OrderID] = annotation
	return nil
}

func (m *memoryAnnotationStore) Load(ctx context.Context, orderID string) (core.PaymentAnnotation, bool, error) {
	annotation, ok := m.saved[orderID]
	return annotation, ok, nil
}

type memoryPreferenceStore struct {
	remembered map[string]string
}

func newMemoryPreferenceStore() *memoryPreferenceStore {
	return &memoryPreferenceStore{remembered: map[string]string{}}
}

func (m *memoryPreferenceStore) SaveRememberedCards(ctx context.Context, customerID, value string) error {
	m.remembered[customerID] = value
	return nil
}

func (m *memoryPreferenceStore) LoadRememberedCards(ctx context.Context, customerID string) (string, bool, error) {
	value, ok := m.remembered[customerID]
	return value, ok, nil
}

type fakeCartResetter struct {
	emptied int
}

func (f *fakeCartResetter) EmptyCart(ctx context.Context) error {
	f.emptied++
	return nil
}

func executedPayment(saleState string) core.ExecutedPayment {
	return core.ExecutedPayment{
		ID:     "PAY-1",
		Intent: "sale",
		State:  "approved",
		Cart:   "CART-1",
		Payer:  core.Payer{Method: "paypal", Status: "VERIFIED"},
		Sale: core.Sale{
			ID:             "SALE-1",
			State:          saleState,
			TransactionFee: "3.21",
		},
		CreatedAt: "2017-06-01T12:00:00Z",
	}
}

func testCart(t *testing.T) core.CheckoutSource {
	t.Helper()
	return core.FromCart(core.CartSnapshot{
		CustomerID: "customer-1",
		Total:      amt(t, "55.00"),
		Subtotal:   amt(t, "50.00"),
		Shipping:   amt(t, "5.00"),
		Items: []core.CheckoutItem{
			{SKU: "sku-1", Name: "Widget", Quantity: 2, LineSubtotal: amt(t, "50.00")},
		},
	})
}

func TestDoPaymentRequest(t *testing.T) {
	api := &fakePaymentAPI{
		created: core.CreatedPayment{ID: "PAY-1", ApprovalURL: "https://www.example/approve"},
	}
	orchestrator, err := NewOrchestrator(api, testBuilder())
	if err != nil {
		t.Fatalf("NewOrchestrator returned error: %v", err)
	}

	created, err := orchestrator.DoPaymentRequest(context.Background(), core.CreatePaymentRequest{
		Buyer:  core.BuyerInfo{FirstName: "Maria", LastName: "Silva"},
		Source: testCart(t),
	})
	if err != nil {
		t.Fatalf("DoPaymentRequest returned error: %v", err)
	}
	if created.ID != "PAY-1" || created.ApprovalURL != "https://www.example/approve" {
		t.Errorf("unexpected created payment: %+v", created)
	}
	if api.lastIntent.ExperienceProfileID != "XP-1" {
		t.Errorf("expected experience profile on intent, got %q", api.lastIntent.ExperienceProfileID)
	}
}

func TestDoPaymentRequestRejected(t *testing.T) {
	api := &fakePaymentAPI{
		createErr: core.ProcessorError("paypal: create payment returned unexpected status", 400, nil, nil),
	}
	orchestrator, err := NewOrchestrator(api, testBuilder())
	if err != nil {
		t.Fatalf("NewOrchestrator returned error: %v", err)
	}

	_, err = orchestrator.DoPaymentRequest(context.Background(), core.CreatePaymentRequest{Source: testCart(t)})
	if err == nil {
		t.Fatal("expected error from rejected creation")
	}
	if !core.IsProcessorError(err) {
		t.Errorf("expected processor error, got %v", err)
	}
}

func TestProcessPaymentCompleted(t *testing.T) {
	api := &fakePaymentAPI{executed: executedPayment("completed")}
	annotations := newMemoryAnnotationStore()
	preferences := newMemoryPreferenceStore()
	cart := &fakeCartResetter{}

	orchestrator, err := NewOrchestrator(api, testBuilder(),
		WithAnnotationStore(annotations),
		WithPreferenceStore(preferences),
		WithCartResetter(cart),
		WithSandbox(true),
	)
	if err != nil {
		t.Fatalf("NewOrchestrator returned error: %v", err)
	}

	result, err := orchestrator.ProcessPayment(context.Background(), core.ExecutePaymentRequest{
		OrderID:       "order-1",
		CustomerID:    "customer-1",
		PaymentID:     "PAY-1",
		PayerID:       "PAYER-1",
		RememberCards: "yes",
	})
	if err != nil {
		t.Fatalf("ProcessPayment returned error: %v", err)
	}
	if result.Status != core.ExecutionCompleted {
		t.Errorf("expected completed, got %s", result.Status)
	}
	if result.Payment == nil || result.Payment.Sale.ID != "SALE-1" {
		t.Errorf("expected full payment payload, got %+v", result.Payment)
	}

	saved, ok := annotations.saved["order-1"]
	if !ok {
		t.Fatal("expected annotation to be persisted")
	}
	if saved.PaymentID != "PAY-1" || saved.SaleID != "SALE-1" || saved.TransactionFee != "3.21" {
		t.Errorf("unexpected annotation: %+v", saved)
	}
	if !saved.Sandbox {
		t.Error("expected sandbox flag on annotation")
	}
	if preferences.remembered["customer-1"] != "yes" {
		t.Errorf("expected remembered cards preference, got %q", preferences.remembered["customer-1"])
	}
	if cart.emptied != 0 {
		t.Errorf("cart must not be emptied on success, emptied %d times", cart.emptied)
	}
}

func TestProcessPaymentDenied(t *testing.T) {
	api := &fakePaymentAPI{executed: executedPayment("denied")}
	annotations := newMemoryAnnotationStore()

	orchestrator, err := NewOrchestrator(api, testBuilder(), WithAnnotationStore(annotations))
	if err != nil {
		t.Fatalf("NewOrchestrator returned error: %v", err)
	}

	result, err := orchestrator.ProcessPayment(context.Background(), core.ExecutePaymentRequest{
		OrderID:   "order-1",
		PaymentID: "PAY-1",
		PayerID:   "PAYER-1",
	})
	if err != nil {
		t.Fatalf("ProcessPayment returned error: %v", err)
	}
	if result.Status != core.ExecutionDenied {
		t.Errorf("expected denied, got %s", result.Status)
	}
	if result.Payment != nil {
		t.Errorf("expected empty payload for denied sale, got %+v", result.Payment)
	}

	saved, ok := annotations.saved["order-1"]
	if !ok {
		t.Fatal("expected annotation even for denied sale")
	}
	if saved.Status != core.ExecutionDenied {
		t.Errorf("expected denied annotation status, got %s", saved.Status)
	}
}

func TestProcessPaymentUnknownSaleState(t *testing.T) {
	api := &fakePaymentAPI{executed: executedPayment("reversed")}
	annotations := newMemoryAnnotationStore()

	orchestrator, err := NewOrchestrator(api, testBuilder(), WithAnnotationStore(annotations))
	if err != nil {
		t.Fatalf("NewOrchestrator returned error: %v", err)
	}

	result, err := orchestrator.ProcessPayment(context.Background(), core.ExecutePaymentRequest{
		OrderID:   "order-1",
		PaymentID: "PAY-1",
		PayerID:   "PAYER-1",
	})
	if err != nil {
		t.Fatalf("ProcessPayment returned error: %v", err)
	}
	if result.Status != core.ExecutionError {
		t.Errorf("expected error status for unknown sale state, got %s", result.Status)
	}
	if result.Payment != nil {
		t.Errorf("expected empty payload for unknown sale state, got %+v", result.Payment)
	}
	if _, ok := annotations.saved["order-1"]; !ok {
		t.Error("expected annotation for accepted execution with unknown state")
	}
}

func TestProcessPaymentPending(t *testing.T) {
	api := &fakePaymentAPI{executed: executedPayment("pending")}
	annotations := newMemoryAnnotationStore()

	orchestrator, err := NewOrchestrator(api, testBuilder(), WithAnnotationStore(annotations))
	if err != nil {
		t.Fatalf("NewOrchestrator returned error: %v", err)
	}

	result, err := orchestrator.ProcessPayment(context.Background(), core.ExecutePaymentRequest{
		OrderID:   "order-1",
		PaymentID: "PAY-1",
		PayerID:   "PAYER-1",
	})
	if err != nil {
		t.Fatalf("ProcessPayment returned error: %v", err)
	}
	if result.Status != core.ExecutionPending {
		t.Errorf("expected pending, got %s", result.Status)
	}
	if result.Payment != nil {
		t.Errorf("expected empty payload for pending sale, got %+v", result.Payment)
	}

	saved, ok := annotations.saved["order-1"]
	if !ok {
		t.Fatal("expected annotation for pending sale")
	}
	if saved.Status != core.ExecutionPending {
		t.Errorf("expected pending annotation status, got %s", saved.Status)
	}
}

func TestProcessPaymentRejectedExecution(t *testing.T) {
	api := &fakePaymentAPI{
		executeErr: core.ProcessorError("paypal: execute payment returned unexpected status", 500, nil, nil),
	}
	annotations := newMemoryAnnotationStore()
	preferences := newMemoryPreferenceStore()
	cart := &fakeCartResetter{}

	orchestrator, err := NewOrchestrator(api, testBuilder(),
		WithAnnotationStore(annotations),
		WithPreferenceStore(preferences),
		WithCartResetter(cart),
	)
	if err != nil {
		t.Fatalf("NewOrchestrator returned error: %v", err)
	}

	result, err := orchestrator.ProcessPayment(context.Background(), core.ExecutePaymentRequest{
		OrderID:       "order-1",
		CustomerID:    "customer-1",
		PaymentID:     "PAY-1",
		PayerID:       "PAYER-1",
		RememberCards: "yes",
	})
	if err == nil {
		t.Fatal("expected error from rejected execution")
	}
	if result.Status != core.ExecutionError {
		t.Errorf("expected error status, got %s", result.Status)
	}
	if result.Payment != nil {
		t.Errorf("expected empty payload, got %+v", result.Payment)
	}
	if len(annotations.saved) != 0 {
		t.Errorf("nothing may be persisted on rejection, got %+v", annotations.saved)
	}
	if len(preferences.remembered) != 0 {
		t.Errorf("no preference writes on rejection, got %+v", preferences.remembered)
	}
	if cart.emptied != 1 {
		t.Errorf("expected cart emptied once, got %d", cart.emptied)
	}
}

func TestProcessPaymentGuestCustomer(t *testing.T) {
	api := &fakePaymentAPI{executed: executedPayment("completed")}
	preferences := newMemoryPreferenceStore()

	orchestrator, err := NewOrchestrator(api, testBuilder(), WithPreferenceStore(preferences))
	if err != nil {
		t.Fatalf("NewOrchestrator returned error: %v", err)
	}

	// Guests have no customer id; the preference write is skipped.
	if _, err := orchestrator.ProcessPayment(context.Background(), core.ExecutePaymentRequest{
		OrderID:       "order-1",
		PaymentID:     "PAY-1",
		PayerID:       "PAYER-1",
		RememberCards: "yes",
	}); err != nil {
		t.Fatalf("ProcessPayment returned error: %v", err)
	}
	if len(preferences.remembered) != 0 {
		t.Errorf("expected no preference writes for guests, got %+v", preferences.remembered)
	}
}

func TestProcessPaymentValidation(t *testing.T) {
	orchestrator, err := NewOrchestrator(&fakePaymentAPI{}, testBuilder())
	if err != nil {
		t.Fatalf("NewOrchestrator returned error: %v", err)
	}

	if _, err := orchestrator.ProcessPayment(context.Background(), core.ExecutePaymentRequest{PayerID: "PAYER-1"}); err == nil {
		t.Error("expected error for missing payment id")
	}
	if _, err := orchestrator.ProcessPayment(context.Background(), core.ExecutePaymentRequest{PaymentID: "PAY-1"}); err == nil {
		t.Error("expected error for missing payer id")
	}
}

func TestProcessPaymentIdempotentAnnotation(t *testing.T) {
	api := &fakePaymentAPI{executed: executedPayment("completed")}
	annotations := newMemoryAnnotationStore()

	orchestrator, err := NewOrchestrator(api, testBuilder(), WithAnnotationStore(annotations))
	if err != nil {
		t.Fatalf("NewOrchestrator returned error: %v", err)
	}

	req := core.ExecutePaymentRequest{OrderID: "order-1", PaymentID: "PAY-1", PayerID: "PAYER-1"}
	if _, err := orchestrator.ProcessPayment(context.Background(), req); err != nil {
		t.Fatalf("first ProcessPayment returned error: %v", err)
	}
	first := annotations.saved["order-1"]
	if _, err := orchestrator.ProcessPayment(context.Background(), req); err != nil {
		t.Fatalf("second ProcessPayment returned error: %v", err)
	}
	second := annotations.saved["order-1"]

	if first != second {
		t.Errorf("expected identical annotations across repeats: %+v vs %+v", first, second)
	}
	if len(annotations.saved) != 1 {
		t.Errorf("expected a single annotation row, got %d", len(annotations.saved))
	}
}
