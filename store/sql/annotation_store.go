// Package sqlstore backs the gateway's persistence contracts with bun
// repositories over the payment_annotations and buyer_preferences tables.
package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-paypal-plus/core"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type AnnotationStore struct {
	db   *bun.DB
	repo repository.Repository[*paymentAnnotationRecord]
}

// Save upserts the annotation row keyed by order id. An existing row is
// overwritten in place, so replays of the same execution are idempotent.
func (s *AnnotationStore) Save(ctx context.Context, annotation core.PaymentAnnotation) error {
	if s == nil || s.repo == nil || s.db == nil {
		return fmt.Errorf("sqlstore: annotation store is not configured")
	}
	orderID := strings.TrimSpace(annotation.OrderID)
	if orderID == "" {
		return fmt.Errorf("sqlstore: order id is required")
	}

	now := time.Now().UTC()
	payload := toAnnotationPayload(annotation.Payment)

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		result, err := tx.NewUpdate().
			Model((*paymentAnnotationRecord)(nil)).
			Set("payment_id = ?", annotation.PaymentID).
			Set("sale_id = ?", annotation.SaleID).
			Set("transaction_fee = ?", annotation.TransactionFee).
			Set("status = ?", string(annotation.Status)).
			Set("sandbox = ?", annotation.Sandbox).
			Set("payload = ?", payload).
			Set("updated_at = ?", now).
			Where("order_id = ?", orderID).
			Exec(ctx)
		if err != nil {
			return err
		}
		if affected, raErr := result.RowsAffected(); raErr == nil && affected > 0 {
			return nil
		}

		record := &paymentAnnotationRecord{
			ID:             uuid.NewString(),
			OrderID:        orderID,
			PaymentID:      annotation.PaymentID,
			SaleID:         annotation.SaleID,
			TransactionFee: annotation.TransactionFee,
			Status:         string(annotation.Status),
			Sandbox:        annotation.Sandbox,
			Payload:        payload,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		_, err = s.repo.CreateTx(ctx, tx, record)
		return err
	})
}

func (s *AnnotationStore) Load(ctx context.Context, orderID string) (core.PaymentAnnotation, bool, error) {
	if s == nil || s.repo == nil {
		return core.PaymentAnnotation{}, false, fmt.Errorf("sqlstore: annotation store is not configured")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("order_id", "=", strings.TrimSpace(orderID)),
		repository.OrderBy("updated_at DESC"),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return core.PaymentAnnotation{}, false, err
	}
	if len(records) == 0 {
		return core.PaymentAnnotation{}, false, nil
	}
	return records[0].toDomain(), true, nil
}
