package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type PreferenceStore struct {
	db   *bun.DB
	repo repository.Repository[*buyerPreferenceRecord]
}

func (s *PreferenceStore) SaveRememberedCards(ctx context.Context, customerID string, value string) error {
	if s == nil || s.repo == nil || s.db == nil {
		return fmt.Errorf("sqlstore: preference store is not configured")
	}
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return fmt.Errorf("sqlstore: customer id is required")
	}

	now := time.Now().UTC()
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		result, err := tx.NewUpdate().
			Model((*buyerPreferenceRecord)(nil)).
			Set("remembered_cards = ?", value).
			Set("updated_at = ?", now).
			Where("customer_id = ?", customerID).
			Exec(ctx)
		if err != nil {
			return err
		}
		if affected, raErr := result.RowsAffected(); raErr == nil && affected > 0 {
			return nil
		}

		record := &buyerPreferenceRecord{
			ID:              uuid.NewString(),
			CustomerID:      customerID,
			RememberedCards: value,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		_, err = s.repo.CreateTx(ctx, tx, record)
		return err
	})
}

func (s *PreferenceStore) LoadRememberedCards(ctx context.Context, customerID string) (string, bool, error) {
	if s == nil || s.repo == nil {
		return "", false, fmt.Errorf("sqlstore: preference store is not configured")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("customer_id", "=", strings.TrimSpace(customerID)),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return "", false, err
	}
	if len(records) == 0 {
		return "", false, nil
	}
	return records[0].RememberedCards, true, nil
}
