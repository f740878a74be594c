package sqlstore

import (
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

func annotationHandlers() repository.ModelHandlers[*paymentAnnotationRecord] {
	return repository.ModelHandlers[*paymentAnnotationRecord]{
		NewRecord: func() *paymentAnnotationRecord {
			return &paymentAnnotationRecord{}
		},
		GetID: func(record *paymentAnnotationRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *paymentAnnotationRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *paymentAnnotationRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func preferenceHandlers() repository.ModelHandlers[*buyerPreferenceRecord] {
	return repository.ModelHandlers[*buyerPreferenceRecord]{
		NewRecord: func() *buyerPreferenceRecord {
			return &buyerPreferenceRecord{}
		},
		GetID: func(record *buyerPreferenceRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *buyerPreferenceRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *buyerPreferenceRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func parseUUID(value string) uuid.UUID {
	parsed, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
