package sqlstore

import (
	"fmt"

	"github.com/goliatone/go-paypal-plus/core"
	persistence "github.com/goliatone/go-persistence-bun"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

type RepositoryFactory struct {
	db *bun.DB

	annotationStore *AnnotationStore
	preferenceStore *PreferenceStore
}

func NewRepositoryFactory() *RepositoryFactory {
	return &RepositoryFactory{}
}

func NewRepositoryFactoryFromPersistence(client *persistence.Client) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory()
	if _, err := factory.BuildStores(client); err != nil {
		return nil, err
	}
	return factory, nil
}

func NewRepositoryFactoryFromDB(db *bun.DB) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory()
	if _, err := factory.BuildStores(db); err != nil {
		return nil, err
	}
	return factory, nil
}

func (f *RepositoryFactory) BuildStores(persistenceClient any) (core.StoreProvider, error) {
	if f == nil {
		return nil, fmt.Errorf("sqlstore: repository factory is nil")
	}
	if f.db == nil {
		db, err := resolveBunDB(persistenceClient)
		if err != nil {
			return nil, err
		}
		f.db = db
	}
	if f.annotationStore != nil && f.preferenceStore != nil {
		return f, nil
	}
	if err := f.initStores(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *RepositoryFactory) AnnotationStore() core.AnnotationStore {
	if f == nil {
		return nil
	}
	return f.annotationStore
}

func (f *RepositoryFactory) PreferenceStore() core.PreferenceStore {
	if f == nil {
		return nil
	}
	return f.preferenceStore
}

func (f *RepositoryFactory) DB() *bun.DB {
	if f == nil {
		return nil
	}
	return f.db
}

func (f *RepositoryFactory) initStores() error {
	annotationRepo := repository.NewRepository[*paymentAnnotationRecord](f.db, annotationHandlers())
	if validator, ok := annotationRepo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("sqlstore: invalid annotation repository wiring: %w", err)
		}
	}

	preferenceRepo := repository.NewRepository[*buyerPreferenceRecord](f.db, preferenceHandlers())
	if validator, ok := preferenceRepo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("sqlstore: invalid preference repository wiring: %w", err)
		}
	}

	f.annotationStore = &AnnotationStore{
		db:   f.db,
		repo: annotationRepo,
	}
	f.preferenceStore = &PreferenceStore{
		db:   f.db,
		repo: preferenceRepo,
	}
	return nil
}

func resolveBunDB(candidate any) (*bun.DB, error) {
	switch typed := candidate.(type) {
	case nil:
		return nil, fmt.Errorf("sqlstore: persistence client is required")
	case *bun.DB:
		return typed, nil
	case interface{ DB() *bun.DB }:
		db := typed.DB()
		if db == nil {
			return nil, fmt.Errorf("sqlstore: persistence client returned nil bun db")
		}
		return db, nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported persistence client type %T", candidate)
	}
}
