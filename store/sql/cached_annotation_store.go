package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-paypal-plus/core"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
)

const annotationCacheKeyPrefix = "go-paypal-plus::payment_annotation::v1"

// cachedAnnotation keeps the found flag alongside the row so a cached
// absence does not re-query the database on every load.
type cachedAnnotation struct {
	Annotation core.PaymentAnnotation
	Found      bool
}

type CachedAnnotationStore struct {
	base  core.AnnotationStore
	cache repositorycache.CacheService
}

func NewCachedAnnotationStore(base core.AnnotationStore, cacheService repositorycache.CacheService) (*CachedAnnotationStore, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base annotation store is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: annotation cache service is required")
	}
	return &CachedAnnotationStore{base: base, cache: cacheService}, nil
}

// AnnotationCacheKey returns the deterministic cache key contract for
// annotation reads: go-paypal-plus::payment_annotation::v1::<order_id>
// with the order id URL-path escaped.
func AnnotationCacheKey(orderID string) (string, error) {
	trimmed := strings.TrimSpace(orderID)
	if trimmed == "" {
		return "", fmt.Errorf("sqlstore: order id is required")
	}
	return annotationCacheKeyPrefix + "::" + url.PathEscape(trimmed), nil
}

func (s *CachedAnnotationStore) Save(ctx context.Context, annotation core.PaymentAnnotation) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached annotation store is not configured")
	}
	if err := s.base.Save(ctx, annotation); err != nil {
		return err
	}

	cacheKey, err := AnnotationCacheKey(annotation.OrderID)
	if err != nil {
		return err
	}
	return s.cache.Delete(ctx, cacheKey)
}

func (s *CachedAnnotationStore) Load(ctx context.Context, orderID string) (core.PaymentAnnotation, bool, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.PaymentAnnotation{}, false, fmt.Errorf("sqlstore: cached annotation store is not configured")
	}
	cacheKey, err := AnnotationCacheKey(orderID)
	if err != nil {
		return core.PaymentAnnotation{}, false, err
	}

	cached, err := repositorycache.GetOrFetch(ctx, s.cache, cacheKey, func(ctx context.Context) (cachedAnnotation, error) {
		annotation, found, fetchErr := s.base.Load(ctx, orderID)
		if fetchErr != nil {
			return cachedAnnotation{}, fetchErr
		}
		return cachedAnnotation{Annotation: annotation, Found: found}, nil
	})
	if err != nil {
		return core.PaymentAnnotation{}, false, err
	}
	return cached.Annotation, cached.Found, nil
}
