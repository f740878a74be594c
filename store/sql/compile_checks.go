package sqlstore

import "github.com/goliatone/go-paypal-plus/core"

var (
	_ core.AnnotationStore        = (*AnnotationStore)(nil)
	_ core.AnnotationStore        = (*CachedAnnotationStore)(nil)
	_ core.PreferenceStore        = (*PreferenceStore)(nil)
	_ core.StoreProvider          = (*RepositoryFactory)(nil)
	_ core.RepositoryStoreFactory = (*RepositoryFactory)(nil)
)
