package memory

import (
	"context"
	"fmt"

	"idleodyssey/internal/app/ports"
	"idleodyssey/internal/domain/idle"
)

var _ ports.CatalogSource = CatalogRepo{}

// CatalogRepo reads the catalog the live engine was built from. It changes
// only when the store's engine is replaced.
type CatalogRepo struct {
	store *Store
}

func NewCatalogRepo(store *Store) CatalogRepo {
	return CatalogRepo{store: store}
}

func (r CatalogRepo) Load(ctx context.Context) (idle.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return idle.Catalog{}, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.catalog == nil {
		return idle.Catalog{}, fmt.Errorf("catalog: %w", ports.ErrNotFound)
	}
	return *r.store.catalog, nil
}
