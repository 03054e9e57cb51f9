package ports

import (
	"context"

	"idleodyssey/internal/domain/idle"
)

// CatalogSource yields the read-only content an engine is built from.
type CatalogSource interface {
	Load(ctx context.Context) (idle.Catalog, error)
}

type CatalogRepository interface {
	CatalogSource
	Save(ctx context.Context, cat idle.Catalog) error
}
