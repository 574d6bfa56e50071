package medicines

import "context"

// Repository son los medicamentos del usuario autenticado (dueño: backend).
type Repository interface {
	List(ctx context.Context) ([]Medicine, error)
	Add(ctx context.Context, m Medicine) (Medicine, error)
	Remove(ctx context.Context, id string) error
}

// Catalog es el catálogo público de medicamentos.
type Catalog interface {
	ListCatalog(ctx context.Context) ([]CatalogEntry, error)
	CreateCatalog(ctx context.Context, e CatalogEntry) (CatalogEntry, error)
	DeleteCatalog(ctx context.Context, id string) error
}
