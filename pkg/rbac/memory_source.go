package rbac

import "context"

// inMemRoleSource serves a catalog held in memory.
type inMemRoleSource struct {
	catalog Catalog
}

// NewInMemSource creates a RoleSource from a static catalog.
// The catalog is deep-copied to prevent external modification.
func NewInMemSource(catalog Catalog) RoleSource {
	return &inMemRoleSource{catalog: catalog.clone()}
}

func (s *inMemRoleSource) Load(ctx context.Context) (Catalog, error) {
	return s.catalog, nil
}
