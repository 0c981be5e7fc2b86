package store

import "context"

// Directory looks up stores owned by the store master data module.
type Directory interface {
	// FindByCode matches the store code case-insensitively.
	FindByCode(ctx context.Context, code string) (Store, error)

	// FindByIDOrCode accepts either the internal id or the store code.
	FindByIDOrCode(ctx context.Context, value string) (Store, error)
}
