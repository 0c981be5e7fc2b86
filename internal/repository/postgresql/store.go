package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/store"
	"github.com/cmlabs-hris/facility-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type storeRepository struct {
	db *database.DB
}

// FindByCode implements store.Directory.
func (r *storeRepository) FindByCode(ctx context.Context, code string) (store.Store, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, code, name FROM stores WHERE LOWER(code) = LOWER($1)`

	var s store.Store
	err := q.QueryRow(ctx, query, strings.TrimSpace(code)).Scan(&s.ID, &s.Code, &s.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Store{}, store.ErrStoreNotFound
		}
		return store.Store{}, fmt.Errorf("failed to get store by code: %w", err)
	}

	return s, nil
}

// FindByIDOrCode implements store.Directory.
func (r *storeRepository) FindByIDOrCode(ctx context.Context, value string) (store.Store, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, code, name
		FROM stores
		WHERE id::text = $1 OR LOWER(code) = LOWER($1)
		ORDER BY (id::text = $1) DESC
		LIMIT 1
	`

	var s store.Store
	err := q.QueryRow(ctx, query, strings.TrimSpace(value)).Scan(&s.ID, &s.Code, &s.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Store{}, store.ErrStoreNotFound
		}
		return store.Store{}, fmt.Errorf("failed to get store: %w", err)
	}

	return s, nil
}

func NewStoreRepository(db *database.DB) store.Directory {
	return &storeRepository{db: db}
}
