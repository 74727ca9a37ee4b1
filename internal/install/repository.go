// Package install manages the installation registry: the set of clients
// permitted to upload, each identified by an opaque token.
package install

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Installation represents a registered client.
type Installation struct {
	ID        string    `json:"id"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ErrNotFound is returned when an installation does not exist.
var ErrNotFound = errors.New("installation not found")

// Repository handles installation persistence.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new install Repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetByID fetches an installation by its token.
func (r *Repository) GetByID(ctx context.Context, id string) (*Installation, error) {
	inst := &Installation{}
	err := r.db.QueryRow(ctx,
		`SELECT id, note, created_at FROM installations WHERE id = $1`,
		id,
	).Scan(&inst.ID, &inst.Note, &inst.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get installation: %w", err)
	}
	return inst, nil
}

// Create registers a new installation under the given token.
func (r *Repository) Create(ctx context.Context, id, note string) (*Installation, error) {
	inst := &Installation{}
	err := r.db.QueryRow(ctx,
		`INSERT INTO installations (id, note)
		 VALUES ($1, $2)
		 RETURNING id, note, created_at`,
		id, note,
	).Scan(&inst.ID, &inst.Note, &inst.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create installation: %w", err)
	}
	return inst, nil
}

// Delete removes an installation. Upload records cascade with it.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM installations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete installation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all installations, newest first.
func (r *Repository) List(ctx context.Context) ([]Installation, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, note, created_at FROM installations ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list installations: %w", err)
	}
	defer rows.Close()

	var out []Installation
	for rows.Next() {
		var inst Installation
		if err := rows.Scan(&inst.ID, &inst.Note, &inst.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan installation: %w", err)
		}
		out = append(out, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list installations: %w", err)
	}
	return out, nil
}
