// Package object implements the upload and retrieval data path.
package object

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Upload is the bookkeeping record written for every stored object.
type Upload struct {
	Key            string    `json:"key"`
	InstallationID string    `json:"installationId"`
	ContentType    string    `json:"contentType"`
	Size           int64     `json:"size"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Repository persists upload records.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new object Repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Record inserts the bookkeeping row for a freshly stored object.
func (r *Repository) Record(ctx context.Context, up Upload) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO uploads (key, installation_id, content_type, size_bytes)
		 VALUES ($1, $2, $3, $4)`,
		up.Key, up.InstallationID, up.ContentType, up.Size,
	)
	if err != nil {
		return fmt.Errorf("record upload: %w", err)
	}
	return nil
}

// ListByInstallation returns the upload records for one installation,
// newest first.
func (r *Repository) ListByInstallation(ctx context.Context, installationID string) ([]Upload, error) {
	rows, err := r.db.Query(ctx,
		`SELECT key, installation_id, content_type, size_bytes, created_at
		 FROM uploads WHERE installation_id = $1
		 ORDER BY created_at DESC`,
		installationID,
	)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	defer rows.Close()

	var out []Upload
	for rows.Next() {
		var up Upload
		if err := rows.Scan(&up.Key, &up.InstallationID, &up.ContentType, &up.Size, &up.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan upload: %w", err)
		}
		out = append(out, up)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	return out, nil
}
