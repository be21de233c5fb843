package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"querry/models"

	"github.com/google/uuid"
)

func scanHeader(r rowScanner) (models.CollectionHeader, error) {
	var h models.CollectionHeader
	err := r.Scan(&h.ID, &h.Name, &h.Value, &h.CollectionID, &h.CreatedAt)
	return h, err
}

func getHeader(ctx context.Context, q queryer, id string) (models.CollectionHeader, error) {
	h, err := scanHeader(q.QueryRowContext(ctx,
		`SELECT id, name, value, collection_id, created_at FROM collection_header WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return h, fmt.Errorf("header %s: %w", id, models.ErrNotFound)
		}
		return h, storageErr(err, "querying header %s", id)
	}
	return h, nil
}

// GetHeadersByCollectionID lists the default headers of a collection in insertion order.
func (s *Store) GetHeadersByCollectionID(ctx context.Context, collectionID string) ([]models.CollectionHeader, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, value, collection_id, created_at
		FROM collection_header
		WHERE collection_id = ?
		ORDER BY created_at ASC, rowid ASC`, collectionID)
	if err != nil {
		return nil, storageErr(err, "querying headers of collection %s", collectionID)
	}
	defer rows.Close()

	headers := []models.CollectionHeader{}
	for rows.Next() {
		h, err := scanHeader(rows)
		if err != nil {
			return nil, storageErr(err, "scanning header row")
		}
		headers = append(headers, h)
	}
	if err = rows.Err(); err != nil {
		return nil, storageErr(err, "iterating header rows")
	}
	return headers, nil
}

// CreateHeader adds a default header to a collection.
func (s *Store) CreateHeader(ctx context.Context, collectionID, name, value string) (models.CollectionHeader, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.CollectionHeader{}, fmt.Errorf("%w: header name is required", models.ErrValidation)
	}

	var created models.CollectionHeader
	err := s.withTx(ctx, "create header", func(tx *sql.Tx) error {
		if err := requireCollection(ctx, tx, collectionID); err != nil {
			return err
		}
		id := uuid.NewString()
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO collection_header (id, name, value, collection_id, created_at)
			VALUES (?, ?, ?, ?, ?)`, id, name, value, collectionID, now()); err != nil {
			return storageErr(err, "inserting header '%s' into collection %s", name, collectionID)
		}
		var err error
		created, err = getHeader(ctx, tx, id)
		return err
	})
	return created, err
}

// UpdateHeader replaces the name and value of a header.
func (s *Store) UpdateHeader(ctx context.Context, id, name, value string) (models.CollectionHeader, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.CollectionHeader{}, fmt.Errorf("%w: header name is required", models.ErrValidation)
	}
	result, err := s.db.ExecContext(ctx,
		`UPDATE collection_header SET name = ?, value = ? WHERE id = ?`, name, value, id)
	if err != nil {
		return models.CollectionHeader{}, storageErr(err, "updating header %s", id)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return models.CollectionHeader{}, fmt.Errorf("header %s: %w", id, models.ErrNotFound)
	}
	return getHeader(ctx, s.db, id)
}

// DeleteHeader removes a header.
func (s *Store) DeleteHeader(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM collection_header WHERE id = ?`, id)
	if err != nil {
		return storageErr(err, "deleting header %s", id)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("header %s: %w", id, models.ErrNotFound)
	}
	return nil
}
