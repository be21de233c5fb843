package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"querry/logger"
	"querry/models"

	"github.com/google/uuid"
)

const requestColumns = `id, name, COALESCE(url, ''), protocol, http_method, collection_id, created_at`

func scanRequest(r rowScanner) (models.Request, error) {
	var req models.Request
	err := r.Scan(&req.ID, &req.Name, &req.URL, &req.Protocol, &req.HTTPMethod, &req.CollectionID, &req.CreatedAt)
	return req, err
}

func getRequest(ctx context.Context, q queryer, id string) (models.Request, error) {
	req, err := scanRequest(q.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM request WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return req, fmt.Errorf("request %s: %w", id, models.ErrNotFound)
		}
		if errors.Is(err, models.ErrValidation) {
			return req, storageErr(err, "request %s holds an undeclared code", id)
		}
		return req, storageErr(err, "querying request %s", id)
	}
	return req, nil
}

func requireCollection(ctx context.Context, q queryer, collectionID string) error {
	var exists int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM collection WHERE id = ?`, collectionID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("collection %s: %w", collectionID, models.ErrNotFound)
	}
	if err != nil {
		return storageErr(err, "looking up collection %s", collectionID)
	}
	return nil
}

// GetRequestsByCollectionID lists the requests of a collection, newest first.
// A collection without requests yields an empty slice.
func (s *Store) GetRequestsByCollectionID(ctx context.Context, collectionID string) ([]models.Request, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+requestColumns+` FROM request WHERE collection_id = ? ORDER BY created_at DESC, rowid DESC`,
		collectionID)
	if err != nil {
		return nil, storageErr(err, "querying requests of collection %s", collectionID)
	}
	defer rows.Close()

	requests := []models.Request{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, storageErr(err, "scanning request row of collection %s", collectionID)
		}
		requests = append(requests, req)
	}
	if err = rows.Err(); err != nil {
		return nil, storageErr(err, "iterating requests of collection %s", collectionID)
	}
	return requests, nil
}

// GetRequestByID retrieves a single request.
func (s *Store) GetRequestByID(ctx context.Context, id string) (models.Request, error) {
	return getRequest(ctx, s.db, id)
}

// CreateRequest inserts a "New Request" (GET, empty URL) under collectionID and bumps the
// parent's request_count in the same transaction.
func (s *Store) CreateRequest(ctx context.Context, protocol models.Protocol, collectionID string) (models.Request, error) {
	if !protocol.Valid() {
		return models.Request{}, fmt.Errorf("%w: unknown protocol code %q", models.ErrValidation, string(protocol))
	}

	var created models.Request
	err := s.withTx(ctx, "create request", func(tx *sql.Tx) error {
		if err := requireCollection(ctx, tx, collectionID); err != nil {
			return err
		}
		id := uuid.NewString()
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO request (id, name, url, protocol, http_method, collection_id, created_at)
			VALUES (?, ?, '', ?, ?, ?, ?)`,
			id, models.DefaultRequestName, protocol, models.MethodGet, collectionID, now()); err != nil {
			return storageErr(err, "inserting request into collection %s", collectionID)
		}
		if err := refreshRequestCount(ctx, tx, collectionID); err != nil {
			return err
		}
		var err error
		created, err = getRequest(ctx, tx, id)
		return err
	})
	if err != nil {
		return models.Request{}, err
	}
	logger.Debug("Request created: ID %s in collection %s (%s)", created.ID, collectionID, created.Protocol)
	return created, nil
}

// UpdateRequest writes only the fields set in upd. Undeclared protocol or method codes
// are rejected before anything is written.
func (s *Store) UpdateRequest(ctx context.Context, id string, upd models.RequestUpdate) (models.Request, error) {
	if upd.Protocol != nil && !upd.Protocol.Valid() {
		return models.Request{}, fmt.Errorf("%w: unknown protocol code %q", models.ErrValidation, string(*upd.Protocol))
	}
	if upd.HTTPMethod != nil && !upd.HTTPMethod.Valid() {
		return models.Request{}, fmt.Errorf("%w: unknown http method code %q", models.ErrValidation, string(*upd.HTTPMethod))
	}
	if upd.Empty() {
		return s.GetRequestByID(ctx, id)
	}

	var (
		sets []string
		args []any
	)
	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.URL != nil {
		sets = append(sets, "url = ?")
		args = append(args, *upd.URL)
	}
	if upd.Protocol != nil {
		sets = append(sets, "protocol = ?")
		args = append(args, *upd.Protocol)
	}
	if upd.HTTPMethod != nil {
		sets = append(sets, "http_method = ?")
		args = append(args, *upd.HTTPMethod)
	}
	args = append(args, id)

	var updated models.Request
	err := s.withTx(ctx, "update request", func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE request SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
		if err != nil {
			return storageErr(err, "updating request %s", id)
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return fmt.Errorf("request %s: %w", id, models.ErrNotFound)
		}
		updated, err = getRequest(ctx, tx, id)
		return err
	})
	return updated, err
}

// DeleteRequest removes a request and decrements the parent's request_count in the same
// transaction.
func (s *Store) DeleteRequest(ctx context.Context, id string) error {
	return s.withTx(ctx, "delete request", func(tx *sql.Tx) error {
		var collectionID string
		err := tx.QueryRowContext(ctx, `SELECT collection_id FROM request WHERE id = ?`, id).Scan(&collectionID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("request %s: %w", id, models.ErrNotFound)
		}
		if err != nil {
			return storageErr(err, "looking up request %s", id)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM request WHERE id = ?`, id); err != nil {
			return storageErr(err, "deleting request %s", id)
		}
		return refreshRequestCount(ctx, tx, collectionID)
	})
}
