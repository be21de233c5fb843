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

const collectionColumns = `id, name, COALESCE(icon, ''), request_count, created_at`

func scanCollection(r rowScanner) (models.Collection, error) {
	var c models.Collection
	err := r.Scan(&c.ID, &c.Name, &c.Icon, &c.RequestCount, &c.CreatedAt)
	return c, err
}

func (s *Store) queryCollections(ctx context.Context, op string, query string, args ...any) ([]models.Collection, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr(err, "querying %s", op)
	}
	defer rows.Close()

	collections := []models.Collection{}
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, storageErr(err, "scanning %s row", op)
		}
		collections = append(collections, c)
	}
	if err = rows.Err(); err != nil {
		return nil, storageErr(err, "iterating %s rows", op)
	}
	return collections, nil
}

// GetAllCollections returns every collection, newest first.
func (s *Store) GetAllCollections(ctx context.Context) ([]models.Collection, error) {
	return s.queryCollections(ctx, "collections",
		`SELECT `+collectionColumns+` FROM collection ORDER BY created_at DESC, rowid DESC`)
}

// SearchCollections returns the collections whose name contains term, ignoring case.
// An empty term matches everything.
func (s *Store) SearchCollections(ctx context.Context, term string) ([]models.Collection, error) {
	return s.queryCollections(ctx, "collection search",
		`SELECT `+collectionColumns+` FROM collection
		 WHERE instr(casefold(name), casefold(?)) > 0
		 ORDER BY created_at DESC, rowid DESC`, term)
}

// CountCollections returns the number of stored collections.
func (s *Store) CountCollections(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM collection`).Scan(&n); err != nil {
		return 0, storageErr(err, "counting collections")
	}
	return n, nil
}

func getCollection(ctx context.Context, q queryer, id string) (models.Collection, error) {
	c, err := scanCollection(q.QueryRowContext(ctx,
		`SELECT `+collectionColumns+` FROM collection WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c, fmt.Errorf("collection %s: %w", id, models.ErrNotFound)
		}
		return c, storageErr(err, "querying collection %s", id)
	}
	return c, nil
}

// GetCollectionByID retrieves a single collection.
func (s *Store) GetCollectionByID(ctx context.Context, id string) (models.Collection, error) {
	return getCollection(ctx, s.db, id)
}

// CreateCollection inserts a collection with a fresh id and a randomly picked icon.
// A blank name becomes "New Collection".
func (s *Store) CreateCollection(ctx context.Context, name string) (models.Collection, error) {
	name = models.TrimmedOr(name, models.DefaultCollectionName)
	id := uuid.NewString()
	icon := s.icons.Pick()
	if icon == "" {
		icon = DefaultIcon
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO collection (id, name, icon, request_count, created_at) VALUES (?, ?, ?, 0, ?)`,
		id, name, icon, now())
	if err != nil {
		return models.Collection{}, storageErr(err, "inserting collection '%s'", name)
	}

	c, err := s.GetCollectionByID(ctx, id)
	if err != nil {
		return c, err
	}
	logger.Debug("Collection created: ID %s, Name '%s', Icon %s", c.ID, c.Name, c.Icon)
	return c, nil
}

// UpdateCollection replaces the name and icon of a collection. A blank icon keeps the
// current one. The stored request_count is recomputed from the request table in the
// same transaction; a disagreeing upd.RequestCount is logged and ignored.
func (s *Store) UpdateCollection(ctx context.Context, id string, upd models.CollectionUpdate) (models.Collection, error) {
	name := strings.TrimSpace(upd.Name)
	if name == "" {
		return models.Collection{}, fmt.Errorf("%w: collection name is required", models.ErrValidation)
	}

	var updated models.Collection
	err := s.withTx(ctx, "update collection", func(tx *sql.Tx) error {
		current, err := getCollection(ctx, tx, id)
		if err != nil {
			return err
		}
		icon := strings.TrimSpace(upd.Icon)
		if icon == "" {
			icon = current.Icon
		}

		count, err := countRequests(ctx, tx, id)
		if err != nil {
			return err
		}
		if count != upd.RequestCount {
			logger.Warn("UpdateCollection: caller supplied request_count %d for %s, actual is %d", upd.RequestCount, id, count)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE collection SET name = ?, icon = ?, request_count = ? WHERE id = ?`,
			name, icon, count, id); err != nil {
			return storageErr(err, "updating collection %s", id)
		}

		updated, err = getCollection(ctx, tx, id)
		return err
	})
	return updated, err
}

// DeleteCollection removes a collection together with its requests and headers.
// Deleting an id that does not exist succeeds.
func (s *Store) DeleteCollection(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM collection WHERE id = ?`, id)
	if err != nil {
		return storageErr(err, "deleting collection %s", id)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		logger.Debug("DeleteCollection: collection %s already gone", id)
	}
	return nil
}

// ReconcileRequestCounts rewrites request_count wherever it disagrees with the request
// table and returns the number of corrected collections.
func (s *Store) ReconcileRequestCounts(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE collection
		SET request_count = (SELECT COUNT(*) FROM request r WHERE r.collection_id = collection.id)
		WHERE request_count <> (SELECT COUNT(*) FROM request r WHERE r.collection_id = collection.id)`)
	if err != nil {
		return 0, storageErr(err, "reconciling request counts")
	}
	n, _ := result.RowsAffected()
	return n, nil
}

func countRequests(ctx context.Context, q queryer, collectionID string) (int, error) {
	var n int
	if err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM request WHERE collection_id = ?`, collectionID).Scan(&n); err != nil {
		return 0, storageErr(err, "counting requests of collection %s", collectionID)
	}
	return n, nil
}

// refreshRequestCount recomputes the stored counter from the request table. It must run
// in the transaction that inserted or deleted the request.
func refreshRequestCount(ctx context.Context, tx *sql.Tx, collectionID string) error {
	if _, err := tx.ExecContext(ctx, `
		UPDATE collection
		SET request_count = (SELECT COUNT(*) FROM request WHERE collection_id = ?)
		WHERE id = ?`, collectionID, collectionID); err != nil {
		return storageErr(err, "updating request count of collection %s", collectionID)
	}
	return nil
}
