package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"querry/logger"
	"querry/models"

	"github.com/mattn/go-sqlite3"
)

// driverName is go-sqlite3 with a Unicode-aware casefold() SQL function registered on every connection.
const driverName = "sqlite3_querry"

// DefaultMaxOpenConns bounds the connection pool. Further operations queue on the pool.
const DefaultMaxOpenConns = 5

// DefaultIcon is used when no icon picker is configured or the pack is empty.
const DefaultIcon = "1F4A6.svg"

// timestampLayout is fixed width so created_at orders correctly as text.
const timestampLayout = "2006-01-02 15:04:05.000000000"

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("casefold", strings.ToLower, true)
		},
	})
}

// IconPicker chooses the icon of a new collection.
type IconPicker interface {
	Pick() string
}

type fixedIcon string

func (f fixedIcon) Pick() string { return string(f) }

// Options configures Open. The zero value is usable.
type Options struct {
	MaxOpenConns int
	Icons        IconPicker
}

// Store owns the SQLite connection pool. It is safe for concurrent use and is the only
// component that issues SQL.
type Store struct {
	db    *sql.DB
	path  string
	icons IconPicker
}

// Open creates the database directory if needed, opens the pool and applies pending
// migrations. A failure here is fatal to process startup.
func Open(ctx context.Context, path string, opts Options) (*Store, error) {
	if path == "" {
		return nil, errors.New("database path is required")
	}
	dbDir := filepath.Dir(path)
	if dbDir != "." && dbDir != "" {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			logger.Error("Failed to create database directory %s: %v", dbDir, err)
			return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
		}
	}

	db, err := sql.Open(driverName, path+"?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL&_txlock=immediate")
	if err != nil {
		logger.Error("Failed to open database: %v", err)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	maxConns := opts.MaxOpenConns
	if maxConns <= 0 {
		maxConns = DefaultMaxOpenConns
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		logger.Error("Failed to connect to database: %v", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	icons := opts.Icons
	if icons == nil {
		icons = fixedIcon(DefaultIcon)
	}
	s := &Store{db: db, path: path, icons: icons}

	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	if fixed, err := s.ReconcileRequestCounts(ctx); err != nil {
		db.Close()
		return nil, err
	} else if fixed > 0 {
		logger.Warn("Corrected request_count on %d collection(s)", fixed)
	}
	return s, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Ping checks that the pool can still reach the database.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return storageErr(err, "pinging database")
	}
	return nil
}

// Close releases the pool.
func (s *Store) Close() error {
	return s.db.Close()
}

func storageErr(err error, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %w", models.ErrStorage, fmt.Sprintf(format, args...), err)
}

func now() string {
	return time.Now().UTC().Format(timestampLayout)
}

type rowScanner interface {
	Scan(dest ...any) error
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// withTx runs fn inside a single transaction. BEGIN IMMEDIATE (set in the DSN) takes the
// write lock up front so count maintenance never races another writer.
func (s *Store) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr(err, "beginning transaction for %s", op)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("%s: rollback failed: %v", op, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return storageErr(err, "committing %s", op)
	}
	return nil
}
