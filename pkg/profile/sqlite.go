package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	perrors "github.com/vnykmshr/pantry/pkg/common/errors"
	"github.com/vnykmshr/pantry/pkg/common/validation"
	"github.com/vnykmshr/pantry/pkg/ingredient"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS consumers (
	name TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS allergens (
	consumer TEXT NOT NULL,
	name     TEXT NOT NULL,
	PRIMARY KEY (consumer, name)
);
`

// SQLiteStore keeps profiles in two tables: consumers, and one allergens
// row per consumer and allergen.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (creating if needed) the database at path. Use
// ":memory:" for a throwaway store.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if err := validation.ValidateNotEmpty(module, "path", path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	store, err := NewSQLiteStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// NewSQLiteStore creates the schema on db if missing and returns a store over it.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if err := validation.ValidateNotNil(module, "db", db); err != nil {
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, perrors.NewOperationError(module, "NewSQLiteStore", err).WithContext("sqlite schema")
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Allergens(ctx context.Context, consumer string) (*ingredient.AllergenSet, error) {
	if err := validateConsumer(consumer); err != nil {
		return nil, err
	}

	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM consumers WHERE name = ?`, consumer).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, perrors.NewOperationError(module, "Allergens", perrors.ErrNotFound).WithContext(consumer)
	}
	if err != nil {
		return nil, wrapSQLiteError("Allergens", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT name FROM allergens WHERE consumer = ? ORDER BY name`, consumer)
	if err != nil {
		return nil, wrapSQLiteError("Allergens", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, wrapSQLiteError("Allergens", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapSQLiteError("Allergens", err)
	}
	return ingredient.NewAllergenSet(names...), nil
}

func (s *SQLiteStore) Save(ctx context.Context, consumer string, allergens *ingredient.AllergenSet) error {
	if err := validateSave(consumer, allergens); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapSQLiteError("Save", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO consumers (name) VALUES (?)`, consumer); err != nil {
		return wrapSQLiteError("Save", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM allergens WHERE consumer = ?`, consumer); err != nil {
		return wrapSQLiteError("Save", err)
	}
	for _, name := range allergens.Names() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO allergens (consumer, name) VALUES (?, ?)`, consumer, name); err != nil {
			return wrapSQLiteError("Save", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapSQLiteError("Save", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, consumer string) error {
	if err := validateConsumer(consumer); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapSQLiteError("Delete", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM allergens WHERE consumer = ?`, consumer); err != nil {
		return wrapSQLiteError("Delete", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM consumers WHERE name = ?`, consumer)
	if err != nil {
		return wrapSQLiteError("Delete", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return wrapSQLiteError("Delete", err)
	} else if n == 0 {
		return perrors.NewOperationError(module, "Delete", perrors.ErrNotFound).WithContext(consumer)
	}

	if err := tx.Commit(); err != nil {
		return wrapSQLiteError("Delete", err)
	}
	return nil
}

func (s *SQLiteStore) Consumers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM consumers ORDER BY name`)
	if err != nil {
		return nil, wrapSQLiteError("Consumers", err)
	}
	defer rows.Close()

	consumers := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, wrapSQLiteError("Consumers", err)
		}
		consumers = append(consumers, name)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapSQLiteError("Consumers", err)
	}
	return consumers, nil
}

func wrapSQLiteError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("%w: %v", perrors.ErrTimeout, err)
	}
	return perrors.NewOperationError(module, op, err).WithContext("sqlite")
}
