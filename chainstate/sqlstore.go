// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainstate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Dialect selects the SQL flavour a SQLStore speaks.
type Dialect uint8

const (
	// DialectSQLite is SQLite, as provided by the modernc.org/sqlite
	// driver registered as "sqlite".
	DialectSQLite Dialect = iota

	// DialectPostgres is PostgreSQL, as provided by the pgx stdlib driver
	// registered as "pgx".
	DialectPostgres
)

// DriverName returns the database/sql driver name used for the dialect.
func (d Dialect) DriverName() string {
	switch d {
	case DialectPostgres:
		return "pgx"
	default:
		return "sqlite"
	}
}

// String returns the dialect name.
func (d Dialect) String() string {
	switch d {
	case DialectSQLite:
		return "sqlite"
	case DialectPostgres:
		return "postgres"
	default:
		return fmt.Sprintf("dialect(%d)", uint8(d))
	}
}

// ParseDialect returns the dialect with the given name.
func ParseDialect(s string) (Dialect, error) {
	switch s {
	case "sqlite":
		return DialectSQLite, nil
	case "postgres":
		return DialectPostgres, nil
	default:
		return 0, fmt.Errorf("unknown SQL dialect %q", s)
	}
}

// defaultQueryTimeout bounds every statement a SQLStore runs.
const defaultQueryTimeout = 10 * time.Second

type dialectQueries struct {
	schema string
	get    string
	set    string
}

var queries = map[Dialect]dialectQueries{
	DialectSQLite: {
		schema: `CREATE TABLE IF NOT EXISTS chain_properties (
			id INTEGER PRIMARY KEY,
			value BLOB NOT NULL
		)`,
		get: `SELECT value FROM chain_properties WHERE id = ?`,
		set: `INSERT INTO chain_properties (id, value) VALUES (?, ?)
			ON CONFLICT (id) DO UPDATE SET value = excluded.value`,
	},
	DialectPostgres: {
		schema: `CREATE TABLE IF NOT EXISTS chain_properties (
			id SMALLINT PRIMARY KEY,
			value BYTEA NOT NULL
		)`,
		get: `SELECT value FROM chain_properties WHERE id = $1`,
		set: `INSERT INTO chain_properties (id, value) VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET value = EXCLUDED.value`,
	},
}

// SQLStore is a PropertyStore kept in a chain_properties table.
type SQLStore struct {
	db *sql.DB
	q  dialectQueries
}

// NewSQLStore returns a SQLStore over db, creating its table if needed.
func NewSQLStore(ctx context.Context, db *sql.DB,
	dialect Dialect) (*SQLStore, error) {

	q, ok := queries[dialect]
	if !ok {
		return nil, fmt.Errorf("unsupported SQL dialect %v", dialect)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	if _, err := db.ExecContext(ctx, q.schema); err != nil {
		return nil, storeError(ErrDatabase, "failed to create "+
			"chain_properties table", err)
	}

	log.Debugf("Opened %v property store", dialect)
	return &SQLStore{db: db, q: q}, nil
}

// Property returns the value stored for key.
func (s *SQLStore) Property(key PropertyKey) ([]byte, error) {
	ctx, cancel := context.WithTimeout(
		context.Background(), defaultQueryTimeout,
	)
	defer cancel()

	var value []byte
	err := s.db.QueryRowContext(ctx, s.q.get, int(key)).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil

	case err != nil:
		return nil, storeError(ErrDatabase, "failed to read "+
			key.String(), err)
	}

	// An empty blob is still a set property.
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

// SetProperty stores value for key.
func (s *SQLStore) SetProperty(key PropertyKey, value []byte) error {
	ctx, cancel := context.WithTimeout(
		context.Background(), defaultQueryTimeout,
	)
	defer cancel()

	if value == nil {
		value = []byte{}
	}
	_, err := s.db.ExecContext(ctx, s.q.set, int(key), value)
	if err != nil {
		return storeError(ErrDatabase, "failed to write "+
			key.String(), err)
	}
	return nil
}
