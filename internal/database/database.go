// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/go-sql-driver/mysql"

	"github.com/tomtom215/skyguide/internal/config"
	"github.com/tomtom215/skyguide/internal/logging"
	"github.com/tomtom215/skyguide/internal/metrics"
)

// dialect captures the few SQL differences between the supported drivers.
type dialect struct {
	name     string
	random   string // expression for ORDER BY random sampling
	embedded bool   // schema is owned and created by this process
}

var (
	duckdbDialect = dialect{name: "duckdb", random: "random()", embedded: true}
	mysqlDialect  = dialect{name: "mysql", random: "RAND()", embedded: false}
)

// DB wraps the connection pool and provides the gateway reads.
type DB struct {
	conn    *sql.DB
	cfg     *config.DatabaseConfig
	dialect dialect
}

// New opens the configured backend, applies pool limits and, for the
// embedded backend, creates the schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	var (
		conn *sql.DB
		d    dialect
		err  error
	)

	switch cfg.Driver {
	case "mysql":
		conn, err = openMySQL(cfg)
		d = mysqlDialect
	case "duckdb", "":
		conn, err = openDuckDB(cfg)
		d = duckdbDialect
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn, cfg: cfg, dialect: d}
	db.configureConnectionPool()

	if err := db.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	logging.Info().
		Str("driver", d.name).
		Int("max_open_conns", cfg.MaxOpenConns).
		Msg("Database ready")

	return db, nil
}

func openDuckDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	if dbDir := filepath.Dir(cfg.Path); dbDir != "" && dbDir != "." {
		if err := os.MkdirAll(dbDir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
		}
	}

	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "1GB"
	}

	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, numThreads, maxMemory)
	return sql.Open("duckdb", connStr)
}

func openMySQL(cfg *config.DatabaseConfig) (*sql.DB, error) {
	mcfg, err := mysql.ParseDSN(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("invalid mysql DSN: %w", err)
	}
	// Interaction timestamps are scanned into time.Time.
	mcfg.ParseTime = true
	if mcfg.Timeout == 0 {
		mcfg.Timeout = 10 * time.Second
	}

	connector, err := mysql.NewConnector(mcfg)
	if err != nil {
		return nil, err
	}
	return sql.OpenDB(connector), nil
}

func (db *DB) configureConnectionPool() {
	db.conn.SetMaxOpenConns(db.cfg.MaxOpenConns)
	db.conn.SetMaxIdleConns(db.cfg.MaxIdleConns)
	if db.cfg.ConnMaxLifetime > 0 {
		db.conn.SetConnMaxLifetime(db.cfg.ConnMaxLifetime)
	}
}

func (db *DB) initialize() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	if !db.dialect.embedded {
		return nil
	}
	if err := db.createTables(ctx); err != nil {
		return err
	}
	if db.cfg.SeedDemoData {
		return db.SeedDemoData(ctx)
	}
	return nil
}

// Driver returns the name of the active backend.
func (db *DB) Driver() string {
	return db.dialect.name
}

// Close closes the connection pool.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// Ping runs a trivial query to prove the backend answers.
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var one int
	err := db.conn.QueryRowContext(ctx, "SELECT 1").Scan(&one)
	metrics.RecordDBQuery("ping", "", time.Since(start), err)
	if err != nil {
		return &QueryError{Op: "ping", Err: err}
	}
	return nil
}

// ensureContext applies the configured query timeout when ctx has no deadline.
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := db.cfg.QueryTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if ctx == nil {
		return context.WithTimeout(context.Background(), timeout)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}
	return ctx, func() {}
}

// queryAll runs a read and scans every row. Failures are wrapped in a
// *QueryError tagged with op. The result is never nil.
func queryAll[T any](ctx context.Context, db *DB, op, table, q string, args []any, scan func(*sql.Rows) (T, error)) ([]T, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	out, err := collect(ctx, db.conn, q, args, scan)
	metrics.RecordDBQuery(op, table, time.Since(start), err)
	if err != nil {
		return nil, &QueryError{Op: op, Err: err}
	}
	return out, nil
}

func collect[T any](ctx context.Context, conn *sql.DB, q string, args []any, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(rows)

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
