// Package database owns connectivity to the authoritative relational store
// and the schema registration shared by the repositories and the test
// harness. Production runs against postgres; the sqlite constructor exists
// for embedded use and tests.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/platefork/recipe-core/model"
)

const defaultConnTimeout = 5 * time.Second

// Config describes a postgres connection.
type Config struct {
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// NewPostgres opens a bun handle over pgdriver and verifies connectivity.
func NewPostgres(ctx context.Context, cfg Config) (*bun.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database: dsn is required")
	}
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(cfg.DSN),
		pgdriver.WithTimeout(defaultConnTimeout),
	))
	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db := bun.NewDB(sqldb, pgdialect.New())
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database: ping: %w", err)
	}
	return db, nil
}

// NewSQLite opens a bun handle over a sqlite database. Use ":memory:" for
// an ephemeral instance.
func NewSQLite(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("database: open sqlite: %w", err)
	}
	// Every pool connection to ":memory:" opens a distinct database, so the
	// pool must stay at a single connection.
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// schemaModels lists every table in dependency order.
func schemaModels() []any {
	return []any{
		(*model.User)(nil),
		(*model.Recipe)(nil),
		(*model.Ingredient)(nil),
		(*model.Like)(nil),
		(*model.Save)(nil),
		(*model.Comment)(nil),
		(*model.RegisteredDevice)(nil),
	}
}

// CreateSchema creates all tables and their unique constraints if they do
// not exist. The toggle semantics depend on the unique (user_id, recipe_id)
// indexes this emits.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	for _, m := range schemaModels() {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("database: create table for %T: %w", m, err)
		}
	}
	return nil
}
