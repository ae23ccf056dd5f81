// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index builds a transient SQLite index over a loaded catalog for
// structured browsing by author, theme, period and year span. The index
// lives in memory for the life of the process; the catalog file remains the
// only persisted state.
package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/libris/internal/search"
	"github.com/pdiddy/libris/pkg/types"
)

// dbSeq gives each in-memory database a distinct shared-cache name so that
// two indexes in one process never see each other's tables.
var dbSeq atomic.Int64

// Index is a queryable view of catalog records.
type Index struct {
	db *sql.DB
}

// Build creates an in-memory database and loads records into it.
func Build(ctx context.Context, records []types.Record) (*Index, error) {
	dsn := fmt.Sprintf("file:libris-index-%d?mode=memory&cache=shared&_foreign_keys=on", dbSeq.Add(1))
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}
	// A shared-cache memory database disappears when its last connection
	// closes; pin one connection for the life of the index.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	idx := &Index{db: db}
	if err := idx.createSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	if err := idx.load(ctx, records); err != nil {
		db.Close()
		return nil, err
	}
	return idx, nil
}

// Close releases the database.
func (idx *Index) Close() error {
	return idx.db.Close()
}

func (idx *Index) createSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE records (
			seq INTEGER PRIMARY KEY,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			authors TEXT NOT NULL,
			authors_key TEXT NOT NULL,
			date TEXT,
			start_year INTEGER,
			end_year INTEGER,
			period TEXT,
			notes TEXT,
			source TEXT
		)`,
		`CREATE TABLE themes (
			record_id TEXT NOT NULL REFERENCES records(id),
			theme TEXT NOT NULL,
			theme_key TEXT NOT NULL,
			ord INTEGER NOT NULL,
			PRIMARY KEY (record_id, theme)
		)`,
		`CREATE INDEX idx_records_period ON records(period)`,
		`CREATE INDEX idx_records_years ON records(start_year, end_year)`,
		`CREATE INDEX idx_themes_theme ON themes(theme_key)`,
	}
	for _, stmt := range statements {
		if _, err := idx.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

func (idx *Index) load(ctx context.Context, records []types.Record) error {
	tx, err := idx.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	recStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (seq, id, title, authors, authors_key, date, start_year, end_year, period, notes, source)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing record insert: %w", err)
	}
	defer recStmt.Close()

	themeStmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO themes (record_id, theme, theme_key, ord) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing theme insert: %w", err)
	}
	defer themeStmt.Close()

	for i, r := range records {
		authorsJSON, err := json.Marshal(r.Authors)
		if err != nil {
			return fmt.Errorf("encoding authors for %s: %w", r.ID, err)
		}
		folded := make([]string, len(r.Authors))
		for j, a := range r.Authors {
			folded[j] = search.Fold(a)
		}
		keysJSON, err := json.Marshal(folded)
		if err != nil {
			return fmt.Errorf("encoding author keys for %s: %w", r.ID, err)
		}
		if _, err := recStmt.ExecContext(ctx,
			i, r.ID, r.Title, string(authorsJSON), string(keysJSON), r.Date,
			r.Years.Start, r.Years.End, string(r.Period), r.Notes, r.Source,
		); err != nil {
			return fmt.Errorf("inserting record %s: %w", r.ID, err)
		}
		for j, theme := range r.Themes {
			if _, err := themeStmt.ExecContext(ctx, r.ID, theme, search.Fold(theme), j); err != nil {
				return fmt.Errorf("inserting theme %q for %s: %w", theme, r.ID, err)
			}
		}
	}

	return tx.Commit()
}
