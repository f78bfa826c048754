package db

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Get(ctx context.Context, slug string) (Record, error) {
	var r Record
	row := s.db.QueryRowContext(ctx, `SELECT slug, hash, engine, settings, year, output, built_at FROM manifest WHERE slug=?`, slug)
	if err := row.Scan(&r.Slug, &r.Hash, &r.Engine, &r.Settings, &r.Year, &r.Output, &r.BuiltAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return r, nil
}

func (s *sqliteStore) Put(ctx context.Context, r Record) error {
	if r.BuiltAt.IsZero() {
		r.BuiltAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO manifest(slug, hash, engine, settings, year, output, built_at) VALUES(?,?,?,?,?,?,?)
ON CONFLICT(slug) DO UPDATE SET hash=excluded.hash, engine=excluded.engine, settings=excluded.settings, year=excluded.year, output=excluded.output, built_at=excluded.built_at`,
		r.Slug, r.Hash, r.Engine, r.Settings, r.Year, r.Output, r.BuiltAt.UTC())
	return err
}

func (s *sqliteStore) Delete(ctx context.Context, slug string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM manifest WHERE slug=?`, slug)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *sqliteStore) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slug, hash, engine, settings, year, output, built_at FROM manifest ORDER BY slug ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Slug, &r.Hash, &r.Engine, &r.Settings, &r.Year, &r.Output, &r.BuiltAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// openSQLite connects with the modernc.org/sqlite driver and ensures the
// schema exists.
func openSQLite(ctx context.Context, dsn string) (*sqliteStore, io.Closer, error) {
	path := strings.TrimPrefix(dsn, "sqlite://")
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, err
	}
	dbh, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, err
	}
	// one writer; parallel builds queue on the pool instead of hitting SQLITE_BUSY
	dbh.SetMaxOpenConns(1)
	// set WAL mode
	if _, err := dbh.ExecContext(ctx, `PRAGMA journal_mode=WAL;`); err != nil {
		_ = dbh.Close()
		return nil, nil, err
	}
	if err := migrate(ctx, dbh); err != nil {
		_ = dbh.Close()
		return nil, nil, err
	}
	return &sqliteStore{db: dbh}, dbh, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS manifest (
  slug TEXT PRIMARY KEY,
  hash TEXT NOT NULL,
  engine TEXT NOT NULL,
  settings TEXT NOT NULL DEFAULT '',
  year INTEGER NOT NULL,
  output TEXT NOT NULL,
  built_at TIMESTAMP NOT NULL
);
`)
	if err != nil {
		return err
	}
	// manifests written before settings were tracked
	return addColumn(ctx, db, "manifest", "settings", `TEXT NOT NULL DEFAULT ''`)
}

func addColumn(ctx context.Context, db *sql.DB, table, column, decl string) error {
	rows, err := db.QueryContext(ctx, `SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		if name == column {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	_ = rows.Close()
	_, err = db.ExecContext(ctx, `ALTER TABLE `+table+` ADD COLUMN `+column+` `+decl)
	return err
}
