// Package sqlite provides a SQLite-backed pool storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/loreforge/internal/core/lore"
	sqlitemigrate "github.com/louisbranch/loreforge/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/loreforge/internal/services/forge/storage"
	"github.com/louisbranch/loreforge/internal/services/forge/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists generation pools in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens a SQLite pool store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// GetUnivers returns one univers by id.
func (s *Store) GetUnivers(ctx context.Context, id string) (storage.Univers, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Univers{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.Univers{}, fmt.Errorf("univers id is required")
	}
	var u storage.Univers
	err := s.sqlDB.QueryRowContext(ctx, `SELECT id, name FROM univers WHERE id = ?`, id).Scan(&u.ID, &u.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Univers{}, storage.ErrNotFound
		}
		return storage.Univers{}, fmt.Errorf("get univers: %w", err)
	}
	return u, nil
}

// ListCandidates returns the candidates of q.Kind inside the requested scope,
// ordered by id. Candidates without a univers are shared by every univers;
// an unset univers lists all of them.
func (s *Store) ListCandidates(ctx context.Context, q storage.PoolQuery) ([]lore.Candidate, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(q.Kind)) == "" {
		return nil, fmt.Errorf("candidate kind is required")
	}

	var where clauses
	where.add("kind = ?", string(q.Kind))
	if id := strings.TrimSpace(q.UniversID); id != "" {
		where.add("univers_id IN (?, '')", id)
	}
	if q.Kind == storage.KindFamily {
		// Family names without a culture are shared across cultures.
		if id := strings.TrimSpace(q.CultureID); id != "" {
			where.add("culture_id IN (?, '')", id)
		}
	} else {
		if id := strings.TrimSpace(q.CultureID); id != "" {
			where.add("culture_id = ?", id)
		}
		if id := strings.TrimSpace(q.CategorieID); id != "" {
			where.add("categorie_id = ?", id)
		}
		if len(q.Genres) > 0 {
			where.in("genre", q.Genres)
		}
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, display_text, genre, culture_id, categorie_id, label
		   FROM candidates
		  WHERE `+where.sql()+`
		  ORDER BY id ASC`,
		where.args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var out []lore.Candidate
	for rows.Next() {
		var c lore.Candidate
		if err := rows.Scan(&c.ID, &c.DisplayText, &c.Genre, &c.CultureID, &c.CategorieID, &c.Label); err != nil {
			return nil, fmt.Errorf("list candidates: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return out, nil
}

// ListFragments returns the fragments usable for q.Kind in q.UniversID,
// ordered by id. Per-subject scope and length checks are left to the engine.
func (s *Store) ListFragments(ctx context.Context, q storage.PoolQuery) ([]lore.Fragment, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	var where clauses
	if id := strings.TrimSpace(q.UniversID); id != "" {
		where.add("univers_id IN (?, '')", id)
	}
	if q.Kind != "" {
		where.add("applies_to IN (?, '', '*')", string(q.Kind))
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, text, applies_to, genre, culture_id, categorie_id, min_name_length, max_name_length
		   FROM fragments
		  WHERE `+where.sql()+`
		  ORDER BY id ASC`,
		where.args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list fragments: %w", err)
	}
	defer rows.Close()

	var out []lore.Fragment
	for rows.Next() {
		var f lore.Fragment
		var minLen, maxLen sql.NullInt64
		if err := rows.Scan(&f.ID, &f.Text, &f.AppliesTo, &f.Genre, &f.CultureID, &f.CategorieID, &minLen, &maxLen); err != nil {
			return nil, fmt.Errorf("list fragments: %w", err)
		}
		if minLen.Valid {
			f.MinNameLength = lore.IntPtr(int(minLen.Int64))
		}
		if maxLen.Valid {
			f.MaxNameLength = lore.IntPtr(int(maxLen.Int64))
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list fragments: %w", err)
	}
	return out, nil
}

// PutUnivers inserts or renames a univers.
func (s *Store) PutUnivers(ctx context.Context, u storage.Univers) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id := strings.TrimSpace(u.ID)
	if id == "" {
		return fmt.Errorf("univers id is required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO univers (id, name, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, updated_at = excluded.updated_at`,
		id, strings.TrimSpace(u.Name), s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put univers: %w", err)
	}
	return nil
}

// PutCandidates upserts candidates in one transaction.
func (s *Store) PutCandidates(ctx context.Context, records []storage.CandidateRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO candidates (id, kind, univers_id, display_text, genre, culture_id, categorie_id, label, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
			   kind = excluded.kind,
			   univers_id = excluded.univers_id,
			   display_text = excluded.display_text,
			   genre = excluded.genre,
			   culture_id = excluded.culture_id,
			   categorie_id = excluded.categorie_id,
			   label = excluded.label,
			   updated_at = excluded.updated_at`)
		if err != nil {
			return fmt.Errorf("prepare candidate upsert: %w", err)
		}
		defer stmt.Close()

		now := s.now().UTC().UnixMilli()
		for _, r := range records {
			id := strings.TrimSpace(r.ID)
			if id == "" {
				return fmt.Errorf("candidate id is required")
			}
			if strings.TrimSpace(string(r.Kind)) == "" {
				return fmt.Errorf("candidate %s: kind is required", id)
			}
			if _, err := stmt.ExecContext(ctx,
				id, string(r.Kind), strings.TrimSpace(r.UniversID), r.DisplayText,
				strings.TrimSpace(r.Genre), strings.TrimSpace(r.CultureID), strings.TrimSpace(r.CategorieID),
				strings.TrimSpace(r.Label), now,
			); err != nil {
				return fmt.Errorf("put candidate %s: %w", id, err)
			}
		}
		return nil
	})
}

// PutFragments upserts fragments in one transaction.
func (s *Store) PutFragments(ctx context.Context, records []storage.FragmentRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO fragments (id, univers_id, text, applies_to, genre, culture_id, categorie_id, min_name_length, max_name_length, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
			   univers_id = excluded.univers_id,
			   text = excluded.text,
			   applies_to = excluded.applies_to,
			   genre = excluded.genre,
			   culture_id = excluded.culture_id,
			   categorie_id = excluded.categorie_id,
			   min_name_length = excluded.min_name_length,
			   max_name_length = excluded.max_name_length,
			   updated_at = excluded.updated_at`)
		if err != nil {
			return fmt.Errorf("prepare fragment upsert: %w", err)
		}
		defer stmt.Close()

		now := s.now().UTC().UnixMilli()
		for _, r := range records {
			id := strings.TrimSpace(r.ID)
			if id == "" {
				return fmt.Errorf("fragment id is required")
			}
			if _, err := stmt.ExecContext(ctx,
				id, strings.TrimSpace(r.UniversID), r.Text, strings.TrimSpace(r.AppliesTo),
				strings.TrimSpace(r.Genre), strings.TrimSpace(r.CultureID), strings.TrimSpace(r.CategorieID),
				nullableInt(r.MinNameLength), nullableInt(r.MaxNameLength), now,
			); err != nil {
				return fmt.Errorf("put fragment %s: %w", id, err)
			}
		}
		return nil
	})
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

// clauses accumulates AND-ed WHERE conditions and their arguments.
type clauses struct {
	parts []string
	args  []any
}

func (c *clauses) add(cond string, args ...any) {
	c.parts = append(c.parts, cond)
	c.args = append(c.args, args...)
}

func (c *clauses) in(column string, values []string) {
	marks := make([]string, len(values))
	for i, v := range values {
		marks[i] = "?"
		c.args = append(c.args, v)
	}
	c.parts = append(c.parts, column+" IN ("+strings.Join(marks, ", ")+")")
}

func (c *clauses) sql() string {
	if len(c.parts) == 0 {
		return "1 = 1"
	}
	return strings.Join(c.parts, " AND ")
}

var (
	_ storage.PoolReader    = (*Store)(nil)
	_ storage.CatalogWriter = (*Store)(nil)
)
