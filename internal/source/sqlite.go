package source

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLite pages items out of an `items` table.
type SQLite struct {
	db     *sql.DB
	path   string
	sorter *Sorter
}

// OpenSQLite opens (and if needed creates) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, path: path, sorter: NewSorter()}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

func (s *SQLite) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS items (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			page     INTEGER NOT NULL DEFAULT 0,
			title    TEXT    NOT NULL,
			subtitle TEXT    NOT NULL DEFAULT ''
		)
	`)
	return err
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Name implements Source.
func (s *SQLite) Name() string {
	return "sqlite:" + filepath.Base(s.path)
}

// Count returns the number of stored items.
func (s *SQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return n, nil
}

// Insert stores items, assigning IDs to any that have none.
func (s *SQLite) Insert(ctx context.Context, items []Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, it := range items {
		if it.ID > 0 {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO items (id, page, title, subtitle) VALUES (?, ?, ?, ?)`,
				it.ID, it.Page, it.Title, it.Subtitle)
		} else {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO items (page, title, subtitle) VALUES (?, ?, ?)`,
				it.Page, it.Title, it.Subtitle)
		}
		if err != nil {
			return fmt.Errorf("inserting item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing items: %w", err)
	}
	return nil
}

// Seed fills an empty table with n generated items grouped into pages of
// pageSize. It does nothing when the table already has rows.
func (s *SQLite) Seed(ctx context.Context, n, pageSize int) error {
	count, err := s.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 || n <= 0 {
		return nil
	}

	items := make([]Item, 0, n)
	for i := 0; i < n; i++ {
		page := PageOf(i, pageSize)
		items = append(items, Item{
			Page:     page,
			Title:    fmt.Sprintf("Row %d", i+1),
			Subtitle: fmt.Sprintf("seeded on page %d", page),
		})
	}
	return s.Insert(ctx, items)
}

// Fetch implements Source.
func (s *SQLite) Fetch(ctx context.Context, q Query) ([]Item, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	orderBy := "id ASC"
	if q.SortField != "" {
		// Field names are whitelisted, so they are safe to interpolate.
		if !s.sorter.IsValidField(q.SortField) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSortField, q.SortField)
		}
		dir := "ASC"
		if strings.EqualFold(q.SortOrder, SortOrderDesc) {
			dir = "DESC"
		}
		orderBy = fmt.Sprintf("%s %s, id ASC", q.SortField, dir)
	}

	query := `SELECT id, page, title, subtitle FROM items ORDER BY ` + orderBy + ` LIMIT ? OFFSET ?`

	rows, err := s.db.QueryContext(ctx, query, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Page, &it.Title, &it.Subtitle); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}
