package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bhakti259/expense-tracker-remote-mcp-server/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore is the default durable RecordStore, backed by a local sqlite
// file. Dates are stored as ISO strings so row ordering and range scans
// stay readable.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runSQLiteMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Insert(ctx context.Context, e core.Expense) (core.Expense, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (date, amount_cents, category, subcategory, note)
		 VALUES (?, ?, ?, ?, ?)`,
		e.Date.ISO(), e.Amount.Cents, e.Category, e.Subcategory, e.Note)
	if err != nil {
		return core.Expense{}, storeErr("insert expense", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Expense{}, storeErr("read inserted id", err)
	}
	e.ID = id

	slog.InfoContext(ctx, "Expense saved to SQLite",
		"id", e.ID,
		"date", e.Date.ISO(),
		"amount_cents", e.Amount.Cents,
		"category", e.Category)

	return e, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id int64) (core.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, date, amount_cents, category, subcategory, note
		 FROM expenses WHERE id = ?`, id)

	e, err := scanExpense(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, core.ErrNotFound
	}
	if err != nil {
		return core.Expense{}, storeErr("get expense", err)
	}
	return e, nil
}

func (s *SQLiteStore) Update(ctx context.Context, e core.Expense) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE expenses
		 SET date = ?, amount_cents = ?, category = ?, subcategory = ?, note = ?
		 WHERE id = ?`,
		e.Date.ISO(), e.Amount.Cents, e.Category, e.Subcategory, e.Note, e.ID)
	if err != nil {
		return storeErr("update expense", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return storeErr("update expense", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return storeErr("delete expense", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return storeErr("delete expense", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}

	slog.InfoContext(ctx, "Expense deleted from SQLite", "id", id)
	return nil
}

func (s *SQLiteStore) ListAll(ctx context.Context) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, amount_cents, category, subcategory, note
		 FROM expenses ORDER BY id`)
	if err != nil {
		return nil, storeErr("list expenses", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows.Scan)
		if err != nil {
			return nil, storeErr("scan expense", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list expenses", err)
	}
	return out, nil
}

func scanExpense(scan func(dest ...any) error) (core.Expense, error) {
	var (
		e    core.Expense
		date string
	)
	if err := scan(&e.ID, &date, &e.Amount.Cents, &e.Category, &e.Subcategory, &e.Note); err != nil {
		return core.Expense{}, err
	}
	d, err := core.ParseISODate(date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("stored date %q: %w", date, err)
	}
	e.Date = d
	return e, nil
}

// storeErr marks a persistence failure so callers can match it with
// errors.Is(err, core.ErrStoreUnavailable). The original error text is kept.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, core.ErrStoreUnavailable, err)
}
