package storage

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bhakti259/expense-tracker-remote-mcp-server/internal/core"
)

//go:embed postgres_schema.sql
var postgresSchemaSQL string

// PostgresStore is a RecordStore backed by PostgreSQL, for deployments where
// the server does not own local disk.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, url string) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}
	poolConfig.MaxConnLifetime = 1 * time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	slog.InfoContext(ctx, "Connected to PostgreSQL store")
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func (s *PostgresStore) Insert(ctx context.Context, e core.Expense) (core.Expense, error) {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO expenses (date, amount_cents, category, subcategory, note)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		e.Date.Time, e.Amount.Cents, e.Category, e.Subcategory, e.Note).Scan(&e.ID)
	if err != nil {
		return core.Expense{}, storeErr("insert expense", err)
	}

	slog.InfoContext(ctx, "Expense saved to PostgreSQL",
		"id", e.ID,
		"date", e.Date.ISO(),
		"amount_cents", e.Amount.Cents,
		"category", e.Category)

	return e, nil
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (core.Expense, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, date, amount_cents, category, subcategory, note
		 FROM expenses WHERE id = $1`, id)

	e, err := scanPostgresExpense(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Expense{}, core.ErrNotFound
	}
	if err != nil {
		return core.Expense{}, storeErr("get expense", err)
	}
	return e, nil
}

func (s *PostgresStore) Update(ctx context.Context, e core.Expense) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE expenses
		 SET date = $1, amount_cents = $2, category = $3, subcategory = $4, note = $5
		 WHERE id = $6`,
		e.Date.Time, e.Amount.Cents, e.Category, e.Subcategory, e.Note, e.ID)
	if err != nil {
		return storeErr("update expense", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete expense", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}

	slog.InfoContext(ctx, "Expense deleted from PostgreSQL", "id", id)
	return nil
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]core.Expense, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, date, amount_cents, category, subcategory, note
		 FROM expenses ORDER BY id`)
	if err != nil {
		return nil, storeErr("list expenses", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanPostgresExpense(rows.Scan)
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

func scanPostgresExpense(scan func(dest ...any) error) (core.Expense, error) {
	var (
		e    core.Expense
		date time.Time
	)
	if err := scan(&e.ID, &date, &e.Amount.Cents, &e.Category, &e.Subcategory, &e.Note); err != nil {
		return core.Expense{}, err
	}
	e.Date = core.DateOf(date)
	return e, nil
}
