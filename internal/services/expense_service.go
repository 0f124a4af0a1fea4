// Package services implements the expense operations behind the tool
// surface: create, query, mutate and summarize.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/bhakti259/expense-tracker-remote-mcp-server/internal/core"
	"github.com/bhakti259/expense-tracker-remote-mcp-server/internal/storage"
)

// DefaultListLimit caps list results when the caller does not pass a limit.
const DefaultListLimit = 50

// EventPublisher notifies downstream consumers about mutations. Publish
// failures are logged, never surfaced: the record is already durable.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, action string, id int64) error
}

// Filter narrows a listing. Zero values mean "no constraint"; Limit <= 0
// falls back to the service default.
type Filter struct {
	Category       string
	DateExpression string
	Limit          int
}

// ExpenseUpdate carries a partial field set for update operations. Nil
// pointers leave the stored value unchanged.
type ExpenseUpdate struct {
	DateExpression *string
	Amount         *core.Money
	Category       *string
	Subcategory    *string
	Note           *string
}

// ExpenseService orchestrates expense operations over a RecordStore.
type ExpenseService struct {
	store        storage.RecordStore
	events       EventPublisher
	defaultLimit int
	now          func() time.Time
}

func NewExpenseService(store storage.RecordStore, events EventPublisher, defaultLimit int) *ExpenseService {
	if defaultLimit <= 0 {
		defaultLimit = DefaultListLimit
	}
	return &ExpenseService{
		store:        store,
		events:       events,
		defaultLimit: defaultLimit,
		now:          time.Now,
	}
}

// WithClock replaces the reference clock. Tests use it to pin "today".
func (s *ExpenseService) WithClock(now func() time.Time) *ExpenseService {
	s.now = now
	return s
}

// AddExpense validates the date and amount, then delegates to the store,
// which assigns the id.
func (s *ExpenseService) AddExpense(ctx context.Context, dateExpr string, amount core.Money, category, subcategory, note string) (core.Expense, error) {
	date, err := s.resolveSingleDay(dateExpr)
	if err != nil {
		return core.Expense{}, err
	}

	e := core.Expense{
		Date:        date,
		Amount:      amount,
		Category:    strings.TrimSpace(category),
		Subcategory: strings.TrimSpace(subcategory),
		Note:        note,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("validate expense: %w", err)
	}

	saved, err := s.store.Insert(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	s.publish(ctx, "created", saved.ID)
	return saved, nil
}

// ListExpenses returns matching records in reverse-chronological order,
// ties broken by id descending, truncated to the limit.
func (s *ExpenseService) ListExpenses(ctx context.Context, f Filter) ([]core.Expense, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}

	matched, err := s.filter(ctx, f.Category, f.DateExpression)
	if err != nil {
		return nil, err
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// UpdateExpense applies a partial field set to an existing record. Unset
// fields keep their stored values.
func (s *ExpenseService) UpdateExpense(ctx context.Context, id int64, u ExpenseUpdate) (core.Expense, error) {
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return core.Expense{}, fmt.Errorf("fetch expense %d: %w", id, err)
	}

	if u.DateExpression != nil {
		date, err := s.resolveSingleDay(*u.DateExpression)
		if err != nil {
			return core.Expense{}, err
		}
		e.Date = date
	}
	if u.Amount != nil {
		e.Amount = *u.Amount
	}
	if u.Category != nil {
		e.Category = strings.TrimSpace(*u.Category)
	}
	if u.Subcategory != nil {
		e.Subcategory = strings.TrimSpace(*u.Subcategory)
	}
	if u.Note != nil {
		e.Note = *u.Note
	}

	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("validate expense: %w", err)
	}
	if err := s.store.Update(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("update expense %d: %w", id, err)
	}

	s.publish(ctx, "updated", id)
	return e, nil
}

// DeleteExpense removes a record, failing with core.ErrNotFound for an
// unknown id.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	s.publish(ctx, "deleted", id)
	return nil
}

// SummarizeExpenses aggregates the full filtered set; no limit applies.
func (s *ExpenseService) SummarizeExpenses(ctx context.Context, dateExpr, category string) (core.Summary, error) {
	matched, err := s.filter(ctx, category, dateExpr)
	if err != nil {
		return core.Summary{}, err
	}
	return core.Summarize(matched), nil
}

// filter fetches all rows and applies category/date predicates, returning
// matches ordered by date descending, id descending. Read-only.
func (s *ExpenseService) filter(ctx context.Context, category, dateExpr string) ([]core.Expense, error) {
	var (
		dateRange core.DateRange
		hasRange  bool
	)
	if strings.TrimSpace(dateExpr) != "" {
		res, err := core.ResolveDateExpression(dateExpr, s.now())
		if err != nil {
			return nil, err
		}
		dateRange = res.Range()
		hasRange = true
	}

	all, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	matched := make([]core.Expense, 0, len(all))
	for _, e := range all {
		if category != "" && !strings.EqualFold(e.Category, category) {
			continue
		}
		if hasRange && !dateRange.Contains(e.Date) {
			continue
		}
		matched = append(matched, e)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date.Time) {
			return matched[j].Date.Before(matched[i].Date)
		}
		return matched[i].ID > matched[j].ID
	})

	return matched, nil
}

// resolveSingleDay resolves a date expression that must denote exactly one
// calendar day ("2024-11-27", "Nov 27", "today", "yesterday").
func (s *ExpenseService) resolveSingleDay(expr string) (core.Date, error) {
	res, err := core.ResolveDateExpression(expr, s.now())
	if err != nil {
		return core.Date{}, err
	}
	day, ok := res.Day()
	if !ok {
		return core.Date{}, fmt.Errorf("%w: %q covers more than one day", core.ErrInvalidDateExpression, expr)
	}
	return day, nil
}

func (s *ExpenseService) publish(ctx context.Context, action string, id int64) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishExpenseEvent(ctx, action, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"action", action, "id", id, "error", err)
		// Don't fail the request - the record is already persisted.
	}
}
