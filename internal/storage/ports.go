// Package storage persists expense records. The query core depends only on
// the RecordStore capability interface; any engine satisfying it is
// substitutable.
package storage

import (
	"context"

	"github.com/bhakti259/expense-tracker-remote-mcp-server/internal/core"
)

// RecordStore is the minimal contract the expense core needs from a
// persistence engine: an insertion-ordered table of rows with unique,
// store-assigned ids.
type RecordStore interface {
	// Insert persists a new record and returns it with its assigned id.
	Insert(ctx context.Context, e core.Expense) (core.Expense, error)

	// Get fetches a record by id. Returns core.ErrNotFound when absent.
	Get(ctx context.Context, id int64) (core.Expense, error)

	// Update replaces all mutable fields of the record with the given id.
	// Returns core.ErrNotFound when absent. The id itself is immutable.
	Update(ctx context.Context, e core.Expense) error

	// Delete removes a record by id. Returns core.ErrNotFound when absent.
	Delete(ctx context.Context, id int64) error

	// ListAll returns every record in insertion order. Filtering and
	// ordering for queries happen in the core, not here.
	ListAll(ctx context.Context) ([]core.Expense, error)

	// Close releases underlying resources.
	Close() error
}
