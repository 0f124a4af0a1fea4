package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/bhakti259/expense-tracker-remote-mcp-server/internal/core"
)

func TestMemoryStoreInsertAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	first, err := s.Insert(ctx, core.Expense{Date: core.NewDate(2024, 11, 1), Amount: core.Money{Cents: 2000}, Category: "food"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Insert(ctx, core.Expense{Date: core.NewDate(2024, 11, 2), Amount: core.Money{Cents: 3000}, Category: "transport"})
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("got ids %d, %d", first.ID, second.ID)
	}
}

func TestMemoryStoreIDsAreNeverReused(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	e, _ := s.Insert(ctx, core.Expense{Date: core.NewDate(2024, 11, 1), Category: "food"})
	if err := s.Delete(ctx, e.ID); err != nil {
		t.Fatal(err)
	}
	next, _ := s.Insert(ctx, core.Expense{Date: core.NewDate(2024, 11, 2), Category: "food"})
	if next.ID == e.ID {
		t.Fatalf("id %d was reused", e.ID)
	}
}

func TestMemoryStoreGetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	e, _ := s.Insert(ctx, core.Expense{Date: core.NewDate(2024, 11, 1), Amount: core.Money{Cents: 100}, Category: "food"})

	got, err := s.Get(ctx, e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Category != "food" {
		t.Fatalf("got %+v", got)
	}

	got.Amount = core.Money{Cents: 999}
	if err := s.Update(ctx, got); err != nil {
		t.Fatal(err)
	}
	again, _ := s.Get(ctx, e.ID)
	if again.Amount.Cents != 999 {
		t.Fatalf("update not applied: %+v", again)
	}

	if err := s.Delete(ctx, e.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, e.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, 42); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("Get: expected ErrNotFound, got %v", err)
	}
	if err := s.Update(ctx, core.Expense{ID: 42, Date: core.NewDate(2024, 1, 1), Category: "food"}); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("Update: expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, 42); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("Delete: expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreListAllInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, cat := range []string{"a", "b", "c"} {
		if _, err := s.Insert(ctx, core.Expense{Date: core.NewDate(2024, 11, 1), Category: cat}); err != nil {
			t.Fatal(err)
		}
	}
	all, err := s.ListAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d records", len(all))
	}
	for i, e := range all {
		if e.ID != int64(i+1) {
			t.Fatalf("position %d has id %d", i, e.ID)
		}
	}
}
