package store

import (
	"context"
	"testing"

	"github.com/roehl/interlog/internal/ledger"
)

func TestCount_EmptyLog(t *testing.T) {
	s := openTestStore(t, 1)

	count, err := s.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Count() = %d, expected 0", count)
	}
}

func TestGet_EmptyLog(t *testing.T) {
	s := openTestStore(t, 1)

	_, err := s.Get(context.Background(), 0)
	if err == nil {
		t.Fatal("Get(0) on empty log should fail")
	}
	if !ledger.IsIndexOutOfRange(err) {
		t.Errorf("expected INDEX_OUT_OF_RANGE, got: %v", err)
	}
}

func TestGet_ReturnsExactRecord(t *testing.T) {
	s := openTestStore(t, 1700000000)
	ctx := context.Background()

	want, err := s.Append(ctx, "alice", "Article Posted")
	if err != nil {
		t.Fatalf("Append() failed: %v", err)
	}

	got, err := s.Get(ctx, 0)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got != want {
		t.Errorf("Get() = %+v, expected %+v", got, want)
	}
}

func TestGet_OutOfRange(t *testing.T) {
	s := openTestStore(t, 1)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := s.Append(ctx, "alice", "Step"); err != nil {
			t.Fatalf("Append() failed: %v", err)
		}
	}

	for _, index := range []int64{3, 5, -1} {
		_, err := s.Get(ctx, index)
		if err == nil {
			t.Errorf("Get(%d) should fail with count 3", index)
			continue
		}
		if !ledger.IsIndexOutOfRange(err) {
			t.Errorf("Get(%d): expected INDEX_OUT_OF_RANGE, got: %v", index, err)
		}
	}
}

func TestGet_Idempotent(t *testing.T) {
	s := openTestStore(t, 1)
	ctx := context.Background()

	if _, err := s.Append(ctx, "alice", "Once"); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}

	r1, err := s.Get(ctx, 0)
	if err != nil {
		t.Fatalf("first Get() failed: %v", err)
	}
	r2, err := s.Get(ctx, 0)
	if err != nil {
		t.Fatalf("second Get() failed: %v", err)
	}
	if r1 != r2 {
		t.Errorf("repeated Get() returned different records: %+v vs %+v", r1, r2)
	}
}

func TestListByActor_FiltersAndOrders(t *testing.T) {
	s := openTestStore(t, 1)
	ctx := context.Background()

	appends := []struct{ actor, action string }{
		{"alice", "One"},
		{"bob", "Two"},
		{"alice", "Three"},
	}
	for _, a := range appends {
		if _, err := s.Append(ctx, a.actor, a.action); err != nil {
			t.Fatalf("Append() failed: %v", err)
		}
	}

	recs, err := s.ListByActor(ctx, "alice", 0)
	if err != nil {
		t.Fatalf("ListByActor() failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("ListByActor() returned %d records, expected 2", len(recs))
	}
	if recs[0].Action != "One" || recs[1].Action != "Three" {
		t.Errorf("ListByActor() out of order: %+v", recs)
	}

	limited, err := s.ListByActor(ctx, "alice", 1)
	if err != nil {
		t.Fatalf("ListByActor() with limit failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("ListByActor() limit 1 returned %d records", len(limited))
	}
}

func TestListByActor_EmptyResultIsNotNil(t *testing.T) {
	s := openTestStore(t, 1)

	recs, err := s.ListByActor(context.Background(), "nobody", 0)
	if err != nil {
		t.Fatalf("ListByActor() failed: %v", err)
	}
	if recs == nil {
		t.Error("ListByActor() returned nil, expected empty slice")
	}
	if len(recs) != 0 {
		t.Errorf("ListByActor() returned %d records, expected 0", len(recs))
	}
}

func TestList_LimitBoundsResult(t *testing.T) {
	s := openTestStore(t, 1)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := s.Append(ctx, "alice", "Step"); err != nil {
			t.Fatalf("Append() failed: %v", err)
		}
	}

	recs, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("List() limit 2 returned %d records", len(recs))
	}
	if recs[0].Index != 0 || recs[1].Index != 1 {
		t.Errorf("List() limit 2 should return the first two indexes, got %+v", recs)
	}

	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("List() without limit returned %d records, expected 5", len(all))
	}
}

func TestReadAll_IndexOrder(t *testing.T) {
	s := openTestStore(t, 1)
	ctx := context.Background()

	for _, actor := range []string{"A", "B", "A"} {
		if _, err := s.Append(ctx, actor, "Step"); err != nil {
			t.Fatalf("Append() failed: %v", err)
		}
	}

	recs, err := s.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("ReadAll() returned %d records, expected 3", len(recs))
	}
	for i, rec := range recs {
		if rec.Index != int64(i) {
			t.Errorf("ReadAll()[%d].Index = %d", i, rec.Index)
		}
	}
	wantActors := []string{"A", "B", "A"}
	for i, rec := range recs {
		if rec.Actor != wantActors[i] {
			t.Errorf("ReadAll()[%d].Actor = %q, expected %q", i, rec.Actor, wantActors[i])
		}
	}
}
