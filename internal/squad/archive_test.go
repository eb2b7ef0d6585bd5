package squad

import (
	"context"
	"testing"
	"time"

	"github.com/icemanjeux64/FOFterminal-sub000/internal/store"
)

func TestArchiveOpenClose(t *testing.T) {
	ctx := context.Background()
	a := NewArchive(store.NewMemoryStore())
	start := time.Now()

	e, err := a.AppendOpen(ctx, LogistiqueName, "Dupont", start)
	if err != nil {
		t.Fatalf("AppendOpen: %v", err)
	}
	if e.TimeEnd != nil {
		t.Fatalf("expected open entry")
	}

	end := start.Add(2 * time.Hour)
	if err := a.CloseLatestOpenFor(ctx, LogistiqueName, end); err != nil {
		t.Fatalf("CloseLatestOpenFor: %v", err)
	}

	entries, err := a.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].TimeEnd == nil || !entries[0].TimeEnd.Equal(end) {
		t.Fatalf("expected closed at %v, got %v", end, entries[0].TimeEnd)
	}

	// 没有开放条目时关闭是 no-op
	if err := a.CloseLatestOpenFor(ctx, LogistiqueName, end); err != nil {
		t.Fatalf("CloseLatestOpenFor noop: %v", err)
	}
}

func TestArchiveClosesLatestOnly(t *testing.T) {
	ctx := context.Background()
	a := NewArchive(store.NewMemoryStore())
	t0 := time.Now()

	a.AppendOpen(ctx, LogistiqueName, "Dupont", t0)
	a.CloseLatestOpenFor(ctx, LogistiqueName, t0.Add(time.Hour))
	a.AppendOpen(ctx, LogistiqueName, "Martin", t0.Add(2*time.Hour))

	if err := a.CloseLatestOpenFor(ctx, LogistiqueName, t0.Add(3*time.Hour)); err != nil {
		t.Fatalf("CloseLatestOpenFor: %v", err)
	}
	entries, _ := a.Entries(ctx)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for i, e := range entries {
		if e.TimeEnd == nil {
			t.Fatalf("entry %d should be closed: %+v", i, e)
		}
	}
}
