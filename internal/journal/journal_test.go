package journal

import (
	"fmt"
	"testing"
	"time"
)

func TestAppendNewestFirst(t *testing.T) {
	j := New(0)
	now := time.Now()

	j.Append(TypeDeploy, "premier", "", now)
	j.Append(TypeMission, "deuxième", "", now)

	entries := j.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Message != "deuxième" || entries[1].Message != "premier" {
		t.Fatalf("expected newest first, got %v", entries)
	}
	if entries[0].Type != TypeMission {
		t.Fatalf("type mismatch: %s", entries[0].Type)
	}
}

func TestCapacityEviction(t *testing.T) {
	j := New(100)
	now := time.Now()
	for i := 0; i < 150; i++ {
		j.Append(TypeInfo, fmt.Sprintf("entrée %d", i), "", now)
	}
	if j.Len() != 100 {
		t.Fatalf("expected 100 entries, got %d", j.Len())
	}
	entries := j.Entries()
	// 最旧的 50 条被淘汰
	if entries[0].Message != "entrée 149" {
		t.Fatalf("newest mismatch: %s", entries[0].Message)
	}
	if entries[99].Message != "entrée 50" {
		t.Fatalf("oldest mismatch: %s", entries[99].Message)
	}
}

func TestDelete(t *testing.T) {
	j := New(10)
	now := time.Now()
	a := j.Append(TypeInfo, "a", "", now)
	j.Append(TypeAlert, "b", "", now)

	if err := j.Delete("absent"); err == nil {
		t.Fatalf("expected delete of unknown id to fail")
	}
	if err := j.Delete(a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	entries := j.Entries()
	if len(entries) != 1 || entries[0].Message != "b" {
		t.Fatalf("unexpected entries after delete: %v", entries)
	}
}

func TestRestoreTruncates(t *testing.T) {
	j := New(2)
	j.Restore([]Entry{{ID: "1"}, {ID: "2"}, {ID: "3"}})
	if j.Len() != 2 {
		t.Fatalf("expected truncate to capacity, got %d", j.Len())
	}
}
