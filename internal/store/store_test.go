package store

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStorePutGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.Put(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil || string(got) != "v1" {
		t.Fatalf("Get: %s %v", got, err)
	}

	// 覆盖写
	if err := s.Put(ctx, "k", []byte("v2")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, _ = s.Get(ctx, "k")
	if string(got) != "v2" {
		t.Fatalf("expected v2, got %s", got)
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	in := []byte("abc")
	if err := s.Put(ctx, "k", in); err != nil {
		t.Fatalf("Put: %v", err)
	}
	in[0] = 'x'

	got, _ := s.Get(ctx, "k")
	if string(got) != "abc" {
		t.Fatalf("stored value aliased caller buffer: %s", got)
	}
	got[0] = 'y'
	again, _ := s.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("returned value aliased stored buffer: %s", again)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	type record struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	if err := PutJSON(ctx, s, "r", record{Name: "Logistique", Count: 3}); err != nil {
		t.Fatalf("PutJSON: %v", err)
	}
	var out record
	if err := GetJSON(ctx, s, "r", &out); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if out.Name != "Logistique" || out.Count != 3 {
		t.Fatalf("unexpected round trip: %+v", out)
	}

	var missing record
	if err := GetJSON(ctx, s, "absent", &missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
