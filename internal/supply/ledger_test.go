package supply

import "testing"

func TestLedger(t *testing.T) {
	l := NewLedger()

	if _, err := l.Add("", 10); err == nil {
		t.Fatalf("expected empty name rejected")
	}
	if _, err := l.Add("Dépôt Nord", -5); err == nil {
		t.Fatalf("expected negative amount rejected")
	}

	a, err := l.Add("Dépôt Nord", 120)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	b, err := l.Add("Dépôt Sud", 80)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if l.Total() != 200 {
		t.Fatalf("expected total 200, got %d", l.Total())
	}

	if err := l.Update(a.ID, 50); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := l.Update(a.ID, -1); err == nil {
		t.Fatalf("expected negative update rejected")
	}
	if l.Total() != 130 {
		t.Fatalf("expected total 130, got %d", l.Total())
	}

	if err := l.Remove(b.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := l.Remove(b.ID); err == nil {
		t.Fatalf("expected second remove to fail")
	}
	if l.Total() != 50 {
		t.Fatalf("expected total 50, got %d", l.Total())
	}
}
