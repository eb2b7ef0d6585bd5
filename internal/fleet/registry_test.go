package fleet

import (
	"testing"
	"time"
)

func TestRegistryDeployCallsigns(t *testing.T) {
	r := NewRegistry()
	now := time.Now()

	v1, err := r.Deploy(testTemplate(), now)
	if err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	if v1.Callsign != "CAMI-001" {
		t.Fatalf("expected CAMI-001, got %s", v1.Callsign)
	}

	v2, _ := r.Deploy(testTemplate(), now)
	if v2.Callsign != "CAMI-002" {
		t.Fatalf("expected CAMI-002, got %s", v2.Callsign)
	}

	// 移除 001 后，序号复用最小空位
	if _, err := r.Remove(v1.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	v3, _ := r.Deploy(testTemplate(), now)
	if v3.Callsign != "CAMI-001" {
		t.Fatalf("expected CAMI-001 reused, got %s", v3.Callsign)
	}

	// 呼号与 ID 在役期间保持唯一
	seenID := map[string]bool{}
	seenCS := map[string]bool{}
	for _, v := range r.Vehicles() {
		if seenID[v.ID] || seenCS[v.Callsign] {
			t.Fatalf("duplicate id or callsign: %s / %s", v.ID, v.Callsign)
		}
		seenID[v.ID] = true
		seenCS[v.Callsign] = true
	}
}

func TestRegistryDestroyCount(t *testing.T) {
	r := NewRegistry()
	now := time.Now()
	v, _ := r.Deploy(testTemplate(), now)

	if _, err := r.Destroy("absent"); err == nil {
		t.Fatalf("expected destroy of unknown id to fail")
	}
	if r.DestroyedCount() != 0 {
		t.Fatalf("count must not move on failure")
	}

	if _, err := r.Destroy(v.ID); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if r.Len() != 0 {
		t.Fatalf("expected empty registry")
	}
	if r.DestroyedCount() != 1 {
		t.Fatalf("expected destroyed count 1, got %d", r.DestroyedCount())
	}
}

func TestRegistrySnapshotRestore(t *testing.T) {
	r := NewRegistry()
	now := time.Now()
	r.Deploy(testTemplate(), now)
	v, _ := r.Deploy(testTemplate(), now)
	r.Destroy(v.ID)

	snap := r.Snapshot()

	r2 := NewRegistry()
	r2.Restore(snap)
	if r2.Len() != 1 || r2.DestroyedCount() != 1 {
		t.Fatalf("restore mismatch: len=%d destroyed=%d", r2.Len(), r2.DestroyedCount())
	}
}
