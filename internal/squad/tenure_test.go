package squad

import (
	"testing"
	"time"
)

func TestTenureLifecycle(t *testing.T) {
	var tenure Tenure
	now := time.Now()

	// 无人值班：任何会话都有监管授权
	if !tenure.AuthorizedFor("anyone") {
		t.Fatalf("expected anyone authorized without active tenure")
	}

	if err := tenure.Start("", "Sergent", "uid-1", now); err == nil {
		t.Fatalf("expected empty officer rejected")
	}
	if err := tenure.Start("Dupont", "Sergent", "uid-1", now); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !tenure.Active || tenure.Officer != "Dupont" || tenure.OwnerUID != "uid-1" {
		t.Fatalf("unexpected tenure: %+v", tenure)
	}
	if tenure.StartedAt == nil {
		t.Fatalf("expected start timestamp")
	}

	// 同一时刻至多一条 active
	if err := tenure.Start("Martin", "Caporal", "uid-2", now); err == nil {
		t.Fatalf("expected second start rejected")
	}

	if tenure.AuthorizedFor("uid-2") {
		t.Fatalf("expected uid-2 not authorized")
	}
	if !tenure.AuthorizedFor("uid-1") {
		t.Fatalf("expected owner authorized")
	}

	if err := tenure.End(now.Add(time.Hour)); err != nil {
		t.Fatalf("End: %v", err)
	}
	if tenure.Active || tenure.Officer != "" || tenure.Grade != "" || tenure.OwnerUID != "" {
		t.Fatalf("expected cleared tenure, got %+v", tenure)
	}
	if tenure.EndedAt == nil {
		t.Fatalf("expected end timestamp")
	}
	if err := tenure.End(now); err == nil {
		t.Fatalf("expected end without active tenure rejected")
	}
}

func TestTenureForceRecover(t *testing.T) {
	var tenure Tenure
	now := time.Now()

	if err := tenure.ForceRecover("uid-2"); err == nil {
		t.Fatalf("expected recover without active tenure rejected")
	}

	if err := tenure.Start("Dupont", "Sergent", "uid-1", now); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := tenure.ForceRecover("uid-2"); err != nil {
		t.Fatalf("ForceRecover: %v", err)
	}
	// 只改 OwnerUID，其余字段不动
	if tenure.OwnerUID != "uid-2" || tenure.Officer != "Dupont" || !tenure.Active {
		t.Fatalf("unexpected tenure after recover: %+v", tenure)
	}
}
