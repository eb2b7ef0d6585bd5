package fleet

import (
	"testing"
	"time"
)

func testTemplate() Template {
	return Template{
		ID: "camion", Type: "Camion", Group: GroupLogistique, Cost: 200,
		SeatRoles: []string{"Conducteur", "Passager 1", "Passager 2"},
	}
}

func TestCanTransition(t *testing.T) {
	if !CanTransition(StatusOperational, StatusOnMission) {
		t.Fatalf("expected operational -> on_mission allowed")
	}
	if !CanTransition(StatusOnMission, StatusMaintenance) {
		t.Fatalf("expected on_mission -> maintenance allowed")
	}
	if CanTransition(StatusOperational, StatusMaintenance) {
		t.Fatalf("expected operational -> maintenance not allowed")
	}
	if CanTransition(StatusMaintenance, StatusOnMission) {
		t.Fatalf("expected maintenance -> on_mission not allowed")
	}
}

func TestStartMission(t *testing.T) {
	now := time.Now()
	v := NewVehicle(testTemplate(), "CAMI-001", now)
	if v.Status != StatusOperational || v.Fuel != 100 || v.Integrity != 100 {
		t.Fatalf("unexpected initial state: %+v", v)
	}

	if err := StartMission(v, "  ", now); err == nil {
		t.Fatalf("expected empty details rejected")
	}
	if err := StartMission(v, "Ravitaillement Nord", now); err != nil {
		t.Fatalf("StartMission: %v", err)
	}
	if v.Status != StatusOnMission {
		t.Fatalf("expected on_mission, got %s", v.Status)
	}
	if v.MissionDetails != "Ravitaillement Nord" {
		t.Fatalf("mission details mismatch: %q", v.MissionDetails)
	}

	// 已在任务中不能再次出发
	if err := StartMission(v, "Autre", now); err == nil {
		t.Fatalf("expected double start rejected")
	}
}

func TestReturnMissionEscalation(t *testing.T) {
	now := time.Now()
	cases := []struct {
		fuel, integrity int
		needs           bool
		wantStatus      Status
		wantEscalated   bool
	}{
		{100, 100, false, StatusOperational, false},
		{15, 40, false, StatusMaintenance, true}, // fuel<20 且 integrity<100
		{50, 100, false, StatusOperational, false},
		{100, 99, false, StatusMaintenance, true},
		{100, 100, true, StatusMaintenance, true},
		{19, 100, false, StatusMaintenance, true},
		{20, 100, false, StatusOperational, false},
	}

	for i, c := range cases {
		v := NewVehicle(testTemplate(), "CAMI-001", now)
		if err := StartMission(v, "Transport", now); err != nil {
			t.Fatalf("case %d StartMission: %v", i, err)
		}
		escalated, err := ReturnMission(v, "RAS", c.fuel, c.integrity, c.needs, now)
		if err != nil {
			t.Fatalf("case %d ReturnMission: %v", i, err)
		}
		if v.Status != c.wantStatus || escalated != c.wantEscalated {
			t.Fatalf("case %d: status=%s escalated=%v, want %s/%v", i, v.Status, escalated, c.wantStatus, c.wantEscalated)
		}
		if v.ReturnReport != "RAS" {
			t.Fatalf("case %d: report mismatch %q", i, v.ReturnReport)
		}
	}
}

func TestReturnMissionClampsInputs(t *testing.T) {
	now := time.Now()
	v := NewVehicle(testTemplate(), "CAMI-001", now)
	if err := StartMission(v, "Transport", now); err != nil {
		t.Fatalf("StartMission: %v", err)
	}
	if _, err := ReturnMission(v, "OK", 150, -10, false, now); err != nil {
		t.Fatalf("ReturnMission: %v", err)
	}
	if v.Fuel != 100 || v.Integrity != 0 {
		t.Fatalf("expected clamped fuel=100 integrity=0, got %d/%d", v.Fuel, v.Integrity)
	}
}

func TestReturnMissionRequiresOnMission(t *testing.T) {
	now := time.Now()
	v := NewVehicle(testTemplate(), "CAMI-001", now)
	if _, err := ReturnMission(v, "OK", 100, 100, false, now); err == nil {
		t.Fatalf("expected return from operational rejected")
	}
	if v.Status != StatusOperational {
		t.Fatalf("state must be unchanged on rejection")
	}
}

func TestRepairAndResupply(t *testing.T) {
	now := time.Now()
	v := NewVehicle(testTemplate(), "CAMI-001", now)
	if err := StartMission(v, "Transport", now); err != nil {
		t.Fatalf("StartMission: %v", err)
	}
	if _, err := ReturnMission(v, "Touché", 10, 30, false, now); err != nil {
		t.Fatalf("ReturnMission: %v", err)
	}
	if v.Status != StatusMaintenance {
		t.Fatalf("expected maintenance, got %s", v.Status)
	}
	if err := RepairAndResupply(v, now); err != nil {
		t.Fatalf("RepairAndResupply: %v", err)
	}
	if v.Status != StatusOperational || v.Fuel != 100 || v.Integrity != 100 {
		t.Fatalf("expected full restore, got %+v", v)
	}
}

func TestCallsignPrefix(t *testing.T) {
	cases := map[string]string{
		"Camion":     "CAMI",
		"VAB":        "VAB",
		"NH90":       "NH",
		"Camion GBC": "CAMI",
		"":           "VEH",
	}
	for in, want := range cases {
		if got := CallsignPrefix(in); got != want {
			t.Fatalf("CallsignPrefix(%q) = %q, want %q", in, got, want)
		}
	}
}
