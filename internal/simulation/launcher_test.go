package simulation

import (
	"testing"

	"github.com/picogrid/defsim/internal/simmath"
)

func testParams() MissileParams {
	return MissileParams{
		InitialSpeed:             50,
		MaxSpeed:                 900,
		MaxAccel:                 300,
		MaxTurnRateDegS:          60,
		InterceptRadius:          15,
		GuidanceN:                3,
		EndgameFactor:            2,
		EndgameMissIncreaseTicks: 3,
	}
}

func TestLauncherReadyGating(t *testing.T) {
	l := NewLauncher("L001", simmath.NewPosition3(0, 0, 0), 1, 5, true, testParams())
	if !l.Ready() {
		t.Fatalf("expected Ready with magazine>0 and zero cooldown")
	}

	l.Fire("G001_T001", 0)
	if l.Ready() {
		t.Fatalf("expected not Ready immediately after fire: magazine exhausted and cooling down")
	}
}

func TestLauncherCooldownGatesFireRegardlessOfMagazine(t *testing.T) {
	l := NewLauncher("L001", simmath.NewPosition3(0, 0, 0), 5, 10, true, testParams())
	l.Fire("G001_T001", 0)

	if l.Ready() {
		t.Fatalf("expected not Ready while cooling down even with magazine remaining")
	}

	l.Tick(10)
	if !l.Ready() {
		t.Fatalf("expected Ready once cooldown elapses")
	}
}

func TestLauncherInitiallyCooledFlag(t *testing.T) {
	cooled := NewLauncher("L001", simmath.NewPosition3(0, 0, 0), 1, 30, false, testParams())
	if cooled.Ready() {
		t.Fatalf("expected not Ready when launcher_initially_cooled is false")
	}
}

func TestLauncherFireMintsSequentialIDs(t *testing.T) {
	l := NewLauncher("L001", simmath.NewPosition3(0, 0, 0), 3, 0, true, testParams())

	m1 := l.Fire("G001_T001", 0)
	m2 := l.Fire("G001_T002", 0)

	if m1.ID != "L001_M001" || m2.ID != "L001_M002" {
		t.Fatalf("expected sequential zero-padded missile IDs, got %q %q", m1.ID, m2.ID)
	}
}

func TestLauncherFireWhenNotReadyReturnsNil(t *testing.T) {
	l := NewLauncher("L001", simmath.NewPosition3(0, 0, 0), 0, 0, true, testParams())
	if l.Fire("G001_T001", 0) != nil {
		t.Fatalf("expected nil missile when launcher has empty magazine")
	}
}
