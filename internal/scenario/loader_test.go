package scenario

import "testing"

func TestLoadValidScenario(t *testing.T) {
	s, err := Load("testdata/lone_intercept.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Meta.Name != "lone-intercept" {
		t.Errorf("Meta.Name = %q", s.Meta.Name)
	}
	if len(s.FriendlyForces.Launchers) != 1 {
		t.Fatalf("expected 1 launcher, got %d", len(s.FriendlyForces.Launchers))
	}
	if s.FriendlyForces.Launchers[0].ID != "L001" {
		t.Errorf("launcher id = %q", s.FriendlyForces.Launchers[0].ID)
	}
	if len(s.EnemyForces.Groups) != 1 || s.EnemyForces.Groups[0].Count != 1 {
		t.Fatalf("expected one group of one target")
	}
}

func TestNormalizeDefaultsLauncherInitiallyCooledToTrue(t *testing.T) {
	s := &Scenario{}
	s.Normalize()
	if !s.Policy.LauncherInitiallyCooled() {
		t.Error("expected launcher_initially_cooled to default to true when unset")
	}
}

func TestNormalizePreservesExplicitLauncherInitiallyCooled(t *testing.T) {
	no := false
	s := &Scenario{Policy: Policy{LauncherInitiallyCoold: &no}}
	s.Normalize()
	if s.Policy.LauncherInitiallyCooled() {
		t.Error("expected an explicit false to survive Normalize")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/does_not_exist.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var loadErr *LoadError
	if !asLoadError(err, &loadErr) {
		t.Errorf("expected *LoadError, got %T: %v", err, err)
	}
}

func asLoadError(err error, target **LoadError) bool {
	le, ok := err.(*LoadError)
	if ok {
		*target = le
	}
	return ok
}

func TestValidateRejectsBadScenario(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Scenario)
		wantErr bool
	}{
		{"negative dt", func(s *Scenario) { s.Sim.DtS = -1 }, true},
		{"zero t_max", func(s *Scenario) { s.Sim.TMaxS = 0 }, true},
		{"inverted region", func(s *Scenario) { s.World.RegionRect.XMaxM = s.World.RegionRect.XMinM - 1 }, true},
		{"cp outside region", func(s *Scenario) { s.CommandPost.Position.XM = 2_000_000 }, true},
		{"spawn at t_max", func(s *Scenario) { s.EnemyForces.Groups[0].SpawnTimeS = s.Sim.TMaxS }, true},
		{"valid scenario unchanged", func(s *Scenario) {}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Load("testdata/lone_intercept.yaml")
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			tt.mutate(s)
			err = s.Validate()
			if tt.wantErr && err == nil {
				t.Errorf("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
