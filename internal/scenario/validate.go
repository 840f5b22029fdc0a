package scenario

import "fmt"

// Validate checks the semantic rules a syntactically valid scenario
// must still satisfy before the engine can run it. It returns the
// first violation found as a *ValidationError.
func (s *Scenario) Validate() error {
	w := s.World

	if s.Sim.DtS <= 0 {
		return &ValidationError{"sim.dt_s", "must be > 0"}
	}
	if s.Sim.TMaxS <= 0 {
		return &ValidationError{"sim.t_max_s", "must be > 0"}
	}

	r := w.RegionRect
	if r.XMinM >= r.XMaxM {
		return &ValidationError{"world.region_rect", "xmin_m must be < xmax_m"}
	}
	if r.YMinM >= r.YMaxM {
		return &ValidationError{"world.region_rect", "ymin_m must be < ymax_m"}
	}

	zMin, zMax := w.ZLimitsM[0], w.ZLimitsM[1]
	if zMin < 0 || zMin >= zMax {
		return &ValidationError{"world.z_limits_m", "must satisfy 0 <= z_min < z_max"}
	}

	cp := s.CommandPost.Position
	if cp.XM < r.XMinM || cp.XM > r.XMaxM || cp.YM < r.YMinM || cp.YM > r.YMaxM {
		return &ValidationError{"command_post.position", "must lie inside world.region_rect"}
	}

	for _, conv := range []struct {
		field string
		value string
	}{
		{"world.distance_conventions.breakthrough", w.DistanceConventions.Breakthrough},
		{"world.distance_conventions.sensor", w.DistanceConventions.Sensor},
		{"world.distance_conventions.launcher_selection", w.DistanceConventions.LauncherSelection},
		{"world.distance_conventions.intercept", w.DistanceConventions.Intercept},
	} {
		if conv.value != ConventionXY && conv.value != Convention3D {
			return &ValidationError{conv.field, fmt.Sprintf("must be %q or %q", ConventionXY, Convention3D)}
		}
	}

	seen := map[string]bool{}
	for _, sensor := range s.FriendlyForces.Sensors {
		if seen[sensor.ID] {
			return &ValidationError{"friendly_forces.sensors", fmt.Sprintf("duplicate sensor id %q", sensor.ID)}
		}
		seen[sensor.ID] = true
	}
	seen = map[string]bool{}
	for _, launcher := range s.FriendlyForces.Launchers {
		if seen[launcher.ID] {
			return &ValidationError{"friendly_forces.launchers", fmt.Sprintf("duplicate launcher id %q", launcher.ID)}
		}
		seen[launcher.ID] = true
		if launcher.CooldownS <= 0 {
			return &ValidationError{"friendly_forces.launchers", fmt.Sprintf("launcher %q cooldown_s must be > 0", launcher.ID)}
		}
	}

	seen = map[string]bool{}
	for _, group := range s.EnemyForces.Groups {
		if seen[group.ID] {
			return &ValidationError{"enemy_forces.groups", fmt.Sprintf("duplicate group id %q", group.ID)}
		}
		seen[group.ID] = true
		if group.SpawnTimeS >= s.Sim.TMaxS {
			return &ValidationError{"enemy_forces.groups", fmt.Sprintf("group %q spawn_time_s must be < sim.t_max_s", group.ID)}
		}
		if group.Count == 0 {
			return &ValidationError{"enemy_forces.groups", fmt.Sprintf("group %q count must be > 0", group.ID)}
		}
		if group.RingSpacingM <= 0 {
			return &ValidationError{"enemy_forces.groups", fmt.Sprintf("group %q ring_spacing_m must be > 0", group.ID)}
		}
	}

	mk := s.MissileDefault.Kinematics
	if mk.MaxSpeedMps <= 0 || mk.MaxAccelMps2 <= 0 || mk.InterceptRadiusM <= 0 {
		return &ValidationError{"missile_defaults.kinematics", "max_speed_mps, max_accel_mps2 and intercept_radius_m must all be > 0"}
	}

	return nil
}
