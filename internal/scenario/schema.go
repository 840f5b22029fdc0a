// Package scenario declares the YAML data contract the tick engine is
// initialized from, and loads/validates it.
package scenario

// Scenario is the root of the YAML data contract the engine is
// initialized from. Every field the engine consumes has an explicit
// yaml tag; the struct tree mirrors the schema one-to-one.
type Scenario struct {
	Meta           Meta           `yaml:"meta"`
	Sim            Sim            `yaml:"sim"`
	World          World          `yaml:"world"`
	CommandPost    CommandPost    `yaml:"command_post"`
	Policy         Policy         `yaml:"policy"`
	MissileDefault MissileDefault `yaml:"missile_defaults"`
	FriendlyForces FriendlyForces `yaml:"friendly_forces"`
	EnemyForces    EnemyForces    `yaml:"enemy_forces"`
}

type Meta struct {
	Version     string `yaml:"version"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type Sim struct {
	DtS   float64 `yaml:"dt_s"`
	TMaxS float64 `yaml:"t_max_s"`
	Seed  int64   `yaml:"seed"`
}

type RegionRect struct {
	XMinM float64 `yaml:"xmin_m"`
	XMaxM float64 `yaml:"xmax_m"`
	YMinM float64 `yaml:"ymin_m"`
	YMaxM float64 `yaml:"ymax_m"`
}

type DistanceConventions struct {
	Breakthrough      string `yaml:"breakthrough"`
	Sensor            string `yaml:"sensor"`
	LauncherSelection string `yaml:"launcher_selection"`
	Intercept         string `yaml:"intercept"`
}

type World struct {
	RegionRect          RegionRect          `yaml:"region_rect"`
	ZLimitsM            [2]float64          `yaml:"z_limits_m"`
	DistanceConventions DistanceConventions `yaml:"distance_conventions"`
}

type Point2 struct {
	XM float64 `yaml:"x_m"`
	YM float64 `yaml:"y_m"`
}

type Point3 struct {
	XM float64 `yaml:"x_m"`
	YM float64 `yaml:"y_m"`
	ZM float64 `yaml:"z_m"`
}

type CommandPost struct {
	ID             string  `yaml:"id"`
	Position       Point2  `yaml:"position"`
	ArrivalRadiusM float64 `yaml:"arrival_radius_m"`
}

type AngleReference struct {
	ZeroDegAxis string `yaml:"zero_deg_axis"`
	Rotation    string `yaml:"rotation"`
}

type MissileGuidance struct {
	Type                     string  `yaml:"type"`
	N                        float64 `yaml:"N"`
	EndgameFactor            float64 `yaml:"endgame_factor"`
	EndgameMissIncreaseTicks int     `yaml:"endgame_miss_increase_ticks"`
}

type Policy struct {
	TgoDefinition          string          `yaml:"tgo_definition"`
	TieBreakers            []string        `yaml:"tie_breakers"`
	LauncherSelectionOrder []string        `yaml:"launcher_selection_order"`
	LauncherInitiallyCoold *bool           `yaml:"launcher_initially_cooled"`
	AngleReference         AngleReference  `yaml:"angle_reference"`
	MissileGuidance        MissileGuidance `yaml:"missile_guidance"`
}

// LauncherInitiallyCooled returns the effective value of
// Policy.LauncherInitiallyCoold, defaulting to true when the scenario
// left the field unset.
func (p Policy) LauncherInitiallyCooled() bool {
	if p.LauncherInitiallyCoold == nil {
		return true
	}
	return *p.LauncherInitiallyCoold
}

type MissileKinematics struct {
	InitialSpeedMps  float64 `yaml:"initial_speed_mps"`
	MaxSpeedMps      float64 `yaml:"max_speed_mps"`
	MaxAccelMps2     float64 `yaml:"max_accel_mps2"`
	MaxTurnRateDegS  float64 `yaml:"max_turn_rate_deg_s"`
	InterceptRadiusM float64 `yaml:"intercept_radius_m"`
}

type MissileDefault struct {
	Kinematics MissileKinematics `yaml:"kinematics"`
}

type SensorSpec struct {
	ID     string  `yaml:"id"`
	Pos    Point3  `yaml:"pos"`
	RangeM float64 `yaml:"range_m"`
}

type LauncherSpec struct {
	ID             string  `yaml:"id"`
	Pos            Point3  `yaml:"pos"`
	MissilesLoaded uint32  `yaml:"missiles_loaded"`
	CooldownS      float64 `yaml:"cooldown_s"`
}

type FriendlyForces struct {
	Sensors   []SensorSpec   `yaml:"sensors"`
	Launchers []LauncherSpec `yaml:"launchers"`
}

type TargetGroupSpec struct {
	ID             string  `yaml:"id"`
	SpawnTimeS     float64 `yaml:"spawn_time_s"`
	CenterXY       Point2  `yaml:"center_xy"`
	ZM             float64 `yaml:"z_m"`
	Count          uint32  `yaml:"count"`
	RingSpacingM   float64 `yaml:"ring_spacing_m"`
	StartAngleDeg  float64 `yaml:"start_angle_deg"`
	RingHalfOffset bool    `yaml:"ring_half_offset"`
	EndurancePt    uint32  `yaml:"endurance_pt"`
	SpeedMps       float64 `yaml:"speed_mps"`
}

type EnemyForces struct {
	Groups []TargetGroupSpec `yaml:"groups"`
}

// Default distance conventions, applied by Normalize when the
// scenario leaves a convention field blank.
const (
	ConventionXY = "XY"
	Convention3D = "3D"
)

// Normalize fills in the scenario's documented defaults for fields
// the file left blank, without altering any field that was set.
func (s *Scenario) Normalize() {
	dc := &s.World.DistanceConventions
	if dc.Breakthrough == "" {
		dc.Breakthrough = ConventionXY
	}
	if dc.Sensor == "" {
		dc.Sensor = Convention3D
	}
	if dc.LauncherSelection == "" {
		dc.LauncherSelection = ConventionXY
	}
	if dc.Intercept == "" {
		dc.Intercept = Convention3D
	}

	if s.Policy.LauncherInitiallyCoold == nil {
		defaultCooled := true
		s.Policy.LauncherInitiallyCoold = &defaultCooled
	}

	if len(s.Policy.TieBreakers) == 0 {
		s.Policy.TieBreakers = []string{"distance_xy", "id_asc"}
	}
	if len(s.Policy.LauncherSelectionOrder) == 0 {
		s.Policy.LauncherSelectionOrder = []string{"cooldown_asc", "distance_asc", "id_asc"}
	}
	if s.Policy.MissileGuidance.Type == "" {
		s.Policy.MissileGuidance.Type = "PN"
	}
	if s.Policy.MissileGuidance.N == 0 {
		s.Policy.MissileGuidance.N = 3
	}
	if s.Policy.MissileGuidance.EndgameFactor == 0 {
		s.Policy.MissileGuidance.EndgameFactor = 2
	}
}
