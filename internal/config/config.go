package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTickRate  = 60
	DefaultGravity   = 70.0
	DefaultTimeScale = 1.0

	DefaultSoftRescueTicks = 50
	DefaultHardRescueTicks = 90
	DefaultGraceTicks      = 30
)

// Tuning holds every simulation constant in one place. All lengths are in
// play-area units (terminal cells in the TUI), velocities in units/second,
// durations in simulation ticks.
type Tuning struct {
	TickRate  int     `yaml:"tick_rate"`
	Gravity   float64 `yaml:"gravity"`
	TimeScale float64 `yaml:"time_scale"`

	Restitution float64 `yaml:"restitution"`
	Friction    float64 `yaml:"friction"`
	Damping     float64 `yaml:"damping"`

	GrabRadius    float64 `yaml:"grab_radius"`
	DragSmoothing float64 `yaml:"drag_smoothing"`
	DragMaxForce  float64 `yaml:"drag_max_force"`
	DragErrorBias float64 `yaml:"drag_error_bias"`

	ScatterJitter  float64 `yaml:"scatter_jitter"`
	ScatterImpulse float64 `yaml:"scatter_impulse"`

	MinRebound  float64 `yaml:"min_rebound"`
	SettleSpeed float64 `yaml:"settle_speed"`
	SettleKick  float64 `yaml:"settle_kick"`

	RejectBounce  float64 `yaml:"reject_bounce"`
	RejectLateral float64 `yaml:"reject_lateral"`
	LiftKick      float64 `yaml:"lift_kick"`

	EdgeGuard    float64 `yaml:"edge_guard"`
	FloorGap     float64 `yaml:"floor_gap"`
	OOBTolerance float64 `yaml:"oob_tolerance"`
	RescueSpeed  float64 `yaml:"rescue_speed"`

	SoftRescueTicks int `yaml:"soft_rescue_ticks"`
	HardRescueTicks int `yaml:"hard_rescue_ticks"`
	GraceTicks      int `yaml:"grace_ticks"`

	Seed int64 `yaml:"seed"`
}

func Default() *Tuning {
	return &Tuning{
		TickRate:  DefaultTickRate,
		Gravity:   DefaultGravity,
		TimeScale: DefaultTimeScale,

		Restitution: 0.55,
		Friction:    0.12,
		Damping:     0.99,

		GrabRadius:    2.0,
		DragSmoothing: 0.25,
		DragMaxForce:  900.0,
		DragErrorBias: 0.15,

		ScatterJitter:  2.5,
		ScatterImpulse: 14.0,

		MinRebound:  6.0,
		SettleSpeed: 0.8,
		SettleKick:  4.0,

		RejectBounce:  26.0,
		RejectLateral: 9.0,
		LiftKick:      11.0,

		EdgeGuard:    1.5,
		FloorGap:     0.5,
		OOBTolerance: 2.0,
		RescueSpeed:  10.0,

		SoftRescueTicks: DefaultSoftRescueTicks,
		HardRescueTicks: DefaultHardRescueTicks,
		GraceTicks:      DefaultGraceTicks,
	}
}

func Load(path string) (*Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse tuning: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Tuning) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (t *Tuning) Validate() error {
	if t.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %d", t.TickRate)
	}
	if t.TimeScale <= 0 {
		return fmt.Errorf("time_scale must be positive, got %f", t.TimeScale)
	}
	if t.Gravity <= 0 {
		return fmt.Errorf("gravity must be positive, got %f", t.Gravity)
	}
	if t.SoftRescueTicks < 0 || t.HardRescueTicks < 0 || t.GraceTicks < 0 {
		return fmt.Errorf("rescue and grace tick counts must be non-negative")
	}
	if t.SoftRescueTicks >= t.HardRescueTicks {
		return fmt.Errorf("soft_rescue_ticks (%d) must be below hard_rescue_ticks (%d)",
			t.SoftRescueTicks, t.HardRescueTicks)
	}
	return nil
}

// Dt is the fixed simulation timestep in seconds, before the time scale.
func (t *Tuning) Dt() float64 {
	return 1.0 / float64(t.TickRate)
}
