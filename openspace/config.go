package openspace

import "github.com/pkg/errors"

// Config holds every tunable of the search and speed-profiling pipeline.
// Fields are json-tagged so a scenario file can decode straight into one,
// matching the teacher's convention of round-tripping planner options
// through encoding/json rather than a bespoke flag parser.
type Config struct {
	NextNodeNum       int     `json:"next_node_num"`
	XYGridResolution  float64 `json:"xy_grid_resolution"`
	PhiGridResolution float64 `json:"phi_grid_resolution"`
	StepSize          float64 `json:"step_size"`
	DeltaT            float64 `json:"delta_t"`

	WheelBase float64 `json:"wheel_base"`
	MaxSteer  float64 `json:"max_steer"`

	TrajForwardPenalty     float64 `json:"traj_forward_penalty"`
	TrajBackPenalty        float64 `json:"traj_back_penalty"`
	TrajGearSwitchPenalty  float64 `json:"traj_gear_switch_penalty"`
	TrajSteerPenalty       float64 `json:"traj_steer_penalty"`
	TrajSteerChangePenalty float64 `json:"traj_steer_change_penalty"`

	AccWeight   float64 `json:"acc_weight"`
	JerkWeight  float64 `json:"jerk_weight"`
	KappaWeight float64 `json:"kappa_penalty_weight"`
	RefSWeight  float64 `json:"ref_s_weight"`
	RefVWeight  float64 `json:"ref_v_weight"`

	MaxForwardV  float64 `json:"max_forward_v"`
	MaxReverseV  float64 `json:"max_reverse_v"`
	MaxForwardAcc float64 `json:"max_forward_acc"`
	MaxReverseAcc float64 `json:"max_reverse_acc"`
	MaxAccJerk   float64 `json:"max_acc_jerk"`

	MaxExploredNum       int     `json:"max_explored_num"`
	DesiredExploredNum   int     `json:"desired_explored_num"`
	AStarMaxSearchTimeS  float64 `json:"astar_max_search_time"`

	TrajKappaConstraintRatio float64 `json:"traj_kappa_contraint_ratio"`
	UseSCurveSpeedSmooth     bool    `json:"use_s_curve_speed_smooth"`

	// Vehicle footprint, used by the collision checker to build the
	// oriented rectangle from a reference pose (spec.md section 4.4).
	VehicleLength float64 `json:"vehicle_length"`
	VehicleWidth  float64 `json:"vehicle_width"`
	FrontToAxle   float64 `json:"front_to_axle"`
	BackToAxle    float64 `json:"back_to_axle"`
	LeftToAxle    float64 `json:"left_to_axle"`
	RightToAxle   float64 `json:"right_to_axle"`
}

// DefaultConfig returns the configuration used in spec.md section 8's
// end-to-end scenarios.
func DefaultConfig() Config {
	return Config{
		NextNodeNum:       10,
		XYGridResolution:  0.3,
		PhiGridResolution: 0.2,
		StepSize:          0.5,
		DeltaT:            0.5,

		WheelBase: 2.8,
		MaxSteer:  0.5,

		TrajForwardPenalty:     1.0,
		TrajBackPenalty:        1.5,
		TrajGearSwitchPenalty:  10.0,
		TrajSteerPenalty:       0.5,
		TrajSteerChangePenalty: 0.5,

		AccWeight:   1.0,
		JerkWeight:  1.0,
		KappaWeight: 1.0,
		RefSWeight:  0.1,
		RefVWeight:  0.1,

		MaxForwardV:   2.0,
		MaxReverseV:   1.0,
		MaxForwardAcc: 1.0,
		MaxReverseAcc: 1.0,
		MaxAccJerk:    4.0,

		MaxExploredNum:      2000,
		DesiredExploredNum:  1,
		AStarMaxSearchTimeS: 5.0,

		TrajKappaConstraintRatio: 1.0,
		UseSCurveSpeedSmooth:     true,

		VehicleLength: 4.8,
		VehicleWidth:  2.0,
		FrontToAxle:   3.8,
		BackToAxle:    1.0,
		LeftToAxle:    1.0,
		RightToAxle:   1.0,
	}
}

// Validate rejects a configuration that could not drive the search or
// profiler, per spec.md section 6's configuration surface.
func (c Config) Validate() error {
	if c.NextNodeNum < 4 || c.NextNodeNum%2 != 0 {
		return errors.Wrapf(ErrInvalidInput, "next_node_num %d must be even and >= 4", c.NextNodeNum)
	}
	if c.XYGridResolution <= 0 || c.PhiGridResolution <= 0 {
		return errors.Wrap(ErrInvalidInput, "grid resolutions must be positive")
	}
	if c.StepSize <= 0 {
		return errors.Wrap(ErrInvalidInput, "step_size must be positive")
	}
	if c.DeltaT <= 0 {
		return errors.Wrap(ErrInvalidInput, "delta_t must be positive")
	}
	if c.WheelBase <= 0 {
		return errors.Wrap(ErrInvalidInput, "wheel_base must be positive")
	}
	if c.MaxSteer <= 0 {
		return errors.Wrap(ErrInvalidInput, "max_steer must be positive")
	}
	if c.MaxExploredNum <= 0 || c.DesiredExploredNum <= 0 {
		return errors.Wrap(ErrInvalidInput, "explored-node budgets must be positive")
	}
	if c.AStarMaxSearchTimeS <= 0 {
		return errors.Wrap(ErrInvalidInput, "astar_max_search_time must be positive")
	}
	if c.VehicleLength <= 0 || c.VehicleWidth <= 0 {
		return errors.Wrap(ErrInvalidInput, "vehicle length/width must be positive")
	}
	return nil
}

// effectiveMaxSteer applies the kappa-constraint ratio configuration
// option to the raw max_steer, per the spec's configuration surface.
func (c Config) effectiveMaxSteer() float64 {
	if c.TrajKappaConstraintRatio <= 0 {
		return c.MaxSteer
	}
	return c.MaxSteer * c.TrajKappaConstraintRatio
}

// centerOffset computes the rear-axle-to-geometric-center offset this
// config's footprint geometry implies, per spec.md section 4.4. Only the
// offset along the heading is computed; LeftToAxle and RightToAxle are not
// used, so the footprint is taken as laterally centered on the rear axle.
func (c Config) centerOffset() float64 {
	return (c.FrontToAxle - c.BackToAxle) / 2
}
