package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning is the set of knobs the tactical rules are compiled from. It can be
// loaded from YAML; anything the file leaves out keeps its default.
type Tuning struct {
	Name string `yaml:"name" json:"name"`

	WaypointRadius float64 `yaml:"waypoint_radius" json:"waypoint_radius"` // arrival threshold for waypoint snapping
	LowHPFactor    float64 `yaml:"low_hp_factor" json:"low_hp_factor"`
	StrafeTicks    int     `yaml:"strafe_ticks" json:"strafe_ticks"` // evasive strafing lasts this many opening ticks

	// Outnumbered retreat: hostiles in cast range exceed our side in half cast
	// range (ourselves included) times OutnumberRatio, and life is under MaxLife*LowHPFactor*HealthyRetreatMultiplier.
	OutnumberRatio           float64 `yaml:"outnumber_ratio" json:"outnumber_ratio"`
	HealthyRetreatMultiplier float64 `yaml:"healthy_retreat_multiplier" json:"healthy_retreat_multiplier"`

	StructureWeight float64 `yaml:"structure_weight" json:"structure_weight"`
	WizardWeight    float64 `yaml:"wizard_weight" json:"wizard_weight"`
	MinionWeight    float64 `yaml:"minion_weight" json:"minion_weight"`

	HoldAtTower bool `yaml:"hold_at_tower" json:"hold_at_tower"`
	EscortAlly  bool `yaml:"escort_ally" json:"escort_ally"`
}

// DefaultTuning returns the baseline lane pusher.
func DefaultTuning() Tuning {
	return Tuning{
		Name:                     "Lane pusher",
		WaypointRadius:           100,
		LowHPFactor:              0.25,
		StrafeTicks:              1100,
		OutnumberRatio:           2,
		HealthyRetreatMultiplier: 3,
		StructureWeight:          5,
		WizardWeight:             250,
		MinionWeight:             10,
	}
}

// Validate clamps all values to their usable ranges.
func (t *Tuning) Validate() {
	t.WaypointRadius = clamp(t.WaypointRadius, 0, 1000)
	t.LowHPFactor = clamp(t.LowHPFactor, 0, 1)
	t.StrafeTicks = clampInt(t.StrafeTicks, 0, 20000)
	t.OutnumberRatio = clamp(t.OutnumberRatio, 0.5, 10)
	t.HealthyRetreatMultiplier = clamp(t.HealthyRetreatMultiplier, 0, 4)
	t.StructureWeight = clamp(t.StructureWeight, 0, 1000)
	t.WizardWeight = clamp(t.WizardWeight, 0, 1000)
	t.MinionWeight = clamp(t.MinionWeight, 0, 1000)
}

// LoadTuning reads a YAML tuning file over the defaults. An empty path
// returns the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("read tuning: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	t.Validate()
	return t, nil
}

// clampInt restricts v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clamp restricts v to [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
