// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BasePosition is the defended point all threats approach.
type BasePosition struct {
	Lat  float64 `yaml:"lat"`
	Lon  float64 `yaml:"lon"`
	AltM float64 `yaml:"alt_m"`
}

// ThreatSpec declares one threat archetype in the catalog.
type ThreatSpec struct {
	Name                string  `yaml:"name"`
	SpeedKPH            float64 `yaml:"speed_kph"`
	MaxAltitudeM        float64 `yaml:"max_altitude_m"`
	RadarCrossSectionM2 float64 `yaml:"radar_cross_section_m2"`
	Tier                string  `yaml:"tier"`
	UnitCost            float64 `yaml:"unit_cost"`
}

// CountermeasureSpec declares one countermeasure archetype in the catalog.
type CountermeasureSpec struct {
	Name            string  `yaml:"name"`
	EffectiveRangeM float64 `yaml:"effective_range_m"`
	Effectiveness   float64 `yaml:"effectiveness"`
	UnitCost        float64 `yaml:"unit_cost"`
	Kind            string  `yaml:"kind"`
	DeploymentTimeS float64 `yaml:"deployment_time_s"`
}

// ScenarioMix is one archetype/count pair inside a scenario preset.
type ScenarioMix struct {
	Archetype string `yaml:"archetype"`
	Count     int    `yaml:"count"`
}

// Scenario is a named threat-mix preset spawned at scenario start.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Mix         []ScenarioMix `yaml:"mix"`
}

// DefenseConfig is the root configuration for the mission engine.
type DefenseConfig struct {
	Base               BasePosition         `yaml:"base"`
	InitialBudget      float64              `yaml:"initial_budget"`
	RadarCoveragePct   float64              `yaml:"radar_coverage_pct"`
	DetectionScale     float64              `yaml:"detection_scale"`
	DetectionThreshold float64              `yaml:"detection_threshold"`
	BreachThresholdM   float64              `yaml:"breach_threshold_m"`
	SpawnMinKM         float64              `yaml:"spawn_min_km"`
	SpawnMaxKM         float64              `yaml:"spawn_max_km"`
	SpawnProbability   float64              `yaml:"spawn_probability"`
	SpawnCooldownTicks int                  `yaml:"spawn_cooldown_ticks"`
	EventLogCapacity   int                  `yaml:"event_log_capacity"`
	KillReward         int                  `yaml:"kill_reward"`
	AttritionReward    int                  `yaml:"attrition_reward"`
	Threats            []ThreatSpec         `yaml:"threats"`
	Countermeasures    []CountermeasureSpec `yaml:"countermeasures"`
	Scenarios          []Scenario           `yaml:"scenarios"`
	DefaultScenario    string               `yaml:"default_scenario"`
}

// Load loads YAML config and validates it against a CUE schema.
func Load(configPath, cueSchemaPath string) (*DefenseConfig, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	var cfg DefenseConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("cannot unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Scenario returns the preset with the given name.
func (c *DefenseConfig) Scenario(name string) (Scenario, bool) {
	for _, s := range c.Scenarios {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}
