package catalog

import (
	"testing"

	"skyshield/internal/config"
)

func TestFromConfig_EmptyFallsBackToDefault(t *testing.T) {
	c, err := FromConfig(&config.DefenseConfig{})
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if _, err := c.Threat("recon-quad"); err != nil {
		t.Fatalf("default threat missing: %v", err)
	}
	if _, err := c.Countermeasure("rf-jammer"); err != nil {
		t.Fatalf("default countermeasure missing: %v", err)
	}
}

func TestFromConfig_BuildsFromSpecs(t *testing.T) {
	cfg := &config.DefenseConfig{
		Threats: []config.ThreatSpec{
			{Name: "decoy-balloon", SpeedKPH: 20, MaxAltitudeM: 3000, RadarCrossSectionM2: 1.5, Tier: "LOW", UnitCost: 100},
		},
		Countermeasures: []config.CountermeasureSpec{
			{Name: "spotlight", EffectiveRangeM: 500, Effectiveness: 0.1, UnitCost: 10, Kind: "SOFT_KILL"},
		},
	}
	c, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	arch, err := c.Threat("decoy-balloon")
	if err != nil {
		t.Fatalf("Threat: %v", err)
	}
	if arch.Tier != TierLow || arch.RadarCrossSectionM2 != 1.5 {
		t.Fatalf("unexpected archetype: %+v", arch)
	}
	// Configured catalogs replace the defaults entirely.
	if _, err := c.Threat("recon-quad"); err == nil {
		t.Fatalf("default archetype leaked into configured catalog")
	}
}

func TestFromConfig_InvalidSpec(t *testing.T) {
	cfg := &config.DefenseConfig{
		Threats: []config.ThreatSpec{
			{Name: "phantom", SpeedKPH: 100, RadarCrossSectionM2: 0},
		},
	}
	if _, err := FromConfig(cfg); err == nil {
		t.Fatalf("expected validation error for zero cross-section")
	}
}
