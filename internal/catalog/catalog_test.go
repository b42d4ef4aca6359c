package catalog

import (
	"errors"
	"testing"
)

func TestCatalog_Lookup(t *testing.T) {
	c := Default()
	arch, err := c.Threat("loitering-munition")
	if err != nil {
		t.Fatalf("Threat: %v", err)
	}
	if arch.SpeedKPH != 185 || arch.Tier != TierHigh {
		t.Fatalf("unexpected archetype: %+v", arch)
	}
	cm, err := c.Countermeasure("rf-jammer")
	if err != nil {
		t.Fatalf("Countermeasure: %v", err)
	}
	if cm.Kind != SoftKill {
		t.Fatalf("kind = %s, want %s", cm.Kind, SoftKill)
	}
}

func TestCatalog_UnknownArchetype(t *testing.T) {
	c := Default()
	_, err := c.Threat("ufo")
	var unknown *UnknownArchetypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownArchetypeError, got %v", err)
	}
	if unknown.Kind != "threat" || unknown.Name != "ufo" {
		t.Fatalf("unexpected error fields: %+v", unknown)
	}
	if _, err := c.Countermeasure("trebuchet"); !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownArchetypeError, got %v", err)
	}
}

func TestCatalog_RejectsInvalidCrossSection(t *testing.T) {
	_, err := New([]ThreatArchetype{
		{Name: "stealth", SpeedKPH: 100, RadarCrossSectionM2: 0, Tier: TierHigh},
	}, nil)
	if err == nil {
		t.Fatalf("expected error for zero radar cross-section")
	}
}

func TestCatalog_RejectsInvalidEffectiveness(t *testing.T) {
	_, err := New(nil, []CountermeasureArchetype{
		{Name: "overcharged-laser", EffectiveRangeM: 1000, Effectiveness: 1.5, Kind: HardKill},
	})
	if err == nil {
		t.Fatalf("expected error for effectiveness > 1")
	}
}

func TestCatalog_ThreatNamesOrdered(t *testing.T) {
	c, err := New([]ThreatArchetype{
		{Name: "b", SpeedKPH: 1, RadarCrossSectionM2: 1},
		{Name: "a", SpeedKPH: 1, RadarCrossSectionM2: 1},
	}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	names := c.ThreatNames()
	if len(names) != 2 || names[0] != "b" || names[1] != "a" {
		t.Fatalf("expected registration order, got %v", names)
	}
}
