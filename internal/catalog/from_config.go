package catalog

import "skyshield/internal/config"

// FromConfig builds a catalog from configured archetype specs. An empty
// config catalog falls back to the built-in defaults.
func FromConfig(cfg *config.DefenseConfig) (*Catalog, error) {
	if len(cfg.Threats) == 0 && len(cfg.Countermeasures) == 0 {
		return Default(), nil
	}
	threats := make([]ThreatArchetype, 0, len(cfg.Threats))
	for _, t := range cfg.Threats {
		threats = append(threats, ThreatArchetype{
			Name:                t.Name,
			SpeedKPH:            t.SpeedKPH,
			MaxAltitudeM:        t.MaxAltitudeM,
			RadarCrossSectionM2: t.RadarCrossSectionM2,
			Tier:                ThreatTier(t.Tier),
			UnitCost:            t.UnitCost,
		})
	}
	countermeasures := make([]CountermeasureArchetype, 0, len(cfg.Countermeasures))
	for _, cm := range cfg.Countermeasures {
		countermeasures = append(countermeasures, CountermeasureArchetype{
			Name:            cm.Name,
			EffectiveRangeM: cm.EffectiveRangeM,
			Effectiveness:   cm.Effectiveness,
			UnitCost:        cm.UnitCost,
			Kind:            CountermeasureKind(cm.Kind),
			DeploymentTimeS: cm.DeploymentTimeS,
		})
	}
	return New(threats, countermeasures)
}
