// Static archetype registries for threats and countermeasures.
package catalog

import "fmt"

// ThreatTier classifies how dangerous a threat class is.
type ThreatTier string

const (
	TierLow      ThreatTier = "LOW"
	TierMedium   ThreatTier = "MEDIUM"
	TierHigh     ThreatTier = "HIGH"
	TierCritical ThreatTier = "CRITICAL"
)

// CountermeasureKind describes the effect mechanism of a countermeasure.
type CountermeasureKind string

const (
	SoftKill CountermeasureKind = "SOFT_KILL"
	HardKill CountermeasureKind = "HARD_KILL"
	Capture  CountermeasureKind = "CAPTURE"
)

// ThreatArchetype is an immutable template for one class of inbound threat.
type ThreatArchetype struct {
	Name                string
	SpeedKPH            float64
	MaxAltitudeM        float64
	RadarCrossSectionM2 float64
	Tier                ThreatTier
	UnitCost            float64
}

// CountermeasureArchetype is an immutable template for one defensive system.
type CountermeasureArchetype struct {
	Name            string
	EffectiveRangeM float64
	Effectiveness   float64
	UnitCost        float64
	Kind            CountermeasureKind
	DeploymentTimeS float64
}

// UnknownArchetypeError reports a lookup for a name absent from the catalog.
type UnknownArchetypeError struct {
	Kind string
	Name string
}

func (e *UnknownArchetypeError) Error() string {
	return fmt.Sprintf("unknown %s archetype %q", e.Kind, e.Name)
}

// Catalog provides read-only archetype lookups. Safe for concurrent readers
// once built.
type Catalog struct {
	threats         map[string]ThreatArchetype
	countermeasures map[string]CountermeasureArchetype
	threatNames     []string
}

// New builds a catalog from archetype lists, validating each entry.
func New(threats []ThreatArchetype, countermeasures []CountermeasureArchetype) (*Catalog, error) {
	c := &Catalog{
		threats:         make(map[string]ThreatArchetype, len(threats)),
		countermeasures: make(map[string]CountermeasureArchetype, len(countermeasures)),
	}
	for _, t := range threats {
		if t.Name == "" {
			return nil, fmt.Errorf("threat archetype with empty name")
		}
		if t.RadarCrossSectionM2 <= 0 {
			return nil, fmt.Errorf("threat archetype %q: radar cross-section must be > 0", t.Name)
		}
		if t.SpeedKPH <= 0 {
			return nil, fmt.Errorf("threat archetype %q: speed must be > 0", t.Name)
		}
		if _, dup := c.threats[t.Name]; dup {
			return nil, fmt.Errorf("duplicate threat archetype %q", t.Name)
		}
		c.threats[t.Name] = t
		c.threatNames = append(c.threatNames, t.Name)
	}
	for _, cm := range countermeasures {
		if cm.Name == "" {
			return nil, fmt.Errorf("countermeasure archetype with empty name")
		}
		if cm.Effectiveness < 0 || cm.Effectiveness > 1 {
			return nil, fmt.Errorf("countermeasure archetype %q: effectiveness must be within [0,1]", cm.Name)
		}
		if cm.EffectiveRangeM <= 0 {
			return nil, fmt.Errorf("countermeasure archetype %q: effective range must be > 0", cm.Name)
		}
		if _, dup := c.countermeasures[cm.Name]; dup {
			return nil, fmt.Errorf("duplicate countermeasure archetype %q", cm.Name)
		}
		c.countermeasures[cm.Name] = cm
	}
	return c, nil
}

// Threat looks up a threat archetype by name.
func (c *Catalog) Threat(name string) (ThreatArchetype, error) {
	t, ok := c.threats[name]
	if !ok {
		return ThreatArchetype{}, &UnknownArchetypeError{Kind: "threat", Name: name}
	}
	return t, nil
}

// Countermeasure looks up a countermeasure archetype by name.
func (c *Catalog) Countermeasure(name string) (CountermeasureArchetype, error) {
	cm, ok := c.countermeasures[name]
	if !ok {
		return CountermeasureArchetype{}, &UnknownArchetypeError{Kind: "countermeasure", Name: name}
	}
	return cm, nil
}

// ThreatNames returns threat archetype names in registration order.
func (c *Catalog) ThreatNames() []string {
	names := make([]string, len(c.threatNames))
	copy(names, c.threatNames)
	return names
}

// Default returns the built-in archetype set used when the configuration
// does not define its own catalogs.
func Default() *Catalog {
	c, err := New(defaultThreats, defaultCountermeasures)
	if err != nil {
		panic(err)
	}
	return c
}

var defaultThreats = []ThreatArchetype{
	{Name: "recon-quad", SpeedKPH: 60, MaxAltitudeM: 2000, RadarCrossSectionM2: 0.05, Tier: TierLow, UnitCost: 2000},
	{Name: "fpv-strike", SpeedKPH: 120, MaxAltitudeM: 1500, RadarCrossSectionM2: 0.02, Tier: TierMedium, UnitCost: 5000},
	{Name: "loitering-munition", SpeedKPH: 185, MaxAltitudeM: 4000, RadarCrossSectionM2: 0.1, Tier: TierHigh, UnitCost: 20000},
	{Name: "fixed-wing-cruise", SpeedKPH: 250, MaxAltitudeM: 6000, RadarCrossSectionM2: 0.5, Tier: TierCritical, UnitCost: 80000},
}

var defaultCountermeasures = []CountermeasureArchetype{
	{Name: "rf-jammer", EffectiveRangeM: 3000, Effectiveness: 0.7, UnitCost: 1500, Kind: SoftKill, DeploymentTimeS: 5},
	{Name: "net-capture", EffectiveRangeM: 800, Effectiveness: 0.6, UnitCost: 4000, Kind: Capture, DeploymentTimeS: 8},
	{Name: "gun-ciws", EffectiveRangeM: 2000, Effectiveness: 0.85, UnitCost: 12000, Kind: HardKill, DeploymentTimeS: 2},
	{Name: "interceptor-drone", EffectiveRangeM: 8000, Effectiveness: 0.75, UnitCost: 30000, Kind: HardKill, DeploymentTimeS: 15},
	{Name: "laser-dew", EffectiveRangeM: 4000, Effectiveness: 0.9, UnitCost: 50000, Kind: HardKill, DeploymentTimeS: 3},
}
