package threat

import (
	"math"
	"math/rand"

	"github.com/google/uuid"

	"skyshield/internal/catalog"
)

const metersPerDegLat = 111000.0

// SpawnRange bounds the initial standoff distance of a new threat.
type SpawnRange struct {
	MinKM float64
	MaxKM float64
}

// Spawn creates a threat at a uniformly random bearing and distance from the
// base, heading directly at it. Heading and speed are fixed for the threat's
// lifetime.
func Spawn(arch catalog.ThreatArchetype, base Position, rng SpawnRange, r *rand.Rand) *Threat {
	bearing := r.Float64() * 2 * math.Pi
	distM := (rng.MinKM + r.Float64()*(rng.MaxKM-rng.MinKM)) * 1000

	northM := distM * math.Cos(bearing)
	eastM := distM * math.Sin(bearing)
	pos := Position{
		Lat: base.Lat + northM/metersPerDegLat,
		Lon: base.Lon + eastM/(metersPerDegLat*math.Cos(base.Lat*math.Pi/180)),
		Alt: 50 + r.Float64()*math.Max(arch.MaxAltitudeM-50, 0),
	}

	t := &Threat{
		ID:         uuid.New().String(),
		Archetype:  arch,
		Position:   pos,
		HeadingRad: math.Mod(bearing+math.Pi, 2*math.Pi),
		SpeedMPS:   arch.SpeedKPH / 3.6,
		Status:     StatusIncoming,
		HealthPct:  100,
	}
	t.DistanceToBaseM = DistanceM(pos, base)
	return t
}

// Advance dead-reckons the threat along its fixed heading for dt seconds and
// recomputes the distance to base. Heading and speed never change after
// spawn; threats do not evade or loiter.
func (t *Threat) Advance(dtS float64, base Position) {
	stepM := t.SpeedMPS * dtS
	northM := stepM * math.Cos(t.HeadingRad)
	eastM := stepM * math.Sin(t.HeadingRad)
	t.Position.Lat += northM / metersPerDegLat
	t.Position.Lon += eastM / (metersPerDegLat * math.Cos(base.Lat*math.Pi/180))
	t.DistanceToBaseM = DistanceM(t.Position, base)
}

// DistanceM returns the ground distance between two points using an
// equirectangular approximation scaled at b's latitude. Dead-reckoning
// over tens of kilometers tolerates the flat-earth error.
func DistanceM(a, b Position) float64 {
	dNorth := (a.Lat - b.Lat) * metersPerDegLat
	dEast := (a.Lon - b.Lon) * metersPerDegLat * math.Cos(b.Lat*math.Pi/180)
	return math.Hypot(dNorth, dEast)
}
