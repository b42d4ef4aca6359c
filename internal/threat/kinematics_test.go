package threat

import (
	"math"
	"math/rand"
	"testing"

	"skyshield/internal/catalog"
)

var testBase = Position{Lat: 33.7215, Lon: 73.0433}

func testArchetype() catalog.ThreatArchetype {
	return catalog.ThreatArchetype{
		Name: "loitering-munition", SpeedKPH: 185, MaxAltitudeM: 4000,
		RadarCrossSectionM2: 0.1, Tier: catalog.TierHigh, UnitCost: 20000,
	}
}

func TestSpawn_WithinRange(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	rng := SpawnRange{MinKM: 10, MaxKM: 50}
	for i := 0; i < 20; i++ {
		tr := Spawn(testArchetype(), testBase, rng, r)
		if tr.DistanceToBaseM < 9999 || tr.DistanceToBaseM > 50001 {
			t.Fatalf("spawn distance %f outside [10km, 50km]", tr.DistanceToBaseM)
		}
		if tr.Status != StatusIncoming {
			t.Fatalf("status = %s, want %s", tr.Status, StatusIncoming)
		}
		if tr.HealthPct != 100 {
			t.Fatalf("health = %f, want 100", tr.HealthPct)
		}
		if tr.ID == "" {
			t.Fatalf("expected non-empty id")
		}
	}
}

func TestSpawn_SpeedConversion(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	tr := Spawn(testArchetype(), testBase, SpawnRange{MinKM: 10, MaxKM: 50}, r)
	want := 185.0 / 3.6
	if math.Abs(tr.SpeedMPS-want) > 1e-9 {
		t.Fatalf("speed = %f m/s, want %f", tr.SpeedMPS, want)
	}
}

func TestAdvance_MonotonicApproach(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	tr := Spawn(testArchetype(), testBase, SpawnRange{MinKM: 10, MaxKM: 50}, r)
	prev := tr.DistanceToBaseM
	for i := 0; i < 100; i++ {
		tr.Advance(1, testBase)
		if tr.DistanceToBaseM >= prev {
			t.Fatalf("tick %d: distance %f not strictly below %f", i, tr.DistanceToBaseM, prev)
		}
		prev = tr.DistanceToBaseM
	}
}

func TestAdvance_StepSize(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	tr := Spawn(testArchetype(), testBase, SpawnRange{MinKM: 10, MaxKM: 50}, r)
	before := tr.DistanceToBaseM
	tr.Advance(1, testBase)
	step := before - tr.DistanceToBaseM
	if math.Abs(step-tr.SpeedMPS) > 0.5 {
		t.Fatalf("closed %f m in one second, want about %f", step, tr.SpeedMPS)
	}
}

func TestAdvance_HeadingFixed(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	tr := Spawn(testArchetype(), testBase, SpawnRange{MinKM: 10, MaxKM: 50}, r)
	heading := tr.HeadingRad
	speed := tr.SpeedMPS
	for i := 0; i < 50; i++ {
		tr.Advance(1, testBase)
	}
	if tr.HeadingRad != heading || tr.SpeedMPS != speed {
		t.Fatalf("heading/speed changed after spawn")
	}
}

func TestDistanceM_Equirectangular(t *testing.T) {
	a := Position{Lat: testBase.Lat + 0.01, Lon: testBase.Lon}
	d := DistanceM(a, testBase)
	if math.Abs(d-1110) > 1 {
		t.Fatalf("distance = %f, want about 1110", d)
	}
}

func TestStatus_Terminal(t *testing.T) {
	for _, s := range []Status{StatusIncoming, StatusDetected, StatusEngaged} {
		if s.Terminal() {
			t.Fatalf("%s should not be terminal", s)
		}
	}
	for _, s := range []Status{StatusNeutralized, StatusBreached} {
		if !s.Terminal() {
			t.Fatalf("%s should be terminal", s)
		}
	}
}
