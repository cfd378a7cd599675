package geo

import (
	"math"
	"testing"
)

func TestHaversine_KnownDistance(t *testing.T) {
	// Two points in Cairo 0.01° of latitude apart, roughly 1113 m.
	got := Haversine(30.0444, 31.2357, 30.0544, 31.2357)

	want := 1113.0
	if math.Abs(got-want)/want > 0.01 {
		t.Errorf("expected ~%.0f m (within 1%%), got %.2f m", want, got)
	}
}

func TestHaversine_SamePoint(t *testing.T) {
	if got := Haversine(30.0444, 31.2357, 30.0444, 31.2357); got != 0 {
		t.Errorf("expected 0 m for identical points, got %.6f", got)
	}
}

func TestHaversine_Symmetric(t *testing.T) {
	ab := Haversine(30.0444, 31.2357, 30.0644, 31.2557)
	ba := Haversine(30.0644, 31.2557, 30.0444, 31.2357)
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("expected symmetric distance, got %.9f vs %.9f", ab, ba)
	}
}
