package service

import (
	"math"

	"github.com/kallejre/quick-gps-bookmark/internal/domain"
	"github.com/kallejre/quick-gps-bookmark/pkg/geo"
)

// ComputeDerived derives motion metrics from a validated point pair.
//
// Distance and bearing only need the coordinates and are filled in whenever
// both timestamps exist. Elapsed time and speed additionally need t2 > t1;
// with equal or backward timestamps they stay nil so that no zero or
// negative speeds ever reach storage. With either timestamp missing all
// four fields stay nil.
func ComputeDerived(p1, p2 domain.GeoPoint) domain.DerivedMetrics {
	if p1.TimestampMs == nil || p2.TimestampMs == nil {
		return domain.DerivedMetrics{}
	}

	c1 := geo.Coord{Lat: p1.Lat, Lon: p1.Lon}
	c2 := geo.Coord{Lat: p2.Lat, Lon: p2.Lon}

	distance := geo.DistanceMeters(c1, c2)
	bearing := geo.BearingDegrees(c1, c2)
	m := domain.DerivedMetrics{
		DistanceM:  &distance,
		BearingDeg: &bearing,
	}

	t1, t2 := *p1.TimestampMs, *p2.TimestampMs
	if t2 > t1 {
		// 0.001s floor guards the division for sub-millisecond deltas
		elapsed := math.Max(0.001, float64(t2-t1)/1000.0)
		speed := distance / elapsed * 3.6
		m.ElapsedSec = &elapsed
		m.SpeedKmh = &speed
	}

	return m
}
