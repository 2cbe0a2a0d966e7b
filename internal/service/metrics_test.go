package service_test

import (
	"math"
	"testing"

	"github.com/kallejre/quick-gps-bookmark/internal/domain"
	"github.com/kallejre/quick-gps-bookmark/internal/service"
	"github.com/kallejre/quick-gps-bookmark/pkg/geo"
)

func i64ptr(v int64) *int64 { return &v }

func point(lat, lon float64, ts *int64) domain.GeoPoint {
	return domain.GeoPoint{Lat: lat, Lon: lon, TimestampMs: ts}
}

func TestComputeDerived_ForwardTimestamps(t *testing.T) {
	t.Parallel()

	p1 := point(52.0, 4.0, i64ptr(1000))
	p2 := point(52.001, 4.001, i64ptr(3000))

	m := service.ComputeDerived(p1, p2)

	if m.ElapsedSec == nil || *m.ElapsedSec != 2.0 {
		t.Fatalf("elapsed = %v, want exactly 2.0", m.ElapsedSec)
	}
	if m.DistanceM == nil || *m.DistanceM < 125 || *m.DistanceM > 140 {
		t.Fatalf("distance = %v, want ~132.7", m.DistanceM)
	}

	wantSpeed := *m.DistanceM / *m.ElapsedSec * 3.6
	if m.SpeedKmh == nil || *m.SpeedKmh != wantSpeed {
		t.Fatalf("speed = %v, want exactly %v", m.SpeedKmh, wantSpeed)
	}
	// ~238.9 km/h for the reference pair
	if math.Abs(*m.SpeedKmh-238.9) > 15 {
		t.Fatalf("speed = %v, want ~238.9", *m.SpeedKmh)
	}

	// ~31.6 for the diagonal step at lat 52 (lon degrees are squeezed by cos lat)
	if m.BearingDeg == nil {
		t.Fatalf("bearing missing")
	}
	if math.Abs(*m.BearingDeg-31.6) > 1 {
		t.Fatalf("bearing = %v, want 31.6±1", *m.BearingDeg)
	}
}

func TestComputeDerived_ElapsedFloor(t *testing.T) {
	t.Parallel()

	m := service.ComputeDerived(point(52.0, 4.0, i64ptr(1000)), point(52.001, 4.001, i64ptr(1001)))

	if m.ElapsedSec == nil || *m.ElapsedSec != 0.001 {
		t.Fatalf("elapsed = %v, want floor 0.001", m.ElapsedSec)
	}
	if m.SpeedKmh == nil {
		t.Fatalf("speed missing for 1ms delta")
	}
}

func TestComputeDerived_EqualOrBackwardTimestamps(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		t1, t2 int64
	}{
		{"equal", 5000, 5000},
		{"backward", 5000, 1000},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			m := service.ComputeDerived(point(52.0, 4.0, i64ptr(c.t1)), point(52.001, 4.001, i64ptr(c.t2)))

			if m.ElapsedSec != nil || m.SpeedKmh != nil {
				t.Fatalf("elapsed/speed should be absent, got %+v", m)
			}
			if m.DistanceM == nil || m.BearingDeg == nil {
				t.Fatalf("distance/bearing should still be present, got %+v", m)
			}

			wantDist := geo.DistanceMeters(geo.Coord{Lat: 52.0, Lon: 4.0}, geo.Coord{Lat: 52.001, Lon: 4.001})
			if *m.DistanceM != wantDist {
				t.Fatalf("distance = %v, want %v", *m.DistanceM, wantDist)
			}
		})
	}
}

func TestComputeDerived_MissingTimestamps(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		t1, t2 *int64
	}{
		{"both_missing", nil, nil},
		{"first_missing", nil, i64ptr(3000)},
		{"second_missing", i64ptr(1000), nil},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			m := service.ComputeDerived(point(52.0, 4.0, c.t1), point(52.001, 4.001, c.t2))

			if m.ElapsedSec != nil || m.DistanceM != nil || m.SpeedKmh != nil || m.BearingDeg != nil {
				t.Fatalf("all derived fields should be absent, got %+v", m)
			}
		})
	}
}
