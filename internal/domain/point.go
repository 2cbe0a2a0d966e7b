package domain

import "time"

// GeoPoint is a single GPS fix. Accuracy and timestamp are optional and
// silently dropped when the client sends garbage for them.
type GeoPoint struct {
	Lat         float64  `json:"lat" validate:"lat"`
	Lon         float64  `json:"lon" validate:"lng"`
	AccuracyM   *float64 `json:"accuracy_m,omitempty"`
	TimestampMs *int64   `json:"timestamp_ms,omitempty"`
}

// DerivedMetrics holds the server-computed motion values for a point pair.
// Distance and bearing depend only on coordinates; elapsed and speed need a
// forward-ordered timestamp delta and stay nil otherwise.
type DerivedMetrics struct {
	ElapsedSec *float64 `json:"dt_sec,omitempty"`
	DistanceM  *float64 `json:"distance_m,omitempty"`
	SpeedKmh   *float64 `json:"speed_kmh,omitempty"`
	BearingDeg *float64 `json:"direction_deg,omitempty"`
}

// GpsRecord is one persisted point pair with its derived metrics and
// batch-level metadata. IDs are storage-assigned and monotonic.
type GpsRecord struct {
	ID           int64          `json:"id"`
	ReceivedAt   time.Time      `json:"received_at"`
	SentAt       string         `json:"sent_at"`
	Reason       string         `json:"reason"`
	Category     string         `json:"category"`
	User         *string        `json:"user,omitempty"`
	CapturedAt   string         `json:"captured_at"`
	Point1       GeoPoint       `json:"point1"`
	Point2       GeoPoint       `json:"point2"`
	Derived      DerivedMetrics `json:"derived"`
	RawJSON      []byte         `json:"-"`
	HiddenAt     *time.Time     `json:"hidden_at,omitempty"`
	HiddenReason *string        `json:"hidden_reason,omitempty"`
}
