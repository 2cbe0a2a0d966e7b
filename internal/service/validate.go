package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/kallejre/quick-gps-bookmark/internal/domain"
	"github.com/kallejre/quick-gps-bookmark/pkg/e"
	"github.com/kallejre/quick-gps-bookmark/pkg/validator"
)

// ValidateItem screens one raw batch item and coerces it into a typed
// record. Failures are classified, never fatal to the surrounding batch.
// Clients are sloppy here: numeric strings are accepted for numbers, and
// garbage in the optional accuracy/timestamp fields is dropped silently.
func ValidateItem(raw json.RawMessage) (domain.ValidatedItem, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return domain.ValidatedItem{}, fmt.Errorf("%w: item is not an object", e.ErrMissingField)
	}

	category := strings.ToUpper(asString(m["category"]))
	capturedAt := asString(m["capturedAt"])
	p1Map, ok1 := m["point1"].(map[string]any)
	p2Map, ok2 := m["point2"].(map[string]any)

	if category == "" || capturedAt == "" || !ok1 || !ok2 {
		return domain.ValidatedItem{}, fmt.Errorf("%w: category/capturedAt/point1/point2", e.ErrMissingField)
	}

	p1, err := parsePoint(p1Map)
	if err != nil {
		return domain.ValidatedItem{}, err
	}
	p2, err := parsePoint(p2Map)
	if err != nil {
		return domain.ValidatedItem{}, err
	}

	item := domain.ValidatedItem{
		Category:   category,
		CapturedAt: capturedAt,
		Point1:     p1,
		Point2:     p2,
		Raw:        append([]byte(nil), raw...),
	}

	if u := strings.TrimSpace(asString(m["user"])); u != "" {
		item.User = &u
	}

	if d, ok := m["derived"].(map[string]any); ok {
		item.ClientDerived = parseClientDerived(d)
	}

	return item, nil
}

func parsePoint(m map[string]any) (domain.GeoPoint, error) {
	lat, latOK := asFloat(m["lat"])
	lon, lonOK := asFloat(m["lon"])
	if !latOK || !lonOK {
		return domain.GeoPoint{}, fmt.Errorf("%w: invalid lat/lon", e.ErrInvalidCoordinate)
	}

	p := domain.GeoPoint{Lat: lat, Lon: lon}
	if err := validator.ValidateStruct(&p); err != nil {
		return domain.GeoPoint{}, fmt.Errorf("%w: lat/lon out of range", e.ErrInvalidCoordinate)
	}

	if acc, ok := asFloat(m["accuracyM"]); ok && acc >= 0 {
		p.AccuracyM = &acc
	}
	if ts, ok := asFloat(m["timestampMs"]); ok {
		v := int64(ts)
		p.TimestampMs = &v
	}

	return p, nil
}

func parseClientDerived(m map[string]any) *domain.DerivedMetrics {
	d := &domain.DerivedMetrics{}
	if v, ok := asFloat(m["dtSec"]); ok {
		d.ElapsedSec = &v
	}
	if v, ok := asFloat(m["distanceM"]); ok {
		d.DistanceM = &v
	}
	if v, ok := asFloat(m["speedKmh"]); ok {
		d.SpeedKmh = &v
	}
	if v, ok := asFloat(m["directionDeg"]); ok {
		d.BearingDeg = &v
	}
	return d
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
