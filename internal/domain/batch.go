package domain

import "encoding/json"

// BatchRequest is one client submission. Items stay raw so that a broken
// entry fails on its own instead of rejecting the whole payload.
type BatchRequest struct {
	Items  []json.RawMessage `json:"items"`
	SentAt string            `json:"sentAt,omitempty"`
	Reason string            `json:"reason,omitempty"`
}

// ItemError reports one skipped item by its original position in the batch.
type ItemError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// BatchResult is what the ingestor reports back for a committed batch.
type BatchResult struct {
	BatchID  string      `json:"batch_id"`
	Inserted int         `json:"inserted"`
	Errors   []ItemError `json:"errors"`
}

// ValidatedItem is the typed outcome of screening one raw batch item.
// Downstream code never re-checks these fields.
type ValidatedItem struct {
	Category   string
	CapturedAt string
	User       *string
	Point1     GeoPoint
	Point2     GeoPoint
	// ClientDerived carries client-precomputed metrics, only honored when
	// the ingestor runs in trust-client mode.
	ClientDerived *DerivedMetrics
	Raw           []byte
}
