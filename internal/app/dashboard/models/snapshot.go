package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingField is returned by DecodeSnapshot when a field the dashboard
// depends on is absent or null in an otherwise successful response.
var ErrMissingField = errors.New("snapshot field missing")

// MetricsSnapshot is one decoded response of the metrics endpoint.
type MetricsSnapshot struct {
	Download      float64   `json:"download"`
	Upload        float64   `json:"upload"`
	NetworkStatus string    `json:"network_status"`
	TTLAlert      bool      `json:"ttl_alert"`
	TTLReason     string    `json:"ttl_reason"`
	RTT           []float64 `json:"rtt"`
	PacketLoss    []float64 `json:"packet_loss"`
	ICMPRate      []float64 `json:"icmp_rate"`
	TTL           []float64 `json:"ttl"`
	Anomalies     int       `json:"anomalies"`
}

// Series returns the values bound to id.
func (s MetricsSnapshot) Series(id SeriesID) []float64 {
	switch id {
	case RTTChart:
		return s.RTT
	case LossChart:
		return s.PacketLoss
	case RateChart:
		return s.ICMPRate
	case TTLChart:
		return s.TTL
	}
	return nil
}

// wireSnapshot mirrors the JSON body with pointers so absent fields can be
// told apart from zero values.
type wireSnapshot struct {
	Error         string     `json:"error"`
	Download      *float64   `json:"download"`
	Upload        *float64   `json:"upload"`
	NetworkStatus *string    `json:"network_status"`
	TTLAlert      *bool      `json:"ttl_alert"`
	TTLReason     string     `json:"ttl_reason"`
	RTT           *[]float64 `json:"rtt"`
	PacketLoss    *[]float64 `json:"packet_loss"`
	ICMPRate      *[]float64 `json:"icmp_rate"`
	TTL           *[]float64 `json:"ttl"`
	Anomalies     int        `json:"anomalies"`
}

// ServerError carries the message of a body with a non-empty "error" field.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return "server reported error: " + e.Message
}

// DecodeSnapshot parses a metrics body.
//
// A body with a non-empty "error" field yields a *ServerError and nothing
// else is read. Syntax errors are returned as is. Absent required fields
// yield an error wrapping ErrMissingField.
func DecodeSnapshot(body []byte) (MetricsSnapshot, error) {
	var w wireSnapshot
	if err := json.Unmarshal(body, &w); err != nil {
		return MetricsSnapshot{}, fmt.Errorf("failed to decode metrics body: %w", err)
	}
	if w.Error != "" {
		return MetricsSnapshot{}, &ServerError{Message: w.Error}
	}

	var missing []string
	if w.Download == nil {
		missing = append(missing, "download")
	}
	if w.Upload == nil {
		missing = append(missing, "upload")
	}
	if w.NetworkStatus == nil {
		missing = append(missing, "network_status")
	}
	if w.TTLAlert == nil {
		missing = append(missing, "ttl_alert")
	}
	for _, f := range []struct {
		name string
		v    *[]float64
	}{
		{"rtt", w.RTT},
		{"packet_loss", w.PacketLoss},
		{"icmp_rate", w.ICMPRate},
		{"ttl", w.TTL},
	} {
		if f.v == nil {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return MetricsSnapshot{}, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}

	return MetricsSnapshot{
		Download:      *w.Download,
		Upload:        *w.Upload,
		NetworkStatus: *w.NetworkStatus,
		TTLAlert:      *w.TTLAlert,
		TTLReason:     w.TTLReason,
		RTT:           *w.RTT,
		PacketLoss:    *w.PacketLoss,
		ICMPRate:      *w.ICMPRate,
		TTL:           *w.TTL,
		Anomalies:     w.Anomalies,
	}, nil
}
