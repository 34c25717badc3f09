package stats

import (
	"math"
	"time"
)

// Report is the JSON shape rendered by the stats endpoint. All derived
// fields (uptime breakdown, MB/KB conversions) are computed from a
// Snapshot on the read side; no extra state is kept.
type Report struct {
	InstanceID string                    `json:"instance_id"`
	Uptime     Uptime                    `json:"uptime"`
	Totals     Totals                    `json:"totals"`
	Endpoints  map[string]EndpointReport `json:"endpoints"`
}

// Uptime is the elapsed time since process start, broken into components.
type Uptime struct {
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
}

// Totals carries the process-wide counters with megabyte conversions.
type Totals struct {
	Requests          int64   `json:"requests"`
	BytesSent         int64   `json:"bytes_sent"`
	BytesReceived     int64   `json:"bytes_received"`
	MegabytesSent     float64 `json:"megabytes_sent"`
	MegabytesReceived float64 `json:"megabytes_received"`
}

// EndpointReport carries one endpoint's counters with kilobyte conversions.
type EndpointReport struct {
	Requests          int64   `json:"requests"`
	BytesSent         int64   `json:"bytes_sent"`
	BytesReceived     int64   `json:"bytes_received"`
	KilobytesSent     float64 `json:"kilobytes_sent"`
	KilobytesReceived float64 `json:"kilobytes_received"`
}

// Report derives the renderable stats from the snapshot at the given time.
func (s Snapshot) Report(now time.Time) Report {
	elapsed := now.Sub(s.StartedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	total := int64(elapsed.Seconds())

	endpoints := make(map[string]EndpointReport, len(s.Endpoints))
	for name, e := range s.Endpoints {
		endpoints[name] = EndpointReport{
			Requests:          e.Requests,
			BytesSent:         e.BytesSent,
			BytesReceived:     e.BytesReceived,
			KilobytesSent:     round2(float64(e.BytesSent) / 1024),
			KilobytesReceived: round2(float64(e.BytesReceived) / 1024),
		}
	}

	return Report{
		InstanceID: s.InstanceID.String(),
		Uptime: Uptime{
			Hours:   total / 3600,
			Minutes: (total % 3600) / 60,
			Seconds: total % 60,
		},
		Totals: Totals{
			Requests:          s.Requests,
			BytesSent:         s.BytesSent,
			BytesReceived:     s.BytesReceived,
			MegabytesSent:     round2(float64(s.BytesSent) / 1024 / 1024),
			MegabytesReceived: round2(float64(s.BytesReceived) / 1024 / 1024),
		},
		Endpoints: endpoints,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
