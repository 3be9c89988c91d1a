package models

import "time"

// ClientMetrics summarises the API traffic of the current process.
type ClientMetrics struct {
	RequestsTotal            uint64    `json:"requests_total"`
	RequestFailures          uint64    `json:"request_failures"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	GeneratedAt              time.Time `json:"generated_at"`
}
