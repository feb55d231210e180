package dto

import (
	"encoding/json"
	"time"
)

// RelayAckDTO acknowledges an inbound webhook POST, echoing a few summary
// fields from the payload when present.
type RelayAckDTO struct {
	Success     bool                       `json:"success"`
	LastUpdated time.Time                  `json:"lastUpdated"`
	Summary     map[string]json.RawMessage `json:"summary,omitempty"`
}

// FeedResponseDTO returns the cached payload to the dashboards.
type FeedResponseDTO struct {
	Success     bool            `json:"success"`
	Data        json.RawMessage `json:"data"`
	LastUpdated time.Time       `json:"lastUpdated"`
}

// ErrorDTO is the generic JSON error envelope. Detail carries a truncated
// echo of a malformed inbound body; MissingFields lists absent required
// fields on validation failures.
type ErrorDTO struct {
	Success       bool     `json:"success"`
	Message       string   `json:"message"`
	Detail        string   `json:"detail,omitempty"`
	MissingFields []string `json:"missingFields,omitempty"`
}
