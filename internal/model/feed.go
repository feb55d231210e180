package model

import (
	"encoding/json"
	"time"
)

// FeedSnapshot is the latest payload pushed to a webhook relay feed. Each
// POST replaces the previous snapshot wholesale; nothing is merged.
type FeedSnapshot struct {
	Data        json.RawMessage `json:"data"`
	LastUpdated time.Time       `json:"lastUpdated"`
}

// RelayLogEntry records the outcome of one inbound relay request, kept in a
// bounded most-recent-first log for debugging.
type RelayLogEntry struct {
	At        time.Time `json:"at"`
	OK        bool      `json:"ok"`
	Keys      []string  `json:"keys,omitempty"`
	SizeBytes int       `json:"sizeBytes"`
	Error     string    `json:"error,omitempty"`
}

// Transaction is one row of the cached bank-transaction dataset served to the
// dashboards. Date keeps the upstream "02-Jan-2006" textual form.
type Transaction struct {
	Date     string  `json:"date"`
	Detail   string  `json:"detail"`
	Bank     string  `json:"bank"`
	Account  string  `json:"account"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}
