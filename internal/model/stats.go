package model

// UsageStat is one calendar day of activity counters. Day uses the
// process-local "2006-01-02" form; days without activity are never
// materialized.
type UsageStat struct {
	Day      string `db:"day" json:"date"`
	Logins   int    `db:"logins" json:"logins"`
	Searches int    `db:"searches" json:"searches"`
}
