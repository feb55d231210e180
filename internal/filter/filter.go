// Package filter evaluates dashboard criteria against the cached bank
// transaction dataset. All active criteria are combined as a conjunction.
package filter

import (
	"strings"
	"time"

	"app/internal/model"
)

// DateLayout is the fixed textual date form used by the upstream automation
// tool, e.g. "15-Mar-2025". Values not matching it fail to parse and are
// excluded from any date-bounded window.
const DateLayout = "02-Jan-2006"

// Amount buckets selectable in the dashboard.
const (
	AmountPositive = "positive"
	AmountNegative = "negative"
	AmountGTE1000  = "gte1000"
	AmountLT1000   = "lt1000"
	AmountGTE10000 = "gte10000"
)

// Date windows. Month and year windows carry an argument, e.g. "month:2025-03"
// and "year:2025".
const (
	WindowToday       = "today"
	Window7Days       = "7d"
	Window15Days      = "15d"
	Window30Days      = "30d"
	windowMonthPrefix = "month:"
	windowYearPrefix  = "year:"
)

// Criteria is the set of UI-selected filters. Zero values are inactive.
type Criteria struct {
	Search   string
	Bank     string
	Account  string
	Category string
	Amount   string
	Window   string
}

func (c Criteria) active() bool {
	return c.Search != "" || c.Bank != "" || c.Account != "" ||
		c.Category != "" || c.Amount != "" || c.Window != ""
}

// Apply returns the transactions satisfying every active criterion, evaluated
// relative to now. With no active criteria the input is returned unchanged.
func Apply(txs []model.Transaction, c Criteria, now time.Time) []model.Transaction {
	if !c.active() {
		return txs
	}
	out := make([]model.Transaction, 0, len(txs))
	for _, tx := range txs {
		if matches(tx, c, now) {
			out = append(out, tx)
		}
	}
	return out
}

func matches(tx model.Transaction, c Criteria, now time.Time) bool {
	if c.Search != "" && !matchesSearch(tx, c.Search) {
		return false
	}
	if c.Bank != "" && tx.Bank != c.Bank {
		return false
	}
	if c.Account != "" && tx.Account != c.Account {
		return false
	}
	if c.Category != "" && tx.Category != c.Category {
		return false
	}
	if c.Amount != "" && !matchesAmount(tx.Amount, c.Amount) {
		return false
	}
	if c.Window != "" && !matchesWindow(tx.Date, c.Window, now) {
		return false
	}
	return true
}

func matchesSearch(tx model.Transaction, q string) bool {
	q = strings.ToLower(q)
	for _, field := range []string{tx.Detail, tx.Bank, tx.Account, tx.Category} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func matchesAmount(amount float64, bucket string) bool {
	switch bucket {
	case AmountPositive:
		return amount > 0
	case AmountNegative:
		return amount < 0
	case AmountGTE1000:
		return amount >= 1000
	case AmountLT1000:
		return amount < 1000
	case AmountGTE10000:
		return amount >= 10000
	default:
		return false
	}
}

func matchesWindow(date, window string, now time.Time) bool {
	d, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return false
	}
	today := truncateDay(now)
	switch {
	case window == WindowToday:
		return truncateDay(d).Equal(today)
	case window == Window7Days:
		return withinDays(d, today, 7)
	case window == Window15Days:
		return withinDays(d, today, 15)
	case window == Window30Days:
		return withinDays(d, today, 30)
	case strings.HasPrefix(window, windowMonthPrefix):
		m, err := time.ParseInLocation("2006-01", strings.TrimPrefix(window, windowMonthPrefix), now.Location())
		if err != nil {
			return false
		}
		return d.Year() == m.Year() && d.Month() == m.Month()
	case strings.HasPrefix(window, windowYearPrefix):
		y, err := time.ParseInLocation("2006", strings.TrimPrefix(window, windowYearPrefix), now.Location())
		if err != nil {
			return false
		}
		return d.Year() == y.Year()
	default:
		return false
	}
}

func withinDays(d, today time.Time, days int) bool {
	start := today.AddDate(0, 0, -(days - 1))
	d = truncateDay(d)
	return !d.Before(start) && !d.After(today)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
