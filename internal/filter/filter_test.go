package filter

import (
	"testing"
	"time"

	"app/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.September, 15, 12, 0, 0, 0, time.Local)

func sampleTransactions() []model.Transaction {
	return []model.Transaction{
		{Date: "15-Sep-2025", Detail: "Payroll deposit", Bank: "BAC", Account: "CR01-001", Category: "Income", Amount: 2500},
		{Date: "10-Sep-2025", Detail: "Office rent", Bank: "BCR", Account: "CR01-002", Category: "Rent", Amount: -1800},
		{Date: "20-Aug-2025", Detail: "Hardware purchase", Bank: "BAC", Account: "CR01-001", Category: "Equipment", Amount: -12500},
		{Date: "05-Jan-2025", Detail: "Consulting fee", Bank: "Scotiabank", Account: "CR01-003", Category: "Income", Amount: 950},
		{Date: "not-a-date", Detail: "Legacy import", Bank: "BCR", Account: "CR01-002", Category: "Misc", Amount: 10},
	}
}

func TestApplyNoCriteriaIsIdentity(t *testing.T) {
	txs := sampleTransactions()
	out := Apply(txs, Criteria{}, testNow)
	assert.Equal(t, txs, out)
}

func TestApplyMutuallyExclusiveCriteria(t *testing.T) {
	txs := sampleTransactions()
	// positive amounts in the Rent category do not exist
	out := Apply(txs, Criteria{Amount: AmountPositive, Category: "Rent"}, testNow)
	assert.Empty(t, out)
}

func TestApplyAmountBuckets(t *testing.T) {
	txs := sampleTransactions()

	tests := []struct {
		bucket string
		want   int
	}{
		{AmountPositive, 3},
		{AmountNegative, 2},
		{AmountGTE1000, 1},
		{AmountLT1000, 4},
		{AmountGTE10000, 0},
	}
	for _, tc := range tests {
		out := Apply(txs, Criteria{Amount: tc.bucket}, testNow)
		assert.Len(t, out, tc.want, "bucket %s", tc.bucket)
	}
}

func TestApplySearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	txs := sampleTransactions()

	out := Apply(txs, Criteria{Search: "payroll"}, testNow)
	require.Len(t, out, 1)
	assert.Equal(t, "Payroll deposit", out[0].Detail)

	out = Apply(txs, Criteria{Search: "bac"}, testNow)
	assert.Len(t, out, 2)

	out = Apply(txs, Criteria{Search: "income"}, testNow)
	assert.Len(t, out, 2)
}

func TestApplyExactMatches(t *testing.T) {
	txs := sampleTransactions()

	assert.Len(t, Apply(txs, Criteria{Bank: "BAC"}, testNow), 2)
	assert.Len(t, Apply(txs, Criteria{Account: "CR01-002"}, testNow), 2)
	assert.Len(t, Apply(txs, Criteria{Category: "Income"}, testNow), 2)
	// exact, not substring
	assert.Empty(t, Apply(txs, Criteria{Bank: "BA"}, testNow))
}

func TestApplyDateWindows(t *testing.T) {
	txs := sampleTransactions()

	out := Apply(txs, Criteria{Window: WindowToday}, testNow)
	require.Len(t, out, 1)
	assert.Equal(t, "15-Sep-2025", out[0].Date)

	assert.Len(t, Apply(txs, Criteria{Window: Window7Days}, testNow), 2)
	assert.Len(t, Apply(txs, Criteria{Window: Window30Days}, testNow), 3)
	assert.Len(t, Apply(txs, Criteria{Window: "month:2025-08"}, testNow), 1)
	assert.Len(t, Apply(txs, Criteria{Window: "year:2025"}, testNow), 4)
}

func TestApplyUnparseableDateExcludedFromWindows(t *testing.T) {
	txs := sampleTransactions()

	// "not-a-date" never matches a date-bounded window...
	for _, window := range []string{WindowToday, Window7Days, Window30Days, "year:2025"} {
		for _, tx := range Apply(txs, Criteria{Window: window}, testNow) {
			assert.NotEqual(t, "not-a-date", tx.Date)
		}
	}
	// ...but survives filters that do not involve dates.
	out := Apply(txs, Criteria{Category: "Misc"}, testNow)
	require.Len(t, out, 1)
	assert.Equal(t, "not-a-date", out[0].Date)
}

func TestApplyConjunction(t *testing.T) {
	txs := sampleTransactions()
	out := Apply(txs, Criteria{Bank: "BAC", Amount: AmountPositive, Window: "year:2025"}, testNow)
	require.Len(t, out, 1)
	assert.Equal(t, "Payroll deposit", out[0].Detail)
}
