package aging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rabi-developer/ZMS-sub002/models"
)

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func items(pairs ...float64) []models.ConsignmentItem {
	out := make([]models.ConsignmentItem, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, models.ConsignmentItem{Qty: models.Amount(pairs[i]), Rate: models.Amount(pairs[i+1])})
	}
	return out
}

func TestComputeRowAggregateInvoiceFormula(t *testing.T) {
	c := models.ConsignmentRecord{
		BiltyNo: "B-1", OrderNo: "O-1", Date: "2024-01-01", CreditAllowed: 30,
		Items: items(2, 100, 3, 200),
	}
	row := ComputeRow(c, NewLookup(nil, nil), DefaultParams(), day("2024-01-10"))

	assert.Equal(t, 5.0, row.Qty)
	assert.Equal(t, 300.0, row.RateTotal)
	assert.Equal(t, 1500.0, row.InvoiceAmount, "qty total times rate total, not a per-line sum")
}

func TestComputeRowTaxChain(t *testing.T) {
	c := models.ConsignmentRecord{BiltyNo: "B-1", Date: "2024-01-01", CreditAllowed: 30, Items: items(2, 100, 3, 200)}
	row := ComputeRow(c, NewLookup(nil, nil), Params{WHTPercent: 10, MatchKey: MatchByBiltyNo}, day("2024-01-10"))

	assert.InDelta(t, 225, row.SBRAmount, 1e-9)
	assert.InDelta(t, 22.5, row.WHTAmount, 1e-9)
	assert.InDelta(t, 1702.5, row.Total, 1e-9)
}

func TestComputeRowDueDate(t *testing.T) {
	c := models.ConsignmentRecord{BiltyNo: "B-1", Date: "2024-01-01", CreditAllowed: 30}
	row := ComputeRow(c, NewLookup(nil, nil), DefaultParams(), day("2024-01-05"))
	assert.Equal(t, "2024-01-31", row.DueDate)
	assert.Equal(t, 30, row.CreditAllowed)
}

func TestComputeRowAgingDays(t *testing.T) {
	c := models.ConsignmentRecord{BiltyNo: "B-1", Date: "2024-01-01", CreditAllowed: 30}
	lk := NewLookup(nil, nil)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"before due counts from base date", day("2024-01-11"), 10},
		{"exactly on due counts from base date", day("2024-01-31"), 30},
		{"after due counts from due date", day("2024-02-10"), 10},
		{"before base date floors at zero", day("2023-12-25"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := ComputeRow(c, lk, DefaultParams(), tt.now)
			assert.Equal(t, tt.want, row.AgingDays)
		})
	}
}

func TestComputeRowBucketsAreExclusive(t *testing.T) {
	c := models.ConsignmentRecord{BiltyNo: "B-1", OrderNo: "O-1", Date: "2024-01-01", CreditAllowed: 30, Items: items(1, 1000)}
	payments := []models.PaymentRecord{{OrderNo: "O-1", Advanced: 100, PDC: 50}}
	lk := NewLookup([]models.ConsignmentRecord{c}, payments)

	for _, now := range []time.Time{day("2024-01-10"), day("2024-01-31"), day("2024-03-01")} {
		row := ComputeRow(c, lk, DefaultParams(), now)
		outstanding := row.InvoiceAmount - row.PaymentAmount
		assert.Equal(t, 850.0, row.Outstanding)
		assert.Equal(t, outstanding, row.NotDue+row.OverDue)
		assert.True(t, row.NotDue == 0 || row.OverDue == 0)
	}

	// now == due: aging uses "<=" but buckets use "<", so the row is overdue
	// while its aging days still count from the base date.
	onDue := ComputeRow(c, lk, DefaultParams(), day("2024-01-31"))
	assert.Equal(t, 850.0, onDue.OverDue)
	assert.Zero(t, onDue.NotDue)
	assert.Equal(t, 30, onDue.AgingDays)
}

func TestComputeRowOverpaidHasNoOutstanding(t *testing.T) {
	c := models.ConsignmentRecord{BiltyNo: "B-1", OrderNo: "O-1", Date: "2024-01-01", Items: items(1, 100)}
	lk := NewLookup([]models.ConsignmentRecord{c}, []models.PaymentRecord{{OrderNo: "O-1", Advanced: 500}})
	row := ComputeRow(c, lk, DefaultParams(), day("2024-02-01"))
	assert.Zero(t, row.Outstanding)
	assert.Zero(t, row.NotDue)
	assert.Zero(t, row.OverDue)
	assert.Equal(t, 500.0, row.PaymentAmount)
}

func TestComputeRowIdentifierFallbacks(t *testing.T) {
	consignments := []models.ConsignmentRecord{
		{BiltyNo: " B-1 ", OrderNo: " O-1 "},
		{BiltyNo: "B-1", OrderNo: ""},
		{BiltyNo: "", OrderNo: "O-9"},
		{},
	}
	rows := ComputeRows(consignments, nil, DefaultParams(), day("2024-01-01"))
	require.Len(t, rows, 4, "no row is dropped for missing identifiers")

	assert.Equal(t, "B-1", rows[1].BiltyNo)
	assert.Equal(t, "O-1", rows[1].OrderNo, "order resolved through the bilty lookup")
	assert.Equal(t, "O-9", rows[2].BiltyNo, "bilty falls back to order")
	assert.Equal(t, "", rows[3].BiltyNo)
	assert.Equal(t, "", rows[3].OrderNo)
}

func TestBuildOrderByBiltyLastWriteWins(t *testing.T) {
	lookup := BuildOrderByBilty([]models.ConsignmentRecord{
		{BiltyNo: "B-1", OrderNo: "O-1"},
		{BiltyNo: "B-1", OrderNo: "O-2"},
		{BiltyNo: "B-2", OrderNo: " "},
		{BiltyNo: "", OrderNo: "O-3"},
	})
	assert.Equal(t, map[string]string{"B-1": "O-2"}, lookup)
}

func TestGroupPaymentsByOrderKeepsDuplicates(t *testing.T) {
	groups := GroupPaymentsByOrder([]models.PaymentRecord{
		{OrderNo: "O-1", Advanced: 10},
		{OrderNo: "O-1", Advanced: 10},
		{OrderNo: "O-2", PDC: 5},
	})
	assert.Len(t, groups["O-1"], 2)
	assert.Len(t, groups["O-2"], 1)
}

func TestPaymentMatchKeySwitchChangesAttributedPayments(t *testing.T) {
	// Bilty B-1 resolves through the lookup to O-LOOKUP (the later record),
	// while the first consignment carries its own order number O-OWN.
	consignments := []models.ConsignmentRecord{
		{BiltyNo: "B-1", OrderNo: "O-OWN", Date: "2024-01-01", Items: items(1, 1000)},
		{BiltyNo: "B-1", OrderNo: "O-LOOKUP", Date: "2024-01-01", Items: items(1, 1000)},
	}
	payments := []models.PaymentRecord{
		{OrderNo: "O-OWN", Advanced: 100},
		{OrderNo: "O-LOOKUP", Advanced: 300, PDC: 200},
	}
	now := day("2024-01-10")

	byBilty := ComputeRows(consignments, payments, Params{WHTPercent: 2, MatchKey: MatchByBiltyNo}, now)
	byOrder := ComputeRows(consignments, payments, Params{WHTPercent: 2, MatchKey: MatchByOrderNo}, now)

	assert.Equal(t, 500.0, byBilty[0].PaymentAmount)
	assert.Equal(t, 100.0, byOrder[0].PaymentAmount)
	assert.Equal(t, 300.0, byBilty[0].Advanced)
	assert.Equal(t, 200.0, byBilty[0].PDC)
	assert.NotEqual(t, byBilty[0].Outstanding, byOrder[0].Outstanding)
}

func TestComputeRowMalformedNumbersReadAsZero(t *testing.T) {
	var c models.ConsignmentRecord
	require.NoError(t, jsonUnmarshal(`{"biltyNo":"B-1","date":"2024-01-01","creditAllowed":"abc",
		"items":[{"qty":"x","rate":"100"},{"qty":"2","rate":null}]}`, &c))
	row := ComputeRow(c, NewLookup(nil, nil), DefaultParams(), day("2024-01-02"))
	assert.Equal(t, 0, row.CreditAllowed)
	assert.Equal(t, "2024-01-01", row.DueDate)
	assert.Equal(t, 2.0, row.Qty)
	assert.Equal(t, 100.0, row.RateTotal)
}

func TestComputeRowWithoutDateIsOverdue(t *testing.T) {
	c := models.ConsignmentRecord{BiltyNo: "B-1", Date: "not a date", Items: items(1, 10)}
	row := ComputeRow(c, NewLookup(nil, nil), DefaultParams(), day("2024-01-02"))
	assert.Equal(t, "", row.DueDate)
	assert.Equal(t, 0, row.AgingDays)
	assert.Equal(t, 10.0, row.OverDue)
}
