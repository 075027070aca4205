// Package aging computes the receivables aging report from consignments and
// payments, filters it, and keeps the per-session view state of the report.
package aging

import (
	"math"
	"strings"
	"time"

	"github.com/Rabi-developer/ZMS-sub002/models"
)

// SBRRate is the fixed Sindh sales tax on services applied to the invoice.
const SBRRate = 0.15

const (
	MinWHTPercent     = 2
	MaxWHTPercent     = 18
	DefaultWHTPercent = 2
)

// PaymentMatchKey selects which order number payments are matched on.
type PaymentMatchKey string

const (
	// MatchByBiltyNo resolves the order through the bilty->order lookup and
	// falls back to the consignment's own order number.
	MatchByBiltyNo PaymentMatchKey = "biltyNo"
	// MatchByOrderNo uses the consignment's order number as is.
	MatchByOrderNo PaymentMatchKey = "orderNo"
)

func (k PaymentMatchKey) Valid() bool {
	return k == MatchByBiltyNo || k == MatchByOrderNo
}

// Params are the inputs that change the computed rows. Changing either one
// requires a refetch.
type Params struct {
	WHTPercent float64         `json:"whtPercent"`
	MatchKey   PaymentMatchKey `json:"paymentMatchKey"`
}

// DefaultParams returns WHT 2% matched by bilty number.
func DefaultParams() Params {
	return Params{WHTPercent: DefaultWHTPercent, MatchKey: MatchByBiltyNo}
}

// Lookup holds the cross references built once per refresh.
type Lookup struct {
	OrderByBilty    map[string]string
	PaymentsByOrder map[string][]models.PaymentRecord
}

// NewLookup builds both cross references from a full snapshot.
func NewLookup(consignments []models.ConsignmentRecord, payments []models.PaymentRecord) Lookup {
	return Lookup{
		OrderByBilty:    BuildOrderByBilty(consignments),
		PaymentsByOrder: GroupPaymentsByOrder(payments),
	}
}

// BuildOrderByBilty maps every non-empty bilty number to its non-empty order
// number. When a bilty appears twice the last consignment wins.
func BuildOrderByBilty(consignments []models.ConsignmentRecord) map[string]string {
	out := make(map[string]string, len(consignments))
	for _, c := range consignments {
		bilty := strings.TrimSpace(c.BiltyNo)
		order := strings.TrimSpace(c.OrderNo)
		if bilty == "" || order == "" {
			continue
		}
		out[bilty] = order
	}
	return out
}

// GroupPaymentsByOrder groups payments by order number without deduplicating.
func GroupPaymentsByOrder(payments []models.PaymentRecord) map[string][]models.PaymentRecord {
	out := make(map[string][]models.PaymentRecord)
	for _, p := range payments {
		key := strings.TrimSpace(p.OrderNo)
		out[key] = append(out[key], p)
	}
	return out
}

// ComputeRows derives one aging row per consignment. No row is dropped.
func ComputeRows(consignments []models.ConsignmentRecord, payments []models.PaymentRecord, p Params, now time.Time) []models.AgingRow {
	lk := NewLookup(consignments, payments)
	rows := make([]models.AgingRow, 0, len(consignments))
	for _, c := range consignments {
		rows = append(rows, ComputeRow(c, lk, p, now))
	}
	return rows
}

// ComputeRow derives a single aging row as of now.
func ComputeRow(c models.ConsignmentRecord, lk Lookup, p Params, now time.Time) models.AgingRow {
	ownBilty := strings.TrimSpace(c.BiltyNo)
	ownOrder := strings.TrimSpace(c.OrderNo)

	row := models.AgingRow{
		BiltyNo:       ownBilty,
		OrderNo:       ownOrder,
		Date:          c.Date,
		Consignee:     c.Consignee,
		Consignor:     c.Consignor,
		CreditAllowed: c.CreditAllowed.Int(),
	}
	if row.BiltyNo == "" {
		row.BiltyNo = ownOrder
	}
	if row.OrderNo == "" {
		row.OrderNo = lk.OrderByBilty[ownBilty]
	}

	base, baseOK := ParseDate(c.Date)
	var due time.Time
	if baseOK {
		due = base.AddDate(0, 0, row.CreditAllowed)
		row.Date = base.Format(DateLayout)
		row.DueDate = due.Format(DateLayout)
		if !now.After(due) {
			row.AgingDays = daysBetween(base, now)
		} else {
			row.AgingDays = daysBetween(due, now)
		}
	}

	for _, item := range c.Items {
		row.Qty += item.Qty.Float64()
		row.RateTotal += item.Rate.Float64()
	}
	row.InvoiceAmount = row.Qty * row.RateTotal
	row.SBRAmount = row.InvoiceAmount * SBRRate
	row.WHTAmount = row.SBRAmount * (p.WHTPercent / 100)
	row.Total = row.InvoiceAmount + row.SBRAmount - row.WHTAmount

	for _, pay := range lk.PaymentsByOrder[matchOrder(ownBilty, ownOrder, lk, p.MatchKey)] {
		row.Advanced += pay.Advanced.Float64()
		row.PDC += pay.PDC.Float64()
	}
	row.PaymentAmount = row.Advanced + row.PDC
	row.Outstanding = math.Max(0, row.InvoiceAmount-row.PaymentAmount)

	if baseOK && now.Before(due) {
		row.NotDue = row.Outstanding
	} else {
		row.OverDue = row.Outstanding
	}
	return row
}

func matchOrder(bilty, order string, lk Lookup, key PaymentMatchKey) string {
	if key == MatchByOrderNo {
		return order
	}
	if resolved, ok := lk.OrderByBilty[bilty]; ok && bilty != "" {
		return resolved
	}
	return order
}

// daysBetween returns the whole days from `from` to `to`, floored at zero.
func daysBetween(from, to time.Time) int {
	days := int(math.Floor(to.Sub(from).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}
