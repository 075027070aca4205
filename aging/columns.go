package aging

import (
	"strconv"

	"github.com/Rabi-developer/ZMS-sub002/models"
)

// Kind tells renderers how a column's values are formatted.
type Kind int

const (
	KindText Kind = iota
	KindDate
	KindInteger
	KindAmount
)

// FilterType selects how a per-column filter value is matched.
type FilterType string

const (
	FilterText           FilterType = "text"
	FilterSelectMultiple FilterType = "select-multiple"
)

// Column describes one report column.
type Column struct {
	Key    string     `json:"key"`
	Label  string     `json:"label"`
	Kind   Kind       `json:"kind"`
	Filter FilterType `json:"filterType"`
}

// Columns is the full catalog in default display order.
var Columns = []Column{
	{Key: "biltyNo", Label: "Bilty No", Kind: KindText, Filter: FilterText},
	{Key: "orderNo", Label: "Order No", Kind: KindText, Filter: FilterText},
	{Key: "date", Label: "Date", Kind: KindDate, Filter: FilterText},
	{Key: "consignor", Label: "Consignor", Kind: KindText, Filter: FilterSelectMultiple},
	{Key: "consignee", Label: "Consignee", Kind: KindText, Filter: FilterSelectMultiple},
	{Key: "creditAllowed", Label: "Credit Days", Kind: KindInteger, Filter: FilterText},
	{Key: "dueDate", Label: "Due Date", Kind: KindDate, Filter: FilterText},
	{Key: "agingDays", Label: "Aging Days", Kind: KindInteger, Filter: FilterText},
	{Key: "qty", Label: "Qty", Kind: KindAmount, Filter: FilterText},
	{Key: "rateTotal", Label: "Rate", Kind: KindAmount, Filter: FilterText},
	{Key: "invoiceAmount", Label: "Invoice Amount", Kind: KindAmount, Filter: FilterText},
	{Key: "sbrAmount", Label: "SBR 15%", Kind: KindAmount, Filter: FilterText},
	{Key: "whtAmount", Label: "WHT", Kind: KindAmount, Filter: FilterText},
	{Key: "total", Label: "Total", Kind: KindAmount, Filter: FilterText},
	{Key: "advanced", Label: "Advanced", Kind: KindAmount, Filter: FilterText},
	{Key: "pdc", Label: "PDC", Kind: KindAmount, Filter: FilterText},
	{Key: "paymentAmount", Label: "Payment Amount", Kind: KindAmount, Filter: FilterText},
	{Key: "outstanding", Label: "Outstanding", Kind: KindAmount, Filter: FilterText},
	{Key: "notDue", Label: "Not Due", Kind: KindAmount, Filter: FilterText},
	{Key: "overDue", Label: "Over Due", Kind: KindAmount, Filter: FilterText},
}

var columnIndex = func() map[string]int {
	idx := make(map[string]int, len(Columns))
	for i, c := range Columns {
		idx[c.Key] = i
	}
	return idx
}()

// ColumnByKey looks up a catalog column.
func ColumnByKey(key string) (Column, bool) {
	i, ok := columnIndex[key]
	if !ok {
		return Column{}, false
	}
	return Columns[i], true
}

// DefaultColumns returns every catalog key in catalog order.
func DefaultColumns() []string {
	keys := make([]string, len(Columns))
	for i, c := range Columns {
		keys[i] = c.Key
	}
	return keys
}

// ResolveColumns maps keys to catalog columns, skipping unknown keys.
func ResolveColumns(keys []string) []Column {
	out := make([]Column, 0, len(keys))
	for _, k := range keys {
		if c, ok := ColumnByKey(k); ok {
			out = append(out, c)
		}
	}
	return out
}

// Numeric reports whether the column holds a summable amount.
func (c Column) Numeric() bool { return c.Kind == KindAmount }

// Text returns the raw value of the column for text matching.
func (c Column) Text(row models.AgingRow) string {
	switch c.Kind {
	case KindAmount:
		return strconv.FormatFloat(c.Amount(row), 'f', -1, 64)
	case KindInteger:
		return strconv.Itoa(c.integer(row))
	}
	switch c.Key {
	case "biltyNo":
		return row.BiltyNo
	case "orderNo":
		return row.OrderNo
	case "date":
		return row.Date
	case "dueDate":
		return row.DueDate
	case "consignee":
		return row.Consignee
	case "consignor":
		return row.Consignor
	}
	return ""
}

// Display returns the value as shown in tables and exports.
func (c Column) Display(row models.AgingRow) string {
	if c.Kind == KindAmount {
		return FormatAmount(c.Amount(row))
	}
	return c.Text(row)
}

// Amount returns the numeric value of an amount column, 0 for others.
func (c Column) Amount(row models.AgingRow) float64 {
	switch c.Key {
	case "qty":
		return row.Qty
	case "rateTotal":
		return row.RateTotal
	case "invoiceAmount":
		return row.InvoiceAmount
	case "sbrAmount":
		return row.SBRAmount
	case "whtAmount":
		return row.WHTAmount
	case "total":
		return row.Total
	case "advanced":
		return row.Advanced
	case "pdc":
		return row.PDC
	case "paymentAmount":
		return row.PaymentAmount
	case "outstanding":
		return row.Outstanding
	case "notDue":
		return row.NotDue
	case "overDue":
		return row.OverDue
	}
	return 0
}

func (c Column) integer(row models.AgingRow) int {
	switch c.Key {
	case "creditAllowed":
		return row.CreditAllowed
	case "agingDays":
		return row.AgingDays
	}
	return 0
}
