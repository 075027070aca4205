package models

// AgingRow is one computed line of the aging report. Rows are derived on
// every refresh and never stored.
type AgingRow struct {
	BiltyNo       string  `json:"biltyNo"`
	OrderNo       string  `json:"orderNo"`
	Date          string  `json:"date"`
	DueDate       string  `json:"dueDate"`
	AgingDays     int     `json:"agingDays"`
	Consignee     string  `json:"consignee"`
	Consignor     string  `json:"consignor"`
	CreditAllowed int     `json:"creditAllowed"`
	Qty           float64 `json:"qty"`
	RateTotal     float64 `json:"rateTotal"`
	InvoiceAmount float64 `json:"invoiceAmount"`
	SBRAmount     float64 `json:"sbrAmount"`
	WHTAmount     float64 `json:"whtAmount"`
	Total         float64 `json:"total"`
	Advanced      float64 `json:"advanced"`
	PDC           float64 `json:"pdc"`
	PaymentAmount float64 `json:"paymentAmount"`
	Outstanding   float64 `json:"outstanding"`
	NotDue        float64 `json:"notDue"`
	OverDue       float64 `json:"overDue"`
}
