package aging

import "strings"

// ViewState is everything a user can set on the aging report screen.
// Transitions return a new value and never modify the receiver.
type ViewState struct {
	WHTPercent      float64           `json:"whtPercent"`
	PaymentMatchKey PaymentMatchKey   `json:"paymentMatchKey"`
	DateFrom        string            `json:"dateFrom"`
	DateTo          string            `json:"dateTo"`
	Status          Status            `json:"filter"`
	BiltyNoFilter   string            `json:"biltyNoFilter"`
	OrderNoFilter   string            `json:"orderNoFilter"`
	ConsigneeFilter string            `json:"consigneeFilter"`
	ConsignorFilter string            `json:"consignorFilter"`
	SavedColumns    []string          `json:"savedVisibleColumns"`
	ColumnFilters   map[string]string `json:"columnFilters"`
}

// NewViewState returns the screen's initial state.
func NewViewState() ViewState {
	p := DefaultParams()
	return ViewState{
		WHTPercent:      p.WHTPercent,
		PaymentMatchKey: p.MatchKey,
		Status:          StatusBoth,
		SavedColumns:    DefaultColumns(),
		ColumnFilters:   map[string]string{},
	}
}

func (s ViewState) clone() ViewState {
	s.SavedColumns = append([]string(nil), s.SavedColumns...)
	filters := make(map[string]string, len(s.ColumnFilters))
	for k, v := range s.ColumnFilters {
		filters[k] = v
	}
	s.ColumnFilters = filters
	return s
}

// Params returns the inputs of the row computation.
func (s ViewState) Params() Params {
	return Params{WHTPercent: s.WHTPercent, MatchKey: s.PaymentMatchKey}
}

// NeedsRefetch reports whether moving from prev to s must recompute rows.
// Only the WHT percentage and the payment match key do.
func (s ViewState) NeedsRefetch(prev ViewState) bool {
	return s.WHTPercent != prev.WHTPercent || s.PaymentMatchKey != prev.PaymentMatchKey
}

// VisibleColumns returns the rendered column keys. An active party filter
// collapses the table to the matching identity columns; precedence is
// bilty, then order, then consignee/consignor, then the saved layout.
func (s ViewState) VisibleColumns() []string {
	switch {
	case s.BiltyNoFilter != "":
		return []string{"biltyNo"}
	case s.OrderNoFilter != "":
		return []string{"orderNo"}
	case s.ConsigneeFilter != "" || s.ConsignorFilter != "":
		return []string{"consignor", "consignee"}
	}
	return append([]string(nil), s.SavedColumns...)
}

// FocusMode reports whether VisibleColumns is overridden by a party filter.
func (s ViewState) FocusMode() bool {
	return s.BiltyNoFilter != "" || s.OrderNoFilter != "" || s.ConsigneeFilter != "" || s.ConsignorFilter != ""
}

// Filter projects the state onto the filter engine's input.
func (s ViewState) Filter() Filter {
	return Filter{
		DateFrom:  s.DateFrom,
		DateTo:    s.DateTo,
		Status:    s.Status,
		BiltyNo:   s.BiltyNoFilter,
		OrderNo:   s.OrderNoFilter,
		Consignee: s.ConsigneeFilter,
		Consignor: s.ConsignorFilter,
		Columns:   s.ColumnFilters,
	}
}

func (s ViewState) WithWHTPercent(p float64) ViewState {
	if p < MinWHTPercent {
		p = MinWHTPercent
	}
	if p > MaxWHTPercent {
		p = MaxWHTPercent
	}
	s = s.clone()
	s.WHTPercent = p
	return s
}

func (s ViewState) WithPaymentMatchKey(k PaymentMatchKey) ViewState {
	if !k.Valid() {
		return s
	}
	s = s.clone()
	s.PaymentMatchKey = k
	return s
}

func (s ViewState) WithDateRange(from, to string) ViewState {
	s = s.clone()
	s.DateFrom, s.DateTo = strings.TrimSpace(from), strings.TrimSpace(to)
	return s
}

func (s ViewState) WithStatus(st Status) ViewState {
	if !st.Valid() {
		return s
	}
	if st == "" {
		st = StatusBoth
	}
	s = s.clone()
	s.Status = st
	return s
}

// WithBiltyNoFilter sets the bilty filter and clears the order filter.
func (s ViewState) WithBiltyNoFilter(v string) ViewState {
	s = s.clone()
	s.BiltyNoFilter = strings.TrimSpace(v)
	if s.BiltyNoFilter != "" {
		s.OrderNoFilter = ""
	}
	return s
}

// WithOrderNoFilter sets the order filter and clears the bilty filter.
func (s ViewState) WithOrderNoFilter(v string) ViewState {
	s = s.clone()
	s.OrderNoFilter = strings.TrimSpace(v)
	if s.OrderNoFilter != "" {
		s.BiltyNoFilter = ""
	}
	return s
}

func (s ViewState) WithConsigneeFilter(v string) ViewState {
	s = s.clone()
	s.ConsigneeFilter = strings.TrimSpace(v)
	return s
}

func (s ViewState) WithConsignorFilter(v string) ViewState {
	s = s.clone()
	s.ConsignorFilter = strings.TrimSpace(v)
	return s
}

// ToggleColumn hides a saved column or shows a hidden one at the end.
func (s ViewState) ToggleColumn(key string) ViewState {
	if _, ok := ColumnByKey(key); !ok {
		return s
	}
	s = s.clone()
	for i, k := range s.SavedColumns {
		if k == key {
			s.SavedColumns = append(s.SavedColumns[:i], s.SavedColumns[i+1:]...)
			return s
		}
	}
	s.SavedColumns = append(s.SavedColumns, key)
	return s
}

// MoveColumnUp swaps a saved column with its predecessor.
func (s ViewState) MoveColumnUp(key string) ViewState {
	return s.moveColumn(key, -1)
}

// MoveColumnDown swaps a saved column with its successor.
func (s ViewState) MoveColumnDown(key string) ViewState {
	return s.moveColumn(key, 1)
}

func (s ViewState) moveColumn(key string, delta int) ViewState {
	for i, k := range s.SavedColumns {
		if k != key {
			continue
		}
		j := i + delta
		if j < 0 || j >= len(s.SavedColumns) {
			return s
		}
		s = s.clone()
		s.SavedColumns[i], s.SavedColumns[j] = s.SavedColumns[j], s.SavedColumns[i]
		return s
	}
	return s
}

// SetColumnFilter stores a per-column filter. An empty value removes it.
func (s ViewState) SetColumnFilter(key, value string) ViewState {
	if _, ok := ColumnByKey(key); !ok {
		return s
	}
	s = s.clone()
	if strings.TrimSpace(value) == "" {
		delete(s.ColumnFilters, key)
		return s
	}
	s.ColumnFilters[key] = value
	return s
}

// ClearFilters resets every row predicate but keeps the column layout.
func (s ViewState) ClearFilters() ViewState {
	s = s.clone()
	s.DateFrom, s.DateTo = "", ""
	s.Status = StatusBoth
	s.BiltyNoFilter, s.OrderNoFilter = "", ""
	s.ConsigneeFilter, s.ConsignorFilter = "", ""
	s.ColumnFilters = map[string]string{}
	return s
}
