package aging

import (
	"strings"
	"time"

	"github.com/Rabi-developer/ZMS-sub002/models"
)

// Status is the due-status filter.
type Status string

const (
	StatusBoth    Status = "Both"
	StatusOverDue Status = "Over Due"
	StatusNotDue  Status = "Not Due"
)

func (s Status) Valid() bool {
	return s == "" || s == StatusBoth || s == StatusOverDue || s == StatusNotDue
}

// Filter holds every predicate of the report. Zero values mean "no filter".
type Filter struct {
	DateFrom  string            `json:"dateFrom"`
	DateTo    string            `json:"dateTo"`
	Status    Status            `json:"filter"`
	BiltyNo   string            `json:"biltyNo"`
	OrderNo   string            `json:"orderNo"`
	Consignee string            `json:"consignee"`
	Consignor string            `json:"consignor"`
	Columns   map[string]string `json:"columnFilters"`
}

// Active reports whether any predicate is set.
func (f Filter) Active() bool {
	if f.DateFrom != "" || f.DateTo != "" {
		return true
	}
	if f.Status != "" && f.Status != StatusBoth {
		return true
	}
	if f.BiltyNo != "" || f.OrderNo != "" || f.Consignee != "" || f.Consignor != "" {
		return true
	}
	for _, v := range f.Columns {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// Apply returns the rows matching f. The status predicate is evaluated
// against now, not against the NotDue/OverDue amounts baked into the rows.
// When f is inactive the input slice itself is returned.
func Apply(rows []models.AgingRow, f Filter, now time.Time) []models.AgingRow {
	if !f.Active() {
		return rows
	}
	m := newMatcher(f, now)
	out := make([]models.AgingRow, 0, len(rows))
	for _, r := range rows {
		if m.match(r) {
			out = append(out, r)
		}
	}
	return out
}

type columnPredicate struct {
	col    Column
	needle string
	set    map[string]struct{}
}

type matcher struct {
	f           Filter
	now         time.Time
	from, to    time.Time
	hasFrom     bool
	hasTo       bool
	columnPreds []columnPredicate
}

func newMatcher(f Filter, now time.Time) *matcher {
	m := &matcher{f: f, now: now}
	if t, ok := ParseDate(f.DateFrom); ok {
		m.from, m.hasFrom = t, true
	}
	if t, ok := ParseDate(f.DateTo); ok {
		m.to, m.hasTo = endOfDay(t), true
	}
	for key, value := range f.Columns {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		col, ok := ColumnByKey(key)
		if !ok {
			continue
		}
		pred := columnPredicate{col: col}
		if col.Filter == FilterSelectMultiple {
			pred.set = splitSelection(value)
			if len(pred.set) == 0 {
				continue
			}
		} else {
			pred.needle = strings.ToLower(value)
		}
		m.columnPreds = append(m.columnPreds, pred)
	}
	return m
}

func (m *matcher) match(r models.AgingRow) bool {
	if m.hasFrom || m.hasTo {
		d, ok := ParseDate(r.Date)
		if !ok {
			return false
		}
		if m.hasFrom && d.Before(m.from) {
			return false
		}
		if m.hasTo && d.After(m.to) {
			return false
		}
	}

	switch m.f.Status {
	case StatusOverDue:
		if !isOverDue(r, m.now) {
			return false
		}
	case StatusNotDue:
		if isOverDue(r, m.now) {
			return false
		}
	}

	if m.f.BiltyNo != "" && !strings.EqualFold(strings.TrimSpace(r.BiltyNo), strings.TrimSpace(m.f.BiltyNo)) {
		return false
	}
	if m.f.OrderNo != "" && !strings.EqualFold(strings.TrimSpace(r.OrderNo), strings.TrimSpace(m.f.OrderNo)) {
		return false
	}
	if m.f.Consignee != "" && !containsFold(r.Consignee, m.f.Consignee) {
		return false
	}
	if m.f.Consignor != "" && !containsFold(r.Consignor, m.f.Consignor) {
		return false
	}

	for _, p := range m.columnPreds {
		if p.set != nil {
			if _, ok := p.set[strings.ToLower(strings.TrimSpace(p.col.Text(r)))]; !ok {
				return false
			}
			continue
		}
		if !strings.Contains(strings.ToLower(p.col.Text(r)), p.needle) &&
			!strings.Contains(strings.ToLower(p.col.Display(r)), p.needle) {
			return false
		}
	}
	return true
}

// isOverDue reports now >= due. A row without a due date counts as overdue.
func isOverDue(r models.AgingRow, now time.Time) bool {
	due, ok := ParseDate(r.DueDate)
	if !ok {
		return true
	}
	return !now.Before(due)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(strings.TrimSpace(needle)))
}

// splitSelection parses a comma-joined multi-select value.
func splitSelection(value string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, part := range strings.Split(value, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		set[part] = struct{}{}
	}
	return set
}

// JoinSelection builds the comma-joined value stored for multi-select filters.
func JoinSelection(values []string) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, ",")
}
