// Package export renders the aging report as PDF, Excel and Word documents.
package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rabi-developer/ZMS-sub002/aging"
	"github.com/Rabi-developer/ZMS-sub002/models"
)

const Title = "Aging Report"

// Format is an export file type.
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "xlsx"
	FormatWord  Format = "doc"
)

// ParseFormat accepts the format names used in query strings.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf":
		return FormatPDF, nil
	case "xlsx", "excel":
		return FormatExcel, nil
	case "doc", "word":
		return FormatWord, nil
	}
	return "", fmt.Errorf("export: unsupported format %q", s)
}

func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatWord:
		return "application/msword"
	}
	return "application/octet-stream"
}

// Filename returns e.g. "aging-report-20240131.pdf".
func (f Format) Filename(at time.Time) string {
	return "aging-report-" + at.Format("20060102") + "." + string(f)
}

// Report is everything an exporter needs: the visible columns, the filtered
// rows and the header data.
type Report struct {
	Company     *models.InitialSetup
	Columns     []aging.Column
	Rows        []models.AgingRow
	Totals      map[string]float64
	Summary     aging.Summary
	GeneratedAt time.Time
}

// NewReport builds a Report from a rendered view.
func NewReport(view aging.View, company *models.InitialSetup, now time.Time) Report {
	return Report{
		Company:     company,
		Columns:     view.Columns,
		Rows:        view.Rows,
		Totals:      view.Totals,
		Summary:     view.Summary,
		GeneratedAt: now,
	}
}

// Heading is the company name, or the report title when no company is set up.
func (r Report) Heading() string {
	if r.Company != nil && r.Company.CompanyName != "" {
		return r.Company.CompanyName
	}
	return Title
}

// Subtitle combines the date range and, unless showing both, the status filter.
func (r Report) Subtitle() string {
	parts := []string{Title, r.Summary.DateRange()}
	if label := r.Summary.StatusLabel(); label != "" {
		parts = append(parts, label)
	}
	return strings.Join(parts, " | ")
}

// TotalOutstanding sums outstanding over every exported row, visible or not.
func (r Report) TotalOutstanding() float64 {
	var sum float64
	for _, row := range r.Rows {
		sum += row.Outstanding
	}
	return sum
}

// Cell returns the display value of column c in row.
func (r Report) Cell(c aging.Column, row models.AgingRow) string {
	return c.Display(row)
}

// Total returns the formatted total of column c, empty for non-amount columns.
func (r Report) Total(c aging.Column) string {
	if !c.Numeric() {
		return ""
	}
	return aging.FormatAmount(r.Totals[c.Key])
}

// Renderer turns a Report into file bytes.
type Renderer interface {
	Render(ctx context.Context, r Report) ([]byte, error)
}

// Exporter dispatches to the renderer for each format.
type Exporter struct {
	PDF   Renderer
	Excel Renderer
	Word  Renderer
}

// NewExporter wires the default renderers. PDF export is disabled when pdf is nil.
func NewExporter(pdf *PDFRenderer) *Exporter {
	e := &Exporter{Excel: ExcelRenderer{}, Word: WordRenderer{}}
	if pdf != nil {
		e.PDF = pdf
	}
	return e
}

func (e *Exporter) Render(ctx context.Context, f Format, r Report) ([]byte, error) {
	var renderer Renderer
	switch f {
	case FormatPDF:
		renderer = e.PDF
	case FormatExcel:
		renderer = e.Excel
	case FormatWord:
		renderer = e.Word
	}
	if renderer == nil {
		return nil, fmt.Errorf("export: no renderer for %q", f)
	}
	out, err := renderer.Render(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", f, err)
	}
	return out, nil
}
