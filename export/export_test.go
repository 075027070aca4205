package export

import (
	"bytes"
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Rabi-developer/ZMS-sub002/aging"
	"github.com/Rabi-developer/ZMS-sub002/models"
)

func sampleReport() Report {
	columns := aging.ResolveColumns([]string{"biltyNo", "consignor", "dueDate", "outstanding", "overDue"})
	rows := []models.AgingRow{
		{BiltyNo: "B-101", Consignor: "Lahore Mills", DueDate: "2024-02-09", Outstanding: 1234.5, OverDue: 1234.5},
		{BiltyNo: "B-102", Consignor: "Sialkot <Sports>", DueDate: "2024-03-01", Outstanding: 100, NotDue: 100},
	}
	return Report{
		Company: &models.InitialSetup{
			CompanyName: "ZMS Logistics",
			Address:     "Plot 12, SITE",
			City:        "Karachi",
			NTN:         "1234567-8",
			Mobile:      []models.MobileEntry{{Number: "0300-1234567", Label: "Office"}},
		},
		Columns:     columns,
		Rows:        rows,
		Totals:      aging.Totals(rows, columns),
		Summary:     aging.Summary{DateFrom: "2024-01-01", DateTo: "2024-01-31", Status: aging.StatusOverDue},
		GeneratedAt: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"pdf": FormatPDF, "XLSX": FormatExcel, "excel": FormatExcel, "doc": FormatWord, "word": FormatWord} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("csv")
	assert.Error(t, err)

	assert.Equal(t, "aging-report-20240315.xlsx", FormatExcel.Filename(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "application/msword", FormatWord.ContentType())
}

func TestReportHeader(t *testing.T) {
	r := sampleReport()
	assert.Equal(t, "ZMS Logistics", r.Heading())
	assert.Equal(t, "Aging Report | From 2024-01-01 To 2024-01-31 | Filter: Over Due", r.Subtitle())
	assert.InDelta(t, 1334.5, r.TotalOutstanding(), 1e-9)

	r.Company = nil
	r.Summary.Status = aging.StatusBoth
	assert.Equal(t, Title, r.Heading())
	assert.Equal(t, "Aging Report | From 2024-01-01 To 2024-01-31", r.Subtitle())
}

func TestExcelRenderer(t *testing.T) {
	out, err := ExcelRenderer{}.Render(context.Background(), sampleReport())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	title, err := f.GetCellValue(SheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "ZMS Logistics", title)
	subtitle, err := f.GetCellValue(SheetName, "A2")
	require.NoError(t, err)
	assert.Contains(t, subtitle, "Filter: Over Due")

	merged, err := f.GetMergeCells(SheetName)
	require.NoError(t, err)
	require.Len(t, merged, 2)
	assert.Equal(t, "A1", merged[0].GetStartAxis())
	assert.Equal(t, "E1", merged[0].GetEndAxis())

	header, err := f.GetCellValue(SheetName, "D3")
	require.NoError(t, err)
	assert.Equal(t, "Outstanding", header)

	raw, err := f.GetCellValue(SheetName, "D4", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	v, err := strconv.ParseFloat(raw, 64)
	require.NoError(t, err)
	assert.InDelta(t, 1234.5, v, 1e-9)

	style, err := f.GetCellStyle(SheetName, "D4")
	require.NoError(t, err)
	assert.NotZero(t, style)

	totalLabel, err := f.GetCellValue(SheetName, "A6")
	require.NoError(t, err)
	assert.Equal(t, "Total", totalLabel)
	rawTotal, err := f.GetCellValue(SheetName, "D6", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	total, err := strconv.ParseFloat(rawTotal, 64)
	require.NoError(t, err)
	assert.InDelta(t, 1334.5, total, 1e-9)
}

func TestWordRenderer(t *testing.T) {
	out, err := WordRenderer{}.Render(context.Background(), sampleReport())
	require.NoError(t, err)
	doc := string(out)

	assert.Contains(t, doc, `xmlns:w="urn:schemas-microsoft-com:office:word"`)
	assert.Contains(t, doc, "<th>Bilty No</th>")
	assert.Contains(t, doc, "1,234.50")
	assert.Contains(t, doc, "1,334.50")
	assert.Contains(t, doc, "Filter: Over Due")
	assert.Contains(t, doc, "Sialkot &lt;Sports&gt;")
	assert.Contains(t, doc, "One Thousand Three Hundred Thirty Four Rupees and Fifty Paisa Only")
}

func TestPDFHTML(t *testing.T) {
	html, err := NewPDFRenderer(time.Second).HTML(sampleReport())
	require.NoError(t, err)
	page := string(html)

	assert.Contains(t, page, "<h1>ZMS Logistics</h1>")
	assert.Contains(t, page, "NTN: 1234567-8")
	assert.Contains(t, page, "0300-1234567(Office)")
	assert.Contains(t, page, "From 2024-01-01 To 2024-01-31")
	assert.Contains(t, page, `<td class="num">1,234.50</td>`)
	assert.Contains(t, page, "Generated 15-Mar-2024 10:30")
	assert.Contains(t, page, "Rupees and Fifty Paisa Only")
}

func TestPDFHTMLEmpty(t *testing.T) {
	r := sampleReport()
	r.Rows = nil
	r.Totals = aging.Totals(nil, r.Columns)
	html, err := NewPDFRenderer(time.Second).HTML(r)
	require.NoError(t, err)
	assert.Contains(t, string(html), `<td colspan="5">No records</td>`)
	assert.Contains(t, string(html), "Zero Rupees Only")
}

func TestFooterTemplate(t *testing.T) {
	r := sampleReport()
	r.Company.Address = "Shop <7>"
	footer := footerTemplate(r)
	assert.Contains(t, footer, "Shop &lt;7&gt;, Karachi")
	assert.Contains(t, footer, `<span class="pageNumber"></span>`)
	assert.Contains(t, footer, `<span class="totalPages"></span>`)
}

func TestExporterDispatch(t *testing.T) {
	e := NewExporter(nil)
	out, err := e.Render(context.Background(), FormatWord, sampleReport())
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = e.Render(context.Background(), FormatPDF, sampleReport())
	assert.Error(t, err)
}

// Needs a local Chrome; enable with ZMS_CHROME_TESTS=1.
func TestPDFRender(t *testing.T) {
	if os.Getenv("ZMS_CHROME_TESTS") == "" {
		t.Skip("ZMS_CHROME_TESTS not set")
	}
	out, err := NewPDFRenderer(30*time.Second).Render(context.Background(), sampleReport())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
