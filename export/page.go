package export

import (
	"embed"

	"github.com/Rabi-developer/ZMS-sub002/aging"
	"github.com/Rabi-developer/ZMS-sub002/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

type pageCell struct {
	Value   string
	Numeric bool
}

type pageColumn struct {
	Label   string
	Numeric bool
	Total   string
}

// pageData is the view model shared by the HTML based renderers.
type pageData struct {
	Heading     string
	Subtitle    string
	Address     string
	Contacts    string
	NTN         string
	Footnote    string
	Columns     []pageColumn
	Rows        [][]pageCell
	HasTotals   bool
	Outstanding string
	TotalWords  string
	GeneratedAt string
}

func newPageData(r Report) pageData {
	d := pageData{
		Heading:     r.Heading(),
		Subtitle:    r.Subtitle(),
		Address:     r.Company.FullAddress(),
		Contacts:    r.Company.Contacts(),
		Outstanding: aging.FormatAmount(r.TotalOutstanding()),
		TotalWords:  utils.NumberToCurrencyWords(r.TotalOutstanding()),
		GeneratedAt: r.GeneratedAt.Format("02-Jan-2006 15:04"),
	}
	if r.Company != nil {
		d.NTN = r.Company.NTN
		d.Footnote = r.Company.Footnote
	}
	for _, c := range r.Columns {
		d.Columns = append(d.Columns, pageColumn{Label: c.Label, Numeric: c.Numeric(), Total: r.Total(c)})
		if c.Numeric() {
			d.HasTotals = true
		}
	}
	d.Rows = make([][]pageCell, 0, len(r.Rows))
	for _, row := range r.Rows {
		cells := make([]pageCell, len(r.Columns))
		for i, c := range r.Columns {
			cells[i] = pageCell{Value: r.Cell(c, row), Numeric: c.Numeric()}
		}
		d.Rows = append(d.Rows, cells)
	}
	return d
}
