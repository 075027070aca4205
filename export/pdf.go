package export

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

var pdfTemplate = template.Must(template.New("aging_report.html").ParseFS(templateFS, "templates/aging_report.html"))

// PDFRenderer prints the report through headless Chrome on landscape A4.
type PDFRenderer struct {
	Timeout      time.Duration
	AllocOptions []chromedp.ExecAllocatorOption
}

func NewPDFRenderer(timeout time.Duration) *PDFRenderer {
	return &PDFRenderer{
		Timeout: timeout,
		AllocOptions: []chromedp.ExecAllocatorOption{
			chromedp.NoSandbox,
			chromedp.DisableGPU,
		},
	}
}

// HTML renders the page that is printed to PDF.
func (p *PDFRenderer) HTML(r Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdfTemplate.Execute(&buf, newPageData(r)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *PDFRenderer) Render(ctx context.Context, r Report) ([]byte, error) {
	html, err := p.HTML(r)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp("", "aging_*.html")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(html); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, append(chromedp.DefaultExecAllocatorOptions[:], p.AllocOptions...)...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var pdfBuf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+tmp.Name()),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithLandscape(true).
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.7).
				WithMarginBottom(0.6).
				WithDisplayHeaderFooter(true).
				WithHeaderTemplate("<span></span>").
				WithFooterTemplate(footerTemplate(r)).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print pdf: %w", err)
	}
	return pdfBuf, nil
}

// footerTemplate is Chrome's per-page footer: the company address on the
// left and "Page n of m" on the right.
func footerTemplate(r Report) string {
	return `<div style="font-size:8px;width:100%;padding:0 10mm;display:flex;justify-content:space-between;">` +
		`<span>` + template.HTMLEscapeString(r.Company.FullAddress()) + `</span>` +
		`<span>Page <span class="pageNumber"></span> of <span class="totalPages"></span></span>` +
		`</div>`
}
