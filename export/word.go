package export

import (
	"bytes"
	"context"
	"html/template"
)

// WordRenderer produces an HTML document carrying the Word XML namespaces,
// which Word opens as a .doc file.
type WordRenderer struct{}

func (WordRenderer) Render(_ context.Context, r Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := wordTemplate.Execute(&buf, newPageData(r)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var wordTemplate = template.Must(template.New("aging_report_doc.html").ParseFS(templateFS, "templates/aging_report_doc.html"))
