package render

import (
	"bytes"
	_ "embed"
	"html/template"
	"io"
)

//go:embed templates/result.html
var resultTemplate string

var resultTmpl = template.Must(template.New("result").Parse(resultTemplate))

// HTML writes the result panel.
func (v View) HTML(w io.Writer) error {
	return resultTmpl.Execute(w, v)
}

// HTMLString renders the result panel for embedding into a page.
func (v View) HTMLString() (template.HTML, error) {
	var buf bytes.Buffer
	if err := v.HTML(&buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
