package ui

import (
	"html/template"
	"strings"

	"github.com/five82/exview/internal/clipboard"
	"github.com/five82/exview/internal/logsapi"
)

// noneText stands in for empty context lines and stack traces.
const noneText = "(none)"

// detailSection is one labelled block of the exception detail body.
type detailSection struct {
	Label  string
	Body   string
	Inline bool
}

func detailSections(ex logsapi.Exception) []detailSection {
	pre := ex.PreLines
	if !ex.HasPreLines() {
		pre = noneText
	}
	trace := ex.StackTrace
	if !ex.HasStackTrace() {
		trace = noneText
	}
	return []detailSection{
		{Label: "preLines:", Body: pre},
		{Label: "Exception Message:", Body: ex.ExceptionMessage, Inline: true},
		{Label: "Stack Trace:", Body: trace},
	}
}

// detailText renders the scrollable detail body as plain text. This is
// both what the overlay shows and what the plain clipboard flavour holds.
func detailText(ex logsapi.Exception) string {
	var b strings.Builder
	for i, s := range detailSections(ex) {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(s.Label)
		if s.Inline {
			b.WriteString(" ")
		} else {
			b.WriteString("\n")
		}
		b.WriteString(s.Body)
	}
	return b.String()
}

var detailHTMLTemplate = template.Must(template.New("detail").Parse(
	`{{range .}}<div>{{if .Inline}}<b>{{.Label}}</b> {{.Body}}{{else}}<b>{{.Label}}</b>
<pre style="white-space: pre-wrap">{{.Body}}</pre>{{end}}</div>
{{end}}`))

// detailHTML renders the same body as an HTML fragment.
func detailHTML(ex logsapi.Exception) (string, error) {
	var b strings.Builder
	if err := detailHTMLTemplate.Execute(&b, detailSections(ex)); err != nil {
		return "", err
	}
	return b.String(), nil
}

// detailContent builds both clipboard representations of ex.
func detailContent(ex logsapi.Exception) (clipboard.Content, error) {
	html, err := detailHTML(ex)
	if err != nil {
		return clipboard.Content{}, err
	}
	return clipboard.Content{HTML: html, Text: detailText(ex)}, nil
}

// DetailText is the full plain text detail of ex, as shown in the overlay.
func DetailText(ex logsapi.Exception) string {
	return detailText(ex)
}
