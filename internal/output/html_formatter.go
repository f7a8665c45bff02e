package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/propcomply/compliance-engine/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":   FormatCurrency,
	"pct":    FormatPercentage,
	"date":   FormatDate,
	"status": StatusLabel,
	"days":   FormatDaysUntil,
	"add":    func(i, j int) int { return i + j },
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.ComplianceReport) ([]byte, error) {
	var buf bytes.Buffer
	rec := AnalyzeReport(report)

	data := struct {
		*domain.ComplianceReport
		Recommendation Recommendation
		Notes          []string
		Pillars        []domain.PillarScore
	}{report, rec, reportNotes(report), report.Overview.Pillars()}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
