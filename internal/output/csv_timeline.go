package output

import (
	"bytes"
	"encoding/csv"

	"github.com/propcomply/compliance-engine/internal/domain"
	"github.com/propcomply/compliance-engine/pkg/dateutil"
)

// CSVTimelineExporter writes the deadline timeline, one row per deadline in date order.
type CSVTimelineExporter struct{}

func (c CSVTimelineExporter) Name() string { return "csv" }

func (c CSVTimelineExporter) Format(report *domain.ComplianceReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Date", "ID", "Regime", "Title", "Critical", "Overdue", "DaysUntil", "Description"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, d := range report.Deadlines {
		row := []string{
			dateutil.FormatISO(d.Date),
			d.ID,
			string(d.Regime),
			d.Title,
			boolToString(d.IsCritical),
			boolToString(d.IsOverdue),
			intToString(dateutil.DaysUntil(report.GeneratedAt, d.Date)),
			d.Description,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
