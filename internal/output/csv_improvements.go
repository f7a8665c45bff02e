package output

import (
	"bytes"
	"encoding/csv"

	"github.com/propcomply/compliance-engine/internal/domain"
)

// CSVImprovementsExporter writes one row per recommended EPC measure per property,
// in the ranked order the estimator produced.
type CSVImprovementsExporter struct{}

func (c CSVImprovementsExporter) Name() string { return "detailed-csv" }

func (c CSVImprovementsExporter) Format(report *domain.ComplianceReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"PropertyID", "Address", "Score", "Rating", "GapToC", "Rank", "Improvement", "CostMid", "PointsMid", "CostPerPoint", "Effectiveness"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, a := range report.EPCAssessments {
		base := []string{a.PropertyID, a.Address, intToString(a.Score), string(a.Rating), intToString(a.GapToC)}
		if len(a.Recommendations) == 0 {
			if err := w.Write(append(base, "", "", "", "", "", "")); err != nil {
				return nil, err
			}
			continue
		}
		for i, rec := range a.Recommendations {
			row := append(append([]string{}, base...),
				intToString(i+1),
				string(rec.Type),
				rec.CostMid.String(),
				rec.PointsMid.String(),
				rec.CostPerPoint.String(),
				rec.Effectiveness,
			)
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
