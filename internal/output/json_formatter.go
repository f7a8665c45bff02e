package output

import (
	"encoding/json"

	"github.com/propcomply/compliance-engine/internal/domain"
)

// JSONFormatter serializes the compliance report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.ComplianceReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
