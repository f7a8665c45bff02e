package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/propcomply/compliance-engine/internal/calculation"
	"github.com/propcomply/compliance-engine/internal/config"
	"github.com/propcomply/compliance-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const examplePortfolio = "../testdata/example_portfolio.yaml"

var evaluatedAt = time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

func buildReport(t *testing.T) *domain.ComplianceReport {
	t.Helper()
	parser := config.NewInputParser()
	portfolio, err := parser.LoadFromFile(examplePortfolio)
	require.NoError(t, err)

	engine := calculation.NewComplianceEngine()
	engine.SetClock(calculation.FixedClock(evaluatedAt))
	return engine.BuildReport(portfolio, 5)
}

func TestEndToEndCalculation(t *testing.T) {
	r := buildReport(t)

	// joint rental halves to exactly 30,000, which is not over the threshold
	assert.Equal(t, domain.MtdPhaseApril2028, r.MtdStatus.Phase)
	assert.Equal(t, "30000.00", r.MtdStatus.QualifyingIncome.String())

	require.NotNil(t, r.LatePenalty)
	assert.Equal(t, "128.22", r.LatePenalty.Penalty.String())
	assert.Len(t, r.LatePenalty.Breakdown, 3)

	assert.Equal(t, 75, r.Overview.MTD.Score)
	assert.Equal(t, domain.StatusPartial, r.Overview.MTD.Status)
	assert.Equal(t, 100, r.Overview.RentersRights.Score)
	assert.Equal(t, domain.StatusReady, r.Overview.RentersRights.Status)
	assert.Equal(t, 0, r.Overview.EPC.Score)
	assert.Equal(t, domain.StatusNotReady, r.Overview.EPC.Status)
	assert.Equal(t, 66, r.Overview.OverallScore)

	require.Len(t, r.EPCAssessments, 2)
	worst := r.EPCAssessments[0]
	assert.Equal(t, domain.EpcRating("E"), worst.Rating)
	assert.Equal(t, 24, worst.GapToC)
	assert.Equal(t, "7200.00", worst.UpgradeCost.Mid.String())
	assert.Equal(t, "3600.00", worst.UpgradeCost.Min.String())
	assert.Equal(t, "12960.00", worst.UpgradeCost.Max.String())
	assert.NotEmpty(t, worst.Recommendations)
	assert.True(t, r.EPCAssessments[1].IsCompliant)

	require.Len(t, r.CertificateStatuses, 3)
	assert.Equal(t, domain.CertificateExpiringSoon, r.CertificateStatuses[0].Status)
	require.NotNil(t, r.CertificateStatuses[0].DaysUntilExpiry)
	assert.Equal(t, 19, *r.CertificateStatuses[0].DaysUntilExpiry)
	assert.Equal(t, domain.CertificateNoExpiry, r.CertificateStatuses[1].Status)
	assert.Equal(t, domain.CertificateExpired, r.CertificateStatuses[2].Status)

	ids := make([]string, 0, len(r.Outstanding))
	for _, item := range r.Outstanding {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []string{"mtd-4", "epc-2", "epc-1", "epc-3"}, ids)

	assert.LessOrEqual(t, len(r.Upcoming), 5)
	for _, d := range r.Upcoming {
		assert.False(t, d.Date.Before(evaluatedAt))
	}
	assert.Contains(t, r.Notes, "Certificate epc-north-3 has expired")
}

func TestDeterministicAcrossRuns(t *testing.T) {
	a := buildReport(t)
	b := buildReport(t)
	assert.Equal(t, a, b)
}

func TestConfigurationValidation(t *testing.T) {
	data, err := os.ReadFile(examplePortfolio)
	require.NoError(t, err)

	broken := strings.Replace(string(data), "regime: epc, property_id: north-3", "regime: council_tax, property_id: north-3", 1)
	require.NotEqual(t, string(data), broken)
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte(broken), 0o644))

	_, err = config.NewInputParser().LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "portfolio validation failed")
}
