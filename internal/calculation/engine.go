package calculation

import (
	"fmt"
	"time"

	"github.com/propcomply/compliance-engine/internal/domain"
	"github.com/propcomply/compliance-engine/internal/regulatory"
	"github.com/propcomply/compliance-engine/pkg/dateutil"
	money "github.com/propcomply/compliance-engine/pkg/decimal"
)

// Clock supplies the current instant
type Clock func() time.Time

// FixedClock returns a clock that always reports t
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// ComplianceEngine runs the independent calculators over a portfolio
type ComplianceEngine struct {
	Tables    *regulatory.Tables
	Mtd       *MtdCalculator
	EPC       *EpcEstimator
	Deadlines *DeadlineEngine
	Scores    *ScoreCalculator
	Clock     Clock
	Debug     bool // Log intermediate results
	Logger    Logger
}

// NewComplianceEngine creates an engine over the embedded reference tables
func NewComplianceEngine() *ComplianceEngine {
	return NewComplianceEngineWithTables(regulatory.Default())
}

// NewComplianceEngineWithTables creates an engine over the given tables
func NewComplianceEngineWithTables(tables *regulatory.Tables) *ComplianceEngine {
	return &ComplianceEngine{
		Tables:    tables,
		Mtd:       NewMtdCalculator(tables),
		EPC:       NewEpcEstimator(tables),
		Deadlines: NewDeadlineEngine(tables),
		Scores:    NewScoreCalculator(tables),
		Clock:     time.Now,
		Logger:    NopLogger{},
	}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (ce *ComplianceEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// SetClock overrides the clock. If nil is provided, the wall clock is used.
func (ce *ComplianceEngine) SetClock(c Clock) {
	if c == nil {
		ce.Clock = time.Now
		return
	}
	ce.Clock = c
}

// Now reads the clock once
func (ce *ComplianceEngine) Now() time.Time {
	return ce.Clock()
}

// AssessProperty reports the EPC position of one property. Properties without
// a score return false.
func (ce *ComplianceEngine) AssessProperty(p domain.Property, budget *money.Money) (domain.PropertyEPCAssessment, bool) {
	if p.EPCScore == nil {
		return domain.PropertyEPCAssessment{}, false
	}
	score := *p.EPCScore
	rating := ce.EPC.GetRatingForScore(score)
	return domain.PropertyEPCAssessment{
		PropertyID:      p.ID,
		Address:         p.AddressLine1,
		Score:           score,
		Rating:          rating,
		IsCompliant:     rating.IsCompliant(),
		GapToC:          ce.EPC.GetGapToC(score),
		Recommendations: ce.EPC.GetRecommendedImprovements(score, budget),
		UpgradeCost:     ce.EPC.EstimateTotalUpgradeCost(score),
	}, true
}

// BuildReport runs every calculator at a single instant read from the clock
func (ce *ComplianceEngine) BuildReport(p *domain.Portfolio, upcomingLimit int) *domain.ComplianceReport {
	now := ce.Now()
	ce.Logger.Debugf("building report for %q at %s", p.Landlord, now.Format(time.RFC3339))

	report := &domain.ComplianceReport{
		GeneratedAt:   now,
		Landlord:      p.Landlord,
		TablesVersion: ce.Tables.Metadata.Version,
		Overview:      ce.Scores.CalculateOverallCompliance(p.ChecklistItems, now),
		MtdStatus:     ce.Mtd.CalculateMtdStatus(p.Mtd),
	}

	if p.LatePayment != nil {
		penalty := ce.Mtd.CalculateLatePenalty(p.LatePayment.AmountOwed, p.LatePayment.DaysLate)
		report.LatePenalty = &penalty
	}

	report.Deadlines = ce.Deadlines.GetAllDeadlines(p.Properties, p.Certificates, now)
	report.Upcoming = Upcoming(report.Deadlines, now, upcomingLimit)

	report.EPCAssessments = []domain.PropertyEPCAssessment{}
	for _, prop := range p.Properties {
		if a, ok := ce.AssessProperty(prop, p.EPCBudget); ok {
			report.EPCAssessments = append(report.EPCAssessments, a)
		} else {
			ce.Logger.Infof("property %s has no EPC score; skipping assessment", prop.ID)
		}
	}

	report.CertificateStatuses = CertificateStatuses(p.Certificates, now)

	report.Outstanding = []domain.ChecklistItem{}
	for _, regime := range domain.Pillars {
		report.Outstanding = append(report.Outstanding, OutstandingItems(regime, p.ChecklistItems)...)
	}

	report.Notes = ce.Notes(report)

	if ce.Debug {
		ce.Logger.Debugf("overall=%d mtd=%d rra=%d epc=%d deadlines=%d upcoming=%d",
			report.Overview.OverallScore, report.Overview.MTD.Score, report.Overview.RentersRights.Score,
			report.Overview.EPC.Score, len(report.Deadlines), len(report.Upcoming))
	}
	return report
}

// Notes lists the regulatory assumptions behind a report
func (ce *ComplianceEngine) Notes(r *domain.ComplianceReport) []string {
	t := ce.Tables
	w := t.Scoring.Weights
	notes := []string{
		fmt.Sprintf("Regulatory tables version %s (updated %s)", t.Metadata.Version, t.Metadata.LastUpdated),
		"MTD thresholds apply to income strictly above each limit; exactly £50,000 falls in the April 2027 phase",
		"Joint owners count half of the gross rental income towards MTD",
		fmt.Sprintf("EPC band C requires a score of at least %d", t.EPC.MinimumCompliantScore),
		fmt.Sprintf("Upgrade costs assume %s per rating point, banded %sx to %sx",
			money.NewMoneyFromDecimal(t.EPC.AverageCostPerPoint).Format(),
			t.EPC.EstimateLowFactor.String(), t.EPC.EstimateHighFactor.String()),
		fmt.Sprintf("Overall score weights: MTD %s%%, Renters' Rights %s%%, EPC %s%%",
			w.MTD.Shift(2).String(), w.RentersRights.Shift(2).String(), w.EPC.Shift(2).String()),
		fmt.Sprintf("Dates evaluated at %s", dateutil.FormatUK(r.GeneratedAt)),
	}
	for _, s := range r.CertificateStatuses {
		if s.Status == domain.CertificateExpired {
			notes = append(notes, fmt.Sprintf("Certificate %s has expired", s.CertificateID))
		}
	}
	return notes
}
