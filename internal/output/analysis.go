package output

import "github.com/propcomply/compliance-engine/internal/domain"

// Recommendation encapsulates where a landlord should focus next.
type Recommendation struct {
	FocusRegime     domain.Regime
	FocusScore      int
	NextDeadline    *domain.Deadline
	OverdueCount    int
	NonCompliantEPC int
	TopAction       string
}

// AnalyzeReport picks the weakest pillar, the nearest upcoming deadline and the
// most pressing outstanding action. Ties go to the earlier pillar in report order.
func AnalyzeReport(r *domain.ComplianceReport) Recommendation {
	rec := Recommendation{}

	pillars := r.Overview.Pillars()
	if len(pillars) > 0 {
		weakest := pillars[0]
		for _, p := range pillars[1:] {
			if p.Score < weakest.Score {
				weakest = p
			}
		}
		rec.FocusRegime = weakest.Regime
		rec.FocusScore = weakest.Score
	}

	if len(r.Upcoming) > 0 {
		next := r.Upcoming[0]
		rec.NextDeadline = &next
	}

	for _, d := range r.Deadlines {
		if d.IsOverdue && d.Regime == domain.RegimeCertificate {
			rec.OverdueCount++
		}
	}

	for _, a := range r.EPCAssessments {
		if !a.IsCompliant {
			rec.NonCompliantEPC++
		}
	}

	for _, item := range r.Outstanding {
		if item.Regime == rec.FocusRegime {
			rec.TopAction = item.Title
			break
		}
	}
	if rec.TopAction == "" && len(r.Outstanding) > 0 {
		rec.TopAction = r.Outstanding[0].Title
	}

	return rec
}
