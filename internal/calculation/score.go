package calculation

import (
	"time"

	"github.com/propcomply/compliance-engine/internal/domain"
	"github.com/propcomply/compliance-engine/internal/regulatory"
	"github.com/propcomply/compliance-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ScoreCalculator turns checklist completion into pillar readiness scores
type ScoreCalculator struct {
	Scoring  regulatory.ScoringRules
	KeyDates regulatory.PillarKeyDates
}

// NewScoreCalculator creates a score calculator from the reference tables
func NewScoreCalculator(tables *regulatory.Tables) *ScoreCalculator {
	return &ScoreCalculator{
		Scoring:  tables.Scoring,
		KeyDates: tables.KeyDates,
	}
}

// StatusForScore derives readiness from a score alone
func (sc *ScoreCalculator) StatusForScore(score int) domain.ReadinessStatus {
	switch {
	case score >= sc.Scoring.ReadyThreshold:
		return domain.StatusReady
	case score >= sc.Scoring.PartialThreshold:
		return domain.StatusPartial
	default:
		return domain.StatusNotReady
	}
}

// CalculatePillarScore scores one regime's checklist. A regime with no items
// scores zero.
func (sc *ScoreCalculator) CalculatePillarScore(regime domain.Regime, items []domain.ChecklistItem, now time.Time) domain.PillarScore {
	total, completed := 0, 0
	for _, item := range items {
		if item.Regime != regime {
			continue
		}
		total++
		if item.IsCompleted {
			completed++
		}
	}

	score := 0
	if total > 0 {
		score = int(decimal.NewFromInt(int64(completed)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(total))).
			Round(0).IntPart())
	}

	ps := domain.PillarScore{
		Regime:         regime,
		Score:          score,
		Status:         sc.StatusForScore(score),
		TotalItems:     total,
		CompletedItems: completed,
	}
	if next, ok := sc.nextKeyDate(regime, now); ok {
		days := dateutil.DaysUntil(now, next)
		ps.NextDeadline = &next
		ps.DaysUntilDeadline = &days
	}
	return ps
}

// nextKeyDate returns the earliest key date strictly after now
func (sc *ScoreCalculator) nextKeyDate(regime domain.Regime, now time.Time) (time.Time, bool) {
	var next time.Time
	found := false
	for _, d := range sc.KeyDates.For(regime) {
		if !d.After(now) {
			continue
		}
		if !found || d.Before(next) {
			next = d
			found = true
		}
	}
	return next, found
}

// CalculateOverallCompliance scores every pillar and combines them with fixed
// weights. Weights are never renormalised for empty pillars.
func (sc *ScoreCalculator) CalculateOverallCompliance(items []domain.ChecklistItem, now time.Time) domain.ComplianceOverview {
	overview := domain.ComplianceOverview{
		MTD:           sc.CalculatePillarScore(domain.RegimeMTD, items, now),
		RentersRights: sc.CalculatePillarScore(domain.RegimeRentersRights, items, now),
		EPC:           sc.CalculatePillarScore(domain.RegimeEPC, items, now),
	}

	w := sc.Scoring.Weights
	weighted := decimal.NewFromInt(int64(overview.MTD.Score)).Mul(w.MTD).
		Add(decimal.NewFromInt(int64(overview.RentersRights.Score)).Mul(w.RentersRights)).
		Add(decimal.NewFromInt(int64(overview.EPC.Score)).Mul(w.EPC))
	overview.OverallScore = int(weighted.Round(0).IntPart())

	return overview
}
