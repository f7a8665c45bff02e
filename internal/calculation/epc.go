package calculation

import (
	"sort"

	"github.com/propcomply/compliance-engine/internal/domain"
	"github.com/propcomply/compliance-engine/internal/regulatory"
	money "github.com/propcomply/compliance-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

// EpcEstimator maps EPC scores to ratings and ranks remediation measures
type EpcEstimator struct {
	Rules regulatory.EPCRules
}

// NewEpcEstimator creates an EPC estimator from the reference tables
func NewEpcEstimator(tables *regulatory.Tables) *EpcEstimator {
	return &EpcEstimator{Rules: tables.EPC}
}

// GetRatingForScore returns the band containing score, or the lowest band for
// anything below the bottom breakpoint
func (e *EpcEstimator) GetRatingForScore(score int) domain.EpcRating {
	for _, band := range e.Rules.Bands {
		if score >= band.Min {
			return band.Rating
		}
	}
	return e.Rules.LowestBand().Rating
}

// IsCompliant reports whether score meets the minimum rating
func (e *EpcEstimator) IsCompliant(score int) bool {
	return e.GetRatingForScore(score).IsCompliant()
}

// GetGapToC returns the rating points still needed to reach band C
func (e *EpcEstimator) GetGapToC(score int) int {
	gap := e.Rules.MinimumCompliantScore - score
	if gap < 0 {
		return 0
	}
	return gap
}

// GetRecommendedImprovements ranks the catalogue cheapest-per-point first. With
// a budget, a single greedy pass keeps each measure that still fits; skipped
// measures are never revisited.
func (e *EpcEstimator) GetRecommendedImprovements(score int, budget *money.Money) []domain.ImprovementRecommendation {
	if e.GetGapToC(score) <= 0 {
		return []domain.ImprovementRecommendation{}
	}

	ranked := make([]domain.ImprovementRecommendation, 0, len(e.Rules.Improvements))
	for _, imp := range e.Rules.Improvements {
		ranked = append(ranked, e.recommend(imp))
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CostPerPoint.LessThan(ranked[j].CostPerPoint)
	})

	if budget == nil {
		return ranked
	}

	remaining := *budget
	selected := []domain.ImprovementRecommendation{}
	for _, rec := range ranked {
		if rec.CostMid.LessThanOrEqual(remaining) {
			selected = append(selected, rec)
			remaining = remaining.Sub(rec.CostMid)
		}
	}
	return selected
}

func (e *EpcEstimator) recommend(imp regulatory.Improvement) domain.ImprovementRecommendation {
	two := decimal.NewFromInt(2)
	costMid := money.NewMoneyFromDecimal(imp.CostMin.Add(imp.CostMax).Div(two))
	pointsMid := imp.PointsMin.Add(imp.PointsMax).Div(two)
	costPerPoint := costMid.Div(pointsMid)

	return domain.ImprovementRecommendation{
		Type:          imp.Type,
		Label:         imp.Label,
		Description:   imp.Description,
		CostMid:       costMid,
		PointsMid:     pointsMid,
		CostPerPoint:  costPerPoint,
		Effectiveness: e.effectiveness(costPerPoint),
	}
}

func (e *EpcEstimator) effectiveness(costPerPoint money.Money) string {
	for _, band := range e.Rules.Effectiveness {
		if costPerPoint.Decimal.LessThanOrEqual(band.MaxCostPerPoint) {
			return band.Label
		}
	}
	return e.Rules.EffectivenessFallback
}

// EstimateTotalUpgradeCost gives an asymmetric cost band for closing the gap to C
func (e *EpcEstimator) EstimateTotalUpgradeCost(score int) domain.UpgradeCostEstimate {
	gap := e.GetGapToC(score)
	if gap <= 0 {
		return domain.UpgradeCostEstimate{Min: money.Zero(), Mid: money.Zero(), Max: money.Zero()}
	}

	mid := money.NewMoneyFromDecimal(e.Rules.AverageCostPerPoint).Mul(decimal.NewFromInt(int64(gap)))
	return domain.UpgradeCostEstimate{
		Min: mid.Mul(e.Rules.EstimateLowFactor),
		Mid: mid,
		Max: mid.Mul(e.Rules.EstimateHighFactor),
	}
}
