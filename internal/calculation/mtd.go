package calculation

import (
	"fmt"

	"github.com/propcomply/compliance-engine/internal/domain"
	"github.com/propcomply/compliance-engine/internal/regulatory"
	money "github.com/propcomply/compliance-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

// MtdCalculator classifies taxpayers against the phased Making Tax Digital
// mandate and accrues late-payment penalties
type MtdCalculator struct {
	Rules   regulatory.MtdRules
	Penalty regulatory.PenaltyRules
}

// NewMtdCalculator creates an MTD calculator from the reference tables
func NewMtdCalculator(tables *regulatory.Tables) *MtdCalculator {
	return &MtdCalculator{
		Rules:   tables.Mtd,
		Penalty: tables.Penalty,
	}
}

// CalculateMtdStatus returns the mandate phase for the given income. Every input
// maps to exactly one result; tiers are compared with a strict greater-than.
func (mc *MtdCalculator) CalculateMtdStatus(input domain.MtdCalculatorInput) domain.MtdCalculatorResult {
	// Rental income held only through a company is outside the mandate entirely.
	if input.HasLimitedCompany && input.GrossRentalIncome.IsZero() {
		return domain.MtdCalculatorResult{
			QualifyingIncome: money.Zero(),
			Phase:            domain.MtdPhaseNotRequired,
			Deadline:         mc.Rules.LimitedCompany.Deadline,
			Message:          mc.Rules.LimitedCompany.Message,
			IsAffected:       false,
		}
	}

	rental := input.GrossRentalIncome
	if input.IsJointOwnership {
		rental = rental.Half()
	}
	qualifying := rental.Add(input.SelfEmploymentIncome)

	for _, tier := range mc.Rules.Tiers {
		if qualifying.Decimal.GreaterThan(tier.Threshold) {
			return domain.MtdCalculatorResult{
				QualifyingIncome: qualifying,
				Phase:            tier.Phase,
				Deadline:         tier.Deadline,
				Message:          tier.Message,
				IsAffected:       true,
			}
		}
	}

	return domain.MtdCalculatorResult{
		QualifyingIncome: qualifying,
		Phase:            domain.MtdPhaseNotRequired,
		Deadline:         mc.Rules.NotRequired.Deadline,
		Message:          mc.Rules.NotRequired.Message,
		IsAffected:       false,
	}
}

// CalculateLatePenalty accrues the cumulative late-payment penalty. Components
// keep full precision and only the total is rounded to pence.
func (mc *MtdCalculator) CalculateLatePenalty(amountOwed money.Money, daysLate int) domain.PenaltyResult {
	p := mc.Penalty
	total := money.Zero()
	breakdown := []string{}

	if daysLate >= p.FirstPenaltyDays {
		first := amountOwed.Percent(p.FirstPenaltyPercent)
		total = total.Add(first)
		breakdown = append(breakdown, fmt.Sprintf("%s%% penalty after %d days: %s",
			p.FirstPenaltyPercent.String(), p.FirstPenaltyDays, first.Format()))
	}

	if daysLate >= p.SecondPenaltyDays {
		second := amountOwed.Percent(p.SecondPenaltyPercent)
		total = total.Add(second)
		breakdown = append(breakdown, fmt.Sprintf("Further %s%% penalty after %d days: %s",
			p.SecondPenaltyPercent.String(), p.SecondPenaltyDays, second.Format()))
	}

	if extra := daysLate - p.SecondPenaltyDays; extra > 0 {
		accrual := amountOwed.Mul(p.AnnualRate).
			Mul(decimal.NewFromInt(int64(extra))).
			Div(decimal.NewFromInt(int64(p.DaysPerYear)))
		total = total.Add(accrual)
		breakdown = append(breakdown, fmt.Sprintf("Daily penalty at %s%% a year for %d days: %s",
			p.AnnualRate.Shift(2).String(), extra, accrual.Format()))
	}

	return domain.PenaltyResult{
		Penalty:   total.Round(),
		Breakdown: breakdown,
	}
}
