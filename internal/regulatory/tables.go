// Package regulatory holds the versioned reference tables every calculator reads:
// MTD income tiers, late-payment penalty rates, EPC bands and improvement
// catalogue, hand-authored deadline calendars and pillar scoring weights.
//
// Tables are parsed once from an embedded YAML document and must be treated as
// read-only by callers.
package regulatory

import (
	"time"

	"github.com/propcomply/compliance-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// Tables is the complete set of regulatory reference data
type Tables struct {
	Metadata  Metadata       `yaml:"metadata" json:"metadata"`
	Mtd       MtdRules       `yaml:"mtd" json:"mtd"`
	Penalty   PenaltyRules   `yaml:"late_payment_penalty" json:"late_payment_penalty"`
	EPC       EPCRules       `yaml:"epc" json:"epc"`
	Calendars Calendars      `yaml:"calendars" json:"calendars"`
	KeyDates  PillarKeyDates `yaml:"pillar_key_dates" json:"pillar_key_dates"`
	Scoring   ScoringRules   `yaml:"scoring" json:"scoring"`
}

// Metadata describes which regulatory year the tables represent
type Metadata struct {
	Version     string `yaml:"version" json:"version"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
}

// MtdTier is one income band of the phased MTD mandate
type MtdTier struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"` // qualifying income must be strictly greater
	Phase     domain.MtdPhase `yaml:"phase" json:"phase"`
	Deadline  string          `yaml:"deadline" json:"deadline"`
	Message   string          `yaml:"message" json:"message"`
}

// MtdOutcome is the fixed text for an unaffected taxpayer
type MtdOutcome struct {
	Deadline string `yaml:"deadline" json:"deadline"`
	Message  string `yaml:"message" json:"message"`
}

// MtdRules contains the phased mandate tiers
type MtdRules struct {
	Tiers          []MtdTier  `yaml:"tiers" json:"tiers"`
	NotRequired    MtdOutcome `yaml:"not_required" json:"not_required"`
	LimitedCompany MtdOutcome `yaml:"limited_company" json:"limited_company"`
}

// PenaltyRules contains the late-payment penalty schedule
type PenaltyRules struct {
	FirstPenaltyDays     int             `yaml:"first_penalty_days" json:"first_penalty_days"`
	FirstPenaltyPercent  decimal.Decimal `yaml:"first_penalty_percent" json:"first_penalty_percent"`
	SecondPenaltyDays    int             `yaml:"second_penalty_days" json:"second_penalty_days"`
	SecondPenaltyPercent decimal.Decimal `yaml:"second_penalty_percent" json:"second_penalty_percent"`
	AnnualRate           decimal.Decimal `yaml:"annual_rate" json:"annual_rate"`
	DaysPerYear          int             `yaml:"days_per_year" json:"days_per_year"`
}

// EPCBand maps a closed score range to a letter rating
type EPCBand struct {
	Rating domain.EpcRating `yaml:"rating" json:"rating"`
	Min    int              `yaml:"min" json:"min"`
	Max    int              `yaml:"max" json:"max"`
}

// EffectivenessBand labels improvements whose cost per point is at most MaxCostPerPoint
type EffectivenessBand struct {
	MaxCostPerPoint decimal.Decimal `yaml:"max_cost_per_point" json:"max_cost_per_point"`
	Label           string          `yaml:"label" json:"label"`
}

// Improvement is a catalogue entry with cost and rating-point ranges
type Improvement struct {
	Type        domain.ImprovementType `yaml:"type" json:"type"`
	Label       string                 `yaml:"label" json:"label"`
	Description string                 `yaml:"description" json:"description"`
	CostMin     decimal.Decimal        `yaml:"cost_min" json:"cost_min"`
	CostMax     decimal.Decimal        `yaml:"cost_max" json:"cost_max"`
	PointsMin   decimal.Decimal        `yaml:"points_min" json:"points_min"`
	PointsMax   decimal.Decimal        `yaml:"points_max" json:"points_max"`
}

// EPCRules contains the rating bands and remediation catalogue
type EPCRules struct {
	MinimumCompliantScore int                 `yaml:"minimum_compliant_score" json:"minimum_compliant_score"`
	Bands                 []EPCBand           `yaml:"bands" json:"bands"`
	AverageCostPerPoint   decimal.Decimal     `yaml:"average_cost_per_point" json:"average_cost_per_point"`
	EstimateLowFactor     decimal.Decimal     `yaml:"estimate_low_factor" json:"estimate_low_factor"`
	EstimateHighFactor    decimal.Decimal     `yaml:"estimate_high_factor" json:"estimate_high_factor"`
	Effectiveness         []EffectivenessBand `yaml:"effectiveness" json:"effectiveness"`
	EffectivenessFallback string              `yaml:"effectiveness_fallback" json:"effectiveness_fallback"`
	Improvements          []Improvement       `yaml:"improvements" json:"improvements"`
}

// CalendarEntry is one hand-authored regulatory date
type CalendarEntry struct {
	ID          string    `yaml:"id" json:"id"`
	Title       string    `yaml:"title" json:"title"`
	Date        time.Time `yaml:"date" json:"date"`
	Description string    `yaml:"description" json:"description"`
	Critical    bool      `yaml:"critical" json:"critical"`
}

// Calendars holds the deadline calendar of each regime
type Calendars struct {
	MTD           []CalendarEntry `yaml:"mtd" json:"mtd"`
	RentersRights []CalendarEntry `yaml:"renters_rights" json:"renters_rights"`
	EPC           []CalendarEntry `yaml:"epc" json:"epc"`
}

// For returns the calendar of a regime; nil for unknown regimes
func (c Calendars) For(regime domain.Regime) []CalendarEntry {
	switch regime {
	case domain.RegimeMTD:
		return c.MTD
	case domain.RegimeRentersRights:
		return c.RentersRights
	case domain.RegimeEPC:
		return c.EPC
	default:
		return nil
	}
}

// PillarKeyDates are the headline dates used for each pillar's next deadline
type PillarKeyDates struct {
	MTD           []time.Time `yaml:"mtd" json:"mtd"`
	RentersRights []time.Time `yaml:"renters_rights" json:"renters_rights"`
	EPC           []time.Time `yaml:"epc" json:"epc"`
}

// For returns the key dates of a regime; nil for unknown regimes
func (k PillarKeyDates) For(regime domain.Regime) []time.Time {
	switch regime {
	case domain.RegimeMTD:
		return k.MTD
	case domain.RegimeRentersRights:
		return k.RentersRights
	case domain.RegimeEPC:
		return k.EPC
	default:
		return nil
	}
}

// PillarWeights are the fixed contributions of each pillar to the overall score
type PillarWeights struct {
	MTD           decimal.Decimal `yaml:"mtd" json:"mtd"`
	RentersRights decimal.Decimal `yaml:"renters_rights" json:"renters_rights"`
	EPC           decimal.Decimal `yaml:"epc" json:"epc"`
}

// Sum adds the three weights
func (w PillarWeights) Sum() decimal.Decimal {
	return w.MTD.Add(w.RentersRights).Add(w.EPC)
}

// ScoringRules contains pillar weighting and readiness thresholds
type ScoringRules struct {
	Weights          PillarWeights `yaml:"weights" json:"weights"`
	ReadyThreshold   int           `yaml:"ready_threshold" json:"ready_threshold"`
	PartialThreshold int           `yaml:"partial_threshold" json:"partial_threshold"`
}
