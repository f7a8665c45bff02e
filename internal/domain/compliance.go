package domain

import (
	"strings"
	"time"

	money "github.com/propcomply/compliance-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

// Regime identifies one of the tracked regulatory regimes (a "pillar").
type Regime string

const (
	RegimeMTD           Regime = "mtd"
	RegimeRentersRights Regime = "renters_rights"
	RegimeEPC           Regime = "epc"

	// RegimeCertificate tags deadlines derived from uploaded certificates. It is
	// not a pillar and never carries a readiness score.
	RegimeCertificate Regime = "certificate"
)

// Pillars lists the scored regimes in report order.
var Pillars = []Regime{RegimeMTD, RegimeRentersRights, RegimeEPC}

// Label returns the display name of the regime
func (r Regime) Label() string {
	switch r {
	case RegimeMTD:
		return "Making Tax Digital"
	case RegimeRentersRights:
		return "Renters' Rights"
	case RegimeEPC:
		return "EPC"
	case RegimeCertificate:
		return "Certificates"
	default:
		return string(r)
	}
}

// Property is a rented dwelling owned by a landlord
type Property struct {
	ID            string `yaml:"id" json:"id"`
	OwnerID       string `yaml:"owner_id,omitempty" json:"owner_id,omitempty"`
	AddressLine1  string `yaml:"address_line_1" json:"address_line_1"`
	AddressLine2  string `yaml:"address_line_2,omitempty" json:"address_line_2,omitempty"`
	City          string `yaml:"city,omitempty" json:"city,omitempty"`
	Postcode      string `yaml:"postcode,omitempty" json:"postcode,omitempty"`
	OwnershipType string `yaml:"ownership_type,omitempty" json:"ownership_type,omitempty"` // sole|joint|limited_company

	// Current EPC score (1-100) if an assessment exists
	EPCScore *int `yaml:"epc_score,omitempty" json:"epc_score,omitempty"`
}

// CertificateType names the kind of safety or energy certificate, e.g. gas_safety
type CertificateType string

const (
	CertificateGasSafety  CertificateType = "gas_safety"
	CertificateEICR       CertificateType = "eicr"
	CertificateEPC        CertificateType = "epc"
	CertificateSmokeAlarm CertificateType = "smoke_alarm"
	CertificateLegionella CertificateType = "legionella_risk_assessment"
)

// DisplayName normalises word separators to spaces, e.g. gas_safety -> gas safety
func (c CertificateType) DisplayName() string {
	return strings.NewReplacer("_", " ", "-", " ").Replace(string(c))
}

// Certificate is an uploaded compliance document for a property. Its status is
// derived on every read and never stored.
type Certificate struct {
	ID         string          `yaml:"id" json:"id"`
	PropertyID string          `yaml:"property_id" json:"property_id"`
	Type       CertificateType `yaml:"type" json:"type"`
	IssueDate  time.Time       `yaml:"issue_date" json:"issue_date"`
	ExpiryDate *time.Time      `yaml:"expiry_date,omitempty" json:"expiry_date,omitempty"`
	Reference  string          `yaml:"reference,omitempty" json:"reference,omitempty"`
}

// CertificateStatus is the read-time state of a certificate
type CertificateStatus string

const (
	CertificateValid        CertificateStatus = "valid"
	CertificateExpiringSoon CertificateStatus = "expiring_soon"
	CertificateExpired      CertificateStatus = "expired"
	CertificateNoExpiry     CertificateStatus = "no_expiry"
)

// CertificateState pairs a certificate with its status at a given instant
type CertificateState struct {
	CertificateID   string            `json:"certificate_id"`
	PropertyID      string            `json:"property_id"`
	Type            CertificateType   `json:"type"`
	Status          CertificateStatus `json:"status"`
	ExpiryDate      *time.Time        `json:"expiry_date,omitempty"`
	DaysUntilExpiry *int              `json:"days_until_expiry,omitempty"`
}

// Priority ranks checklist items within a regime
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities, lowest value first. Unknown priorities sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// ChecklistItem is one action a landlord must complete for a regime
type ChecklistItem struct {
	ID          string     `yaml:"id" json:"id"`
	Regime      Regime     `yaml:"regime" json:"regime"`
	PropertyID  string     `yaml:"property_id,omitempty" json:"property_id,omitempty"`
	Title       string     `yaml:"title" json:"title"`
	IsCompleted bool       `yaml:"is_completed" json:"is_completed"`
	CompletedAt *time.Time `yaml:"completed_at,omitempty" json:"completed_at,omitempty"`
	Priority    Priority   `yaml:"priority,omitempty" json:"priority,omitempty"`
}

// WithCompletion returns a copy of the item with its completion flag set. The
// completion timestamp is stamped only on the false -> true transition and
// cleared when the item is reopened.
func (c ChecklistItem) WithCompletion(done bool, now time.Time) ChecklistItem {
	out := c
	switch {
	case done && !c.IsCompleted:
		at := now
		out.CompletedAt = &at
	case !done:
		out.CompletedAt = nil
	}
	out.IsCompleted = done
	return out
}

// Deadline is a dated obligation in the compliance timeline
type Deadline struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Regime      Regime    `json:"regime"`
	Description string    `json:"description"`
	IsCritical  bool      `json:"is_critical"`
	IsOverdue   bool      `json:"is_overdue"`
}

// MtdPhase is the Making Tax Digital mandate tier a taxpayer falls into
type MtdPhase string

const (
	MtdPhaseApril2026   MtdPhase = "april_2026"
	MtdPhaseApril2027   MtdPhase = "april_2027"
	MtdPhaseApril2028   MtdPhase = "april_2028"
	MtdPhaseNotRequired MtdPhase = "not_required"
)

// MtdCalculatorInput describes a taxpayer's income for MTD classification
type MtdCalculatorInput struct {
	GrossRentalIncome    money.Money `yaml:"gross_rental_income" json:"gross_rental_income"`
	SelfEmploymentIncome money.Money `yaml:"self_employment_income" json:"self_employment_income"`
	IsJointOwnership     bool        `yaml:"is_joint_ownership" json:"is_joint_ownership"`
	HasLimitedCompany    bool        `yaml:"has_limited_company" json:"has_limited_company"`
}

// MtdCalculatorResult is the MTD classification outcome
type MtdCalculatorResult struct {
	QualifyingIncome money.Money `json:"qualifying_income"`
	Phase            MtdPhase    `json:"phase"`
	Deadline         string      `json:"deadline"`
	Message          string      `json:"message"`
	IsAffected       bool        `json:"is_affected"`
}

// PenaltyResult is the accrued late-payment penalty with its itemised breakdown
type PenaltyResult struct {
	Penalty   money.Money `json:"penalty"`
	Breakdown []string    `json:"breakdown"`
}

// EpcRating is a letter band A-G
type EpcRating string

// IsCompliant reports whether the band meets the minimum standard (A, B or C)
func (r EpcRating) IsCompliant() bool {
	return r == "A" || r == "B" || r == "C"
}

// ImprovementType identifies an energy-efficiency measure in the catalogue
type ImprovementType string

// ImprovementRecommendation is a ranked remediation measure
type ImprovementRecommendation struct {
	Type          ImprovementType `json:"type"`
	Label         string          `json:"label"`
	Description   string          `json:"description"`
	CostMid       money.Money     `json:"cost_mid"`
	PointsMid     decimal.Decimal `json:"points_mid"`
	CostPerPoint  money.Money     `json:"cost_per_point"`
	Effectiveness string          `json:"effectiveness"`
}

// UpgradeCostEstimate is an asymmetric cost band for reaching EPC C
type UpgradeCostEstimate struct {
	Min money.Money `json:"min"`
	Mid money.Money `json:"mid"`
	Max money.Money `json:"max"`
}

// ReadinessStatus is derived solely from a pillar score
type ReadinessStatus string

const (
	StatusReady    ReadinessStatus = "ready"
	StatusPartial  ReadinessStatus = "partial"
	StatusNotReady ReadinessStatus = "not_ready"
)

// PillarScore is the readiness of a single regime
type PillarScore struct {
	Regime            Regime          `json:"regime"`
	Score             int             `json:"score"`
	Status            ReadinessStatus `json:"status"`
	TotalItems        int             `json:"total_items"`
	CompletedItems    int             `json:"completed_items"`
	NextDeadline      *time.Time      `json:"next_deadline"`
	DaysUntilDeadline *int            `json:"days_until_deadline"`
}

// ComplianceOverview is the weighted readiness across all pillars
type ComplianceOverview struct {
	OverallScore  int         `json:"overall_score"`
	MTD           PillarScore `json:"mtd"`
	RentersRights PillarScore `json:"renters_rights"`
	EPC           PillarScore `json:"epc"`
}

// Pillars returns the pillar scores in report order
func (o ComplianceOverview) Pillars() []PillarScore {
	return []PillarScore{o.MTD, o.RentersRights, o.EPC}
}
