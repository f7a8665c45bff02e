package domain

import (
	"time"

	money "github.com/propcomply/compliance-engine/pkg/decimal"
)

// Portfolio is the full set of records a landlord supplies for a compliance run
type Portfolio struct {
	Landlord       string             `yaml:"landlord" json:"landlord"`
	Mtd            MtdCalculatorInput `yaml:"mtd" json:"mtd"`
	Properties     []Property         `yaml:"properties" json:"properties"`
	Certificates   []Certificate      `yaml:"certificates,omitempty" json:"certificates,omitempty"`
	ChecklistItems []ChecklistItem    `yaml:"checklist_items,omitempty" json:"checklist_items,omitempty"`

	// Optional spend cap applied when ranking EPC improvements per property
	EPCBudget *money.Money `yaml:"epc_budget,omitempty" json:"epc_budget,omitempty"`

	// Optional what-if query for a late tax payment
	LatePayment *LatePaymentQuery `yaml:"late_payment,omitempty" json:"late_payment,omitempty"`
}

// LatePaymentQuery asks what penalty a late payment would attract
type LatePaymentQuery struct {
	AmountOwed money.Money `yaml:"amount_owed" json:"amount_owed"`
	DaysLate   int         `yaml:"days_late" json:"days_late"`
}

// FindProperty returns the property with the given id, if present
func FindProperty(properties []Property, id string) (Property, bool) {
	for _, p := range properties {
		if p.ID == id {
			return p, true
		}
	}
	return Property{}, false
}

// PropertyEPCAssessment is the EPC position of a single property
type PropertyEPCAssessment struct {
	PropertyID      string                      `json:"property_id"`
	Address         string                      `json:"address"`
	Score           int                         `json:"score"`
	Rating          EpcRating                   `json:"rating"`
	IsCompliant     bool                        `json:"is_compliant"`
	GapToC          int                         `json:"gap_to_c"`
	Recommendations []ImprovementRecommendation `json:"recommendations"`
	UpgradeCost     UpgradeCostEstimate         `json:"upgrade_cost"`
}

// ComplianceReport gathers every calculator output for one portfolio at one instant
type ComplianceReport struct {
	GeneratedAt         time.Time               `json:"generated_at"`
	Landlord            string                  `json:"landlord"`
	TablesVersion       string                  `json:"tables_version"`
	Overview            ComplianceOverview      `json:"overview"`
	MtdStatus           MtdCalculatorResult     `json:"mtd_status"`
	LatePenalty         *PenaltyResult          `json:"late_penalty,omitempty"`
	Deadlines           []Deadline              `json:"deadlines"`
	Upcoming            []Deadline              `json:"upcoming"`
	EPCAssessments      []PropertyEPCAssessment `json:"epc_assessments"`
	CertificateStatuses []CertificateState      `json:"certificate_statuses"`
	Outstanding         []ChecklistItem         `json:"outstanding"`
	Notes               []string                `json:"notes"`
}
