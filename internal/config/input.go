package config

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/propcomply/compliance-engine/internal/domain"
	"github.com/propcomply/compliance-engine/pkg/dateutil"
	money "github.com/propcomply/compliance-engine/pkg/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of portfolio files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a portfolio from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Portfolio, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a portfolio document. Records without an id are
// given a random one so deadlines and statuses can reference them.
func (ip *InputParser) Parse(data []byte) (*domain.Portfolio, error) {
	var portfolio domain.Portfolio
	if err := yaml.Unmarshal(data, &portfolio); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.AssignIDs(&portfolio)

	if err := ip.ValidatePortfolio(&portfolio); err != nil {
		return nil, fmt.Errorf("portfolio validation failed: %w", err)
	}

	return &portfolio, nil
}

// AssignIDs fills in missing record identifiers
func (ip *InputParser) AssignIDs(p *domain.Portfolio) {
	for i := range p.Properties {
		if p.Properties[i].ID == "" {
			p.Properties[i].ID = uuid.New().String()
		}
	}
	for i := range p.Certificates {
		if p.Certificates[i].ID == "" {
			p.Certificates[i].ID = uuid.New().String()
		}
	}
	for i := range p.ChecklistItems {
		if p.ChecklistItems[i].ID == "" {
			p.ChecklistItems[i].ID = uuid.New().String()
		}
	}
}

// ValidatePortfolio checks the fields the engine assumes are present
func (ip *InputParser) ValidatePortfolio(p *domain.Portfolio) error {
	if len(p.Properties) == 0 {
		return fmt.Errorf("no properties provided")
	}

	seen := make(map[string]bool, len(p.Properties))
	for i, prop := range p.Properties {
		if err := ip.validateProperty(&prop); err != nil {
			return fmt.Errorf("property %d validation failed: %w", i, err)
		}
		if seen[prop.ID] {
			return fmt.Errorf("duplicate property id %q", prop.ID)
		}
		seen[prop.ID] = true
	}

	for i, cert := range p.Certificates {
		if err := ip.validateCertificate(&cert); err != nil {
			return fmt.Errorf("certificate %d validation failed: %w", i, err)
		}
	}

	for i, item := range p.ChecklistItems {
		if err := ip.validateChecklistItem(&item); err != nil {
			return fmt.Errorf("checklist item %d validation failed: %w", i, err)
		}
	}

	if p.EPCBudget != nil && p.EPCBudget.LessThan(money.Zero()) {
		return fmt.Errorf("EPC budget cannot be negative")
	}

	if p.LatePayment != nil && p.LatePayment.AmountOwed.LessThan(money.Zero()) {
		return fmt.Errorf("late payment amount owed cannot be negative")
	}

	return nil
}

// validateProperty validates a single property
func (ip *InputParser) validateProperty(p *domain.Property) error {
	if p.AddressLine1 == "" {
		return fmt.Errorf("address line 1 is required")
	}
	switch p.OwnershipType {
	case "", "sole", "joint", "limited_company":
	default:
		return fmt.Errorf("ownership type must be 'sole', 'joint' or 'limited_company'")
	}
	if p.EPCScore != nil && (*p.EPCScore < 1 || *p.EPCScore > 100) {
		return fmt.Errorf("EPC score must be between 1 and 100")
	}
	return nil
}

// validateCertificate validates a single certificate
func (ip *InputParser) validateCertificate(c *domain.Certificate) error {
	if c.PropertyID == "" {
		return fmt.Errorf("property id is required")
	}
	if c.Type == "" {
		return fmt.Errorf("certificate type is required")
	}
	if c.IssueDate.IsZero() {
		return fmt.Errorf("issue date is required")
	}
	if c.ExpiryDate != nil && c.ExpiryDate.Before(c.IssueDate) {
		return fmt.Errorf("expiry date cannot be before issue date")
	}
	return nil
}

// validateChecklistItem validates a single checklist item
func (ip *InputParser) validateChecklistItem(c *domain.ChecklistItem) error {
	known := false
	for _, r := range domain.Pillars {
		if c.Regime == r {
			known = true
		}
	}
	if !known {
		return fmt.Errorf("regime must be 'mtd', 'renters_rights' or 'epc', got %q", c.Regime)
	}
	if c.Title == "" {
		return fmt.Errorf("title is required")
	}
	switch c.Priority {
	case "", domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow:
	default:
		return fmt.Errorf("priority must be 'high', 'medium' or 'low'")
	}
	if c.CompletedAt != nil && !c.IsCompleted {
		return fmt.Errorf("completed_at set on an incomplete item")
	}
	return nil
}

// CreateExamplePortfolio creates an example portfolio
func (ip *InputParser) CreateExamplePortfolio() *domain.Portfolio {
	epc62, epc74 := 62, 74
	gasExpiry := dateutil.Date(2026, time.November, 14)
	eicrExpiry := dateutil.Date(2029, time.May, 20)
	completed := dateutil.Date(2026, time.January, 12)
	budget := money.NewMoneyFromInt(2500)

	return &domain.Portfolio{
		Landlord: "Example Landlord",
		Mtd: domain.MtdCalculatorInput{
			GrossRentalIncome:    money.NewMoneyFromInt(38500),
			SelfEmploymentIncome: money.NewMoneyFromInt(9000),
		},
		Properties: []domain.Property{
			{
				ID:            "prop-station-road",
				AddressLine1:  "12 Station Road",
				City:          "Leeds",
				Postcode:      "LS1 4AB",
				OwnershipType: "sole",
				EPCScore:      &epc62,
			},
			{
				ID:            "prop-quay-street",
				AddressLine1:  "3 Quay Street",
				City:          "Bristol",
				Postcode:      "BS1 5TX",
				OwnershipType: "sole",
				EPCScore:      &epc74,
			},
		},
		Certificates: []domain.Certificate{
			{
				ID:         "cert-gas-station-road",
				PropertyID: "prop-station-road",
				Type:       domain.CertificateGasSafety,
				IssueDate:  dateutil.Date(2025, time.November, 14),
				ExpiryDate: &gasExpiry,
			},
			{
				ID:         "cert-eicr-quay-street",
				PropertyID: "prop-quay-street",
				Type:       domain.CertificateEICR,
				IssueDate:  dateutil.Date(2024, time.May, 20),
				ExpiryDate: &eicrExpiry,
			},
		},
		ChecklistItems: []domain.ChecklistItem{
			{ID: "mtd-software", Regime: domain.RegimeMTD, Title: "Choose HMRC-recognised software", IsCompleted: true, CompletedAt: &completed, Priority: domain.PriorityHigh},
			{ID: "mtd-records", Regime: domain.RegimeMTD, Title: "Move rental records to digital format", Priority: domain.PriorityHigh},
			{ID: "mtd-agent", Regime: domain.RegimeMTD, Title: "Confirm agent authorisation", Priority: domain.PriorityLow},
			{ID: "rra-info-sheet", Regime: domain.RegimeRentersRights, Title: "Send the information sheet to existing tenants", Priority: domain.PriorityHigh},
			{ID: "rra-tenancy-terms", Regime: domain.RegimeRentersRights, Title: "Review tenancy agreements for periodic terms", Priority: domain.PriorityMedium},
			{ID: "epc-survey", Regime: domain.RegimeEPC, PropertyID: "prop-station-road", Title: "Book an EPC reassessment", Priority: domain.PriorityMedium},
		},
		EPCBudget: &budget,
	}
}
