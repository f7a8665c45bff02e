package regulatory

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/propcomply/compliance-engine/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed regulatory.yaml
var embeddedTables []byte

// ErrInvalidTables is returned when reference data fails validation
var ErrInvalidTables = errors.New("invalid regulatory tables")

var (
	defaultOnce   sync.Once
	defaultTables *Tables
)

// Default returns the embedded tables, parsed once. The embedded document is
// part of the build, so a parse failure is a programming error and panics.
func Default() *Tables {
	defaultOnce.Do(func() {
		t, err := Load(embeddedTables)
		if err != nil {
			panic(fmt.Sprintf("embedded regulatory tables: %v", err))
		}
		defaultTables = t
	})
	return defaultTables
}

// Embedded returns the raw embedded YAML document
func Embedded() []byte {
	out := make([]byte, len(embeddedTables))
	copy(out, embeddedTables)
	return out
}

// Load parses and validates a tables document
func Load(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse regulatory tables: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadFile reads tables from path, for overriding the embedded year
func LoadFile(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read regulatory tables file: %w", err)
	}
	return Load(data)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidTables, fmt.Sprintf(format, args...))
}

// Validate checks the structural invariants the calculators rely on
func (t *Tables) Validate() error {
	if err := t.validateMtd(); err != nil {
		return err
	}
	if err := t.validatePenalty(); err != nil {
		return err
	}
	if err := t.validateEPC(); err != nil {
		return err
	}
	if err := t.validateScoring(); err != nil {
		return err
	}
	for _, regime := range domain.Pillars {
		seen := make(map[string]bool)
		for _, e := range t.Calendars.For(regime) {
			if e.ID == "" {
				return invalid("%s calendar entry %q has no id", regime, e.Title)
			}
			if seen[e.ID] {
				return invalid("duplicate %s calendar id %q", regime, e.ID)
			}
			if e.Date.IsZero() {
				return invalid("%s calendar entry %q has no date", regime, e.ID)
			}
			seen[e.ID] = true
		}
	}
	return nil
}

func (t *Tables) validateMtd() error {
	if len(t.Mtd.Tiers) == 0 {
		return invalid("mtd tiers are empty")
	}
	for i, tier := range t.Mtd.Tiers {
		if tier.Phase == "" || tier.Phase == domain.MtdPhaseNotRequired {
			return invalid("mtd tier %d has no mandate phase", i)
		}
		if i > 0 && !tier.Threshold.LessThan(t.Mtd.Tiers[i-1].Threshold) {
			return invalid("mtd tier thresholds must be strictly descending")
		}
	}
	return nil
}

func (t *Tables) validatePenalty() error {
	p := t.Penalty
	if p.FirstPenaltyDays <= 0 || p.SecondPenaltyDays <= p.FirstPenaltyDays {
		return invalid("penalty day thresholds must be positive and ascending")
	}
	if p.DaysPerYear <= 0 {
		return invalid("days_per_year must be positive")
	}
	if p.FirstPenaltyPercent.IsNegative() || p.SecondPenaltyPercent.IsNegative() || p.AnnualRate.IsNegative() {
		return invalid("penalty rates must not be negative")
	}
	return nil
}

func (t *Tables) validateEPC() error {
	e := t.EPC
	if len(e.Bands) == 0 {
		return invalid("epc bands are empty")
	}
	// Bands run best to worst and must tile the score range without gaps.
	for i, b := range e.Bands {
		if b.Min > b.Max {
			return invalid("epc band %s has min above max", b.Rating)
		}
		if i > 0 && e.Bands[i-1].Min != b.Max+1 {
			return invalid("epc bands %s and %s are not contiguous", e.Bands[i-1].Rating, b.Rating)
		}
	}
	if !e.AverageCostPerPoint.IsPositive() {
		return invalid("average_cost_per_point must be positive")
	}
	for _, imp := range e.Improvements {
		if imp.Type == "" {
			return invalid("improvement %q has no type", imp.Label)
		}
		if imp.CostMin.GreaterThan(imp.CostMax) || imp.PointsMin.GreaterThan(imp.PointsMax) {
			return invalid("improvement %s has inverted ranges", imp.Type)
		}
		if !imp.PointsMin.Add(imp.PointsMax).IsPositive() {
			return invalid("improvement %s yields no rating points", imp.Type)
		}
	}
	for i := 1; i < len(e.Effectiveness); i++ {
		if !e.Effectiveness[i].MaxCostPerPoint.GreaterThan(e.Effectiveness[i-1].MaxCostPerPoint) {
			return invalid("effectiveness bands must be ascending")
		}
	}
	return nil
}

func (t *Tables) validateScoring() error {
	if !t.Scoring.Weights.Sum().Equal(decimal.NewFromInt(1)) {
		return invalid("pillar weights sum to %s, want 1", t.Scoring.Weights.Sum())
	}
	s := t.Scoring
	if s.PartialThreshold < 0 || s.ReadyThreshold <= s.PartialThreshold || s.ReadyThreshold > 100 {
		return invalid("readiness thresholds must satisfy 0 <= partial < ready <= 100")
	}
	return nil
}

// LowestBand returns the worst rating band
func (e EPCRules) LowestBand() EPCBand {
	return e.Bands[len(e.Bands)-1]
}
