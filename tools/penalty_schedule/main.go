package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/propcomply/compliance-engine/internal/calculation"
	"github.com/propcomply/compliance-engine/pkg/dateutil"
	money "github.com/propcomply/compliance-engine/pkg/decimal"
)

func main() {
	taxYear := flag.Int("year", 2026, "Tax year starting 6 April of this year")
	owed := flag.String("owed", "5000", "Tax owed at the payment deadline (GBP)")
	maxDays := flag.Int("days", 120, "Last day late to print")
	step := flag.Int("step", 5, "Days between rows")
	flag.Parse()

	amount, err := money.NewMoneyFromString(*owed)
	if err != nil {
		log.Fatalf("invalid --owed: %v", err)
	}
	if *step <= 0 {
		log.Fatal("--step must be positive")
	}

	ce := calculation.NewComplianceEngine()

	fmt.Printf("Tax year %s (starts %s)\n", dateutil.TaxYearLabel(*taxYear), dateutil.FormatUK(dateutil.UKTaxYearStart(*taxYear)))
	fmt.Println("Quarterly update deadlines:")
	for i, d := range dateutil.QuarterlyUpdateDeadlines(*taxYear) {
		fmt.Printf("  Q%d  %s\n", i+1, dateutil.FormatUK(d))
	}
	due := dateutil.FinalDeclarationDeadline(*taxYear)
	fmt.Printf("Payment due: %s on %s\n\n", amount.Format(), dateutil.FormatUK(due))

	fmt.Printf("%-6s %-18s %12s\n", "Days", "Paid on", "Penalty")
	for days := 0; days <= *maxDays; days += *step {
		res := ce.Mtd.CalculateLatePenalty(amount, days)
		paid := due.Add(time.Duration(days) * 24 * time.Hour)
		fmt.Printf("%-6d %-18s %12s\n", days, dateutil.FormatUK(paid), res.Penalty.Format())
	}

	final := ce.Mtd.CalculateLatePenalty(amount, *maxDays)
	fmt.Printf("\nBreakdown at %d days:\n", *maxDays)
	for _, line := range final.Breakdown {
		fmt.Printf("  %s\n", line)
	}
}
