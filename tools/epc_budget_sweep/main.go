package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/propcomply/compliance-engine/internal/calculation"
	"github.com/propcomply/compliance-engine/internal/regulatory"
	money "github.com/propcomply/compliance-engine/pkg/decimal"
)

func main() {
	score := flag.Int("score", 55, "Current EPC score")
	maxBudget := flag.Int64("max", 5000, "Largest budget to try (GBP)")
	step := flag.Int64("step", 250, "Budget increment (GBP)")
	tablesFile := flag.String("regulatory", "", "Regulatory tables file (defaults to the built-in tables)")
	flag.Parse()

	if *step <= 0 {
		log.Fatal("--step must be positive")
	}

	tables := regulatory.Default()
	if *tablesFile != "" {
		var err error
		if tables, err = regulatory.LoadFile(*tablesFile); err != nil {
			log.Fatal(err)
		}
	}
	epc := calculation.NewEpcEstimator(tables)

	fmt.Printf("Score %d (band %s), %d points to band C\n", *score, epc.GetRatingForScore(*score), epc.GetGapToC(*score))
	est := epc.EstimateTotalUpgradeCost(*score)
	fmt.Printf("Average-cost estimate: %s (%s to %s)\n\n", est.Mid.Format(), est.Min.Format(), est.Max.Format())

	for b := int64(0); b <= *maxBudget; b += *step {
		budget := money.NewMoneyFromInt(b)
		recs := epc.GetRecommendedImprovements(*score, &budget)
		spent := money.Zero()
		names := make([]string, 0, len(recs))
		for _, r := range recs {
			spent = spent.Add(r.CostMid)
			names = append(names, string(r.Type))
		}
		fmt.Printf("%10s  spent %10s  %s\n", budget.Format(), spent.Format(), strings.Join(names, ", "))
	}
}
