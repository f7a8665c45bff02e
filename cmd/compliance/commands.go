package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/propcomply/compliance-engine/internal/calculation"
	"github.com/propcomply/compliance-engine/internal/config"
	"github.com/propcomply/compliance-engine/internal/domain"
	"github.com/propcomply/compliance-engine/internal/output"
	"github.com/propcomply/compliance-engine/pkg/dateutil"
	money "github.com/propcomply/compliance-engine/pkg/decimal"
	"github.com/spf13/cobra"
)

func loadPortfolio(path string) (*domain.Portfolio, error) {
	return config.NewInputParser().LoadFromFile(path)
}

func reportCmd(a *app) *cobra.Command {
	var outputDir string
	cmd := &cobra.Command{
		Use:   "report [portfolio-file]",
		Short: "Build the full compliance report for a portfolio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			portfolio, err := loadPortfolio(args[0])
			if err != nil {
				return err
			}
			report := a.engine.BuildReport(portfolio, a.settings.UpcomingLimit)

			format := a.settings.Format
			if outputDir != "" || format == "all" {
				if outputDir == "" {
					outputDir = "."
				}
				paths, err := output.GenerateReport(report, format, outputDir)
				if err != nil {
					return err
				}
				for _, p := range paths {
					fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", p)
				}
				return nil
			}

			f := output.GetFormatterByName(format)
			if f == nil {
				return output.UnsupportedFormatError(format)
			}
			data, err := f.Format(report)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Write report files to this directory instead of stdout")
	return cmd
}

func deadlinesCmd(a *app) *cobra.Command {
	var upcoming int
	var all bool
	cmd := &cobra.Command{
		Use:   "deadlines [portfolio-file]",
		Short: "List regulatory and certificate deadlines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			portfolio, err := loadPortfolio(args[0])
			if err != nil {
				return err
			}
			now := a.now()
			deadlines := a.engine.Deadlines.GetAllDeadlines(portfolio.Properties, portfolio.Certificates, now)
			if !all {
				limit := a.settings.UpcomingLimit
				if cmd.Flags().Changed("upcoming") {
					limit = upcoming
				}
				deadlines = calculation.Upcoming(deadlines, now, limit)
			}
			writeDeadlines(cmd.OutOrStdout(), deadlines)
			return nil
		},
	}
	cmd.Flags().IntVarP(&upcoming, "upcoming", "n", 0, "Number of upcoming deadlines to show (0 for all upcoming)")
	cmd.Flags().BoolVar(&all, "all", false, "Include deadlines that have already passed")
	return cmd
}

func writeDeadlines(out io.Writer, deadlines []domain.Deadline) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tREGIME\tTITLE\tCRITICAL\tOVERDUE")
	for _, d := range deadlines {
		critical, overdue := "", ""
		if d.IsCritical {
			critical = "yes"
		}
		if d.IsOverdue {
			overdue = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", dateutil.FormatISO(d.Date), d.Regime.Label(), d.Title, critical, overdue)
	}
	w.Flush()
}

func scoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "score [portfolio-file]",
		Short: "Show pillar readiness scores and the weighted overall score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			portfolio, err := loadPortfolio(args[0])
			if err != nil {
				return err
			}
			overview := a.engine.Scores.CalculateOverallCompliance(portfolio.ChecklistItems, a.now())

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PILLAR\tSCORE\tSTATUS\tDONE\tNEXT KEY DATE")
			for _, p := range overview.Pillars() {
				next := "-"
				if p.NextDeadline != nil && p.DaysUntilDeadline != nil {
					next = fmt.Sprintf("%s (%s)", dateutil.FormatISO(*p.NextDeadline), output.FormatDaysUntil(*p.DaysUntilDeadline))
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%s\n", p.Regime.Label(), output.FormatPercentage(p.Score),
					output.StatusLabel(p.Status), p.CompletedItems, p.TotalItems, next)
			}
			fmt.Fprintf(w, "Overall\t%s\t\t\t\n", output.FormatPercentage(overview.OverallScore))
			return w.Flush()
		},
	}
}

func mtdCmd(a *app) *cobra.Command {
	var rental, selfEmployment string
	var joint, limited bool
	cmd := &cobra.Command{
		Use:   "mtd",
		Short: "Classify a taxpayer into a Making Tax Digital phase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := domain.MtdCalculatorInput{IsJointOwnership: joint, HasLimitedCompany: limited}
			var err error
			if input.GrossRentalIncome, err = parseMoneyFlag("rental", rental); err != nil {
				return err
			}
			if input.SelfEmploymentIncome, err = parseMoneyFlag("self-employment", selfEmployment); err != nil {
				return err
			}
			res := a.engine.Mtd.CalculateMtdStatus(input)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Qualifying income: %s\n", output.FormatCurrency(res.QualifyingIncome))
			fmt.Fprintf(out, "Phase:             %s\n", res.Phase)
			if res.Deadline != "" {
				fmt.Fprintf(out, "Start date:        %s\n", res.Deadline)
			}
			fmt.Fprintln(out, res.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&rental, "rental", "0", "Gross rental income for the tax year (GBP)")
	cmd.Flags().StringVar(&selfEmployment, "self-employment", "0", "Self-employment income for the tax year (GBP)")
	cmd.Flags().BoolVar(&joint, "joint", false, "Rental income is jointly owned (half counts)")
	cmd.Flags().BoolVar(&limited, "limited-company", false, "Properties are held in a limited company")
	return cmd
}

func penaltyCmd(a *app) *cobra.Command {
	var owed string
	var daysLate int
	cmd := &cobra.Command{
		Use:   "penalty",
		Short: "Calculate the late payment penalty on an unpaid tax amount",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseMoneyFlag("owed", owed)
			if err != nil {
				return err
			}
			res := a.engine.Mtd.CalculateLatePenalty(amount, daysLate)
			out := cmd.OutOrStdout()
			for _, line := range res.Breakdown {
				fmt.Fprintf(out, "  %s\n", line)
			}
			fmt.Fprintf(out, "Total penalty: %s\n", output.FormatCurrency(res.Penalty))
			return nil
		},
	}
	cmd.Flags().StringVar(&owed, "owed", "0", "Amount of tax owed (GBP)")
	cmd.Flags().IntVar(&daysLate, "days-late", 0, "Days the payment is overdue")
	return cmd
}

func epcCmd(a *app) *cobra.Command {
	var score int
	var budget string
	cmd := &cobra.Command{
		Use:   "epc",
		Short: "Rate an EPC score and rank improvements to reach band C",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if score < 1 || score > 100 {
				return fmt.Errorf("--score must be between 1 and 100, got %d", score)
			}
			var spendCap *money.Money
			if budget != "" {
				b, err := parseMoneyFlag("budget", budget)
				if err != nil {
					return err
				}
				spendCap = &b
			}
			assessment, _ := a.engine.AssessProperty(domain.Property{ID: "cli", EPCScore: &score}, spendCap)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Score %d is band %s\n", assessment.Score, assessment.Rating)
			if assessment.IsCompliant {
				fmt.Fprintln(out, "Meets the band C minimum; no improvements required")
				return nil
			}
			fmt.Fprintf(out, "%d points short of band C\n", assessment.GapToC)
			fmt.Fprintf(out, "Estimated upgrade cost: %s (range %s to %s)\n",
				output.FormatCurrency(assessment.UpgradeCost.Mid), output.FormatCurrency(assessment.UpgradeCost.Min), output.FormatCurrency(assessment.UpgradeCost.Max))

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "#\tIMPROVEMENT\tCOST\tPOINTS\tPER POINT\tEFFECTIVENESS")
			for i, r := range assessment.Recommendations {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", i+1, r.Label, output.FormatCurrency(r.CostMid),
					r.PointsMid.String(), output.FormatCurrency(r.CostPerPoint), r.Effectiveness)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&score, "score", 0, "Current EPC score (1-100)")
	cmd.Flags().StringVar(&budget, "budget", "", "Spend cap in GBP; omit to rank every improvement")
	_ = cmd.MarkFlagRequired("score")
	return cmd
}

func exampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example [output-file]",
		Short: "Generate an example portfolio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			portfolio := config.NewInputParser().CreateExamplePortfolio()
			if err := output.SavePortfolio(portfolio, args[0]); err != nil {
				return fmt.Errorf("failed to save example portfolio: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example portfolio saved to %s\n", args[0])
			return nil
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [portfolio-file]",
		Short: "Validate a portfolio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadPortfolio(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Portfolio file %s is valid\n", args[0])
			return nil
		},
	}
}

func parseMoneyFlag(name, value string) (money.Money, error) {
	m, err := money.NewMoneyFromString(value)
	if err != nil {
		return money.Money{}, fmt.Errorf("--%s: %w", name, err)
	}
	return m, nil
}
