package output

import (
	"bytes"
	"fmt"

	"github.com/propcomply/compliance-engine/internal/domain"
)

// ConsoleFormatter provides a concise plain-text summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.ComplianceReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "COMPLIANCE SUMMARY")
	fmt.Fprintln(&buf, "================================")
	if report.Landlord != "" {
		fmt.Fprintf(&buf, "Landlord: %s\n", report.Landlord)
	}
	fmt.Fprintf(&buf, "As at: %s\n", FormatDate(report.GeneratedAt))
	fmt.Fprintf(&buf, "Overall: %s\n", FormatPercentage(report.Overview.OverallScore))
	fmt.Fprintln(&buf)
	for _, p := range report.Overview.Pillars() {
		next := "none"
		if p.NextDeadline != nil && p.DaysUntilDeadline != nil {
			next = fmt.Sprintf("%s (%s)", FormatDate(*p.NextDeadline), FormatDaysUntil(*p.DaysUntilDeadline))
		}
		fmt.Fprintf(&buf, "%s: %s %s [%d/%d] next=%s\n",
			p.Regime.Label(), FormatPercentage(p.Score), StatusLabel(p.Status), p.CompletedItems, p.TotalItems, next)
	}
	fmt.Fprintf(&buf, "MTD: %s qualifying=%s\n", report.MtdStatus.Phase, FormatCurrency(report.MtdStatus.QualifyingIncome))

	rec := AnalyzeReport(report)
	if rec.FocusRegime != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Focus: %s (%s)\n", rec.FocusRegime.Label(), FormatPercentage(rec.FocusScore))
		if rec.NextDeadline != nil {
			fmt.Fprintf(&buf, "Next deadline: %s on %s\n", rec.NextDeadline.Title, FormatDate(rec.NextDeadline.Date))
		}
	}
	return buf.Bytes(), nil
}
