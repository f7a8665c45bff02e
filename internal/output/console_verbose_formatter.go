package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/propcomply/compliance-engine/internal/domain"
)

var (
	colorPrimary = lipgloss.Color("#2563EB")
	colorSuccess = lipgloss.Color("#16A34A")
	colorWarning = lipgloss.Color("#D97706")
	colorDanger  = lipgloss.Color("#DC2626")
	colorMuted   = lipgloss.Color("#6B7280")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	overdueStyle = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)
)

func statusStyle(s domain.ReadinessStatus) lipgloss.Style {
	switch s {
	case domain.StatusReady:
		return lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	case domain.StatusPartial:
		return lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
	}
}

// scoreBar renders a fixed-width bar for a 0-100 score.
func scoreBar(score, width int) string {
	filled := score * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// ConsoleVerboseFormatter renders the detailed, styled console report.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.ComplianceReport) ([]byte, error) {
	var buf bytes.Buffer

	header := fmt.Sprintf("%s\n%s", titleStyle.Render("LANDLORD COMPLIANCE REPORT"),
		mutedStyle.Render(fmt.Sprintf("%s | %s | tables %s", report.Landlord, FormatDate(report.GeneratedAt), report.TablesVersion)))
	fmt.Fprintln(&buf, boxStyle.Render(header))
	fmt.Fprintln(&buf)

	writeReadiness(&buf, report)
	writeMtd(&buf, report)
	writeDeadlines(&buf, report)
	writeCertificates(&buf, report)
	writeEPC(&buf, report)
	writeOutstanding(&buf, report)

	fmt.Fprintln(&buf, headingStyle.Render("NOTES"))
	for _, n := range reportNotes(report) {
		fmt.Fprintf(&buf, "• %s\n", n)
	}

	rec := AnalyzeReport(report)
	if rec.FocusRegime != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, headingStyle.Render("SUMMARY & RECOMMENDATIONS"))
		fmt.Fprintf(&buf, "Weakest pillar: %s (%s)\n", rec.FocusRegime.Label(), FormatPercentage(rec.FocusScore))
		if rec.TopAction != "" {
			fmt.Fprintf(&buf, "Start with: %s\n", rec.TopAction)
		}
		if rec.OverdueCount > 0 {
			fmt.Fprintln(&buf, overdueStyle.Render(fmt.Sprintf("%d certificate(s) overdue for renewal", rec.OverdueCount)))
		}
		if rec.NonCompliantEPC > 0 {
			fmt.Fprintf(&buf, "%d propert(ies) below EPC band C\n", rec.NonCompliantEPC)
		}
	}

	return buf.Bytes(), nil
}

func writeReadiness(buf *bytes.Buffer, r *domain.ComplianceReport) {
	fmt.Fprintln(buf, headingStyle.Render("READINESS"))
	fmt.Fprintf(buf, "Overall score: %s %s\n", scoreBar(r.Overview.OverallScore, 20), FormatPercentage(r.Overview.OverallScore))
	for _, p := range r.Overview.Pillars() {
		fmt.Fprintf(buf, "  %-18s %s %4s  %s  (%d of %d done)\n",
			p.Regime.Label(), scoreBar(p.Score, 20), FormatPercentage(p.Score),
			statusStyle(p.Status).Render(StatusLabel(p.Status)), p.CompletedItems, p.TotalItems)
		if p.NextDeadline != nil && p.DaysUntilDeadline != nil {
			fmt.Fprintf(buf, "  %-18s next: %s (%s)\n", "", FormatDate(*p.NextDeadline), FormatDaysUntil(*p.DaysUntilDeadline))
		}
	}
	fmt.Fprintln(buf)
}

func writeMtd(buf *bytes.Buffer, r *domain.ComplianceReport) {
	fmt.Fprintln(buf, headingStyle.Render("MAKING TAX DIGITAL"))
	fmt.Fprintf(buf, "  Qualifying income: %s\n", FormatCurrency(r.MtdStatus.QualifyingIncome))
	fmt.Fprintf(buf, "  Phase:             %s\n", r.MtdStatus.Phase)
	if r.MtdStatus.Deadline != "" {
		fmt.Fprintf(buf, "  Start date:        %s\n", r.MtdStatus.Deadline)
	}
	fmt.Fprintf(buf, "  %s\n", r.MtdStatus.Message)
	if r.LatePenalty != nil {
		fmt.Fprintf(buf, "  Late payment penalty: %s\n", FormatCurrency(r.LatePenalty.Penalty))
		for _, line := range r.LatePenalty.Breakdown {
			fmt.Fprintf(buf, "    - %s\n", line)
		}
	}
	fmt.Fprintln(buf)
}

func writeDeadlines(buf *bytes.Buffer, r *domain.ComplianceReport) {
	fmt.Fprintln(buf, headingStyle.Render("UPCOMING DEADLINES"))
	if len(r.Upcoming) == 0 {
		fmt.Fprintln(buf, mutedStyle.Render("  No upcoming deadlines"))
	}
	for _, d := range r.Upcoming {
		marker := " "
		if d.IsCritical {
			marker = "!"
		}
		fmt.Fprintf(buf, "  %s %-17s %-14s %s\n", marker, FormatDate(d.Date), d.Regime.Label(), d.Title)
	}
	overdue := 0
	for _, d := range r.Deadlines {
		if d.IsOverdue {
			overdue++
		}
	}
	if overdue > 0 {
		fmt.Fprintln(buf, mutedStyle.Render(fmt.Sprintf("  %d earlier deadline(s) have passed", overdue)))
	}
	fmt.Fprintln(buf)
}

func writeCertificates(buf *bytes.Buffer, r *domain.ComplianceReport) {
	if len(r.CertificateStatuses) == 0 {
		return
	}
	fmt.Fprintln(buf, headingStyle.Render("CERTIFICATES"))
	for _, s := range r.CertificateStatuses {
		line := fmt.Sprintf("  %-28s %-13s", s.Type.DisplayName(), s.Status)
		if s.ExpiryDate != nil && s.DaysUntilExpiry != nil {
			line += fmt.Sprintf(" %s (%s)", FormatDate(*s.ExpiryDate), FormatDaysUntil(*s.DaysUntilExpiry))
		}
		if s.Status == domain.CertificateExpired {
			line = overdueStyle.Render(line)
		}
		fmt.Fprintln(buf, line)
	}
	fmt.Fprintln(buf)
}

func writeEPC(buf *bytes.Buffer, r *domain.ComplianceReport) {
	if len(r.EPCAssessments) == 0 {
		return
	}
	fmt.Fprintln(buf, headingStyle.Render("EPC"))
	for _, a := range r.EPCAssessments {
		fmt.Fprintf(buf, "  %s: score %d, rating %s", a.Address, a.Score, a.Rating)
		if a.IsCompliant {
			fmt.Fprintln(buf, " (meets band C)")
			continue
		}
		fmt.Fprintf(buf, ", %d points to band C\n", a.GapToC)
		fmt.Fprintf(buf, "    Estimated cost: %s (range %s to %s)\n",
			FormatCurrency(a.UpgradeCost.Mid), FormatCurrency(a.UpgradeCost.Min), FormatCurrency(a.UpgradeCost.Max))
		for i, rec := range a.Recommendations {
			fmt.Fprintf(buf, "    %2d. %-26s %10s  %s/point  %s\n",
				i+1, rec.Label, FormatCurrency(rec.CostMid), FormatCurrency(rec.CostPerPoint), rec.Effectiveness)
		}
	}
	fmt.Fprintln(buf)
}

func writeOutstanding(buf *bytes.Buffer, r *domain.ComplianceReport) {
	if len(r.Outstanding) == 0 {
		return
	}
	fmt.Fprintln(buf, headingStyle.Render("OUTSTANDING ACTIONS"))
	for _, item := range r.Outstanding {
		fmt.Fprintf(buf, "  [%s] %-6s %s\n", item.Regime.Label(), item.Priority, item.Title)
	}
	fmt.Fprintln(buf)
}
