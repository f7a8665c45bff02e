package output

import (
	"testing"

	"github.com/propcomply/compliance-engine/internal/domain"
)

func TestAnalyzeReport_PicksWeakestPillar(t *testing.T) {
	rec := AnalyzeReport(buildTestReport())
	if rec.FocusRegime != domain.RegimeRentersRights {
		t.Fatalf("expected renters_rights, got %s", rec.FocusRegime)
	}
	if rec.FocusScore != 0 {
		t.Fatalf("expected focus score 0, got %d", rec.FocusScore)
	}
	if rec.TopAction != "Send the information sheet" {
		t.Fatalf("unexpected top action %q", rec.TopAction)
	}
	if rec.NextDeadline == nil || rec.NextDeadline.ID != "mtd-start" {
		t.Fatalf("expected the first upcoming deadline, got %+v", rec.NextDeadline)
	}
	if rec.OverdueCount != 1 {
		t.Fatalf("expected 1 overdue certificate, got %d", rec.OverdueCount)
	}
	if rec.NonCompliantEPC != 1 {
		t.Fatalf("expected 1 non-compliant property, got %d", rec.NonCompliantEPC)
	}
}

func TestAnalyzeReport_TiesGoToEarlierPillar(t *testing.T) {
	r := buildTestReport()
	r.Overview.MTD.Score = 40
	r.Overview.RentersRights.Score = 40
	r.Overview.EPC.Score = 40

	rec := AnalyzeReport(r)
	if rec.FocusRegime != domain.RegimeMTD {
		t.Fatalf("expected tie to resolve to mtd, got %s", rec.FocusRegime)
	}
	if rec.TopAction != "Move records to software" {
		t.Fatalf("unexpected top action %q", rec.TopAction)
	}
}

func TestAnalyzeReport_FallsBackToFirstOutstanding(t *testing.T) {
	r := buildTestReport()
	r.Overview.EPC.Score = 0
	r.Overview.RentersRights.Score = 10

	rec := AnalyzeReport(r)
	if rec.FocusRegime != domain.RegimeEPC {
		t.Fatalf("expected epc focus, got %s", rec.FocusRegime)
	}
	if rec.TopAction != "Move records to software" {
		t.Fatalf("expected first outstanding item when focus pillar has none, got %q", rec.TopAction)
	}
}

func TestAnalyzeReport_Empty(t *testing.T) {
	rec := AnalyzeReport(&domain.ComplianceReport{})
	if rec.NextDeadline != nil || rec.TopAction != "" || rec.OverdueCount != 0 {
		t.Fatalf("expected empty recommendation, got %+v", rec)
	}
}
