package calculation

import (
	"fmt"
	"testing"
	"time"

	"github.com/propcomply/compliance-engine/internal/domain"
	"github.com/propcomply/compliance-engine/internal/regulatory"
	"github.com/propcomply/compliance-engine/pkg/dateutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScoreCalculator() *ScoreCalculator {
	return NewScoreCalculator(regulatory.Default())
}

// checklist builds total items for regime with the first completed marked done
func checklist(regime domain.Regime, total, completed int) []domain.ChecklistItem {
	items := make([]domain.ChecklistItem, 0, total)
	for i := 0; i < total; i++ {
		items = append(items, domain.ChecklistItem{
			ID:          fmt.Sprintf("%s-%d", regime, i),
			Regime:      regime,
			Title:       fmt.Sprintf("Task %d", i),
			IsCompleted: i < completed,
		})
	}
	return items
}

func TestScoreCalculator_StatusBoundaries(t *testing.T) {
	sc := newTestScoreCalculator()

	tests := []struct {
		score int
		want  domain.ReadinessStatus
	}{
		{0, domain.StatusNotReady},
		{39, domain.StatusNotReady},
		{40, domain.StatusPartial},
		{79, domain.StatusPartial},
		{80, domain.StatusReady},
		{100, domain.StatusReady},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sc.StatusForScore(tt.score), "score %d", tt.score)
	}
}

func TestScoreCalculator_CalculatePillarScore(t *testing.T) {
	sc := newTestScoreCalculator()
	now := dateutil.Date(2026, time.January, 15)

	tests := []struct {
		name      string
		total     int
		completed int
		wantScore int
	}{
		{"No items scores zero", 0, 0, 0},
		{"None complete", 4, 0, 0},
		{"Rounds half up", 8, 5, 63},
		{"Rounds down", 3, 1, 33},
		{"Two thirds", 3, 2, 67},
		{"All complete", 5, 5, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := append(checklist(domain.RegimeMTD, tt.total, tt.completed), checklist(domain.RegimeEPC, 3, 3)...)
			got := sc.CalculatePillarScore(domain.RegimeMTD, items, now)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.total, got.TotalItems)
			assert.Equal(t, tt.completed, got.CompletedItems)
			assert.Equal(t, sc.StatusForScore(got.Score), got.Status)
		})
	}
}

func TestScoreCalculator_NextDeadline(t *testing.T) {
	sc := newTestScoreCalculator()

	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)
	ps := sc.CalculatePillarScore(domain.RegimeMTD, nil, now)
	require.NotNil(t, ps.NextDeadline)
	require.NotNil(t, ps.DaysUntilDeadline)
	assert.Equal(t, dateutil.Date(2026, time.April, 6), *ps.NextDeadline)
	assert.Equal(t, 81, *ps.DaysUntilDeadline, "partial days round up")

	// A key date exactly at now is not "next".
	atKeyDate := dateutil.Date(2026, time.April, 6)
	ps = sc.CalculatePillarScore(domain.RegimeMTD, nil, atKeyDate)
	require.NotNil(t, ps.NextDeadline)
	assert.Equal(t, dateutil.Date(2027, time.April, 6), *ps.NextDeadline)
	assert.Equal(t, 365, *ps.DaysUntilDeadline)

	after := dateutil.Date(2026, time.June, 1)
	ps = sc.CalculatePillarScore(domain.RegimeRentersRights, nil, after)
	assert.Nil(t, ps.NextDeadline)
	assert.Nil(t, ps.DaysUntilDeadline)
}

func TestScoreCalculator_NextDeadlineUsesEarliestRegardlessOfOrder(t *testing.T) {
	sc := &ScoreCalculator{
		Scoring: regulatory.Default().Scoring,
		KeyDates: regulatory.PillarKeyDates{
			EPC: []time.Time{dateutil.Date(2030, time.October, 1), dateutil.Date(2028, time.October, 1)},
		},
	}
	ps := sc.CalculatePillarScore(domain.RegimeEPC, nil, dateutil.Date(2026, time.January, 1))
	require.NotNil(t, ps.NextDeadline)
	assert.Equal(t, 2028, ps.NextDeadline.Year())
}

func TestScoreCalculator_CalculateOverallCompliance(t *testing.T) {
	sc := newTestScoreCalculator()
	now := dateutil.Date(2026, time.January, 15)

	var items []domain.ChecklistItem
	items = append(items, checklist(domain.RegimeMTD, 4, 4)...)           // 100
	items = append(items, checklist(domain.RegimeRentersRights, 4, 2)...) // 50
	items = append(items, checklist(domain.RegimeEPC, 5, 1)...)           // 20

	got := sc.CalculateOverallCompliance(items, now)
	assert.Equal(t, 100, got.MTD.Score)
	assert.Equal(t, 50, got.RentersRights.Score)
	assert.Equal(t, 20, got.EPC.Score)
	// 35 + 20 + 5
	assert.Equal(t, 60, got.OverallScore)
}

func TestScoreCalculator_OverallNeverRenormalises(t *testing.T) {
	sc := newTestScoreCalculator()
	now := dateutil.Date(2026, time.January, 15)

	got := sc.CalculateOverallCompliance(checklist(domain.RegimeRentersRights, 2, 2), now)
	assert.Equal(t, 0, got.MTD.Score)
	assert.Equal(t, 100, got.RentersRights.Score)
	assert.Equal(t, 0, got.EPC.Score)
	assert.Equal(t, 40, got.OverallScore)

	assert.Equal(t, 0, sc.CalculateOverallCompliance(nil, now).OverallScore)
}

func TestScoreCalculator_OverallRounding(t *testing.T) {
	sc := newTestScoreCalculator()
	now := dateutil.Date(2026, time.January, 15)

	var items []domain.ChecklistItem
	items = append(items, checklist(domain.RegimeMTD, 3, 1)...)           // 33 -> 11.55
	items = append(items, checklist(domain.RegimeRentersRights, 3, 2)...) // 67 -> 26.8
	items = append(items, checklist(domain.RegimeEPC, 1, 1)...)           // 100 -> 25

	got := sc.CalculateOverallCompliance(items, now)
	assert.Equal(t, 63, got.OverallScore)
}
