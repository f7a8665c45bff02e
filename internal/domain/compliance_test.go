package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCertificateTypeDisplayName(t *testing.T) {
	assert.Equal(t, "gas safety", CertificateGasSafety.DisplayName())
	assert.Equal(t, "eicr", CertificateEICR.DisplayName())
	assert.Equal(t, "legionella risk assessment", CertificateLegionella.DisplayName())
	assert.Equal(t, "carbon monoxide alarm", CertificateType("carbon-monoxide_alarm").DisplayName())
}

func TestEpcRatingCompliance(t *testing.T) {
	for _, r := range []EpcRating{"A", "B", "C"} {
		assert.True(t, r.IsCompliant(), "rating %s", r)
	}
	for _, r := range []EpcRating{"D", "E", "F", "G"} {
		assert.False(t, r.IsCompliant(), "rating %s", r)
	}
}

func TestChecklistItemWithCompletion(t *testing.T) {
	first := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)

	item := ChecklistItem{ID: "c1", Regime: RegimeMTD, Title: "Choose MTD software"}

	done := item.WithCompletion(true, first)
	require.NotNil(t, done.CompletedAt)
	assert.True(t, done.IsCompleted)
	assert.Equal(t, first, *done.CompletedAt)
	assert.False(t, item.IsCompleted, "original must not be mutated")
	assert.Nil(t, item.CompletedAt)

	again := done.WithCompletion(true, later)
	assert.Equal(t, first, *again.CompletedAt, "timestamp only set on transition")

	reopened := again.WithCompletion(false, later)
	assert.False(t, reopened.IsCompleted)
	assert.Nil(t, reopened.CompletedAt)
}

func TestPriorityRank(t *testing.T) {
	assert.Less(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Less(t, PriorityLow.Rank(), Priority("").Rank())
}

func TestFindProperty(t *testing.T) {
	props := []Property{{ID: "p1", AddressLine1: "1 Mill Lane"}, {ID: "p2", AddressLine1: "2 Mill Lane"}}

	p, ok := FindProperty(props, "p2")
	assert.True(t, ok)
	assert.Equal(t, "2 Mill Lane", p.AddressLine1)

	_, ok = FindProperty(props, "missing")
	assert.False(t, ok)
}

func TestOverviewPillarsOrder(t *testing.T) {
	o := ComplianceOverview{
		MTD:           PillarScore{Regime: RegimeMTD},
		RentersRights: PillarScore{Regime: RegimeRentersRights},
		EPC:           PillarScore{Regime: RegimeEPC},
	}
	got := o.Pillars()
	require.Len(t, got, 3)
	for i, r := range Pillars {
		assert.Equal(t, r, got[i].Regime)
	}
}
