package calculation

import (
	"sort"
	"time"

	"github.com/propcomply/compliance-engine/internal/domain"
	"github.com/propcomply/compliance-engine/pkg/dateutil"
)

// ExpiringSoonDays is the window in which a certificate is flagged for renewal
const ExpiringSoonDays = 30

// CertificateStatus derives the state of a certificate at now. Nothing is
// cached; call it on every read.
func CertificateStatus(cert domain.Certificate, now time.Time) domain.CertificateState {
	state := domain.CertificateState{
		CertificateID: cert.ID,
		PropertyID:    cert.PropertyID,
		Type:          cert.Type,
	}
	if cert.ExpiryDate == nil {
		state.Status = domain.CertificateNoExpiry
		return state
	}

	expiry := *cert.ExpiryDate
	days := dateutil.DaysUntil(now, expiry)
	state.ExpiryDate = &expiry
	state.DaysUntilExpiry = &days

	switch {
	case dateutil.IsOverdue(expiry, now):
		state.Status = domain.CertificateExpired
	case days <= ExpiringSoonDays:
		state.Status = domain.CertificateExpiringSoon
	default:
		state.Status = domain.CertificateValid
	}
	return state
}

// CertificateStatuses derives the state of every certificate in input order
func CertificateStatuses(certs []domain.Certificate, now time.Time) []domain.CertificateState {
	out := make([]domain.CertificateState, 0, len(certs))
	for _, c := range certs {
		out = append(out, CertificateStatus(c, now))
	}
	return out
}

// OutstandingItems returns the incomplete items of a regime, highest priority
// first. Items of equal priority keep their input order.
func OutstandingItems(regime domain.Regime, items []domain.ChecklistItem) []domain.ChecklistItem {
	out := []domain.ChecklistItem{}
	for _, item := range items {
		if item.Regime == regime && !item.IsCompleted {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() < out[j].Priority.Rank()
	})
	return out
}
