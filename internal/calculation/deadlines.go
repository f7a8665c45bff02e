package calculation

import (
	"fmt"
	"sort"
	"time"

	"github.com/propcomply/compliance-engine/internal/domain"
	"github.com/propcomply/compliance-engine/internal/regulatory"
	"github.com/propcomply/compliance-engine/pkg/dateutil"
)

// DeadlineEngine assembles the regulatory calendars and certificate expiries
// into one chronological timeline
type DeadlineEngine struct {
	Calendars regulatory.Calendars
}

// NewDeadlineEngine creates a deadline engine from the reference tables
func NewDeadlineEngine(tables *regulatory.Tables) *DeadlineEngine {
	return &DeadlineEngine{Calendars: tables.Calendars}
}

func (de *DeadlineEngine) calendarDeadlines(regime domain.Regime) []domain.Deadline {
	entries := de.Calendars.For(regime)
	out := make([]domain.Deadline, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.Deadline{
			ID:          e.ID,
			Title:       e.Title,
			Date:        e.Date,
			Regime:      regime,
			Description: e.Description,
			IsCritical:  e.Critical,
		})
	}
	return out
}

// MtdDeadlines returns the Making Tax Digital calendar
func (de *DeadlineEngine) MtdDeadlines() []domain.Deadline {
	return de.calendarDeadlines(domain.RegimeMTD)
}

// RentersRightsDeadlines returns the Renters' Rights calendar
func (de *DeadlineEngine) RentersRightsDeadlines() []domain.Deadline {
	return de.calendarDeadlines(domain.RegimeRentersRights)
}

// EpcDeadlines returns the EPC minimum standard calendar
func (de *DeadlineEngine) EpcDeadlines() []domain.Deadline {
	return de.calendarDeadlines(domain.RegimeEPC)
}

// CertificateDeadlines emits one deadline per certificate that has an expiry.
// The property address is appended only when the owning property is supplied.
func CertificateDeadlines(properties []domain.Property, certificates []domain.Certificate) []domain.Deadline {
	out := []domain.Deadline{}
	for _, cert := range certificates {
		if cert.ExpiryDate == nil {
			continue
		}
		title := fmt.Sprintf("%s expiry", cert.Type.DisplayName())
		if prop, ok := domain.FindProperty(properties, cert.PropertyID); ok && prop.AddressLine1 != "" {
			title = fmt.Sprintf("%s - %s", title, prop.AddressLine1)
		}
		out = append(out, domain.Deadline{
			ID:          "cert-" + cert.ID,
			Title:       title,
			Date:        *cert.ExpiryDate,
			Regime:      domain.RegimeCertificate,
			Description: fmt.Sprintf("Renew the %s certificate before it expires.", cert.Type.DisplayName()),
			IsCritical:  true,
		})
	}
	return out
}

// GetAllDeadlines concatenates every source, flags overdue entries and sorts by
// date. Entries on the same date keep their source order.
func (de *DeadlineEngine) GetAllDeadlines(properties []domain.Property, certificates []domain.Certificate, now time.Time) []domain.Deadline {
	all := de.MtdDeadlines()
	all = append(all, de.RentersRightsDeadlines()...)
	all = append(all, de.EpcDeadlines()...)
	all = append(all, CertificateDeadlines(properties, certificates)...)
	return SortDeadlines(all, now)
}

// SortDeadlines returns a stamped, stably date-sorted copy of deadlines
func SortDeadlines(deadlines []domain.Deadline, now time.Time) []domain.Deadline {
	out := make([]domain.Deadline, len(deadlines))
	copy(out, deadlines)
	for i := range out {
		out[i].IsOverdue = dateutil.IsOverdue(out[i].Date, now)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// GetUpcomingDeadlines returns deadlines on or after now, truncated to limit.
// A limit of zero or less returns every upcoming deadline.
func (de *DeadlineEngine) GetUpcomingDeadlines(properties []domain.Property, certificates []domain.Certificate, now time.Time, limit int) []domain.Deadline {
	return Upcoming(de.GetAllDeadlines(properties, certificates, now), now, limit)
}

// Upcoming filters a sorted timeline to dates on or after now, then truncates
func Upcoming(sorted []domain.Deadline, now time.Time, limit int) []domain.Deadline {
	out := []domain.Deadline{}
	for _, d := range sorted {
		if !d.Date.Before(now) {
			out = append(out, d)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
