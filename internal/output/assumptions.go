package output

import "github.com/propcomply/compliance-engine/internal/domain"

// DefaultNotes lists the standing caveats rendered when a report carries none.
var DefaultNotes = []string{
	"MTD thresholds apply to qualifying income strictly above each limit",
	"Deadlines come from a fixed regulatory calendar and are not adjusted for weekends or bank holidays",
	"EPC upgrade costs are indicative midpoints; obtain quotes before committing",
	"Renters' Rights civil penalties can reach £7,000 per breach",
}

// reportNotes returns the report's own notes, falling back to the defaults.
func reportNotes(r *domain.ComplianceReport) []string {
	if len(r.Notes) == 0 {
		return DefaultNotes
	}
	return r.Notes
}
