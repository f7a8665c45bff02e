package output

import (
	"fmt"
	"strconv"
	"time"

	"github.com/propcomply/compliance-engine/internal/domain"
	"github.com/propcomply/compliance-engine/pkg/dateutil"
	money "github.com/propcomply/compliance-engine/pkg/decimal"
)

// FormatCurrency formats money as sterling with thousands separators.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount money.Money) string { return amount.Format() }

// FormatPercentage formats an integer score as a percentage.
func FormatPercentage(score int) string { return fmt.Sprintf("%d%%", score) }

// FormatDate renders a date in long en-GB form.
func FormatDate(t time.Time) string { return dateutil.FormatUK(t) }

// FormatDaysUntil describes a signed day count, e.g. "in 3 days" or "2 days ago".
func FormatDaysUntil(days int) string {
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days < 0:
		return fmt.Sprintf("%d days ago", -days)
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

// StatusLabel is the display form of a readiness status.
func StatusLabel(s domain.ReadinessStatus) string {
	switch s {
	case domain.StatusReady:
		return "Ready"
	case domain.StatusPartial:
		return "Partially ready"
	default:
		return "Not ready"
	}
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
