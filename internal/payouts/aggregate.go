package payouts

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"payout_dashboard/internal/models"
)

// MonthTotal is one point of the net-payable chart.
type MonthTotal struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// MonthlyNetPayable groups the (already filtered) record set by month
// and sums net_payable, time-ordered. Records whose month tag is not
// YYYY-MM are left off the chart with a warning; a bad month tag must
// never fail the request.
func MonthlyNetPayable(records []models.PayoutRecord) ([]MonthTotal, []string) {
	totals := make(map[string]decimal.Decimal)
	var warnings []string
	skipped := make(map[string]bool)

	for _, r := range records {
		if _, err := time.Parse("2006-01", r.Month); err != nil {
			if !skipped[r.Month] {
				skipped[r.Month] = true
				warnings = append(warnings, fmt.Sprintf("month %q is not YYYY-MM, excluded from chart", r.Month))
			}
			continue
		}
		totals[r.Month] = totals[r.Month].Add(r.NetPayable)
	}

	out := make([]MonthTotal, 0, len(totals))
	for m, t := range totals {
		out = append(out, MonthTotal{Month: m, Total: t})
	}
	// YYYY-MM sorts chronologically as text
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, warnings
}
