package payouts

import (
	"strings"

	"payout_dashboard/internal/models"
)

// Filter is the dashboard's sidebar: every field optional, active ones
// combined with AND. A zero Filter passes everything through untouched.
type Filter struct {
	// Search matches case-insensitively as a substring of user_id,
	// email or author_id.
	Search string
	// Months keeps records whose month tag is in the set.
	Months []string
	// TDSOnly keeps records with tds > 0.
	TDSOnly bool
	// UncreditedOnly keeps records with no transaction id.
	UncreditedOnly bool
}

// Apply filters the full record set, preserving input order. The
// predicates are independent, so their application order is
// immaterial.
func (f Filter) Apply(records []models.PayoutRecord) []models.PayoutRecord {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	var monthSet map[string]bool
	if len(f.Months) > 0 {
		monthSet = make(map[string]bool, len(f.Months))
		for _, m := range f.Months {
			monthSet[m] = true
		}
	}

	out := make([]models.PayoutRecord, 0, len(records))
	for _, r := range records {
		if search != "" && !matchesSearch(r, search) {
			continue
		}
		if monthSet != nil && !monthSet[r.Month] {
			continue
		}
		if f.TDSOnly && !r.TDS.IsPositive() {
			continue
		}
		if f.UncreditedOnly && r.Credited() {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesSearch(r models.PayoutRecord, search string) bool {
	return strings.Contains(strings.ToLower(r.UserID), search) ||
		strings.Contains(strings.ToLower(r.Email), search) ||
		strings.Contains(strings.ToLower(r.AuthorID), search)
}
