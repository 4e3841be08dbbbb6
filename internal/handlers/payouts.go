package handlers

import (
	"net/http"
	"strings"

	"payout_dashboard/internal/payouts"
)

// Payouts lists the stored records through the filter chain:
// GET /payouts?search=&months=2025-03,2025-04&tds_only=1&uncredited_only=1
// The table is read fresh per request; there is no implicit cache to
// invalidate.
func (h *Handlers) Payouts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.JSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "use GET"})
		return
	}

	records, err := h.Store.ListAll(r.Context())
	if err != nil {
		h.Logger.Printf("[PAYOUTS][ERR] list: %v", err)
		h.JSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}

	filtered := filterFromQuery(r).Apply(records)

	h.JSON(w, http.StatusOK, map[string]any{
		"total":   len(filtered),
		"records": filtered,
	})
}

// Chart returns the monthly net-payable series for the same filters.
// A month tag the chart cannot place only produces a warning, never an
// error.
func (h *Handlers) Chart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.JSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "use GET"})
		return
	}

	records, err := h.Store.ListAll(r.Context())
	if err != nil {
		h.Logger.Printf("[CHART][ERR] list: %v", err)
		h.JSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}

	filtered := filterFromQuery(r).Apply(records)
	series, warnings := payouts.MonthlyNetPayable(filtered)

	h.JSON(w, http.StatusOK, map[string]any{
		"series":   series,
		"warnings": warnings,
	})
}

// UploadHistory lists recent upload audit records, newest first.
func (h *Handlers) UploadHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.JSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "use GET"})
		return
	}
	if h.Uploads == nil {
		h.JSON(w, http.StatusServiceUnavailable, map[string]any{"error": "upload audit trail not configured"})
		return
	}

	recs, err := h.Uploads.List(r.Context(), 100)
	if err != nil {
		h.Logger.Printf("[UPLOADS][ERR] list: %v", err)
		h.JSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	h.JSON(w, http.StatusOK, map[string]any{"uploads": recs})
}

func filterFromQuery(r *http.Request) payouts.Filter {
	q := r.URL.Query()

	var months []string
	if raw := strings.TrimSpace(q.Get("months")); raw != "" {
		for _, m := range strings.Split(raw, ",") {
			if m = strings.TrimSpace(m); m != "" {
				months = append(months, m)
			}
		}
	}

	return payouts.Filter{
		Search:         q.Get("search"),
		Months:         months,
		TDSOnly:        isSet(q.Get("tds_only")),
		UncreditedOnly: isSet(q.Get("uncredited_only")),
	}
}

func isSet(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
