package payouts

import (
	"testing"

	"github.com/shopspring/decimal"

	"payout_dashboard/internal/models"
)

func payout(month, netPayable string) models.PayoutRecord {
	return models.PayoutRecord{Month: month, NetPayable: decimal.RequireFromString(netPayable)}
}

func TestMonthlyNetPayable(t *testing.T) {
	series, warnings := MonthlyNetPayable([]models.PayoutRecord{
		payout("2025-04", "100.50"),
		payout("2025-03", "10"),
		payout("2025-04", "99.50"),
	})
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(series) != 2 {
		t.Fatalf("got %d points, want 2", len(series))
	}
	if series[0].Month != "2025-03" || series[1].Month != "2025-04" {
		t.Fatalf("series not time-ordered: %v", series)
	}
	if !series[1].Total.Equal(decimal.RequireFromString("200")) {
		t.Fatalf("2025-04 total = %s, want 200", series[1].Total)
	}
}

func TestMonthlyNetPayableSkipsBadMonths(t *testing.T) {
	series, warnings := MonthlyNetPayable([]models.PayoutRecord{
		payout("2025-04", "100"),
		payout("April 2025", "50"),
		payout("April 2025", "25"),
	})
	if len(series) != 1 || series[0].Month != "2025-04" {
		t.Fatalf("bad months must be excluded: %v", series)
	}
	// one warning per distinct bad tag, not per record
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", warnings)
	}
}

func TestMonthlyNetPayableEmptyInput(t *testing.T) {
	series, warnings := MonthlyNetPayable(nil)
	if len(series) != 0 || len(warnings) != 0 {
		t.Fatalf("empty input: series=%v warnings=%v", series, warnings)
	}
}
