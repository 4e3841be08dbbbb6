package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"payout_dashboard/internal/models"
)

// currencyFields are the columns that must parse as money; a failure in
// any of them aborts the whole batch.
var currencyFields = []string{"amount", "tds", "payable", "net_payable"}

// ParseBool3 maps yes/no (any case) onto true/false. Every other value,
// blank included, stays Unknown rather than guessing a default.
func ParseBool3(s string) models.Bool3 {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes":
		return models.BoolTrue
	case "no":
		return models.BoolFalse
	}
	return models.BoolUnknown
}

// ParseMoney strips thousands separators and inner spaces before
// parsing. An empty cell counts as zero; any other residue that is not
// a number is the caller's ParseError.
func ParseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	return decimal.NewFromString(s)
}

// dayFirstLayouts: "05/04/2025" is 5 April, not May 4.
var dayFirstLayouts = []string{
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
	"2006-01-02",
	"2 January 2006",
	"02 Jan 2006",
}

func parseDateDayFirst(s string) (time.Time, bool) {
	for _, l := range dayFirstLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CoerceDateColumn converts the whole transaction_date column at once,
// the way the dashboard always has: either every non-empty cell parses
// and comes back as ISO text, or the column is left exactly as it
// arrived and a warning is returned. A date problem never fails the
// upload.
func CoerceDateColumn(values []string) (out []string, warning string) {
	parsed := make([]string, len(values))
	for i, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		t, ok := parseDateDayFirst(v)
		if !ok {
			return values, fmt.Sprintf("could not convert transaction_date column: unparseable value %q", v)
		}
		parsed[i] = t.Format("2006-01-02")
	}
	return parsed, ""
}
