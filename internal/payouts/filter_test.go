package payouts

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"payout_dashboard/internal/models"
)

func rec(userID, email, authorID, month, txID, tds string) models.PayoutRecord {
	return models.PayoutRecord{
		UserID:        userID,
		Email:         email,
		AuthorID:      authorID,
		Month:         month,
		TransactionID: txID,
		TDS:           decimal.RequireFromString(tds),
	}
}

func sample() []models.PayoutRecord {
	return []models.PayoutRecord{
		rec("u1", "alice@example.com", "a1", "2025-03", "tx1", "0"),
		rec("u2", "bob@example.com", "a2", "2025-04", "", "150"),
		rec("u3", "carol@example.com", "a3", "2025-04", "tx3", "0"),
		rec("u4", "dave@example.com", "a4", "2025-05", "", "0"),
	}
}

func TestFilterNoOpLaw(t *testing.T) {
	in := sample()
	out := Filter{}.Apply(in)
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("empty filter must return the input unchanged:\n got %v\nwant %v", out, in)
	}
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	out := Filter{Search: "ALICE"}.Apply(sample())
	if len(out) != 1 || out[0].UserID != "u1" {
		t.Fatalf("search ALICE: got %v", out)
	}

	// matches author_id too
	out = Filter{Search: "a3"}.Apply(sample())
	if len(out) != 1 || out[0].UserID != "u3" {
		t.Fatalf("search a3: got %v", out)
	}
}

func TestFilterMonthSet(t *testing.T) {
	out := Filter{Months: []string{"2025-04"}}.Apply(sample())
	if len(out) != 2 {
		t.Fatalf("months 2025-04: got %d records, want 2", len(out))
	}
	for _, r := range out {
		if r.Month != "2025-04" {
			t.Fatalf("record outside month set: %v", r)
		}
	}
}

func TestFilterTDSOnly(t *testing.T) {
	out := Filter{TDSOnly: true}.Apply(sample())
	if len(out) != 1 || out[0].UserID != "u2" {
		t.Fatalf("tds only: got %v", out)
	}
}

func TestFilterUncreditedOnly(t *testing.T) {
	out := Filter{UncreditedOnly: true}.Apply(sample())
	if len(out) != 2 {
		t.Fatalf("uncredited: got %d records, want 2", len(out))
	}
	for _, r := range out {
		if r.TransactionID != "" {
			t.Fatalf("credited record slipped through: %v", r)
		}
	}
}

// Applying two predicates together must equal the intersection of
// applying each on its own.
func TestFilterCompositionIsIntersection(t *testing.T) {
	in := sample()

	both := Filter{Months: []string{"2025-04"}, UncreditedOnly: true}.Apply(in)

	byMonth := Filter{Months: []string{"2025-04"}}.Apply(in)
	intersection := Filter{UncreditedOnly: true}.Apply(byMonth)

	if !reflect.DeepEqual(both, intersection) {
		t.Fatalf("composition mismatch:\n both: %v\n intersection: %v", both, intersection)
	}
	if len(both) != 1 || both[0].UserID != "u2" {
		t.Fatalf("expected exactly u2, got %v", both)
	}
}
