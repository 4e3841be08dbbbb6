package ingest

import (
	"reflect"
	"testing"
)

func TestCanonicalHeaderRenames(t *testing.T) {
	in := []string{"Email ID", "Phone Number", "Langauge", "TDS Applicability"}
	want := []string{"email", "phone", "language", "tds_applicable"}

	got := NormalizeHeaders(in)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeHeaders(%v) = %v, want %v", in, got, want)
	}
}

func TestCanonicalHeaderIsIdempotent(t *testing.T) {
	headers := []string{
		"Author ID", "User ID", "Email ID", "Phone number", "Langauge",
		"Amount", "TDS Applicability", "TDS", "Payable", "Net Payable",
		"Name", "Account Number", "IFSC", "Transaction ID", "Transaction Date",
		"  Padded Header  ", "already_canonical", "email", "Some New Column",
	}
	for _, h := range headers {
		once := CanonicalHeader(h)
		twice := CanonicalHeader(once)
		if once != twice {
			t.Fatalf("CanonicalHeader not idempotent for %q: first %q, second %q", h, once, twice)
		}
	}
}

func TestCanonicalHeaderPassesUnknownThrough(t *testing.T) {
	if got := CanonicalHeader("Referral Bonus"); got != "referral_bonus" {
		t.Fatalf("unknown header: got %q, want %q", got, "referral_bonus")
	}
}
