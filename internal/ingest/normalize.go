package ingest

import "strings"

// renames maps cleaned source headers onto the sink schema. The
// "langauge" key is the typo the existing CSV exports actually carry;
// it stays until every historical export is gone.
var renames = map[string]string{
	"email_id":          "email",
	"phone_number":      "phone",
	"langauge":          "language",
	"tds_applicability": "tds_applicable",
}

// CanonicalHeader turns a raw header cell into its canonical field
// name: trim, lowercase, spaces to underscores, then the fixed rename
// table. Headers the table does not know pass through unchanged, so
// extra columns survive ingestion (open schema). The function is
// idempotent: canonical input maps to itself.
func CanonicalHeader(raw string) string {
	h := strings.ToLower(strings.TrimSpace(raw))
	h = strings.ReplaceAll(h, " ", "_")
	if to, ok := renames[h]; ok {
		return to
	}
	return h
}

func NormalizeHeaders(raw []string) []string {
	out := make([]string, len(raw))
	for i, h := range raw {
		out[i] = CanonicalHeader(h)
	}
	return out
}
