package ingest

import (
	"strings"

	"github.com/google/uuid"

	"payout_dashboard/internal/models"
)

// knownFields are the canonical columns with a fixed slot in the sink
// schema; everything else rides along in Extra.
var knownFields = map[string]bool{
	"author_id":        true,
	"user_id":          true,
	"email":            true,
	"phone":            true,
	"language":         true,
	"amount":           true,
	"tds_applicable":   true,
	"tds":              true,
	"payable":          true,
	"net_payable":      true,
	"name":             true,
	"account_number":   true,
	"ifsc":             true,
	"transaction_id":   true,
	"transaction_date": true,
}

// Transform turns a raw table into typed payout records: canonical
// headers, tri-state tds_applicable, decimal money, whole-column date
// conversion. A money cell that will not parse fails the entire batch;
// a date problem only produces a warning.
func Transform(table Table) ([]models.PayoutRecord, []string, error) {
	header := NormalizeHeaders(table.Header)

	rows := make([]map[string]string, 0, len(table.Rows))
	for _, rec := range table.Rows {
		rows = append(rows, toMap(header, rec))
	}

	var warnings []string

	dateCol := make([]string, len(rows))
	for i, row := range rows {
		dateCol[i] = row["transaction_date"]
	}
	dateCol, warn := CoerceDateColumn(dateCol)
	if warn != "" {
		warnings = append(warnings, warn)
	}

	records := make([]models.PayoutRecord, 0, len(rows))
	for i, row := range rows {
		r := models.PayoutRecord{
			ID:              uuid.NewString(),
			AuthorID:        row["author_id"],
			UserID:          row["user_id"],
			Email:           row["email"],
			Phone:           row["phone"],
			Language:        row["language"],
			TDSApplicable:   ParseBool3(row["tds_applicable"]),
			Name:            row["name"],
			AccountNumber:   row["account_number"],
			IFSC:            row["ifsc"],
			TransactionID:   row["transaction_id"],
			TransactionDate: dateCol[i],
		}

		for _, field := range currencyFields {
			v, err := ParseMoney(row[field])
			if err != nil {
				return nil, warnings, &ParseError{Field: field, Value: row[field], Row: i + 1, Err: err}
			}
			switch field {
			case "amount":
				r.Amount = v
			case "tds":
				r.TDS = v
			case "payable":
				r.Payable = v
			case "net_payable":
				r.NetPayable = v
			}
		}

		for k, v := range row {
			if !knownFields[k] {
				if r.Extra == nil {
					r.Extra = map[string]string{}
				}
				r.Extra[k] = v
			}
		}

		records = append(records, r)
	}

	return records, warnings, nil
}

// TagMonth stamps the upload's month tag onto every record,
// overwriting whatever was there before.
func TagMonth(records []models.PayoutRecord, month string) {
	for i := range records {
		records[i].Month = month
	}
}

func toMap(header []string, row []string) map[string]string {
	m := make(map[string]string, len(header))
	for i, key := range header {
		val := ""
		if i < len(row) {
			val = row[i]
		}
		m[strings.TrimSpace(key)] = strings.TrimSpace(val)
	}
	return m
}
