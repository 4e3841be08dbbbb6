package models

import "github.com/shopspring/decimal"

// Bool3 is the tri-state value of tds_applicable. Source cells outside
// yes/no (case-insensitive) stay Unknown and are persisted as SQL NULL.
type Bool3 int

const (
	BoolUnknown Bool3 = iota
	BoolFalse
	BoolTrue
)

func (b Bool3) Known() bool { return b != BoolUnknown }

// Ptr maps the tri-state onto a nullable bool for the sink.
func (b Bool3) Ptr() *bool {
	switch b {
	case BoolTrue:
		v := true
		return &v
	case BoolFalse:
		v := false
		return &v
	}
	return nil
}

// MarshalJSON renders the tri-state as true/false/null.
func (b Bool3) MarshalJSON() ([]byte, error) {
	switch b {
	case BoolTrue:
		return []byte("true"), nil
	case BoolFalse:
		return []byte("false"), nil
	}
	return []byte("null"), nil
}

func Bool3From(p *bool) Bool3 {
	if p == nil {
		return BoolUnknown
	}
	if *p {
		return BoolTrue
	}
	return BoolFalse
}

// PayoutRecord is one row of the payouts table. Rows are append-only:
// created once by the ingestion pipeline, read back for filtering and
// aggregation, never updated or deleted.
//
// TransactionDate holds ISO text (2006-01-02) when the source column
// parsed, or the raw source text when it did not. Extra carries columns
// the canonical schema does not know about (open schema), persisted as
// jsonb alongside the fixed columns.
type PayoutRecord struct {
	ID              string            `json:"id"`
	AuthorID        string            `json:"author_id"`
	UserID          string            `json:"user_id"`
	Email           string            `json:"email"`
	Phone           string            `json:"phone"`
	Language        string            `json:"language"`
	Amount          decimal.Decimal   `json:"amount"`
	TDSApplicable   Bool3             `json:"tds_applicable"`
	TDS             decimal.Decimal   `json:"tds"`
	Payable         decimal.Decimal   `json:"payable"`
	NetPayable      decimal.Decimal   `json:"net_payable"`
	Name            string            `json:"name"`
	AccountNumber   string            `json:"account_number"`
	IFSC            string            `json:"ifsc"`
	TransactionID   string            `json:"transaction_id"`
	TransactionDate string            `json:"transaction_date"`
	Month           string            `json:"month"`
	Extra           map[string]string `json:"extra,omitempty"`
}

// Credited reports whether a transaction id was recorded for the row.
func (r PayoutRecord) Credited() bool { return r.TransactionID != "" }
