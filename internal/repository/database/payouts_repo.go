package database

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"payout_dashboard/internal/config/connections/postgres"
	"payout_dashboard/internal/models"
)

type PayoutsRepo struct {
	pg    *postgres.Postgres
	table string
}

func NewPayoutsRepo(pg *postgres.Postgres) *PayoutsRepo {
	return &PayoutsRepo{pg: pg, table: "payouts"}
}

// AppendBatch inserts the whole batch inside one transaction. If any
// row fails, the transaction rolls back and the table is untouched —
// the contract with the sink is append whole batches or nothing.
func (r *PayoutsRepo) AppendBatch(ctx context.Context, records []models.PayoutRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.pg.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(
			`INSERT INTO `+r.table+` (
				id, author_id, user_id, email, phone, language,
				amount, tds_applicable, tds, payable, net_payable,
				name, account_number, ifsc, transaction_id, transaction_date,
				month, extra, created_at
			) VALUES (
				$1::uuid, $2, $3, $4, $5, $6,
				$7::numeric, $8::bool, $9::numeric, $10::numeric, $11::numeric,
				$12, $13, $14, $15, $16,
				$17, $18::jsonb, now()
			)`,
			rec.ID, rec.AuthorID, rec.UserID, rec.Email, rec.Phone, rec.Language,
			rec.Amount.String(), rec.TDSApplicable.Ptr(), rec.TDS.String(), rec.Payable.String(), rec.NetPayable.String(),
			rec.Name, rec.AccountNumber, rec.IFSC, nullIfEmpty(rec.TransactionID), nullIfEmpty(rec.TransactionDate),
			rec.Month, extraJSON(rec.Extra),
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range records {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return err
		}
	}
	if err := br.Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ListAll reads the full table back for in-memory filtering. Volumes
// are a few thousand rows per month; revisit before they are not.
func (r *PayoutsRepo) ListAll(ctx context.Context) ([]models.PayoutRecord, error) {
	rows, err := r.pg.Pool.Query(ctx,
		`SELECT id, author_id, user_id, email, phone, language,
			amount::text, tds_applicable, tds::text, payable::text, net_payable::text,
			name, account_number, ifsc, transaction_id, transaction_date,
			month, extra::text
		FROM `+r.table+`
		ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.PayoutRecord
	for rows.Next() {
		var (
			rec                       models.PayoutRecord
			amount, tds, payable, net string
			applicable                *bool
			transactionID, txDate     *string
			extra                     *string
		)
		if err := rows.Scan(
			&rec.ID, &rec.AuthorID, &rec.UserID, &rec.Email, &rec.Phone, &rec.Language,
			&amount, &applicable, &tds, &payable, &net,
			&rec.Name, &rec.AccountNumber, &rec.IFSC, &transactionID, &txDate,
			&rec.Month, &extra,
		); err != nil {
			return nil, err
		}

		rec.Amount = mustDecimal(amount)
		rec.TDS = mustDecimal(tds)
		rec.Payable = mustDecimal(payable)
		rec.NetPayable = mustDecimal(net)
		rec.TDSApplicable = models.Bool3From(applicable)
		if transactionID != nil {
			rec.TransactionID = *transactionID
		}
		if txDate != nil {
			rec.TransactionDate = *txDate
		}
		if extra != nil && *extra != "" {
			if err := json.Unmarshal([]byte(*extra), &rec.Extra); err != nil {
				log.Printf("[REPO][payouts][WARN] bad extra json for id=%s: %v", rec.ID, err)
			}
		}

		out = append(out, rec)
	}
	return out, rows.Err()
}

func nullIfEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func extraJSON(m map[string]string) *string {
	if len(m) == 0 {
		return nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		log.Printf("[REPO][payouts][WARN] json marshal extra failed: %v; fallback {}", err)
		s := "{}"
		return &s
	}
	s := string(b)
	return &s
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		log.Printf("[REPO][payouts][WARN] bad numeric %q from store: %v", s, err)
		return decimal.Zero
	}
	return d
}
