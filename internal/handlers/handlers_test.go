package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"payout_dashboard/internal/ingest"
	"payout_dashboard/internal/models"
)

type memStore struct {
	records []models.PayoutRecord
}

func (m *memStore) AppendBatch(_ context.Context, records []models.PayoutRecord) error {
	m.records = append(m.records, records...)
	return nil
}

func (m *memStore) ListAll(_ context.Context) ([]models.PayoutRecord, error) {
	return m.records, nil
}

func newTestHandlers(store *memStore) *Handlers {
	return New(nil, nil, nil, ingest.New(store), store, nil)
}

func multipartBody(t *testing.T, filename, month, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteField("month", month); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

const uploadCSV = `User ID,Email ID,Amount,TDS,Net Payable,Transaction ID
u1,one@example.com,"1,000",100,900,tx1
u2,two@example.com,"2,500.75",0,"2,500.75",
`

func TestUploadHandler(t *testing.T) {
	store := &memStore{}
	h := newTestHandlers(store)

	body, contentType := multipartBody(t, "april.csv", "2025-04", uploadCSV)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Upload(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Rows  int    `json:"rows"`
		Month string `json:"month"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Rows != 2 || resp.Month != "2025-04" {
		t.Fatalf("resp = %+v", resp)
	}
	if len(store.records) != 2 {
		t.Fatalf("store has %d records, want 2", len(store.records))
	}
	for _, r := range store.records {
		if r.Month != "2025-04" {
			t.Fatalf("record month = %q", r.Month)
		}
	}
}

func TestUploadHandlerRequiresMonth(t *testing.T) {
	h := newTestHandlers(&memStore{})

	body, contentType := multipartBody(t, "april.csv", "", uploadCSV)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Upload(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestUploadHandlerBadNumbersRejectWholeBatch(t *testing.T) {
	store := &memStore{}
	h := newTestHandlers(store)

	bad := "User ID,Amount\nu1,100\nu2,abc\n"
	body, contentType := multipartBody(t, "bad.csv", "2025-04", bad)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Upload(rr, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rr.Code)
	}
	if len(store.records) != 0 {
		t.Fatal("no record may be persisted when one row fails to parse")
	}
}

func TestPayoutsHandlerFilters(t *testing.T) {
	store := &memStore{records: []models.PayoutRecord{
		{UserID: "u1", Email: "alice@example.com", Month: "2025-03", TransactionID: "tx1"},
		{UserID: "u2", Email: "bob@example.com", Month: "2025-04", TDS: decimal.RequireFromString("150")},
	}}
	h := newTestHandlers(store)

	req := httptest.NewRequest(http.MethodGet, "/payouts?months=2025-04&tds_only=1", nil)
	rr := httptest.NewRecorder()
	h.Payouts(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 1 {
		t.Fatalf("total = %d, want 1", resp.Total)
	}
	if !strings.Contains(rr.Body.String(), "u2") {
		t.Fatalf("expected u2 in body: %s", rr.Body.String())
	}
}

func TestChartHandler(t *testing.T) {
	store := &memStore{records: []models.PayoutRecord{
		{UserID: "u1", Month: "2025-03", NetPayable: decimal.RequireFromString("10")},
		{UserID: "u2", Month: "2025-03", NetPayable: decimal.RequireFromString("5")},
		{UserID: "u3", Month: "bogus", NetPayable: decimal.RequireFromString("7")},
	}}
	h := newTestHandlers(store)

	req := httptest.NewRequest(http.MethodGet, "/payouts/chart", nil)
	rr := httptest.NewRecorder()
	h.Chart(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var resp struct {
		Series []struct {
			Month string          `json:"month"`
			Total decimal.Decimal `json:"total"`
		} `json:"series"`
		Warnings []string `json:"warnings"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Series) != 1 || resp.Series[0].Month != "2025-03" {
		t.Fatalf("series = %+v", resp.Series)
	}
	if !resp.Series[0].Total.Equal(decimal.RequireFromString("15")) {
		t.Fatalf("total = %s, want 15", resp.Series[0].Total)
	}
	if len(resp.Warnings) != 1 {
		t.Fatalf("warnings = %v, want one for the bogus month", resp.Warnings)
	}
}
