package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"payout_dashboard/internal/models"
	"payout_dashboard/internal/ports"
)

type fakeSink struct {
	batches [][]models.PayoutRecord
	err     error
}

func (f *fakeSink) AppendBatch(_ context.Context, records []models.PayoutRecord) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, records)
	return nil
}

type fakeAuditor struct {
	recs []ports.UploadAudit
}

func (f *fakeAuditor) RecordUpload(_ context.Context, rec ports.UploadAudit) error {
	f.recs = append(f.recs, rec)
	return nil
}

const sampleCSV = `Author ID,User ID,Email ID,Phone number,Langauge,Amount,TDS Applicability,TDS,Payable,Net Payable,Name,Account Number,IFSC,Transaction ID,Transaction Date
a1,u1,one@example.com,111,Hindi,"1,000",Yes,100,900,900,One,acc1,IFSC1,tx1,05/04/2025
a2,u2,two@example.com,222,Tamil,"2,500.75",No,0,"2,500.75","2,500.75",Two,acc2,IFSC2,,
`

func csvSource(body string) Source {
	return Source{Reader: strings.NewReader(body), Name: "payouts.csv", ContentType: "text/csv"}
}

func TestPipelineEndToEnd(t *testing.T) {
	sink := &fakeSink{}
	aud := &fakeAuditor{}
	p := New(sink)
	p.Audit = aud

	res, err := p.Run(ports.WithActor(context.Background(), "admin"), csvSource(sampleCSV), "2025-04")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Rows != 2 {
		t.Fatalf("rows = %d, want 2", res.Rows)
	}
	if len(sink.batches) != 1 || len(sink.batches[0]) != 2 {
		t.Fatalf("sink should receive exactly one batch of 2 rows, got %v", sink.batches)
	}

	batch := sink.batches[0]
	for _, r := range batch {
		if r.Month != "2025-04" {
			t.Errorf("month = %q, want 2025-04", r.Month)
		}
	}
	if !batch[0].Amount.Equal(decimal.RequireFromString("1000")) {
		t.Errorf("amount[0] = %s, want 1000", batch[0].Amount)
	}
	if !batch[1].Amount.Equal(decimal.RequireFromString("2500.75")) {
		t.Errorf("amount[1] = %s, want 2500.75", batch[1].Amount)
	}
	if batch[1].Credited() {
		t.Errorf("row without transaction id should be uncredited")
	}

	if len(aud.recs) != 1 {
		t.Fatalf("want one audit record, got %d", len(aud.recs))
	}
	if a := aud.recs[0]; a.Status != "done" || a.Actor != "admin" || a.Rows != 2 || a.Month != "2025-04" {
		t.Fatalf("audit record = %+v", a)
	}
}

func TestPipelineRejectsEmptyMonth(t *testing.T) {
	sink := &fakeSink{}
	p := New(sink)

	if _, err := p.Run(context.Background(), csvSource(sampleCSV), "   "); !errors.Is(err, ErrEmptyMonth) {
		t.Fatalf("want ErrEmptyMonth, got %v", err)
	}
	if len(sink.batches) != 0 {
		t.Fatal("nothing may be persisted without a month tag")
	}
}

func TestPipelineParseErrorPersistsNothing(t *testing.T) {
	bad := `User ID,Amount
u1,100
u2,abc
`
	sink := &fakeSink{}
	aud := &fakeAuditor{}
	p := New(sink)
	p.Audit = aud

	_, err := p.Run(context.Background(), csvSource(bad), "2025-04")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("want ParseError, got %v", err)
	}
	if len(sink.batches) != 0 {
		t.Fatal("a batch with a bad numeric cell must not reach the sink")
	}
	if len(aud.recs) != 1 || aud.recs[0].Status != "failed" {
		t.Fatalf("failed upload should still be audited, got %+v", aud.recs)
	}
}

func TestPipelineSinkErrorSurfaces(t *testing.T) {
	sink := &fakeSink{err: errors.New("connection reset")}
	p := New(sink)

	_, err := p.Run(context.Background(), csvSource(sampleCSV), "2025-04")
	var sinkErr *SinkError
	if !errors.As(err, &sinkErr) {
		t.Fatalf("want SinkError, got %v", err)
	}
	if !strings.Contains(err.Error(), "connection reset") {
		t.Fatalf("sink error should surface verbatim, got %q", err.Error())
	}
}

func TestPipelineRejectsEmptyFile(t *testing.T) {
	p := New(&fakeSink{})

	if _, err := p.Run(context.Background(), csvSource(""), "2025-04"); !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("want ErrEmptyFile for empty body, got %v", err)
	}

	headerOnly := "User ID,Amount\n"
	if _, err := p.Run(context.Background(), csvSource(headerOnly), "2025-04"); !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("want ErrEmptyFile for header-only file, got %v", err)
	}
}

func TestPipelineEnforcesByteLimit(t *testing.T) {
	sink := &fakeSink{}
	p := New(sink)
	p.MaxBytes = 16

	if _, err := p.Run(context.Background(), csvSource(sampleCSV), "2025-04"); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("want ErrTooLarge, got %v", err)
	}
}

func TestPipelineReadsXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"User ID", "Email ID", "Amount", "Net Payable"},
		{"u1", "one@example.com", "1,000", "900"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	sink := &fakeSink{}
	p := New(sink)
	res, err := p.Run(context.Background(), Source{Reader: buf, Name: "payouts.xlsx"}, "2025-05")
	if err != nil {
		t.Fatalf("Run(xlsx): %v", err)
	}
	if res.Rows != 1 {
		t.Fatalf("rows = %d, want 1", res.Rows)
	}
	r := sink.batches[0][0]
	if r.UserID != "u1" || !r.Amount.Equal(decimal.RequireFromString("1000")) || r.Month != "2025-05" {
		t.Fatalf("xlsx row mangled: %+v", r)
	}
}
