package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/type/money"

	"ledger-assistant/internal/core"
	"ledger-assistant/internal/logger"
)

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n")

type fakeExtractor struct {
	doc      *documentaipb.Document
	err      error
	mimeType string
}

func (f *fakeExtractor) Extract(_ context.Context, _ []byte, mimeType string) (*documentaipb.Document, error) {
	f.mimeType = mimeType
	return f.doc, f.err
}

func moneyEntity(typ, text string, units int64, nanos int32) *documentaipb.Document_Entity {
	return &documentaipb.Document_Entity{
		Type:        typ,
		MentionText: text,
		NormalizedValue: &documentaipb.Document_Entity_NormalizedValue{
			StructuredValue: &documentaipb.Document_Entity_NormalizedValue_MoneyValue{
				MoneyValue: &money.Money{CurrencyCode: "INR", Units: units, Nanos: nanos},
			},
		},
	}
}

func lineItem(desc, amount string) *documentaipb.Document_Entity {
	return &documentaipb.Document_Entity{
		Type: "line_item",
		Properties: []*documentaipb.Document_Entity{
			{Type: "line_item/description", MentionText: desc},
			{Type: "line_item/amount", MentionText: amount},
		},
	}
}

func TestReadBill(t *testing.T) {
	doc := &documentaipb.Document{Entities: []*documentaipb.Document_Entity{
		{Type: "supplier_name", MentionText: " Sharma Traders "},
		moneyEntity("total_amount", "₹1,890.50", 1890, 500000000),
		lineItem("Toor  Dal\n25kg", "₹1,250.00"),
		lineItem("Sugar", "Rs. 640.50"),
		lineItem("Freebie", "0"),
	}}

	bill := ReadBill(doc)
	assert.Equal(t, "Sharma Traders", bill.Vendor)
	assert.True(t, bill.Total.Equal(decimal.RequireFromString("1890.5")))
	require.Len(t, bill.Lines, 2)
	assert.Equal(t, "Toor Dal 25kg", bill.Lines[0].Description)
	assert.True(t, bill.Lines[0].Amount.Equal(decimal.NewFromInt(1250)))
	assert.True(t, bill.Lines[1].Amount.Equal(decimal.RequireFromString("640.50")))
}

func TestPayables(t *testing.T) {
	now := time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC)
	bill := Bill{
		Vendor: "Sharma Traders",
		Total:  decimal.NewFromInt(1890),
		Lines: []BillLine{
			{Description: "Toor Dal", Amount: decimal.NewFromInt(1250)},
			{Description: "Sugar", Amount: decimal.NewFromInt(640)},
		},
	}

	entries := bill.Payables(now)
	require.Len(t, entries, 2)
	assert.Equal(t, "Expense: Toor Dal", entries[0].Product)
	assert.True(t, entries[0].Revenue.Equal(decimal.NewFromInt(-1250)))
	assert.True(t, entries[0].Credit)
	assert.Equal(t, "Sharma Traders", entries[0].Creditor)
	assert.Equal(t, now, entries[0].Date)
	assert.True(t, entries[0].IsPayable())

	bill.Lines = nil
	entries = bill.Payables(now)
	require.Len(t, entries, 1)
	assert.Equal(t, "Expense: Invoice from Sharma Traders", entries[0].Product)
	assert.True(t, entries[0].Revenue.Equal(decimal.NewFromInt(-1890)))

	assert.Empty(t, Bill{}.Payables(now))
}

func TestParseAmount(t *testing.T) {
	for in, want := range map[string]string{
		"₹1,250.00": "1250",
		"Rs. 99":    "99",
		"INR 10.5":  "10.5",
	} {
		got, err := parseAmount(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(decimal.RequireFromString(want)), in)
	}
	_, err := parseAmount("n/a")
	assert.Error(t, err)
}

func TestDetectType(t *testing.T) {
	ct, err := DetectType(pdfBytes)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", ct)

	ct, err = DetectType([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)

	_, err = DetectType([]byte("plain text bill"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestService_Read(t *testing.T) {
	ext := &fakeExtractor{doc: &documentaipb.Document{Entities: []*documentaipb.Document_Entity{
		{Type: "vendor_name", MentionText: "Gupta Oils"},
		moneyEntity("total_amount", "", 500, 0),
	}}}
	svc := NewService(ext, logger.Nop())

	bill, entries, err := svc.Read(context.Background(), core.Document{Filename: "bill.pdf", Data: pdfBytes})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", ext.mimeType)
	assert.Equal(t, "Gupta Oils", bill.Vendor)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Revenue.Equal(decimal.NewFromInt(-500)))
}

func TestService_ReadFailures(t *testing.T) {
	ctx := context.Background()

	_, _, err := NewService(nil, logger.Nop()).Read(ctx, core.Document{Data: pdfBytes})
	assert.True(t, errors.Is(err, ErrNotConfigured))

	svc := NewService(&fakeExtractor{doc: &documentaipb.Document{}}, logger.Nop())
	_, _, err = svc.Read(ctx, core.Document{Data: make([]byte, MaxDocumentSize+1)})
	assert.True(t, errors.Is(err, ErrDocumentTooLarge))

	_, _, err = svc.Read(ctx, core.Document{Data: []byte("hello")})
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, _, err = svc.Read(ctx, core.Document{Data: pdfBytes})
	assert.True(t, errors.Is(err, ErrNothingExtracted))

	boom := wrapError("Extract", ErrQuotaExceeded, "")
	svc = NewService(&fakeExtractor{err: boom}, logger.Nop())
	_, _, err = svc.Read(ctx, core.Document{Data: pdfBytes})
	assert.True(t, errors.Is(err, ErrQuotaExceeded))
	var pe *ProcessingError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "Extract", pe.Op)
}
