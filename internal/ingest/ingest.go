package ingest

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"ledger-assistant/internal/core"
)

// MaxDocumentSize caps uploaded bills at 10 MB.
const MaxDocumentSize = 10 << 20

var allowedTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
}

// Extractor runs OCR and entity extraction over a raw document.
type Extractor interface {
	Extract(ctx context.Context, content []byte, mimeType string) (*documentaipb.Document, error)
}

// DetectType sniffs the content type of data, ignoring what the client claimed.
// It returns ErrUnsupportedFormat for anything outside the accepted set.
func DetectType(data []byte) (string, error) {
	mt := mimetype.Detect(data)
	for ct := range allowedTypes {
		if mt.Is(ct) {
			return ct, nil
		}
	}
	return "", fmt.Errorf("%s: %w", mt.String(), ErrUnsupportedFormat)
}

// Service turns uploaded vendor bills into payable ledger entries.
type Service struct {
	extractor Extractor
	log       zerolog.Logger
	now       func() time.Time
}

// NewService wraps an extractor. A nil extractor makes every call fail with
// ErrNotConfigured.
func NewService(extractor Extractor, log zerolog.Logger) *Service {
	return &Service{extractor: extractor, log: log, now: time.Now}
}

// Read validates doc, extracts the bill and returns its payable entries.
func (s *Service) Read(ctx context.Context, doc core.Document) (Bill, []core.LedgerEntry, error) {
	const op = "Read"

	if s.extractor == nil {
		return Bill{}, nil, wrapError(op, ErrNotConfigured, "")
	}
	if len(doc.Data) > MaxDocumentSize {
		return Bill{}, nil, wrapError(op, ErrDocumentTooLarge, fmt.Sprintf("%d bytes", len(doc.Data)))
	}
	mimeType, err := DetectType(doc.Data)
	if err != nil {
		return Bill{}, nil, wrapError(op, err, doc.Filename)
	}

	processed, err := s.extractor.Extract(ctx, doc.Data, mimeType)
	if err != nil {
		return Bill{}, nil, err
	}

	bill := ReadBill(processed)
	entries := bill.Payables(s.now())
	if len(entries) == 0 {
		return bill, nil, wrapError(op, ErrNothingExtracted, doc.Filename)
	}

	s.log.Info().
		Str("vendor", bill.Vendor).
		Int("lines", len(bill.Lines)).
		Str("total", bill.Total.StringFixed(2)).
		Msg("bill extracted")
	return bill, entries, nil
}
