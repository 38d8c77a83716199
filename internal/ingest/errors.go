package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is an upload that is not a PDF or a supported image.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrDocumentTooLarge is an upload over MaxDocumentSize.
	ErrDocumentTooLarge = errors.New("document exceeds maximum size limit")

	// ErrProcessingFailed is a Document AI failure.
	ErrProcessingFailed = errors.New("document AI processing failed")

	// ErrInvalidCredentials is a permission failure talking to Document AI.
	ErrInvalidCredentials = errors.New("invalid Google Cloud credentials")

	// ErrProcessorNotFound is a wrong project, location or processor id.
	ErrProcessorNotFound = errors.New("document AI processor not found")

	// ErrQuotaExceeded is an exhausted Document AI quota.
	ErrQuotaExceeded = errors.New("document AI API quota exceeded")

	// ErrNothingExtracted is a bill with neither line items nor a total.
	ErrNothingExtracted = errors.New("no amounts found in document")

	// ErrNotConfigured is returned when no extractor has been wired.
	ErrNotConfigured = errors.New("invoice ingestion is not configured")
)

// ProcessingError wraps an ingestion failure with the failing operation.
type ProcessingError struct {
	Op      string
	Err     error
	Details string
}

func (e *ProcessingError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("ingest: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("ingest: %s failed: %v", e.Op, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

func wrapError(op string, err error, details string) error {
	return &ProcessingError{Op: op, Err: err, Details: details}
}
