package web

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"ledger-assistant/internal/app"
	"ledger-assistant/internal/core"
	"ledger-assistant/internal/ingest"
)

// createInvoice handles POST /api/invoices and streams back the PDF.
func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	var req core.InvoiceRequest
	if !h.decodeValid(w, r, &req, func() { req.Customer.Name = strings.TrimSpace(req.Customer.Name) }) {
		return
	}
	doc, err := h.svc.GenerateInvoice(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	_, _ = w.Write(doc.Data)
}

// ingestInvoice handles POST /api/ingestInvoice (multipart "mobile" and "file").
func (h *Handler) ingestInvoice(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, ingest.MaxDocumentSize+1<<20)
	if err := r.ParseMultipartForm(ingest.MaxDocumentSize); err != nil {
		writeError(w, r, "request too large or malformed", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	mobile := strings.TrimSpace(r.FormValue("mobile"))
	if mobile == "" {
		writeError(w, r, "mobile is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	f, fh, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, "no file provided", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	data, err := io.ReadAll(f)
	_ = f.Close()
	if err != nil {
		writeError(w, r, "failed to read uploaded file", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	if len(data) > ingest.MaxDocumentSize {
		writeError(w, r, fmt.Sprintf("file exceeds maximum size of %d MB", ingest.MaxDocumentSize>>20),
			"FILE_TOO_LARGE", http.StatusRequestEntityTooLarge)
		return
	}
	mimeType, err := ingest.DetectType(data)
	if err != nil {
		writeError(w, r, "file type not allowed; accepted: pdf, jpeg, png, webp", "UNSUPPORTED_TYPE", http.StatusUnsupportedMediaType)
		return
	}

	uploadID := uuid.NewString()
	h.log.Info().
		Str("upload_id", uploadID).
		Str("mobile", mobile).
		Str("filename", fh.Filename).
		Str("type", mimeType).
		Int("bytes", len(data)).
		Msg("bill uploaded")

	res, err := h.svc.IngestInvoice(r.Context(), app.IngestRequest{
		Mobile:   mobile,
		Document: core.Document{Filename: fh.Filename, ContentType: mimeType, Data: data},
	})
	if err != nil {
		h.log.Warn().Err(err).Str("upload_id", uploadID).Msg("bill ingestion failed")
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}
