package pdf

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ledger-assistant/internal/core"
)

//go:embed templates/invoice.html
var templates embed.FS

// Renderer prints invoices to PDF through a Gotenberg instance.
type Renderer struct {
	endpoint   string
	httpClient *http.Client
	tpl        *template.Template
	log        zerolog.Logger
	now        func() time.Time
}

// NewRenderer parses the invoice template. A nil client gets a 30 second
// timeout.
func NewRenderer(endpoint string, client *http.Client, log zerolog.Logger) (*Renderer, error) {
	tpl, err := template.ParseFS(templates, "templates/invoice.html")
	if err != nil {
		return nil, fmt.Errorf("parse invoice template: %w", err)
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Renderer{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: client,
		tpl:        tpl,
		log:        log,
		now:        time.Now,
	}, nil
}

// Ping checks that Gotenberg is up.
func (r *Renderer) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("gotenberg returned status %d", resp.StatusCode)
	}
	return nil
}

// HTML renders the printable invoice markup.
func (r *Renderer) HTML(sheet Sheet) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, sheet); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// Render builds the invoice for req and converts it to PDF.
func (r *Renderer) Render(ctx context.Context, req core.InvoiceRequest) (*core.Document, error) {
	sheet, err := BuildSheet(req, r.now())
	if err != nil {
		return nil, err
	}
	html, err := r.HTML(sheet)
	if err != nil {
		return nil, err
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(part, html); err != nil {
		return nil, err
	}
	for field, value := range map[string]string{
		"paperWidth":   "8.27",
		"paperHeight":  "11.7",
		"marginTop":    "0.6",
		"marginBottom": "0.6",
		"marginLeft":   "0.6",
		"marginRight":  "0.6",
	} {
		if err := writer.WriteField(field, value); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint+"/forms/chromium/convert/html", body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gotenberg request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("gotenberg response %d: %s", resp.StatusCode, string(data))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	r.log.Info().Str("invoice", sheet.Number).Int("items", len(sheet.Rows)).Int("bytes", len(data)).Msg("invoice rendered")
	return &core.Document{
		Filename:    "invoice_" + sheet.Number + ".pdf",
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}
