// Package gateway is the HTTP client for the ledger backend. It implements
// every remote operation the chat engine depends on.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"ledger-assistant/internal/core"
)

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// Client talks to the backend API. Calls are never retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// New builds a Client. A zero timeout waits as long as the context allows.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// do sends one request. body may be nil, an io.Reader (sent as is with
// contentType) or a value encoded as JSON. out may be nil.
func (c *Client) do(ctx context.Context, op, method, path string, body any, contentType string, out any) (*http.Response, []byte, error) {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			return nil, nil, core.NewGatewayError(op, 0, "", fmt.Errorf("encode request: %w", err))
		}
		reader = bytes.NewReader(raw)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, nil, core.NewGatewayError(op, 0, "", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, core.NewGatewayError(op, 0, "", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	c.log.Debug().Str("op", op).Int("status", resp.StatusCode).Dur("duration", time.Since(start)).Msg("gateway call")

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		cause := core.ErrGatewayFailure
		if resp.StatusCode == http.StatusNotFound {
			cause = core.ErrNotFound
		}
		return resp, nil, core.NewGatewayError(op, resp.StatusCode, eb.Error, cause)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, core.NewGatewayError(op, resp.StatusCode, "", fmt.Errorf("read response: %w", err))
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp, raw, core.NewGatewayError(op, resp.StatusCode, "", fmt.Errorf("decode response: %w", err))
		}
	}
	return resp, raw, nil
}

func userPath(mobile string, rest ...string) string {
	return "/api/user/" + url.PathEscape(mobile) + strings.Join(rest, "")
}

// Ping checks that the backend answers its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	_, _, err := c.do(ctx, "health", http.MethodGet, "/api/health", nil, "", nil)
	return err
}

// LookupUser returns an error matching core.ErrNotFound for unknown mobiles.
func (c *Client) LookupUser(ctx context.Context, mobile string) (core.Identity, error) {
	var id core.Identity
	_, _, err := c.do(ctx, "lookupUser", http.MethodGet, userPath(mobile), nil, "", &id)
	return id, err
}

func (c *Client) RegisterUser(ctx context.Context, mobile, name string) error {
	_, _, err := c.do(ctx, "registerUser", http.MethodPost, "/api/register", core.Identity{Mobile: mobile, Name: name}, "", nil)
	return err
}

type entriesBody struct {
	Items []core.LedgerEntry `json:"items"`
}

// ListEntries returns every entry of mobile, newest first.
func (c *Client) ListEntries(ctx context.Context, mobile string) ([]core.LedgerEntry, error) {
	var body entriesBody
	if _, _, err := c.do(ctx, "listEntries", http.MethodGet, userPath(mobile, "/entries"), nil, "", &body); err != nil {
		return nil, err
	}
	return body.Items, nil
}

// AppendEntries stores the batch in one call.
func (c *Client) AppendEntries(ctx context.Context, mobile string, entries []core.LedgerEntry) error {
	_, _, err := c.do(ctx, "appendEntries", http.MethodPost, userPath(mobile, "/entries"), entriesBody{Items: entries}, "", nil)
	return err
}

type parseRequest struct {
	Message string `json:"message"`
}

type parseResponse struct {
	Items []core.Candidate `json:"items"`
}

// ParseFreeText returns candidate entries for one message.
func (c *Client) ParseFreeText(ctx context.Context, text string) ([]core.Candidate, error) {
	var body parseResponse
	if _, _, err := c.do(ctx, "parseMessage", http.MethodPost, "/api/parseMessage", parseRequest{Message: text}, "", &body); err != nil {
		return nil, err
	}
	return body.Items, nil
}

// IngestInvoiceDocument uploads a bill as multipart form data.
func (c *Client) IngestInvoiceDocument(ctx context.Context, mobile string, doc core.Document) (core.IngestResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("mobile", mobile); err != nil {
		return core.IngestResult{}, core.NewGatewayError("ingestInvoice", 0, "", err)
	}
	part, err := createFilePart(w, doc)
	if err != nil {
		return core.IngestResult{}, core.NewGatewayError("ingestInvoice", 0, "", err)
	}
	if _, err := part.Write(doc.Data); err != nil {
		return core.IngestResult{}, core.NewGatewayError("ingestInvoice", 0, "", err)
	}
	if err := w.Close(); err != nil {
		return core.IngestResult{}, core.NewGatewayError("ingestInvoice", 0, "", err)
	}

	var res core.IngestResult
	_, _, err = c.do(ctx, "ingestInvoice", http.MethodPost, "/api/ingestInvoice", &buf, w.FormDataContentType(), &res)
	return res, err
}

func createFilePart(w *multipart.Writer, doc core.Document) (io.Writer, error) {
	filename := doc.Filename
	if filename == "" {
		filename = "upload"
	}
	contentType := doc.ContentType
	if contentType == "" {
		contentType = mimetype.Detect(doc.Data).String()
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filename)))
	h.Set("Content-Type", contentType)
	return w.CreatePart(h)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// GetSettings returns an error matching core.ErrNotFound when the identity is unknown.
func (c *Client) GetSettings(ctx context.Context, mobile string) (core.Settings, error) {
	var s core.Settings
	_, _, err := c.do(ctx, "getSettings", http.MethodGet, userPath(mobile, "/settings"), nil, "", &s)
	return s, err
}

// UpdateSettings sends only the changed fields.
func (c *Client) UpdateSettings(ctx context.Context, mobile string, update core.SettingsUpdate) error {
	_, _, err := c.do(ctx, "updateSettings", http.MethodPost, userPath(mobile, "/settings"), update, "", nil)
	return err
}

// GenerateInvoiceDocument returns the rendered PDF.
func (c *Client) GenerateInvoiceDocument(ctx context.Context, req core.InvoiceRequest) (core.Document, error) {
	resp, raw, err := c.do(ctx, "generateInvoice", http.MethodPost, "/api/invoices", req, "", nil)
	if err != nil {
		return core.Document{}, err
	}
	return core.Document{ContentType: resp.Header.Get("Content-Type"), Data: raw}, nil
}
