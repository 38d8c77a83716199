package ingest

import (
	"context"
	"fmt"
	"time"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Config locates the Document AI processor.
type Config struct {
	ProjectID       string
	Location        string
	ProcessorID     string
	CredentialsJSON string
	CredentialsFile string
	Timeout         time.Duration
}

func (c Config) processorName() string {
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s", c.ProjectID, c.Location, c.ProcessorID)
}

// DocumentAI sends raw documents to a Document AI invoice processor.
type DocumentAI struct {
	client *documentai.DocumentProcessorClient
	config Config
	log    zerolog.Logger
}

// NewDocumentAI dials the regional Document AI endpoint.
func NewDocumentAI(ctx context.Context, cfg Config, log zerolog.Logger) (*DocumentAI, error) {
	const op = "NewDocumentAI"

	if cfg.ProjectID == "" || cfg.ProcessorID == "" {
		return nil, wrapError(op, ErrNotConfigured, "project and processor id are required")
	}
	if cfg.Location == "" {
		cfg.Location = "us"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	opts := []option.ClientOption{
		option.WithEndpoint(fmt.Sprintf("%s-documentai.googleapis.com:443", cfg.Location)),
	}
	switch {
	case cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := documentai.NewDocumentProcessorClient(ctx, opts...)
	if err != nil {
		return nil, wrapError(op, err, "failed to create Document AI client for location "+cfg.Location)
	}
	return &DocumentAI{client: client, config: cfg, log: log}, nil
}

// Extract runs the processor over content.
func (d *DocumentAI) Extract(ctx context.Context, content []byte, mimeType string) (*documentaipb.Document, error) {
	const op = "Extract"

	ctx, cancel := context.WithTimeout(ctx, d.config.Timeout)
	defer cancel()

	resp, err := d.client.ProcessDocument(ctx, &documentaipb.ProcessRequest{
		Name: d.config.processorName(),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  content,
				MimeType: mimeType,
			},
		},
	})
	if err != nil {
		return nil, d.classify(op, err)
	}
	if resp.GetDocument() == nil {
		return nil, wrapError(op, ErrProcessingFailed, "no document in response")
	}
	d.log.Debug().Int("entities", len(resp.GetDocument().GetEntities())).Msg("document processed")
	return resp.GetDocument(), nil
}

func (d *DocumentAI) classify(op string, err error) error {
	switch status.Code(err) {
	case codes.PermissionDenied, codes.Unauthenticated:
		return wrapError(op, ErrInvalidCredentials, "insufficient permissions for Document AI")
	case codes.ResourceExhausted:
		return wrapError(op, ErrQuotaExceeded, "")
	case codes.NotFound:
		return wrapError(op, ErrProcessorNotFound, d.config.ProcessorID)
	case codes.InvalidArgument:
		return wrapError(op, ErrUnsupportedFormat, "document format not supported or corrupted")
	case codes.DeadlineExceeded:
		return wrapError(op, context.DeadlineExceeded, "processing timeout")
	case codes.Canceled:
		return wrapError(op, context.Canceled, "")
	default:
		return wrapError(op, ErrProcessingFailed, err.Error())
	}
}

// Close releases the client connection.
func (d *DocumentAI) Close() error {
	if d.client != nil {
		return d.client.Close()
	}
	return nil
}
