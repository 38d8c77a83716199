package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"ledger-assistant/internal/app"
)

// Options configures the HTTP adapter.
type Options struct {
	AllowedOrigins     string
	RateLimitPerMinute int
	Logger             zerolog.Logger
}

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc      app.ApplicationService
	validate *validator.Validate
	log      zerolog.Logger
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, opts Options) http.Handler {
	h := &Handler{
		svc:      svc,
		validate: validator.New(),
		log:      opts.Logger,
	}
	if opts.RateLimitPerMinute <= 0 {
		opts.RateLimitPerMinute = 30
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(opts.Logger))
	r.Use(Recoverer(opts.Logger))
	r.Use(SecureHeaders())
	r.Use(CORS(opts.AllowedOrigins))

	r.Get("/api/health", h.health)

	// Multipart upload manages its own body limit.
	r.With(httprate.LimitByIP(opts.RateLimitPerMinute, time.Minute)).
		Post("/api/ingestInvoice", h.ingestInvoice)

	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20))

		r.Get("/api/user/{mobile}", h.getUser)
		r.Post("/api/register", h.register)
		r.Get("/api/user/{mobile}/settings", h.getSettings)
		r.Post("/api/user/{mobile}/settings", h.updateSettings)
		r.Get("/api/user/{mobile}/entries", h.listEntries)
		r.Post("/api/user/{mobile}/entries", h.appendEntries)

		// Model and renderer calls are the expensive ones.
		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(opts.RateLimitPerMinute, time.Minute))
			r.Post("/api/parseMessage", h.parseMessage)
			r.Post("/api/invoices", h.createInvoice)
		})
	})

	return r
}

// health reports each dependency; any failure turns the status to 503.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	res := h.svc.Health(r.Context())

	type response struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	}
	if !res.OK {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(response{Status: "degraded", Components: res.Components})
		return
	}
	writeJSON(w, response{Status: "ok", Components: res.Components})
}

// mobileParam extracts the {mobile} URL parameter.
func mobileParam(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "mobile"))
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}

// decodeValid decodes and then validates v's struct tags.
func (h *Handler) decodeValid(w http.ResponseWriter, r *http.Request, v any, normalize func()) bool {
	if !decodeJSON(w, r, v) {
		return false
	}
	if normalize != nil {
		normalize()
	}
	if err := h.validate.Struct(v); err != nil {
		writeError(w, r, validationMessage(err), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s is %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}
