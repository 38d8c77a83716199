package web

import (
	"net/http"
	"strings"

	"ledger-assistant/internal/core"
)

type entriesPayload struct {
	Items []core.LedgerEntry `json:"items" validate:"required,min=1"`
}

type parsePayload struct {
	Message string `json:"message" validate:"required"`
}

// listEntries handles GET /api/user/{mobile}/entries.
func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.ListEntries(r.Context(), mobileParam(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, entriesPayload{Items: entries})
}

// appendEntries handles POST /api/user/{mobile}/entries.
func (h *Handler) appendEntries(w http.ResponseWriter, r *http.Request) {
	var p entriesPayload
	if !h.decodeValid(w, r, &p, nil) {
		return
	}
	res, err := h.svc.AppendEntries(r.Context(), mobileParam(r), p.Items)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"ok": true, "inserted": res.Inserted})
}

// parseMessage handles POST /api/parseMessage.
func (h *Handler) parseMessage(w http.ResponseWriter, r *http.Request) {
	var p parsePayload
	if !h.decodeValid(w, r, &p, func() { p.Message = strings.TrimSpace(p.Message) }) {
		return
	}
	items, err := h.svc.ParseMessage(r.Context(), p.Message)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if items == nil {
		items = []core.Candidate{}
	}
	writeJSON(w, map[string]any{"items": items})
}
