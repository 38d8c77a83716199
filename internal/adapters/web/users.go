package web

import (
	"net/http"
	"strings"

	"ledger-assistant/internal/app"
	"ledger-assistant/internal/core"
)

type registerPayload struct {
	Mobile string `json:"mobile" validate:"required,numeric"`
	Name   string `json:"name" validate:"required"`
}

// getUser handles GET /api/user/{mobile}.
func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.GetUser(r.Context(), mobileParam(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, u)
}

// register handles POST /api/register.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var p registerPayload
	if !h.decodeValid(w, r, &p, func() {
		p.Mobile = strings.TrimSpace(p.Mobile)
		p.Name = strings.TrimSpace(p.Name)
	}) {
		return
	}
	id, err := h.svc.RegisterUser(r.Context(), app.RegisterRequest{Mobile: p.Mobile, Name: p.Name})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"ok": true, "mobile": id.Mobile, "name": id.Name})
}

// getSettings handles GET /api/user/{mobile}/settings.
func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.GetSettings(r.Context(), mobileParam(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, s)
}

// updateSettings handles POST /api/user/{mobile}/settings. Unknown keys are
// ignored; a payload without any known key is rejected.
func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var payload map[string]string
	if !decodeJSON(w, r, &payload) {
		return
	}
	update := core.SettingsUpdate{}
	for k, v := range payload {
		update[core.SettingKey(k)] = v
	}
	res, err := h.svc.UpdateSettings(r.Context(), mobileParam(r), update)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"ok": true, "updated": res.Updated})
}
