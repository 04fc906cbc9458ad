package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"edudash/internal/content"
	"edudash/internal/middleware"
)

// ZoneServicer is the zone document contract the handlers depend on.
type ZoneServicer interface {
	ResolveKey(key string) string
	Load(ctx context.Context, key string) json.RawMessage
	Save(ctx context.Context, key string, raw json.RawMessage) error
}

// ZoneHandler holds the dependencies for the zone document handlers.
type ZoneHandler struct {
	zones ZoneServicer
}

// NewZoneHandler creates a new ZoneHandler.
func NewZoneHandler(zones ZoneServicer) *ZoneHandler {
	return &ZoneHandler{zones: zones}
}

// handleGet serves the document for the requested zone key. A missing
// document answers `{data: null}`, not an error.
func (h *ZoneHandler) handleGet(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	raw := h.zones.Load(r.Context(), r.URL.Query().Get("key"))
	middleware.WriteJSON(w, http.StatusOK, struct {
		Data json.RawMessage `json:"data"`
	}{Data: raw})
	return nil
}

type saveZoneRequest struct {
	Key  string          `json:"key"`
	Data json.RawMessage `json:"data"`
}

// handlePost validates and persists a zone document. Requires an admin
// session; the router enforces that before this handler runs.
func (h *ZoneHandler) handlePost(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req saveZoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &middleware.AppError{Error: err, Message: "Payload too large", Code: http.StatusRequestEntityTooLarge}
		}
		return &middleware.AppError{Error: err, Message: "Invalid zone payload", Code: http.StatusBadRequest}
	}
	if req.Data == nil {
		return &middleware.AppError{Error: content.ErrInvalidPayload, Message: "Invalid zone payload", Code: http.StatusBadRequest}
	}

	if err := h.zones.Save(r.Context(), req.Key, req.Data); err != nil {
		switch {
		case errors.Is(err, content.ErrInvalidPayload):
			return &middleware.AppError{Error: err, Message: "Invalid zone payload", Code: http.StatusBadRequest}
		case errors.Is(err, content.ErrInvalidTree):
			return &middleware.AppError{Error: err, Message: "Invalid content tree", Code: http.StatusBadRequest}
		default:
			return &middleware.AppError{Error: err, Message: "Failed to save zone", Code: http.StatusInternalServerError}
		}
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
	return nil
}
