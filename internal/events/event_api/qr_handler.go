package event_api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"lpt-event/internal/events/qr"
	"lpt-event/internal/logger"
	"lpt-event/internal/utils"
)

type QRHandler struct {
	EventService EventService
	Generator    *qr.Generator
	Logger       *logger.Logger
}

func NewQRHandler(service EventService, generator *qr.Generator, log *logger.Logger) *QRHandler {
	return &QRHandler{EventService: service, Generator: generator, Logger: log}
}

func (h *QRHandler) RegisterRoutes(r chi.Router) {
	r.Get("/events/{eventId}/qr", h.EventQR)
}

// EventQR returns a PNG QR code pointing at the event's share URL.
// Accepts an optional ?size= pixel dimension.
func (h *QRHandler) EventQR(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "eventId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		utils.Error(w, http.StatusUnprocessableEntity, "eventId must be an integer")
		return
	}

	// Resolve first so a missing id is a 404, not a QR for a dead link.
	if _, err := h.EventService.GetEvent(id); err != nil {
		renderError(w, h.Logger, err)
		return
	}

	size := 0
	if s := r.URL.Query().Get("size"); s != "" {
		size, _ = strconv.Atoi(s)
	}

	png, err := h.Generator.GeneratePNG(id, size)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
